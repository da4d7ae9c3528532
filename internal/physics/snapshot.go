package physics

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/jinzhu/copier"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/exp/slices"
)

// BodyState is the serialisable part of a Body. UserData is not carried.
type BodyState struct {
	ID            BodyID        `msgpack:"id"`
	Position      rl.Vector2    `msgpack:"pos"`
	Velocity      rl.Vector2    `msgpack:"vel"`
	Mass          float32       `msgpack:"mass"`
	MotionType    MotionType    `msgpack:"motion"`
	MotionQuality MotionQuality `msgpack:"quality"`
	ObjectType    ObjectType    `msgpack:"object"`
	Shape         Mesh          `msgpack:"shape"`
	AABB          AABB          `msgpack:"aabb"`
	TilemapAABBs  []AABB        `msgpack:"tiles,omitempty"`
}

// Snapshot is a deep copy of a world's bodies at one point in time.
type Snapshot struct {
	Gravity float32     `msgpack:"gravity"`
	NextID  BodyID      `msgpack:"next_id"`
	Bodies  []BodyState `msgpack:"bodies"`
}

// Snapshot copies every body, in id order. Later steps do not affect the copy.
func (w *World) Snapshot() (Snapshot, error) {
	s := Snapshot{Gravity: w.Gravity, NextID: w.nextID, Bodies: make([]BodyState, 0, len(w.order))}
	for _, id := range w.order {
		var st BodyState
		if err := copier.CopyWithOption(&st, w.bodies[id], copier.Option{DeepCopy: true}); err != nil {
			return Snapshot{}, fmt.Errorf("snapshot %s: %w", id, err)
		}
		s.Bodies = append(s.Bodies, st)
	}
	return s, nil
}

// Restore replaces the world's bodies with the snapshot's. Contacts are reset,
// so the next step reports every overlapping pair as added.
func (w *World) Restore(s Snapshot) error {
	bodies := make(map[BodyID]*Body, len(s.Bodies))
	order := make([]BodyID, 0, len(s.Bodies))
	next := s.NextID
	for _, st := range s.Bodies {
		if _, dup := bodies[st.ID]; dup || st.ID == InvalidBodyID {
			return fmt.Errorf("restore: bad body id %d", uint64(st.ID))
		}
		b := &Body{}
		if err := copier.CopyWithOption(b, &st, copier.Option{DeepCopy: true}); err != nil {
			return fmt.Errorf("restore %s: %w", st.ID, err)
		}
		bodies[st.ID] = b
		order = append(order, st.ID)
		if st.ID > next {
			next = st.ID
		}
	}
	slices.Sort(order)
	w.Gravity = s.Gravity
	w.bodies = bodies
	w.order = order
	w.nextID = next
	clear(w.contacts)
	return nil
}

// EncodeSnapshot serialises s with msgpack.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	data, err := msgpack.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses data produced by EncodeSnapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}
