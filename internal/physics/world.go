package physics

import (
	"context"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/exp/slices"

	"hammer2d/internal/logger"
)

// DefaultGravity is standard gravity; it is applied to Position.Y of dynamic bodies.
const DefaultGravity float32 = 9.80665

// World owns a set of bodies and steps them: sprite broad-phase, then integration.
// World is not safe for concurrent use; the host steps it once per tick and reads
// positions back before the next step.
type World struct {
	Gravity float32

	bodies map[BodyID]*Body
	order  []BodyID // ascending; the iteration order of every phase
	nextID BodyID

	log      *logger.Logger
	listener ContactListener
	contacts map[contactPair]struct{}

	// scratch reused across steps
	sprites []*Body
	touched map[contactPair]struct{}
}

// Option configures a World.
type Option func(*World)

// WithGravity overrides DefaultGravity.
func WithGravity(g float32) Option {
	return func(w *World) { w.Gravity = g }
}

// WithLogger routes body lifecycle and shape errors to log.
func WithLogger(log *logger.Logger) Option {
	return func(w *World) { w.log = log }
}

// WithContactListener receives sprite contact events after each broad-phase.
func WithContactListener(l ContactListener) Option {
	return func(w *World) { w.listener = l }
}

// NewWorld returns an empty world with default gravity.
func NewWorld(opts ...Option) *World {
	w := &World{
		Gravity:  DefaultGravity,
		bodies:   make(map[BodyID]*Body),
		contacts: make(map[contactPair]struct{}),
		touched:  make(map[contactPair]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// SetContactListener replaces the contact listener; nil disables events.
func (w *World) SetContactListener(l ContactListener) {
	w.listener = l
}

// AddBody registers a static sprite body with no shape at position and returns its fresh id.
func (w *World) AddBody(position rl.Vector2) BodyID {
	w.nextID++
	id := w.nextID
	w.bodies[id] = &Body{ID: id, Position: position, Mass: 1}
	w.order = append(w.order, id) // ids only grow, order stays sorted
	w.log.Logf("physics: added %s at (%.3f, %.3f)", id, position.X, position.Y)
	return id
}

// CreateAndAddBody builds a body from settings. The shape's AABB is computed once here.
func (w *World) CreateAndAddBody(settings ShapeSettings, motionType MotionType, position rl.Vector2) (BodyID, error) {
	box, tiles, err := settings.bounds()
	if err != nil {
		w.log.Logf("physics: rejected %s body: %v", settings.ObjectType, err)
		return InvalidBodyID, fmt.Errorf("create body: %w", err)
	}
	id := w.AddBody(position)
	b := w.bodies[id]
	b.MotionType = motionType
	b.ObjectType = settings.ObjectType
	b.Shape = settings.Mesh
	b.AABB = box
	b.TilemapAABBs = tiles
	b.UserData = settings.UserData
	return id, nil
}

// RemoveBody deletes id from the world. Contacts involving the body are reported as removed.
func (w *World) RemoveBody(id BodyID) error {
	if _, ok := w.bodies[id]; !ok {
		return fmt.Errorf("remove %s: %w", id, ErrBodyNotFound)
	}
	delete(w.bodies, id)
	if i, found := slices.BinarySearch(w.order, id); found {
		w.order = slices.Delete(w.order, i, i+1)
	}
	var gone []contactPair
	for p := range w.contacts {
		if p.a == id || p.b == id {
			gone = append(gone, p)
		}
	}
	sortPairs(gone)
	for _, p := range gone {
		delete(w.contacts, p)
		if w.listener != nil {
			w.listener.OnContactRemoved(p.a, p.b)
		}
	}
	w.log.Logf("physics: removed %s", id)
	return nil
}

// Body returns the body for id. The pointer stays owned by the world.
func (w *World) Body(id BodyID) (*Body, error) {
	b, ok := w.bodies[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrBodyNotFound)
	}
	return b, nil
}

// BodyIDs returns the live ids in ascending order.
func (w *World) BodyIDs() []BodyID {
	return slices.Clone(w.order)
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	return len(w.order)
}

// Simulate advances the world by dt seconds.
//
// Phase 1 tests every ordered pair of Sprite bodies (self-pairs skipped) with the
// position-relative overlap test; when A overlaps B and dot(A.Velocity, B.Position) > 0,
// A's velocity is zeroed. B is left untouched.
//
// Phase 2 integrates every body: dynamic bodies get dt*Gravity added to Position.Y,
// then every non-static body moves by d = Velocity*dt and loses d from its velocity,
// so velocity decays toward zero each step.
func (w *World) Simulate(dt float32) {
	w.broadPhase()
	w.integrate(dt)
}

// Step runs steps consecutive Simulate calls, stopping early if ctx is cancelled.
func (w *World) Step(ctx context.Context, dt float32, steps int) error {
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("physics step %d/%d: %w", i, steps, err)
		}
		w.Simulate(dt)
	}
	return nil
}

func (w *World) broadPhase() {
	w.sprites = w.sprites[:0]
	for _, id := range w.order {
		if b := w.bodies[id]; b.ObjectType == Sprite {
			w.sprites = append(w.sprites, b)
		}
	}
	clear(w.touched)

	for _, a := range w.sprites {
		for _, b := range w.sprites {
			if a.ID == b.ID {
				continue
			}
			if !a.AABB.CheckCollision(a.Position, b.Position, b.AABB) {
				continue
			}
			w.touched[makePair(a.ID, b.ID)] = struct{}{}
			if rl.Vector2DotProduct(a.Velocity, b.Position) > 0 {
				a.Velocity = rl.Vector2Zero()
			}
		}
	}
	w.dispatchContacts()
}

func (w *World) integrate(dt float32) {
	for _, id := range w.order {
		b := w.bodies[id]
		if b.MotionType == Dynamic {
			b.Position.Y += dt * w.Gravity
		}
		if b.MotionType != Static {
			d := rl.Vector2Scale(b.Velocity, dt)
			b.Velocity = rl.Vector2Subtract(b.Velocity, d)
			b.Position = rl.Vector2Add(b.Position, d)
		}
	}
}
