package physics

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BodyID identifies a body inside one World. IDs are allocated monotonically and never reused,
// so removing a body does not invalidate any other id.
type BodyID uint64

// InvalidBodyID is never handed out by a World.
const InvalidBodyID BodyID = 0

func (id BodyID) String() string {
	return fmt.Sprintf("body#%d", uint64(id))
}

// MotionType controls how a body reacts during Simulate.
type MotionType uint8

const (
	// Static bodies never move.
	Static MotionType = iota
	// Kinematic bodies integrate their velocity but ignore gravity.
	Kinematic
	// Dynamic bodies integrate velocity and are pulled by gravity.
	Dynamic
)

func (m MotionType) String() string {
	switch m {
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	case Dynamic:
		return "dynamic"
	}
	return fmt.Sprintf("motiontype(%d)", uint8(m))
}

// MotionQuality is stored per body for the engine wrappers; the integrator treats all qualities the same.
type MotionQuality uint8

const (
	// Discrete moves a body straight to its integrated position.
	Discrete MotionQuality = iota
	// LinearCast marks a body the engine would sweep between steps.
	LinearCast
)

func (m MotionQuality) String() string {
	switch m {
	case Discrete:
		return "discrete"
	case LinearCast:
		return "linearcast"
	}
	return fmt.Sprintf("motionquality(%d)", uint8(m))
}

// Body is a physics-tracked object. Bodies are owned by the World; callers mutate
// them through Interface rather than holding pointers.
type Body struct {
	ID            BodyID
	Position      rl.Vector2
	Velocity      rl.Vector2
	Mass          float32
	MotionType    MotionType
	MotionQuality MotionQuality
	ObjectType    ObjectType
	Shape         Mesh
	AABB          AABB
	// TilemapAABBs holds per-tile colliders for Tilemap bodies, relative to Position.
	TilemapAABBs []AABB
	UserData     any
}
