package physics

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Interface is the narrow read/write façade engine wrappers use to reach a body by id.
// Every per-body call fails with ErrBodyNotFound for ids the world does not hold.
type Interface struct {
	world *World
}

// NewInterface returns a façade over world.
func NewInterface(world *World) *Interface {
	return &Interface{world: world}
}

func (in *Interface) body(op string, id BodyID) (*Body, error) {
	b, ok := in.world.bodies[id]
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", op, id, ErrBodyNotFound)
	}
	return b, nil
}

// Position returns the body's current position.
func (in *Interface) Position(id BodyID) (rl.Vector2, error) {
	b, err := in.body("get position", id)
	if err != nil {
		return rl.Vector2{}, err
	}
	return b.Position, nil
}

// SetPosition teleports the body; its velocity is left as is.
func (in *Interface) SetPosition(id BodyID, position rl.Vector2) error {
	b, err := in.body("set position", id)
	if err != nil {
		return err
	}
	b.Position = position
	return nil
}

// Velocity returns the body's current velocity.
func (in *Interface) Velocity(id BodyID) (rl.Vector2, error) {
	b, err := in.body("get velocity", id)
	if err != nil {
		return rl.Vector2{}, err
	}
	return b.Velocity, nil
}

// SetVelocity replaces the body's velocity.
func (in *Interface) SetVelocity(id BodyID, velocity rl.Vector2) error {
	b, err := in.body("set velocity", id)
	if err != nil {
		return err
	}
	b.Velocity = velocity
	return nil
}

// Gravity is world-wide, not per body.
func (in *Interface) Gravity() float32 {
	return in.world.Gravity
}

// SetGravity sets the world gravity used by the next Simulate.
func (in *Interface) SetGravity(g float32) {
	in.world.Gravity = g
}

// MotionType returns how the body moves during Simulate.
func (in *Interface) MotionType(id BodyID) (MotionType, error) {
	b, err := in.body("get motion type", id)
	if err != nil {
		return Static, err
	}
	return b.MotionType, nil
}

// SetMotionType switches the body between static, kinematic and dynamic.
func (in *Interface) SetMotionType(id BodyID, m MotionType) error {
	b, err := in.body("set motion type", id)
	if err != nil {
		return err
	}
	b.MotionType = m
	return nil
}

// MotionQuality returns the body's stored motion quality.
func (in *Interface) MotionQuality(id BodyID) (MotionQuality, error) {
	b, err := in.body("get motion quality", id)
	if err != nil {
		return Discrete, err
	}
	return b.MotionQuality, nil
}

// SetMotionQuality stores q on the body.
func (in *Interface) SetMotionQuality(id BodyID, q MotionQuality) error {
	b, err := in.body("set motion quality", id)
	if err != nil {
		return err
	}
	b.MotionQuality = q
	return nil
}

// AddForce adds force straight onto the velocity; mass is not involved.
func (in *Interface) AddForce(id BodyID, force rl.Vector2) error {
	b, err := in.body("add force", id)
	if err != nil {
		return err
	}
	b.Velocity = rl.Vector2Add(b.Velocity, force)
	return nil
}

// AddVelocity adds delta to the body's velocity.
func (in *Interface) AddVelocity(id BodyID, delta rl.Vector2) error {
	b, err := in.body("add velocity", id)
	if err != nil {
		return err
	}
	b.Velocity = rl.Vector2Add(b.Velocity, delta)
	return nil
}

// CreateAndAddBody registers a body built from settings; see World.CreateAndAddBody.
func (in *Interface) CreateAndAddBody(settings ShapeSettings, motionType MotionType, position rl.Vector2) (BodyID, error) {
	return in.world.CreateAndAddBody(settings, motionType, position)
}

// RemoveBody deletes id; see World.RemoveBody.
func (in *Interface) RemoveBody(id BodyID) error {
	return in.world.RemoveBody(id)
}

// Instance bundles a World with its Interface, the unit an engine program owns.
type Instance struct {
	World     *World
	Interface *Interface
}

// NewInstance creates a world configured by opts and its façade.
func NewInstance(opts ...Option) *Instance {
	w := NewWorld(opts...)
	return &Instance{World: w, Interface: NewInterface(w)}
}
