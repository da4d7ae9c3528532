// Package bodysync keeps ECS entities and physics bodies in step.
package bodysync

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"hammer2d/internal/logger"
	"hammer2d/internal/physics"
)

// ErrEntityNotAlive is returned for entities that were already despawned.
var ErrEntityNotAlive = errors.New("entity not alive")

// CollisionState is the phase of a contact between two rigidbodies.
type CollisionState uint8

const (
	// CollisionEnter fires on the first step two bodies touch.
	CollisionEnter CollisionState = iota
	// CollisionStay fires on every later step they keep touching.
	CollisionStay
	// CollisionExit fires once they separate or one of them is removed.
	CollisionExit
)

func (c CollisionState) String() string {
	switch c {
	case CollisionEnter:
		return "enter"
	case CollisionStay:
		return "stay"
	case CollisionExit:
		return "exit"
	}
	return fmt.Sprintf("collisionstate(%d)", uint8(c))
}

// Transform is an entity's position in physics space.
type Transform struct {
	Position rl.Vector2
}

// Rigidbody2D attaches a physics body to an entity. Body stays InvalidBodyID until the
// system has registered the entity; Velocity is applied once, at registration.
// OnCollision, when set, is called with the other entity of each contact.
type Rigidbody2D struct {
	MotionType  physics.MotionType
	Shape       physics.ShapeSettings
	Velocity    rl.Vector2
	Body        physics.BodyID
	OnCollision func(state CollisionState, other ecs.Entity)
}

// System registers new rigidbodies, steps the physics world and copies positions back.
// It is the world's contact listener and forwards contacts to the entities involved.
type System struct {
	world       *ecs.World
	filter      *ecs.Filter2[Transform, Rigidbody2D]
	rigidbodies *ecs.Map[Rigidbody2D]
	physics     *physics.Instance
	entities    map[physics.BodyID]ecs.Entity
	log         *logger.Logger
}

var _ physics.ContactListener = (*System)(nil)

// NewSystem binds a system to an ECS world and a physics instance and installs it as
// the instance's contact listener.
func NewSystem(w *ecs.World, inst *physics.Instance, log *logger.Logger) *System {
	s := &System{
		world:       w,
		filter:      ecs.NewFilter2[Transform, Rigidbody2D](w),
		rigidbodies: ecs.NewMap[Rigidbody2D](w),
		physics:     inst,
		entities:    make(map[physics.BodyID]ecs.Entity),
		log:         log,
	}
	inst.World.SetContactListener(s)
	return s
}

// Spawn creates an entity with the given transform and rigidbody. Its body is created
// on the next Update.
func (s *System) Spawn(position rl.Vector2, rb Rigidbody2D) ecs.Entity {
	rb.Body = physics.InvalidBodyID
	mapper := ecs.NewMap2[Transform, Rigidbody2D](s.world)
	return mapper.NewEntity(&Transform{Position: position}, &rb)
}

// Despawn removes an entity and its physics body. Contacts the body still had end with
// CollisionExit on both sides before the entity goes away.
func (s *System) Despawn(e ecs.Entity) error {
	if !s.world.Alive(e) {
		return fmt.Errorf("despawn %v: %w", e, ErrEntityNotAlive)
	}
	rb := s.rigidbodies.Get(e)
	var err error
	if id := rb.Body; id != physics.InvalidBodyID {
		err = s.physics.Interface.RemoveBody(id)
		delete(s.entities, id)
	}
	s.world.RemoveEntity(e)
	return err
}

func (s *System) OnContactAdded(a, b physics.BodyID)     { s.collide(CollisionEnter, a, b) }
func (s *System) OnContactPersisted(a, b physics.BodyID) { s.collide(CollisionStay, a, b) }
func (s *System) OnContactRemoved(a, b physics.BodyID)   { s.collide(CollisionExit, a, b) }

func (s *System) collide(state CollisionState, a, b physics.BodyID) {
	ea, okA := s.entities[a]
	eb, okB := s.entities[b]
	if !okA || !okB {
		return
	}
	s.notify(ea, state, eb)
	s.notify(eb, state, ea)
}

func (s *System) notify(e ecs.Entity, state CollisionState, other ecs.Entity) {
	if !s.world.Alive(e) {
		return
	}
	if rb := s.rigidbodies.Get(e); rb.OnCollision != nil {
		rb.OnCollision(state, other)
	}
}

// Update runs one physics step of dt. Entities whose shape cannot become a body are
// logged, skipped and reported in the returned error; the step still runs.
func (s *System) Update(dt float32) error {
	var errs []error
	in := s.physics.Interface

	query := s.filter.Query()
	for query.Next() {
		tr, rb := query.Get()
		if rb.Body != physics.InvalidBodyID {
			continue
		}
		id, err := in.CreateAndAddBody(rb.Shape, rb.MotionType, tr.Position)
		if err != nil {
			s.log.Logf("bodysync: entity %v: %v", query.Entity(), err)
			errs = append(errs, fmt.Errorf("entity %v: %w", query.Entity(), err))
			continue
		}
		rb.Body = id
		s.entities[id] = query.Entity()
		if err := in.SetVelocity(id, rb.Velocity); err != nil {
			errs = append(errs, err)
		}
	}

	s.physics.World.Simulate(dt)

	query = s.filter.Query()
	for query.Next() {
		tr, rb := query.Get()
		if rb.Body == physics.InvalidBodyID {
			continue
		}
		pos, err := in.Position(rb.Body)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tr.Position = pos
	}
	return errors.Join(errs...)
}
