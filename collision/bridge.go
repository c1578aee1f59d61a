// Package collision bridges a Chipmunk physics space to the ECS event
// queue. It resolves raw shape pairs back to their owning entities and
// republishes collision begin/separate callbacks as simplified
// started/stopped contact events. It is a pure translation layer: event
// order is whatever the physics step produces.
package collision

import (
	"github.com/jakecoffman/cp"

	"github.com/hollowmoor/ebitools/ecs"
)

// Raw contact event types. Data is a Contact.
const (
	EventStarted = "collision.started"
	EventStopped = "collision.stopped"
)

// Contact reports that two entities touched or separated.
type Contact struct {
	A ecs.Entity
	B ecs.Entity
}

// Bridge owns the shape-to-entity mapping for one space/world pair.
type Bridge struct {
	world *ecs.World
	space *cp.Space

	shapeToEntity map[*cp.Shape]ecs.Entity
}

// NewBridge creates a bridge publishing into the world's event queue.
func NewBridge(world *ecs.World, space *cp.Space) *Bridge {
	return &Bridge{
		world:         world,
		space:         space,
		shapeToEntity: make(map[*cp.Shape]ecs.Entity),
	}
}

// Register binds a shape to its owning entity. Shapes without a binding
// are ignored by the bridge.
func (b *Bridge) Register(shape *cp.Shape, e ecs.Entity) {
	if shape == nil || !e.Valid() {
		return
	}
	b.shapeToEntity[shape] = e
}

// Unregister removes a shape binding, usually when the entity despawns.
func (b *Bridge) Unregister(shape *cp.Shape) {
	delete(b.shapeToEntity, shape)
}

// EntityFor resolves a shape back to its entity.
func (b *Bridge) EntityFor(shape *cp.Shape) (ecs.Entity, bool) {
	e, ok := b.shapeToEntity[shape]
	return e, ok
}

// Watch installs begin/separate handlers for a collision type pair.
// Contacts where either shape is unregistered are passed through to the
// solver but produce no event.
func (b *Bridge) Watch(typeA, typeB cp.CollisionType) {
	handler := b.space.NewCollisionHandler(typeA, typeB)
	handler.UserData = b
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		bridge, ok := userData.(*Bridge)
		if ok {
			bridge.publish(EventStarted, arb)
		}
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) {
		bridge, ok := userData.(*Bridge)
		if ok {
			bridge.publish(EventStopped, arb)
		}
	}
}

func (b *Bridge) publish(typ string, arb *cp.Arbiter) {
	shapeA, shapeB := arb.Shapes()
	ea, okA := b.shapeToEntity[shapeA]
	eb, okB := b.shapeToEntity[shapeB]
	if !okA || !okB {
		return
	}
	b.world.Events().Push(ecs.Event{Type: typ, Data: Contact{A: ea, B: eb}})
}

// StepSystem advances the physics space by the frame delta. Collision
// events surface during the step, so register it before any system that
// consumes contact events.
type StepSystem struct {
	Space *cp.Space
}

// NewStepSystem creates a physics stepping system.
func NewStepSystem(space *cp.Space) *StepSystem {
	return &StepSystem{Space: space}
}

func (s *StepSystem) Update(w *ecs.World) {
	if s == nil || s.Space == nil || w == nil {
		return
	}
	if dt := w.Delta(); dt > 0 {
		s.Space.Step(dt)
	}
}
