package collision

import (
	"github.com/hollowmoor/ebitools/ecs"
	"github.com/hollowmoor/ebitools/ecs/component"
)

// Trigger event types. Data is a Contact with the emitter in slot A and
// the trigger entity in slot B.
const (
	EventTriggerEntered = "collision.trigger_entered"
	EventTriggerLeft    = "collision.trigger_left"
)

// SingleTrigger marks a sensor entity that fires once: after the emitter
// leaves it, the trigger entity is despawned.
type SingleTrigger struct{}

// SingleTriggerComponent is the shared handle for one-shot triggers.
var SingleTriggerComponent = component.New[SingleTrigger]()

// TriggerSystem pairs an emitter component with SingleTrigger sensors.
// It republishes entered/left events and consumes the trigger entity when
// the contact ends. Register it after the physics StepSystem.
type TriggerSystem[Emitter any] struct {
	pairs *PairSystem[Emitter, SingleTrigger]
}

// NewTriggerSystem creates a one-shot trigger system for an emitter
// component, usually the player marker.
func NewTriggerSystem[Emitter any](emitter component.Handle[Emitter]) *TriggerSystem[Emitter] {
	return &TriggerSystem[Emitter]{
		pairs: NewPairSystem(emitter, SingleTriggerComponent, EventTriggerEntered, EventTriggerLeft),
	}
}

func (s *TriggerSystem[Emitter]) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.pairs.Update(w)
	for _, evt := range w.Events().Pending() {
		if evt.Type != EventTriggerLeft {
			continue
		}
		if c, ok := evt.Data.(Contact); ok {
			w.DestroyEntity(c.B)
		}
	}
}
