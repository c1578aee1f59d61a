package collision

import (
	"github.com/hollowmoor/ebitools/ecs"
	"github.com/hollowmoor/ebitools/ecs/component"
)

// PairSystem narrows raw contact events to entity pairs carrying two
// specific components and republishes them with the first component's
// entity always in slot A, whatever order the physics engine reported.
type PairSystem[C1, C2 any] struct {
	First  component.Handle[C1]
	Second component.Handle[C2]

	StartedType string
	StoppedType string
}

// NewPairSystem creates a pair filter emitting the given event types.
func NewPairSystem[C1, C2 any](first component.Handle[C1], second component.Handle[C2], startedType, stoppedType string) *PairSystem[C1, C2] {
	return &PairSystem[C1, C2]{
		First:       first,
		Second:      second,
		StartedType: startedType,
		StoppedType: stoppedType,
	}
}

func (s *PairSystem[C1, C2]) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, evt := range w.Events().Pending() {
		var out string
		switch evt.Type {
		case EventStarted:
			out = s.StartedType
		case EventStopped:
			out = s.StoppedType
		default:
			continue
		}
		if out == "" {
			continue
		}
		c, ok := evt.Data.(Contact)
		if !ok {
			continue
		}
		if ordered, ok := s.order(w, c); ok {
			w.Events().Push(ecs.Event{Type: out, Data: ordered})
		}
	}
}

func (s *PairSystem[C1, C2]) order(w *ecs.World, c Contact) (Contact, bool) {
	if ecs.Has(w, c.A, s.First) && ecs.Has(w, c.B, s.Second) {
		return c, true
	}
	if ecs.Has(w, c.B, s.First) && ecs.Has(w, c.A, s.Second) {
		return Contact{A: c.B, B: c.A}, true
	}
	return Contact{}, false
}
