// Package state provides a small application state machine whose
// transitions are published as world events. Modules that care about
// state changes (despawn cleanup, asset loading) subscribe to the
// transition events instead of polling a global.
package state

import "github.com/hollowmoor/ebitools/ecs"

// Event types pushed by the state system. Data is a Transition[S].
const (
	EventEntered = "state.entered"
	EventExited  = "state.exited"
)

// Transition describes one state change.
type Transition[S comparable] struct {
	From S
	To   S
}

// Machine holds the current application state. Set queues the next state;
// the queued transition is applied by the System on the following update,
// so every transition is observable as an exited/entered event pair.
type Machine[S comparable] struct {
	current S
	next    *S
}

// NewMachine creates a machine in the given initial state.
func NewMachine[S comparable](initial S) *Machine[S] {
	return &Machine[S]{current: initial}
}

// Current returns the active state.
func (m *Machine[S]) Current() S {
	return m.current
}

// Set queues a transition. Setting the current state again is a no-op.
// The last call before the next update wins.
func (m *Machine[S]) Set(next S) {
	if next == m.current {
		m.next = nil
		return
	}
	m.next = &next
}

// apply performs a queued transition and reports it.
func (m *Machine[S]) apply() (Transition[S], bool) {
	if m.next == nil {
		return Transition[S]{}, false
	}
	tr := Transition[S]{From: m.current, To: *m.next}
	m.current = *m.next
	m.next = nil
	return tr, true
}

// System applies queued transitions and publishes them as events.
// Register it before any system that consumes transition events.
type System[S comparable] struct {
	Machine *Machine[S]
}

// NewSystem creates a state system for a machine.
func NewSystem[S comparable](m *Machine[S]) *System[S] {
	return &System[S]{Machine: m}
}

// Update publishes the exited/entered pair for a queued transition.
func (s *System[S]) Update(w *ecs.World) {
	if s == nil || s.Machine == nil || w == nil {
		return
	}
	tr, ok := s.Machine.apply()
	if !ok {
		return
	}
	w.Events().Push(ecs.Event{Type: EventExited, Data: tr})
	w.Events().Push(ecs.Event{Type: EventEntered, Data: tr})
}

// Exited reports whether evt is a transition out of the given state.
func Exited[S comparable](evt ecs.Event, from S) bool {
	if evt.Type != EventExited {
		return false
	}
	tr, ok := evt.Data.(Transition[S])
	return ok && tr.From == from
}

// Entered reports whether evt is a transition into the given state.
func Entered[S comparable](evt ecs.Event, to S) bool {
	if evt.Type != EventEntered {
		return false
	}
	tr, ok := evt.Data.(Transition[S])
	return ok && tr.To == to
}
