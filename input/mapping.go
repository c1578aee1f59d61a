// Package input maps raw keyboard input to user-defined semantic actions.
// A Mapping is a static table of key triggers; the System reads the
// keyboard once per frame and pushes one ActionEvent per distinct action
// that triggered, inheriting just-pressed/held semantics from the host
// input layer.
package input

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/hollowmoor/ebitools/ecs"
)

// EventAction is the event type for triggered actions. Data is an
// ActionEvent[A].
const EventAction = "input.action"

// ActionEvent reports that a bound action triggered this frame.
type ActionEvent[A comparable] struct {
	Action A
}

// TriggerKind selects which edge of a key press fires a binding.
type TriggerKind int

const (
	// Down fires on the frame the key is first pressed.
	Down TriggerKind = iota
	// Up fires on the frame the key is released.
	Up
	// Held fires on every frame the key is down.
	Held
)

// Trigger is a raw input condition.
type Trigger struct {
	Kind TriggerKind
	Key  ebiten.Key
}

// Binding pairs a trigger with the action it emits.
type Binding[A comparable] struct {
	Trigger Trigger
	Action  A
}

// Mapping is a table of bindings. It is safe to replace the table while
// the game runs (hot reload); reads and writes are guarded.
type Mapping[A comparable] struct {
	mu       sync.RWMutex
	bindings []Binding[A]
}

// NewMapping creates a mapping from a binding list.
func NewMapping[A comparable](bindings []Binding[A]) *Mapping[A] {
	m := &Mapping[A]{}
	m.Replace(bindings)
	return m
}

// Replace swaps in a new binding table.
func (m *Mapping[A]) Replace(bindings []Binding[A]) {
	copied := append([]Binding[A](nil), bindings...)
	m.mu.Lock()
	m.bindings = copied
	m.mu.Unlock()
}

// Bindings returns a snapshot of the binding table.
func (m *Mapping[A]) Bindings() []Binding[A] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Binding[A](nil), m.bindings...)
}

// Keyboard abstracts the host key state so the mapper can be driven by
// Ebitengine in the game and by a fake in tests.
type Keyboard interface {
	Pressed(ebiten.Key) bool
	JustPressed(ebiten.Key) bool
	JustReleased(ebiten.Key) bool
}

// EbitenKeyboard reads key state from Ebitengine.
type EbitenKeyboard struct{}

func (EbitenKeyboard) Pressed(k ebiten.Key) bool      { return ebiten.IsKeyPressed(k) }
func (EbitenKeyboard) JustPressed(k ebiten.Key) bool  { return inpututil.IsKeyJustPressed(k) }
func (EbitenKeyboard) JustReleased(k ebiten.Key) bool { return inpututil.IsKeyJustReleased(k) }

// System evaluates a mapping each frame and pushes deduplicated action
// events. Two bindings resolving to the same action produce one event.
type System[A comparable] struct {
	Mapping  *Mapping[A]
	Keyboard Keyboard

	fired map[A]struct{}
}

// NewSystem creates an input system backed by the Ebitengine keyboard.
func NewSystem[A comparable](mapping *Mapping[A]) *System[A] {
	return &System[A]{Mapping: mapping, Keyboard: EbitenKeyboard{}}
}

func (s *System[A]) Update(w *ecs.World) {
	if s == nil || s.Mapping == nil || s.Keyboard == nil || w == nil {
		return
	}
	if s.fired == nil {
		s.fired = make(map[A]struct{})
	}

	s.Mapping.mu.RLock()
	bindings := s.Mapping.bindings
	for _, b := range bindings {
		triggered := false
		switch b.Trigger.Kind {
		case Down:
			triggered = s.Keyboard.JustPressed(b.Trigger.Key)
		case Up:
			triggered = s.Keyboard.JustReleased(b.Trigger.Key)
		case Held:
			triggered = s.Keyboard.Pressed(b.Trigger.Key)
		}
		if triggered {
			s.fired[b.Action] = struct{}{}
		}
	}
	s.Mapping.mu.RUnlock()

	for action := range s.fired {
		w.Events().Push(ecs.Event{Type: EventAction, Data: ActionEvent[A]{Action: action}})
		delete(s.fired, action)
	}
}
