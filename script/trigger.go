// Package script evaluates tengo expressions against the world each
// frame and publishes an event when an expression flips from false to
// true. Level designers attach conditions to entities without touching
// Go code.
package script

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/hollowmoor/ebitools/ecs"
	"github.com/hollowmoor/ebitools/ecs/component"
)

// EventTriggered fires on each false-to-true transition of a trigger
// expression. Data is a Triggered.
const EventTriggered = "script.triggered"

// Triggered identifies which trigger fired and on which entity.
type Triggered struct {
	Entity ecs.Entity
	Name   string
}

// Trigger is a compiled boolean expression attached to an entity.
// Globals supplies the expression's variables each frame; every name it
// returns must appear in the defaults the trigger was compiled with.
type Trigger struct {
	Name    string
	Globals func(w *ecs.World, e ecs.Entity) map[string]any

	compiled *tengo.Compiled
	last     bool
}

// TriggerComponent is the shared handle for script triggers.
var TriggerComponent = component.New[Trigger]()

// NewTrigger compiles an expression. The defaults declare the script's
// globals and their initial values.
func NewTrigger(name, expr string, defaults map[string]any) (*Trigger, error) {
	src := "__result := (" + expr + ")"
	s := tengo.NewScript([]byte(src))
	for k, v := range defaults {
		if err := s.Add(k, v); err != nil {
			return nil, fmt.Errorf("script: add global %q: %w", k, err)
		}
	}
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %q: %w", name, err)
	}
	return &Trigger{Name: name, compiled: compiled}, nil
}

// Evaluate runs the expression with the given globals and returns its
// truthiness.
func (t *Trigger) Evaluate(globals map[string]any) (bool, error) {
	if t == nil || t.compiled == nil {
		return false, fmt.Errorf("script: trigger not compiled")
	}
	for k, v := range globals {
		if err := t.compiled.Set(k, v); err != nil {
			return false, fmt.Errorf("script: set global %q: %w", k, err)
		}
	}
	if err := t.compiled.Run(); err != nil {
		return false, fmt.Errorf("script: run %q: %w", t.Name, err)
	}
	out := t.compiled.Get("__result")
	return !out.Object().IsFalsy(), nil
}

// System evaluates every trigger once per frame and publishes
// EventTriggered on rising edges. Evaluation errors are logged and leave
// the trigger's edge state untouched.
type System struct{}

// NewSystem creates a trigger evaluation system.
func NewSystem() *System {
	return &System{}
}

func (s *System) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, TriggerComponent, func(e ecs.Entity, tr *Trigger) {
		var globals map[string]any
		if tr.Globals != nil {
			globals = tr.Globals(w, e)
		}
		v, err := tr.Evaluate(globals)
		if err != nil {
			log.Printf("script: entity=%v trigger %q: %v", e, tr.Name, err)
			return
		}
		if v && !tr.last {
			w.Events().Push(ecs.Event{Type: EventTriggered, Data: Triggered{Entity: e, Name: tr.Name}})
		}
		tr.last = v
	})
}
