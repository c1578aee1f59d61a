// Package despawn removes entities automatically: after a time or frame
// budget runs out, or when the application leaves a tagged state.
package despawn

import (
	"github.com/hollowmoor/ebitools/ecs"
	"github.com/hollowmoor/ebitools/ecs/component"
	"github.com/hollowmoor/ebitools/state"
)

// Timer despawns its entity once the configured duration has elapsed.
type Timer struct {
	Remaining float64 // seconds
}

// After creates a timer that expires after the given number of seconds.
func After(seconds float64) *Timer {
	return &Timer{Remaining: seconds}
}

// Frames despawns its entity after the given number of frames. A value of
// zero despawns on the next update.
type Frames struct {
	Left int
}

var (
	TimerComponent  = component.New[Timer]()
	FramesComponent = component.New[Frames]()
)

// TimerSystem counts down Timer and Frames components and destroys
// entities whose budget ran out. An entity is removed on the first frame
// where its accumulated elapsed time reaches the duration, not before.
type TimerSystem struct{}

func NewTimerSystem() *TimerSystem {
	return &TimerSystem{}
}

func (s *TimerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()
	ecs.ForEach(w, TimerComponent, func(e ecs.Entity, t *Timer) {
		t.Remaining -= dt
		if t.Remaining <= 0 {
			w.DestroyEntity(e)
		}
	})
	ecs.ForEach(w, FramesComponent, func(e ecs.Entity, f *Frames) {
		if f.Left <= 0 {
			w.DestroyEntity(e)
			return
		}
		f.Left--
	})
}

// Cleanup marks an entity for removal when the application leaves the
// tagged state.
type Cleanup[S comparable] struct {
	State S
}

// CleanupSystem destroys tagged entities when their state is exited.
// It consumes state transition events, so the state system must be
// registered before it.
type CleanupSystem[S comparable] struct {
	Tags component.Handle[Cleanup[S]]
}

// NewCleanupSystem creates a cleanup system for one Cleanup component
// kind. Callers usually declare the handle next to their state type.
func NewCleanupSystem[S comparable](tags component.Handle[Cleanup[S]]) *CleanupSystem[S] {
	return &CleanupSystem[S]{Tags: tags}
}

func (s *CleanupSystem[S]) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, evt := range w.Events().Pending() {
		if evt.Type != state.EventExited {
			continue
		}
		tr, ok := evt.Data.(state.Transition[S])
		if !ok {
			continue
		}
		ecs.ForEach(w, s.Tags, func(e ecs.Entity, c *Cleanup[S]) {
			if c.State == tr.From {
				w.DestroyEntity(e)
			}
		})
	}
}
