package despawn

import (
	"testing"

	"github.com/hollowmoor/ebitools/ecs"
	"github.com/hollowmoor/ebitools/ecs/component"
	"github.com/hollowmoor/ebitools/state"
)

const frame = 1.0 / 60.0

func TestTimerDespawnsOnFirstExpiredFrame(t *testing.T) {
	cases := []struct {
		name       string
		duration   float64
		aliveAfter int // frames the entity must survive
	}{
		{"three_frames", 3 * frame, 2},
		{"one_frame", frame, 0},
		{"partial_frame_rounds_up", 2.5 * frame, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			w.AddSystem(NewTimerSystem())

			e := w.CreateEntity()
			if err := ecs.Add(w, e, TimerComponent, After(c.duration)); err != nil {
				t.Fatal(err)
			}

			for i := 0; i < c.aliveAfter; i++ {
				w.Update(frame)
				if !w.IsAlive(e) {
					t.Fatalf("entity despawned too early on frame %d", i+1)
				}
			}
			w.Update(frame)
			if w.IsAlive(e) {
				t.Fatal("entity should be despawned once the duration elapsed")
			}
		})
	}
}

func TestFramesDespawn(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewTimerSystem())

	immediate := w.CreateEntity()
	delayed := w.CreateEntity()
	if err := ecs.Add(w, immediate, FramesComponent, &Frames{Left: 0}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, delayed, FramesComponent, &Frames{Left: 2}); err != nil {
		t.Fatal(err)
	}

	w.Update(frame)
	if w.IsAlive(immediate) {
		t.Fatal("zero-frame entity should despawn on the next update")
	}
	if !w.IsAlive(delayed) {
		t.Fatal("delayed entity despawned too early")
	}
	w.Update(frame)
	w.Update(frame)
	if w.IsAlive(delayed) {
		t.Fatal("delayed entity should be despawned after its frames ran out")
	}
}

type scene int

const (
	sceneTitle scene = iota
	sceneBattle
	sceneShop
)

var sceneTags = component.New[Cleanup[scene]]()

func TestCleanupOnStateExit(t *testing.T) {
	w := ecs.NewWorld()
	m := state.NewMachine(sceneTitle)
	w.AddSystem(state.NewSystem(m))
	w.AddSystem(NewCleanupSystem(sceneTags))

	titleOnly := w.CreateEntity()
	battleOnly := w.CreateEntity()
	untagged := w.CreateEntity()
	if err := ecs.Add(w, titleOnly, sceneTags, &Cleanup[scene]{State: sceneTitle}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, battleOnly, sceneTags, &Cleanup[scene]{State: sceneBattle}); err != nil {
		t.Fatal(err)
	}

	// No transition, nothing happens.
	w.Update(frame)
	if !w.IsAlive(titleOnly) || !w.IsAlive(battleOnly) {
		t.Fatal("nothing should despawn without a transition")
	}

	m.Set(sceneBattle)
	w.Update(frame)
	if w.IsAlive(titleOnly) {
		t.Fatal("title entity should despawn when leaving the title scene")
	}
	if !w.IsAlive(battleOnly) || !w.IsAlive(untagged) {
		t.Fatal("other entities must survive the transition")
	}

	m.Set(sceneShop)
	w.Update(frame)
	if w.IsAlive(battleOnly) {
		t.Fatal("battle entity should despawn when leaving the battle scene")
	}
}
