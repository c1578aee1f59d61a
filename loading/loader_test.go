package loading

import (
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/hollowmoor/ebitools/ecs"
	"github.com/hollowmoor/ebitools/state"
)

type phase int

const (
	phaseLoading phase = iota
	phaseReady
	phaseMenu
)

// gate lets the test decide when each "asset" finishes decoding.
type gate struct {
	mu      sync.Mutex
	results map[string]error
	ready   map[string]chan struct{}
}

func newGate(paths ...string) *gate {
	g := &gate{results: map[string]error{}, ready: map[string]chan struct{}{}}
	for _, p := range paths {
		g.ready[p] = make(chan struct{})
	}
	return g
}

func (g *gate) open(path string) (image.Image, error) {
	ch, ok := func() (chan struct{}, bool) {
		g.mu.Lock()
		defer g.mu.Unlock()
		ch, ok := g.ready[path]
		return ch, ok
	}()
	if !ok {
		return nil, errors.New("unknown path")
	}
	<-ch
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.results[path]; err != nil {
		return nil, err
	}
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func (g *gate) finish(path string, err error) {
	g.mu.Lock()
	g.results[path] = err
	ch := g.ready[path]
	g.mu.Unlock()
	close(ch)
}

func eventCount(events []ecs.Event, typ string) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

// pump updates the world until cond holds or the deadline passes.
func pump(t *testing.T, w *ecs.World, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		w.Update(1.0 / 60.0)
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached")
}

func TestLoaderPublishesOnceWhenAllLoaded(t *testing.T) {
	g := newGate("a.png", "b.png")
	var gotA, gotB image.Image

	m := state.NewMachine(phaseLoading)
	loader := NewLoader(m, phaseLoading, phaseReady, []Slot{
		{Name: "a", Path: "a.png", Assign: func(img image.Image) { gotA = img }},
		{Name: "b", Path: "b.png", Assign: func(img image.Image) { gotB = img }},
	})
	loader.Open = g.open

	w := ecs.NewWorld()
	w.AddSystem(state.NewSystem(m))
	w.AddSystem(loader)

	finished := 0
	w.AddSystem(ecs.SystemFunc(func(w *ecs.World) {
		finished += eventCount(w.Events().Pending(), EventFinished)
	}))

	// Nothing may publish while any handle is pending.
	g.finish("a.png", nil)
	for i := 0; i < 20; i++ {
		w.Update(1.0 / 60.0)
	}
	if finished != 0 {
		t.Fatal("published before every handle was loaded")
	}
	if gotA != nil || gotB != nil {
		t.Fatal("assignments must not run before publish")
	}
	if m.Current() != phaseLoading {
		t.Fatal("machine left loading state too early")
	}

	g.finish("b.png", nil)
	pump(t, w, func() bool { return finished == 1 })

	if gotA == nil || gotB == nil {
		t.Fatal("assignments did not run on publish")
	}
	// Extra frames must not publish again or re-assign.
	gotA = nil
	for i := 0; i < 5; i++ {
		w.Update(1.0 / 60.0)
	}
	if finished != 1 || gotA != nil {
		t.Fatal("batch published more than once")
	}
	if m.Current() != phaseReady {
		t.Fatalf("expected ready state, got %d", m.Current())
	}

	if loaded, total := loader.Progress(); loaded != 2 || total != 2 {
		t.Fatalf("unexpected progress %d/%d", loaded, total)
	}
}

func TestLoaderFailureIsFatalAndReportedOnce(t *testing.T) {
	g := newGate("ok.png", "broken.png")

	m := state.NewMachine(phaseLoading)
	assigned := false
	loader := NewLoader(m, phaseLoading, phaseReady, []Slot{
		{Name: "ok", Path: "ok.png", Assign: func(image.Image) { assigned = true }},
		{Name: "broken", Path: "broken.png"},
	})
	loader.Open = g.open

	w := ecs.NewWorld()
	w.AddSystem(state.NewSystem(m))
	w.AddSystem(loader)

	var failures []Failed
	w.AddSystem(ecs.SystemFunc(func(w *ecs.World) {
		for _, evt := range w.Events().Pending() {
			if evt.Type == EventFailed {
				failures = append(failures, evt.Data.(Failed))
			}
		}
	}))

	g.finish("ok.png", nil)
	g.finish("broken.png", errors.New("bad header"))
	pump(t, w, func() bool { return len(failures) == 1 })

	for i := 0; i < 10; i++ {
		w.Update(1.0 / 60.0)
	}
	if len(failures) != 1 {
		t.Fatalf("failure must be reported exactly once, got %d", len(failures))
	}
	if failures[0].Name != "broken" || failures[0].Err == nil {
		t.Fatalf("unexpected failure payload %+v", failures[0])
	}
	if assigned {
		t.Fatal("a failed batch must never assign")
	}
	if m.Current() != phaseLoading {
		t.Fatal("a failed batch must not advance the state machine")
	}
}

func TestLoaderIdleOutsideLoadingState(t *testing.T) {
	g := newGate("a.png")
	m := state.NewMachine(phaseMenu)
	loader := NewLoader(m, phaseLoading, phaseReady, []Slot{{Name: "a", Path: "a.png"}})
	loader.Open = g.open

	w := ecs.NewWorld()
	w.AddSystem(state.NewSystem(m))
	w.AddSystem(loader)

	for i := 0; i < 5; i++ {
		w.Update(1.0 / 60.0)
	}
	if loader.started {
		t.Fatal("loader must not start outside its loading state")
	}

	// Entering the loading state starts the batch.
	m.Set(phaseLoading)
	g.finish("a.png", nil)
	pump(t, w, func() bool { return m.Current() == phaseReady })
}

func TestManifestParse(t *testing.T) {
	m, err := ParseManifest([]byte("assets:\n  player: images/player.png\n  tiles: images/tiles.bmp\n"))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	slots := m.Slots(func(name string, _ image.Image) { names = append(names, name) })
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[0].Name != "player" || slots[1].Name != "tiles" {
		t.Fatalf("slots must be name-ordered, got %v", slots)
	}
	for _, s := range slots {
		s.Assign(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	}
	if len(names) != 2 {
		t.Fatalf("assign hook not called, got %v", names)
	}

	if _, err := ParseManifest([]byte("assets: {}\n")); err == nil {
		t.Fatal("empty manifest must be rejected")
	}
	if _, err := ParseManifest([]byte("assets: [")); err == nil {
		t.Fatal("broken yaml must be rejected")
	}
}
