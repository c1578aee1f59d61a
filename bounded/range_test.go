package bounded

import (
	"testing"

	"github.com/hollowmoor/ebitools/ecs"
	"github.com/hollowmoor/ebitools/ecs/component"
)

const frame = 1.0 / 60.0

func TestNewRangeValidation(t *testing.T) {
	if _, err := NewRange(10, 0); err == nil {
		t.Fatal("start > end must be rejected")
	}
	if _, err := NewRange(5, 5); err != nil {
		t.Fatalf("degenerate interval should be allowed: %v", err)
	}
	r, err := NewRange(0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if r.Value() != 10 {
		t.Fatalf("new range should start at end, got %v", r.Value())
	}
}

func TestSetAndAddClamp(t *testing.T) {
	cases := []struct {
		name       string
		mutate     func(r *Range) Outcome
		wantValue  float64
		wantStatus Status
	}{
		{"inside", func(r *Range) Outcome { return r.Set(5) }, 5, StatusOK},
		{"above", func(r *Range) Outcome { return r.Set(11) }, 10, StatusAtEnd},
		{"below", func(r *Range) Outcome { return r.Set(-1) }, 0, StatusAtStart},
		{"exact_end", func(r *Range) Outcome { return r.Set(10) }, 10, StatusAtEnd},
		{"exact_start", func(r *Range) Outcome { return r.Set(0) }, 0, StatusAtStart},
		{"add_over", func(r *Range) Outcome { r.Set(9); return r.Add(2) }, 10, StatusAtEnd},
		{"add_under", func(r *Range) Outcome { r.Set(1); return r.Add(-2) }, 0, StatusAtStart},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := MustRange(0, 10)
			out := c.mutate(r)
			if out.Status != c.wantStatus {
				t.Fatalf("expected status %d, got %d", c.wantStatus, out.Status)
			}
			if r.Value() != c.wantValue {
				t.Fatalf("expected value %v, got %v", c.wantValue, r.Value())
			}
		})
	}
}

func TestValueStaysInBoundsUnderAnySequence(t *testing.T) {
	r := MustRange(-3, 7)
	deltas := []float64{5, 5, -20, 1, 100, -0.5, -99, 3.25, 42}
	for i, d := range deltas {
		r.Add(d)
		if raw := r.Raw(); raw < -3 || raw > 7 {
			t.Fatalf("step %d: value %v escaped bounds", i, raw)
		}
	}
}

func TestQuantize(t *testing.T) {
	r := MustRange(0, 10)
	r.Set(5.4)
	if r.Value() != 5 {
		t.Fatalf("expected 5, got %v", r.Value())
	}
	r.SetQuantize(0.5)
	r.Set(5.6)
	if r.Value() != 5.5 {
		t.Fatalf("expected 5.5, got %v", r.Value())
	}
	r.Set(5.4)
	if r.Value() != 5.5 {
		t.Fatalf("expected 5.5, got %v", r.Value())
	}
	if r.Raw() != 5.4 {
		t.Fatalf("raw value must stay unquantized, got %v", r.Raw())
	}
}

func TestBuilder(t *testing.T) {
	r := MustRange(1, 42).WithCurrent(23).WithQuantize(0.5).WithChangePerSecond(1.5)
	if r.Start() != 1 || r.End() != 42 {
		t.Fatalf("unexpected bounds [%v, %v]", r.Start(), r.End())
	}
	if r.Value() != 23 {
		t.Fatalf("expected 23, got %v", r.Value())
	}
	if r.Quantize() != 0.5 || r.ChangePerSecond != 1.5 {
		t.Fatal("builder attributes not applied")
	}
}

// The documented example: Range(0, 100) at 90. add(20) pins to 100 with one
// event; add(5) stays pinned silently; add(-50) leaves the bound silently.
func TestBoundaryEventFiresOncePerTransition(t *testing.T) {
	w := ecs.NewWorld()
	gauges := component.New[Range]()
	w.AddSystem(NewSystem(gauges))

	counts := map[string]int{}
	w.AddSystem(ecs.SystemFunc(func(w *ecs.World) {
		for _, evt := range w.Events().Pending() {
			counts[evt.Type]++
		}
	}))

	e := w.CreateEntity()
	r := MustRange(0, 100).WithCurrent(90)
	if err := ecs.Add(w, e, gauges, r); err != nil {
		t.Fatal(err)
	}

	r.Add(20)
	w.Update(frame)
	if counts[EventAtEnd] != 1 {
		t.Fatalf("expected one at_end event, got %d", counts[EventAtEnd])
	}
	if r.Value() != 100 {
		t.Fatalf("expected 100, got %v", r.Value())
	}

	r.Add(5)
	w.Update(frame)
	if counts[EventAtEnd] != 1 {
		t.Fatalf("resting at the bound must not re-emit, got %d", counts[EventAtEnd])
	}

	r.Add(-50)
	w.Update(frame)
	if counts[EventAtEnd] != 1 || counts[EventAtStart] != 0 {
		t.Fatalf("leaving the bound must not emit, got %v", counts)
	}
	if r.Value() != 50 {
		t.Fatalf("expected 50, got %v", r.Value())
	}

	// Re-arming: hitting the bound again after leaving it fires again.
	r.Add(75)
	w.Update(frame)
	if counts[EventAtEnd] != 2 {
		t.Fatalf("expected second at_end event, got %d", counts[EventAtEnd])
	}
}

func TestChangePerSecondDrift(t *testing.T) {
	w := ecs.NewWorld()
	gauges := component.New[Range]()
	w.AddSystem(NewSystem(gauges))

	e := w.CreateEntity()
	r := MustRange(0, 10).WithCurrent(9.9).WithChangePerSecond(60) // 1 per frame
	if err := ecs.Add(w, e, gauges, r); err != nil {
		t.Fatal(err)
	}

	events := 0
	w.AddSystem(ecs.SystemFunc(func(w *ecs.World) {
		for _, evt := range w.Events().Pending() {
			if evt.Type == EventAtEnd {
				events++
				lr := evt.Data.(LimitReached)
				if lr.Entity != e || lr.Limit != 10 {
					t.Errorf("unexpected payload %+v", lr)
				}
			}
		}
	}))

	for i := 0; i < 5; i++ {
		w.Update(frame)
	}
	if r.Value() != 10 {
		t.Fatalf("expected drift to fill the gauge, got %v", r.Value())
	}
	if events != 1 {
		t.Fatalf("drift must report the bound exactly once, got %d", events)
	}
}

func TestHealthAliases(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewHealthSystem())

	e := w.CreateEntity()
	hp, err := NewHealth(20)
	if err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, HealthComponent, hp); err != nil {
		t.Fatal(err)
	}

	var died, healed int
	w.AddSystem(ecs.SystemFunc(func(w *ecs.World) {
		for _, evt := range w.Events().Pending() {
			switch evt.Type {
			case EventDeath:
				died++
			case EventFullHeal:
				healed++
			}
		}
	}))

	hp.Add(-25)
	w.Update(frame)
	hp.Add(50)
	w.Update(frame)

	if died != 1 || healed != 1 {
		t.Fatalf("expected one death and one full heal, got %d/%d", died, healed)
	}
}
