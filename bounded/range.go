// Package bounded provides a clamped numeric component with boundary
// events. A Range keeps a value inside [Start, End] and reports when a
// mutation pins it to either bound. Typical uses are health, stamina, or
// heat gauges; the ChangePerSecond attribute regenerates or drains the
// value automatically each frame.
package bounded

import (
	"fmt"
	"math"

	"github.com/hollowmoor/ebitools/ecs"
	"github.com/hollowmoor/ebitools/ecs/component"
)

// Status classifies the outcome of a mutation.
type Status int

const (
	// StatusOK means the value landed strictly inside the open interval.
	StatusOK Status = iota
	// StatusAtStart means the value was pinned to the lower bound.
	StatusAtStart
	// StatusAtEnd means the value was pinned to the upper bound.
	StatusAtEnd
)

// Outcome reports a mutation result. Attempted is the unclamped value the
// caller asked for; Limit is the bound that was hit, if any. Entered is
// true only when the mutation moved the value onto a bound it was not
// already resting at, which is exactly when the system emits an event.
type Outcome struct {
	Status    Status
	Limit     float64
	Attempted float64
	Entered   bool
}

// Range is a bounded value component. Use NewRange to construct one; the
// zero value has an empty interval and pins everything to zero.
type Range struct {
	start   float64
	end     float64
	current float64

	quantize        float64
	ChangePerSecond float64

	status       Status
	pendingStart bool
	pendingEnd   bool
}

// NewRange creates a range over [start, end] with the current value at
// end and a quantize step of 1. start > end is a configuration error.
func NewRange(start, end float64) (*Range, error) {
	if start > end {
		return nil, fmt.Errorf("bounded: start %v greater than end %v", start, end)
	}
	return &Range{start: start, end: end, current: end, quantize: 1, status: StatusAtEnd}, nil
}

// MustRange is NewRange for statically known bounds; it panics on error.
func MustRange(start, end float64) *Range {
	r, err := NewRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// WithCurrent sets the current value, clamped, and returns the range.
func (r *Range) WithCurrent(v float64) *Range {
	r.Set(v)
	r.pendingStart, r.pendingEnd = false, false
	return r
}

// WithQuantize sets the display quantization step and returns the range.
func (r *Range) WithQuantize(step float64) *Range {
	r.quantize = step
	return r
}

// WithChangePerSecond sets the automatic drift rate and returns the range.
func (r *Range) WithChangePerSecond(perSecond float64) *Range {
	r.ChangePerSecond = perSecond
	return r
}

// Start returns the lower bound.
func (r *Range) Start() float64 { return r.start }

// End returns the upper bound.
func (r *Range) End() float64 { return r.end }

// Quantize returns the display quantization step.
func (r *Range) Quantize() float64 { return r.quantize }

// SetQuantize sets the display quantization step.
func (r *Range) SetQuantize(step float64) { r.quantize = step }

// Value returns the current value quantized to the configured step.
func (r *Range) Value() float64 {
	return QuantizeValue(r.current, r.quantize)
}

// Raw returns the current value without quantization.
func (r *Range) Raw() float64 { return r.current }

// AtStart reports whether the value rests at the lower bound.
func (r *Range) AtStart() bool { return r.status == StatusAtStart }

// AtEnd reports whether the value rests at the upper bound.
func (r *Range) AtEnd() bool { return r.status == StatusAtEnd }

// Set assigns a value, clamping it into [Start, End]. Values exactly on a
// bound count as having reached it. Events are only produced for
// mutations that newly arrive at a bound: resting there across repeated
// clamped mutations reports Entered == false.
func (r *Range) Set(v float64) Outcome {
	prev := r.status
	out := Outcome{Attempted: v}
	switch {
	case v <= r.start:
		r.current = r.start
		out.Status = StatusAtStart
		out.Limit = r.start
	case v >= r.end:
		r.current = r.end
		out.Status = StatusAtEnd
		out.Limit = r.end
	default:
		r.current = v
		out.Status = StatusOK
	}
	r.status = out.Status
	if out.Status != prev {
		switch out.Status {
		case StatusAtStart:
			r.pendingStart = true
			out.Entered = true
		case StatusAtEnd:
			r.pendingEnd = true
			out.Entered = true
		}
	}
	return out
}

// Add shifts the value by delta with the same clamping rules as Set.
func (r *Range) Add(delta float64) Outcome {
	return r.Set(r.current + delta)
}

// takePending consumes the boundary notifications accumulated since the
// previous call.
func (r *Range) takePending() (start, end bool) {
	start, end = r.pendingStart, r.pendingEnd
	r.pendingStart, r.pendingEnd = false, false
	return start, end
}

// QuantizeValue snaps v to the nearest multiple of step. A step <= 0
// leaves v untouched.
func QuantizeValue(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}

// LimitReached is the payload of boundary events.
type LimitReached struct {
	Entity ecs.Entity
	Limit  float64
}

// System drives Range components: it applies ChangePerSecond each frame
// and publishes boundary events for mutations that newly reached a bound,
// including Set/Add calls made by game code since the last frame.
//
// Distinct gauges (health, stamina, ...) use distinct component handles,
// each with its own System and event type names.
type System struct {
	Ranges      component.Handle[Range]
	AtStartType string
	AtEndType   string
}

// Default event types for a System configured with NewSystem.
const (
	EventAtStart = "range.at_start"
	EventAtEnd   = "range.at_end"
)

// NewSystem creates a range system with the default event type names.
func NewSystem(ranges component.Handle[Range]) *System {
	return &System{Ranges: ranges, AtStartType: EventAtStart, AtEndType: EventAtEnd}
}

func (s *System) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.Delta()
	ecs.ForEach(w, s.Ranges, func(e ecs.Entity, r *Range) {
		if r.ChangePerSecond != 0 && dt > 0 {
			r.Add(r.ChangePerSecond * dt)
		}
		start, end := r.takePending()
		if start {
			w.Events().Push(ecs.Event{Type: s.AtStartType, Data: LimitReached{Entity: e, Limit: r.start}})
		}
		if end {
			w.Events().Push(ecs.Event{Type: s.AtEndType, Data: LimitReached{Entity: e, Limit: r.end}})
		}
	})
}
