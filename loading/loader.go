// Package loading batches asset loads during a loading state. Every asset
// has a statically typed slot naming its file and the field it fills; the
// per-frame system polls the handles and publishes the whole batch exactly
// once, after the last handle reports loaded, then advances the
// application state machine to the target state.
package loading

import (
	"fmt"
	"image"
	"sync"

	"github.com/hollowmoor/ebitools/ecs"
	"github.com/hollowmoor/ebitools/state"
)

// Event types pushed by the loader.
const (
	// EventFinished fires once when every slot is loaded and assigned.
	// Data is a Finished.
	EventFinished = "loading.finished"
	// EventFailed fires once when any slot fails to load. The batch is
	// abandoned; a load failure is fatal, not retried. Data is a Failed.
	EventFailed = "loading.failed"
)

// Finished reports a completed batch.
type Finished struct {
	Count int
}

// Failed reports the first slot that failed to load.
type Failed struct {
	Name string
	Err  error
}

// Status of a single handle.
type Status int

const (
	StatusPending Status = iota
	StatusLoaded
	StatusFailed
)

// Slot describes one asset: the name it is known by, the path it loads
// from, and the assignment writing the decoded image into the caller's
// resource struct. Assign runs on the update goroutine.
type Slot struct {
	Name   string
	Path   string
	Assign func(img image.Image)
}

// Handle tracks one in-flight load. The decode runs on a background
// goroutine; status and result are guarded.
type Handle struct {
	slot Slot

	mu     sync.Mutex
	status Status
	img    image.Image
	err    error
}

// Name returns the slot name.
func (h *Handle) Name() string { return h.slot.Name }

// Status returns the current load status.
func (h *Handle) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// Err returns the load error, if the handle failed.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *Handle) complete(img image.Image, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.status = StatusFailed
		h.err = err
		return
	}
	h.status = StatusLoaded
	h.img = img
}

// Loader drives a batch of slots while the machine sits in the loading
// state. Register it as a system; it is idle in every other state.
type Loader[S comparable] struct {
	// Open decodes one asset. It defaults to DecodeImageFile and can be
	// replaced to load from an embedded FS or for tests.
	Open func(path string) (image.Image, error)

	machine *state.Machine[S]
	loading S
	target  S

	handles   []*Handle
	started   bool
	published bool
	failed    bool
}

// NewLoader creates a loader that runs during loadingState and moves the
// machine to targetState once every slot is ready.
func NewLoader[S comparable](m *state.Machine[S], loadingState, targetState S, slots []Slot) *Loader[S] {
	handles := make([]*Handle, len(slots))
	for i, s := range slots {
		handles[i] = &Handle{slot: s}
	}
	return &Loader[S]{
		Open:    DecodeImageFile,
		machine: m,
		loading: loadingState,
		target:  targetState,
		handles: handles,
	}
}

// Handles exposes the batch for progress displays.
func (l *Loader[S]) Handles() []*Handle {
	return l.handles
}

// Progress returns how many slots are loaded out of the total.
func (l *Loader[S]) Progress() (loaded, total int) {
	for _, h := range l.handles {
		if h.Status() == StatusLoaded {
			loaded++
		}
	}
	return loaded, len(l.handles)
}

func (l *Loader[S]) Update(w *ecs.World) {
	if l == nil || l.machine == nil || w == nil {
		return
	}
	if l.machine.Current() != l.loading || l.published || l.failed {
		return
	}
	if !l.started {
		l.start()
		l.started = true
	}

	loaded := 0
	for _, h := range l.handles {
		switch h.Status() {
		case StatusLoaded:
			loaded++
		case StatusFailed:
			l.failed = true
			w.Events().Push(ecs.Event{Type: EventFailed, Data: Failed{Name: h.Name(), Err: h.Err()}})
			return
		}
	}
	if loaded < len(l.handles) {
		return
	}

	for _, h := range l.handles {
		if h.slot.Assign != nil {
			h.slot.Assign(h.img)
		}
	}
	l.published = true
	w.Events().Push(ecs.Event{Type: EventFinished, Data: Finished{Count: len(l.handles)}})
	l.machine.Set(l.target)
}

func (l *Loader[S]) start() {
	open := l.Open
	if open == nil {
		open = DecodeImageFile
	}
	for _, h := range l.handles {
		go func(h *Handle) {
			if h.slot.Path == "" {
				h.complete(nil, fmt.Errorf("loading: slot %q has no path", h.slot.Name))
				return
			}
			img, err := open(h.slot.Path)
			if err != nil {
				err = fmt.Errorf("loading: %s: %w", h.slot.Name, err)
			}
			h.complete(img, err)
		}(h)
	}
}
