// Package audioloop streams music on a loop whose boundaries can move
// while the track plays, for soundtracks that change sections with the
// game state. Boundary changes can apply immediately or at the next wrap
// so the music finishes its current section first.
package audioloop

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep"
)

// ErrEmptySource reports a source streamer that produced no samples.
var ErrEmptySource = errors.New("audioloop: source streamer is empty")

const drainChunk = 512

// Loop is a beep.Streamer that plays a fully buffered track and jumps
// back to the loop start whenever playback passes the loop end or the
// end of the track. It is safe to adjust the loop from other goroutines
// while the speaker streams it.
type Loop struct {
	mu      sync.Mutex
	samples [][2]float64
	rate    beep.SampleRate
	pos     int

	loopStart float64
	loopEnd   float64

	// Deferred bounds, applied at the next wrap.
	futureStart *float64
	futureEnd   *float64
}

// NewLoop buffers the whole source streamer. The loop initially spans
// the full track.
func NewLoop(src beep.Streamer, rate beep.SampleRate) (*Loop, error) {
	var samples [][2]float64
	chunk := make([][2]float64, drainChunk)
	for {
		n, ok := src.Stream(chunk)
		samples = append(samples, chunk[:n]...)
		if !ok {
			break
		}
	}
	if err := src.Err(); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrEmptySource
	}
	return &Loop{
		samples: samples,
		rate:    rate,
		loopEnd: rate.D(len(samples)).Seconds(),
	}, nil
}

// SetLoopStartImmediate moves the loop start right away.
func (l *Loop) SetLoopStartImmediate(seconds float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loopStart = seconds
}

// SetLoopEndImmediate moves the loop end right away. If playback is
// already past the new end it wraps on the next sample.
func (l *Loop) SetLoopEndImmediate(seconds float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loopEnd = seconds
}

// SetLoopStart moves the loop start at the next wrap.
func (l *Loop) SetLoopStart(seconds float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := seconds
	l.futureStart = &s
}

// SetLoopEnd moves the loop end at the next wrap.
func (l *Loop) SetLoopEnd(seconds float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := seconds
	l.futureEnd = &s
}

// AddLoopOffset shifts the whole loop window by offset seconds, applied
// at the next wrap. Pending deferred bounds shift instead of the active
// ones. A window pushed past the track start is pinned at zero with its
// length preserved.
func (l *Loop) AddLoopOffset(offset float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	start := l.loopStart
	if l.futureStart != nil {
		start = *l.futureStart
	}
	end := l.loopEnd
	if l.futureEnd != nil {
		end = *l.futureEnd
	}
	length := end - start
	newStart := start + offset
	newEnd := end + offset
	if newStart < 0 {
		newStart = 0
		newEnd = length
	}
	l.futureStart = &newStart
	l.futureEnd = &newEnd
}

// Bounds returns the active loop window in seconds.
func (l *Loop) Bounds() (start, end float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loopStart, l.loopEnd
}

// Position returns the playback position in seconds.
func (l *Loop) Position() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rate.D(l.pos).Seconds()
}

// Stream fills samples from the buffered track, wrapping at the loop
// end. It never runs dry.
func (l *Loop) Stream(samples [][2]float64) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range samples {
		if l.pos >= len(l.samples) {
			l.wrap()
		}
		if l.rate.D(l.pos).Seconds() > l.loopEnd {
			l.wrap()
		}
		samples[i] = l.samples[l.pos]
		l.pos++
	}
	return len(samples), true
}

// Err implements beep.Streamer. A buffered loop cannot fail.
func (l *Loop) Err() error {
	return nil
}

// wrap jumps back to the loop start, promoting any deferred bounds
// first. Callers hold the mutex.
func (l *Loop) wrap() {
	if l.futureStart != nil {
		l.loopStart = *l.futureStart
		l.futureStart = nil
	}
	if l.futureEnd != nil {
		l.loopEnd = *l.futureEnd
		l.futureEnd = nil
	}
	l.pos = l.rate.N(secondsToDuration(l.loopStart))
	if l.pos < 0 {
		l.pos = 0
	}
	if l.pos >= len(l.samples) {
		l.pos = 0
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
