package audioloop

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player owns the speaker and a mixer so several loops can play at once.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer creates a player at the given sample rate.
func NewPlayer(rate beep.SampleRate) *Player {
	return &Player{rate: rate, mixer: &beep.Mixer{}}
}

// Init opens the speaker and starts the mixer. Calling it again is a
// no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play adds a loop to the mixer and returns the control used to pause
// and resume it. Pause and resume must go through speaker.Lock.
func (p *Player) Play(l *Loop) *beep.Ctrl {
	p.mu.Lock()
	defer p.mu.Unlock()
	ctrl := &beep.Ctrl{Streamer: l}
	p.mixer.Add(ctrl)
	return ctrl
}

// SetPaused pauses or resumes a playing loop.
func (p *Player) SetPaused(ctrl *beep.Ctrl, paused bool) {
	if ctrl == nil {
		return
	}
	speaker.Lock()
	ctrl.Paused = paused
	speaker.Unlock()
}

// Close silences the mixer. The speaker itself stays open; beep does
// not expose a close.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	p.mixer.Clear()
	p.initialized = false
}
