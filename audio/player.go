// Package audio plays short synthesized cues for atom changes through the speaker mixer
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/atom-builder/event"
)

const sampleRate = beep.SampleRate(48000)

// Player owns the speaker mixer
// All methods are no-ops until Initialize succeeds, so the demo runs without an audio device
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	ctrl        *beep.Ctrl
	volume      float64
	initialized bool
}

func NewPlayer(volume float64) *Player {
	mixer := &beep.Mixer{}
	return &Player{
		mixer:  mixer,
		ctrl:   &beep.Ctrl{Streamer: mixer},
		volume: volume,
	}
}

// Initialize opens the speaker with a 100ms buffer
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.ctrl)
	p.initialized = true
	return nil
}

// Play queues a cue on the mixer
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := c.Streamer(sampleRate, p.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// HandleEvent plays the cue for an atom event; usable as an event.HandlerFunc body
func (p *Player) HandleEvent(ev event.Event) {
	if c, ok := CueFor(ev); ok {
		p.Play(c)
	}
}

// SetMuted pauses or resumes the mixer
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = muted
	speaker.Unlock()
}

// Cleanup drops queued sounds; beep has no speaker close so the device stays open
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
