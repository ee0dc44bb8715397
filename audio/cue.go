package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/atom-builder/event"
	"github.com/lixenwraith/atom-builder/particle"
)

// Cue is a short sound tied to an atom change
type Cue int

const (
	CueNone Cue = iota
	CueNucleonAdded
	CueElectronAdded
	CueRemoved
	CueCleared
)

const (
	cueDuration      = 90 * time.Millisecond
	cueClearDuration = 220 * time.Millisecond
	cueAttack        = 5 * time.Millisecond
	cueRelease       = 60 * time.Millisecond
)

// CueFor maps an atom event to its cue; ok is false for silent events
func CueFor(ev event.Event) (Cue, bool) {
	switch ev.Type {
	case event.EventParticleAdded:
		if p, ok := ev.Payload.(*event.ParticlePayload); ok && p.Type == particle.TypeElectron {
			return CueElectronAdded, true
		}
		return CueNucleonAdded, true
	case event.EventParticleRemoved:
		return CueRemoved, true
	case event.EventAtomCleared:
		return CueCleared, true
	}
	return CueNone, false
}

// Streamer builds a fresh streamer for the cue at vol in [0, 1]
func (c Cue) Streamer(rate beep.SampleRate, vol float64) beep.Streamer {
	switch c {
	case CueNucleonAdded:
		return tone(220, WaveSquare, cueDuration, rate, vol)
	case CueElectronAdded:
		return tone(880, WaveSine, cueDuration, rate, vol)
	case CueRemoved:
		return beep.Seq(
			tone(660, WaveSine, cueDuration/2, rate, vol),
			tone(440, WaveSine, cueDuration/2, rate, vol),
		)
	case CueCleared:
		return tone(0, WaveNoise, cueClearDuration, rate, vol*0.5)
	}
	return nil
}

func tone(freq float64, wave WaveType, d time.Duration, rate beep.SampleRate, vol float64) beep.Streamer {
	release := cueRelease
	if release > d/2 {
		release = d / 2
	}
	osc := NewOscillator(freq, d, wave, rate)
	return newVolume(NewEnvelope(osc, d, cueAttack, release, rate), vol)
}
