// Package instability jitters an unstable nucleus by toggling its offset on a fixed period
// This is the only stochastic layout behavior; randomness comes from an injected source
package instability

import (
	"log"
	"math"
	"sync/atomic"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/atom-builder/status"
	"github.com/lixenwraith/atom-builder/vmath"
)

// Target is the nucleus being jittered; *atom.Atom satisfies it
type Target interface {
	ProtonCount() int
	NeutronCount() int
	NucleusOffset() r2.Vec
	SetNucleusOffset(v r2.Vec)
}

// StabilityFunc reports whether a nucleus with the given counts is stable
// Supplied by an isotope table outside this package
type StabilityFunc func(protons, neutrons int) bool

// RandSource yields uniform values in [0, 1)
// *rand.Rand from golang.org/x/exp/rand satisfies it
type RandSource interface {
	Float64() float64
}

// NewRand returns a seeded source; seed 0 derives one from the clock
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

// Animator toggles the target offset between zero and a random vector while unstable
type Animator struct {
	target    Target
	stable    StabilityFunc
	rng       RandSource
	period    time.Duration
	maxJump   float64
	countdown time.Duration
	jumps     int

	// nucleus.stable, nil until Publish
	stableMetric *atomic.Bool
}

// New creates an animator; period must be positive
func New(target Target, stable StabilityFunc, rng RandSource, period time.Duration, maxJump float64) *Animator {
	return &Animator{
		target:    target,
		stable:    stable,
		rng:       rng,
		period:    period,
		maxJump:   maxJump,
		countdown: period,
	}
}

// Stable evaluates the predicate against the current counts
func (a *Animator) Stable() bool {
	return a.stable(a.target.ProtonCount(), a.target.NeutronCount())
}

// Publish reports stability as nucleus.stable in reg on every Step
func (a *Animator) Publish(reg *status.Registry) {
	a.stableMetric = reg.Bools.Get("nucleus.stable")
	a.stableMetric.Store(a.Stable())
}

// Jumps returns the number of offset toggles performed
func (a *Animator) Jumps() int { return a.jumps }

// Step advances the countdown by dt
// When stable, the countdown rearms and any offset is cleared immediately
// When unstable, each elapsed period toggles the offset between zero and a random vector
func (a *Animator) Step(dt time.Duration) {
	stable := a.Stable()
	if a.stableMetric != nil {
		a.stableMetric.Store(stable)
	}
	if stable {
		a.countdown = a.period
		if a.target.NucleusOffset() != (r2.Vec{}) {
			a.target.SetNucleusOffset(r2.Vec{})
		}
		return
	}

	a.countdown -= dt
	if a.countdown > 0 {
		return
	}
	a.countdown = a.period

	if a.target.NucleusOffset() == (r2.Vec{}) {
		angle := a.rng.Float64() * 2 * math.Pi
		a.target.SetNucleusOffset(vmath.Polar(a.maxJump, angle))
	} else {
		a.target.SetNucleusOffset(r2.Vec{})
	}
	a.jumps++
	if a.jumps == 1 {
		log.Printf("instability: nucleus %dp/%dn started jittering", a.target.ProtonCount(), a.target.NeutronCount())
	}
}
