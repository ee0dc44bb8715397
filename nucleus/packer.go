// Package nucleus computes non-overlapping, z-ordered destinations for a cluster of nucleons
// Packing is a pure function of the ordered nucleon sequence: no randomness, no retained state
package nucleus

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/atom-builder/parameter"
	"github.com/lixenwraith/atom-builder/particle"
	"github.com/lixenwraith/atom-builder/vmath"
)

// Position is one computed nucleon spot
// Ring and Radius describe the generalized ring layout; small clusters report ring 0
type Position struct {
	Point  r2.Vec
	ZLayer int
	Ring   int
	Radius float64
	Angle  float64
}

// Placement binds a computed position to a nucleon
type Placement struct {
	Particle *particle.Particle
	Position
}

// Interleave spreads neutrons among protons at the ratio |neutrons|/|protons|
// Each proton is followed by its accumulated share of neutrons; leftovers trail
// With no protons the neutrons keep their original order
func Interleave(protons, neutrons []*particle.Particle) []*particle.Particle {
	out := make([]*particle.Particle, 0, len(protons)+len(neutrons))
	if len(protons) == 0 {
		return append(out, neutrons...)
	}

	perProton := float64(len(neutrons)) / float64(len(protons))
	owed := 0.0
	next := 0
	for _, p := range protons {
		out = append(out, p)
		owed += perProton
		for owed >= 1 && next < len(neutrons) {
			out = append(out, neutrons[next])
			next++
			owed--
		}
	}
	return append(out, neutrons[next:]...)
}

// Pack returns a fresh placement for every nucleon, in interleaved order
// center should already include any nucleus offset
func Pack(protons, neutrons []*particle.Particle, center r2.Vec, nucleonRadius float64) []Placement {
	seq := Interleave(protons, neutrons)
	positions := Positions(len(seq), center, nucleonRadius)

	out := make([]Placement, len(seq))
	for i, p := range seq {
		out[i] = Placement{Particle: p, Position: positions[i]}
	}
	return out
}

// Apply writes destinations and z-layers; positions are left to animate
func Apply(placements []Placement) {
	for _, pl := range placements {
		pl.Particle.SetDestination(pl.Point)
		pl.Particle.SetZLayer(pl.ZLayer)
	}
}

// Positions computes n nucleon spots around center
func Positions(n int, center r2.Vec, nucleonRadius float64) []Position {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []Position{{Point: center}}
	case n == 2:
		return pair(center, nucleonRadius)
	case n == 3:
		return triad(center, nucleonRadius)
	case n == 4:
		return diamond(center, nucleonRadius)
	}
	return rings(n, center, nucleonRadius)
}

// pair places two touching nucleons mirrored through center
func pair(center r2.Vec, r float64) []Position {
	off := vmath.Polar(r, parameter.NucleusPairAngle)
	return []Position{
		{Point: center.Add(off), Radius: r, Angle: parameter.NucleusPairAngle},
		{Point: center.Sub(off), Radius: r, Angle: parameter.NucleusPairAngle + math.Pi},
	}
}

// triad places three mutually touching nucleons 120° apart
func triad(center r2.Vec, r float64) []Position {
	dist := r * parameter.NucleusTriadDistanceFactor
	out := make([]Position, 3)
	for i := range out {
		angle := parameter.NucleusTriadAngle + float64(i)*2*math.Pi/3
		out[i] = Position{Point: center.Add(vmath.Polar(dist, angle)), Radius: dist, Angle: angle}
	}
	return out
}

// diamond places a front pair on the fixed axis and a rear pair across it, drawn behind
func diamond(center r2.Vec, r float64) []Position {
	front := vmath.Polar(r, parameter.NucleusDiamondAngle)

	rearDist := 2 * r * math.Cos(math.Pi/3)
	rearAngle := parameter.NucleusDiamondAngle + math.Pi/2
	rear := vmath.Polar(rearDist, rearAngle)

	return []Position{
		{Point: center.Add(front), Radius: r, Angle: parameter.NucleusDiamondAngle},
		{Point: center.Sub(front), Radius: r, Angle: parameter.NucleusDiamondAngle + math.Pi},
		{Point: center.Add(rear), ZLayer: 1, Radius: rearDist, Angle: rearAngle},
		{Point: center.Sub(rear), ZLayer: 1, Radius: rearDist, Angle: rearAngle + math.Pi},
	}
}

// rings fills concentric rings from the center outward
// Ring capacity grows with circumference; each ring start is rotated to avoid radial seams
func rings(n int, center r2.Vec, r float64) []Position {
	out := make([]Position, 0, n)

	level := 0
	radius := 0.0
	capacity := 1
	start := 0.0

	for len(out) < n {
		step := 2 * math.Pi / float64(capacity)
		for k := 0; k < capacity && len(out) < n; k++ {
			angle := start + float64(k)*step
			out = append(out, Position{
				Point:  center.Add(vmath.Polar(radius, angle)),
				ZLayer: level,
				Ring:   level,
				Radius: radius,
				Angle:  angle,
			})
		}

		level++
		radius += r * parameter.NucleusRingStepFactor / float64(level)
		start += parameter.NucleusRingAngleStep + float64(level)*math.Pi
		capacity = RingCapacity(radius, r)
	}
	return out
}

// RingCapacity returns how many nucleons fit on a ring of the given radius
func RingCapacity(radius, nucleonRadius float64) int {
	c := int(math.Floor(radius * math.Pi / nucleonRadius))
	if c < 1 {
		return 1
	}
	return c
}
