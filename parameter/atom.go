package parameter

import (
	"math"
	"time"
)

// Nucleus
const (
	// NucleonRadius is the drawn radius of a proton or neutron (world units)
	NucleonRadius = 10.0

	// NucleusPairAngle is the axis of the two-nucleon layout (radians)
	NucleusPairAngle = 0.2 * 2 * math.Pi
	// NucleusTriadAngle is the base angle of the three-nucleon layout (radians)
	NucleusTriadAngle = 0.7 * 2 * math.Pi
	// NucleusTriadDistanceFactor places three nucleons so their circles mutually touch
	NucleusTriadDistanceFactor = 1.155
	// NucleusDiamondAngle is the front-pair axis of the four-nucleon layout (radians)
	NucleusDiamondAngle = 1.4 * 2 * math.Pi

	// NucleusRingStepFactor scales the radial advance between rings, divided by ring level
	NucleusRingStepFactor = 1.35
	// NucleusRingAngleStep rotates each new ring start, plus level*π, to avoid radial seams
	NucleusRingAngleStep = 0.2 * 2 * math.Pi
)

// Electron shells
const (
	// InnerShellRadius is the distance of the two inner electron slots from the atom center
	InnerShellRadius = 85.0
	// OuterShellRadius is the distance of the eight outer electron slots from the atom center
	OuterShellRadius = 130.0

	InnerShellSlots = 2
	OuterShellSlots = 8
	// ShellSlotCount is the total electron capacity of the atom
	ShellSlotCount = InnerShellSlots + OuterShellSlots

	// OuterShellStagger offsets the outer slots from the inner pair (radians)
	OuterShellStagger = math.Pi / OuterShellSlots * 1.2
)

// Animation
const (
	// ParticleVelocity is the speed a particle travels toward its destination (world units/sec)
	ParticleVelocity = 200.0
)

// Nucleus instability jitter
const (
	// NucleusJumpPeriod is the interval between offset toggles while unstable
	NucleusJumpPeriod = 100 * time.Millisecond
	// NucleusJumpMax is the maximum magnitude of the jitter offset (world units)
	NucleusJumpMax = NucleonRadius * 0.5
)
