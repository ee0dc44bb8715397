package event

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/atom-builder/particle"
)

// ParticlePayload describes a membership change
type ParticlePayload struct {
	ID   particle.ID
	Type particle.Type
	// UserPickup is set when the removal came from the particle becoming user controlled
	UserPickup bool
}

// NucleusPayload carries the nucleon counts a reconfigure was computed for
type NucleusPayload struct {
	Protons  int
	Neutrons int
	Center   r2.Vec
}

// ShellPayload describes an electron slot assignment
// FromSlot is -1 for a fresh assignment, otherwise the outer slot it was promoted from
type ShellPayload struct {
	ID       particle.ID
	Slot     int
	FromSlot int
}

// OffsetPayload carries a new vector and the delta applied
type OffsetPayload struct {
	Value r2.Vec
	Delta r2.Vec
}

// CountsPayload carries the particle counts dropped by a clear
type CountsPayload struct {
	Protons   int
	Neutrons  int
	Electrons int
}
