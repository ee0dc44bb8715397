package shell

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/atom-builder/particle"
)

// Shell identifies the inner or outer electron shell
// Ordering matters: lower values are filled first
type Shell uint8

const (
	Inner Shell = iota
	Outer
)

func (s Shell) String() string {
	if s == Inner {
		return "inner"
	}
	return "outer"
}

// slot is an arena record; occupant nil means empty
type slot struct {
	shell    Shell
	radius   float64
	angle    float64
	occupant *particle.Particle
}

// Slot is a read-only view of one slot
type Slot struct {
	Index    int
	Shell    Shell
	Radius   float64
	Angle    float64
	Position r2.Vec
	Occupant particle.ID
	Occupied bool
}
