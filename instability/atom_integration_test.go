package instability

import (
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/atom-builder/atom"
	"github.com/lixenwraith/atom-builder/parameter"
	"github.com/lixenwraith/atom-builder/particle"
)

func TestJitterOnRealAtomLeavesElectronsAndRestoresNucleus(t *testing.T) {
	a, err := atom.New(r2.Vec{X: 50, Y: 50}, atom.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		if err := a.Add(particle.New(particle.TypeNeutron, r2.Vec{})); err != nil {
			t.Fatal(err)
		}
	}
	e := particle.New(particle.TypeElectron, r2.Vec{})
	if err := a.Add(e); err != nil {
		t.Fatal(err)
	}
	for a.Step(time.Second) > 0 {
	}

	home := make(map[particle.ID]r2.Vec)
	for _, n := range a.Nucleons() {
		home[n.ID()] = n.Destination()
	}
	electronDest := e.Destination()

	stable := true
	anim := New(a, func(p, n int) bool { return stable }, NewRand(11), parameter.NucleusJumpPeriod, parameter.NucleusJumpMax)

	stable = false
	anim.Step(parameter.NucleusJumpPeriod)
	if a.NucleusOffset() == (r2.Vec{}) {
		t.Fatal("Expected nucleus offset while unstable")
	}
	for _, n := range a.Nucleons() {
		if n.Destination() == home[n.ID()] {
			t.Error("Nucleon should follow the jitter offset")
		}
	}
	if e.Destination() != electronDest {
		t.Error("Electron must not jitter")
	}

	stable = true
	anim.Step(time.Millisecond)
	for _, n := range a.Nucleons() {
		if n.Destination() != home[n.ID()] {
			t.Errorf("Nucleon %d not restored exactly: %v vs %v", n.ID(), n.Destination(), home[n.ID()])
		}
	}
}
