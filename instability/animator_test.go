package instability

import (
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/atom-builder/status"
	"github.com/lixenwraith/atom-builder/vmath"
)

type fakeNucleus struct {
	protons, neutrons int
	offset            r2.Vec
	sets              []r2.Vec
}

func (f *fakeNucleus) ProtonCount() int { return f.protons }
func (f *fakeNucleus) NeutronCount() int { return f.neutrons }
func (f *fakeNucleus) NucleusOffset() r2.Vec { return f.offset }
func (f *fakeNucleus) SetNucleusOffset(v r2.Vec) {
	f.offset = v
	f.sets = append(f.sets, v)
}

// neutronRich treats anything with more neutrons than protons+1 as unstable
func neutronRich(p, n int) bool { return n <= p+1 }

const period = 100 * time.Millisecond

func TestStableNucleusNeverMoves(t *testing.T) {
	nuc := &fakeNucleus{protons: 2, neutrons: 2}
	anim := New(nuc, neutronRich, NewRand(1), period, 5)

	for i := 0; i < 50; i++ {
		anim.Step(50 * time.Millisecond)
	}
	if len(nuc.sets) != 0 || anim.Jumps() != 0 {
		t.Errorf("Stable nucleus should not jitter, got %d sets", len(nuc.sets))
	}
}

func TestUnstableNucleusTogglesEachPeriod(t *testing.T) {
	nuc := &fakeNucleus{protons: 1, neutrons: 5}
	anim := New(nuc, neutronRich, NewRand(7), period, 5)

	anim.Step(60 * time.Millisecond)
	if len(nuc.sets) != 0 {
		t.Fatal("Offset should not change before the period elapses")
	}

	anim.Step(40 * time.Millisecond)
	if len(nuc.sets) != 1 {
		t.Fatalf("Expected first jump after one period, got %d", len(nuc.sets))
	}
	first := nuc.sets[0]
	if mag := vmath.Distance(first, r2.Vec{}); math.Abs(mag-5) > 1e-9 {
		t.Errorf("Jump magnitude = %v, want 5", mag)
	}

	anim.Step(period)
	if nuc.offset != (r2.Vec{}) {
		t.Errorf("Second toggle should return to zero, got %v", nuc.offset)
	}

	anim.Step(period)
	if nuc.offset == (r2.Vec{}) {
		t.Error("Third toggle should pick a new random offset")
	}
	if anim.Jumps() != 3 {
		t.Errorf("Jumps = %d, want 3", anim.Jumps())
	}
}

func TestSeededSourceIsReproducible(t *testing.T) {
	run := func() []r2.Vec {
		nuc := &fakeNucleus{protons: 0, neutrons: 4}
		anim := New(nuc, neutronRich, NewRand(99), period, 3)
		for i := 0; i < 10; i++ {
			anim.Step(period)
		}
		return nuc.sets
	}
	a, b := run(), run()
	if len(a) != len(b) || len(a) != 10 {
		t.Fatalf("Unexpected lengths %d %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("Toggle %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestBecomingStableResetsImmediately(t *testing.T) {
	nuc := &fakeNucleus{protons: 1, neutrons: 4}
	anim := New(nuc, neutronRich, NewRand(5), period, 5)

	anim.Step(period)
	if nuc.offset == (r2.Vec{}) {
		t.Fatal("Expected a jump while unstable")
	}

	nuc.neutrons = 1
	anim.Step(time.Millisecond)
	if nuc.offset != (r2.Vec{}) {
		t.Error("Offset should clear as soon as the nucleus is stable")
	}

	// Countdown rearmed: a new instability waits a full period
	nuc.neutrons = 4
	anim.Step(period - time.Millisecond)
	if nuc.offset != (r2.Vec{}) {
		t.Error("Countdown should have been reset on stability")
	}
	anim.Step(time.Millisecond)
	if nuc.offset == (r2.Vec{}) {
		t.Error("Expected jump once the rearmed period elapses")
	}
}

func TestPublishStability(t *testing.T) {
	reg := status.NewRegistry()
	nuc := &fakeNucleus{protons: 2, neutrons: 2}
	anim := New(nuc, neutronRich, NewRand(3), period, 5)
	anim.Publish(reg)

	stable := reg.Bools.Get("nucleus.stable")
	if !stable.Load() {
		t.Error("Expected nucleus.stable true after Publish")
	}

	nuc.neutrons = 6
	anim.Step(10 * time.Millisecond)
	if stable.Load() {
		t.Error("Expected nucleus.stable false for a neutron-rich nucleus")
	}

	nuc.neutrons = 3
	anim.Step(10 * time.Millisecond)
	if !stable.Load() {
		t.Error("Expected nucleus.stable true once balanced again")
	}
}
