package atom

import (
	"sync/atomic"

	"github.com/lixenwraith/atom-builder/status"
)

// metrics caches registry cells so publishing is a handful of atomic stores
type metrics struct {
	protons      *atomic.Int64
	neutrons     *atomic.Int64
	electrons    *atomic.Int64
	charge       *atomic.Int64
	weight       *atomic.Int64
	reconfigures *atomic.Int64
	offsetX      *status.AtomicFloat
	offsetY      *status.AtomicFloat
}

func newMetrics(reg *status.Registry) *metrics {
	if reg == nil {
		return nil
	}
	return &metrics{
		protons:      reg.Ints.Get("atom.protons"),
		neutrons:     reg.Ints.Get("atom.neutrons"),
		electrons:    reg.Ints.Get("atom.electrons"),
		charge:       reg.Ints.Get("atom.charge"),
		weight:       reg.Ints.Get("atom.weight"),
		reconfigures: reg.Ints.Get("atom.reconfigures"),
		offsetX:      reg.Floats.Get("nucleus.offset_x"),
		offsetY:      reg.Floats.Get("nucleus.offset_y"),
	}
}

func (a *Atom) publish() {
	m := a.metrics
	if m == nil {
		return
	}
	m.protons.Store(int64(len(a.protons)))
	m.neutrons.Store(int64(len(a.neutrons)))
	m.electrons.Store(int64(len(a.electrons)))
	m.charge.Store(int64(a.Charge()))
	m.weight.Store(int64(a.Weight()))
	m.reconfigures.Store(a.reconfigures)
}
