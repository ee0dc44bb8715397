package shell

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/atom-builder/parameter"
	"github.com/lixenwraith/atom-builder/particle"
	"github.com/lixenwraith/atom-builder/vmath"
)

var (
	// ErrNoOpenSlot means all electron slots are occupied; callers must cap electrons at capacity
	ErrNoOpenSlot = errors.New("no open electron shell slot")
	// ErrNotAssigned means the electron holds no slot in this allocator
	ErrNotAssigned = errors.New("electron not assigned to a shell slot")
	// ErrAlreadyAssigned means the electron already holds a slot
	ErrAlreadyAssigned = errors.New("electron already assigned to a shell slot")
)

// AddMode selects how an open slot is chosen for a new electron
// Inner-shell slots always take precedence over outer-shell slots
type AddMode uint8

const (
	// AddProximal picks the open slot nearest to the electron's current position
	AddProximal AddMode = iota
	// AddRandom picks a random open slot
	AddRandom
)

func (m AddMode) String() string {
	if m == AddRandom {
		return "random"
	}
	return "proximal"
}

// ParseAddMode resolves "proximal" or "random"
func ParseAddMode(s string) (AddMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "proximal":
		return AddProximal, nil
	case "random":
		return AddRandom, nil
	}
	return AddProximal, fmt.Errorf("unknown electron add mode %q", s)
}

// RandSource supplies indices for AddRandom
// *rand.Rand from golang.org/x/exp/rand satisfies it
type RandSource interface {
	Intn(n int) int
}

// Allocator owns the fixed electron slot table
// Slots are an arena indexed 0..ShellSlotCount-1: 0-1 inner, 2-9 outer
// The electron→slot relation lives in slotOf; particles carry no back-reference
type Allocator struct {
	center r2.Vec
	slots  [parameter.ShellSlotCount]slot
	slotOf map[particle.ID]int

	mode AddMode
	rng  RandSource
}

// New builds the slot table around center
// Inner slots sit at 0 and π; outer slots are evenly spaced starting at the stagger angle
func New(center r2.Vec, innerRadius, outerRadius float64) *Allocator {
	a := &Allocator{
		center: center,
		slotOf: make(map[particle.ID]int, parameter.ShellSlotCount),
	}

	for i := 0; i < parameter.InnerShellSlots; i++ {
		a.slots[i] = slot{
			shell:  Inner,
			radius: innerRadius,
			angle:  float64(i) * 2 * math.Pi / parameter.InnerShellSlots,
		}
	}

	angle := parameter.OuterShellStagger
	for i := 0; i < parameter.OuterShellSlots; i++ {
		a.slots[parameter.InnerShellSlots+i] = slot{
			shell:  Outer,
			radius: outerRadius,
			angle:  angle,
		}
		angle += 2 * math.Pi / parameter.OuterShellSlots
	}

	return a
}

// SetAddMode switches slot selection; rng is required for AddRandom
func (a *Allocator) SetAddMode(mode AddMode, rng RandSource) {
	if mode == AddRandom && rng == nil {
		mode = AddProximal
	}
	a.mode = mode
	a.rng = rng
}

// AddMode returns the active slot selection mode
func (a *Allocator) AddMode() AddMode { return a.mode }

// Center returns the origin of the slot table
func (a *Allocator) Center() r2.Vec { return a.center }

// SetCenter moves the slot table and redirects every occupant to its moved slot
func (a *Allocator) SetCenter(center r2.Vec) {
	a.center = center
	for i := range a.slots {
		if occ := a.slots[i].occupant; occ != nil {
			occ.SetDestination(a.SlotPosition(i))
		}
	}
}

// SlotPosition returns the absolute position of slot i
func (a *Allocator) SlotPosition(i int) r2.Vec {
	s := &a.slots[i]
	return a.center.Add(vmath.Polar(s.radius, s.angle))
}

// Assign places p into an open slot and sets its destination there
// Candidates are ordered by distance to p (or shuffled in AddRandom), then stably by shell
func (a *Allocator) Assign(p *particle.Particle) (int, error) {
	if _, ok := a.slotOf[p.ID()]; ok {
		return -1, fmt.Errorf("%w: electron %d", ErrAlreadyAssigned, p.ID())
	}

	open := make([]int, 0, len(a.slots))
	for i := range a.slots {
		if a.slots[i].occupant == nil {
			open = append(open, i)
		}
	}
	if len(open) == 0 {
		return -1, fmt.Errorf("%w: electron %d, capacity %d", ErrNoOpenSlot, p.ID(), len(a.slots))
	}

	switch a.mode {
	case AddRandom:
		for i := len(open) - 1; i > 0; i-- {
			j := a.rng.Intn(i + 1)
			open[i], open[j] = open[j], open[i]
		}
	default:
		pos := p.Position()
		sort.SliceStable(open, func(i, j int) bool {
			return vmath.DistanceSq(pos, a.SlotPosition(open[i])) < vmath.DistanceSq(pos, a.SlotPosition(open[j]))
		})
	}
	sort.SliceStable(open, func(i, j int) bool {
		return a.slots[open[i]].shell < a.slots[open[j]].shell
	})

	idx := open[0]
	a.occupy(idx, p)
	return idx, nil
}

// Promotion records an outer-shell electron moved into an inner vacancy
// Electron is nil when nothing was promoted
type Promotion struct {
	Electron *particle.Particle
	From     int
	To       int
}

// Release frees the slot held by p
// An inner-shell vacancy is backfilled by the nearest outer-shell electron
func (a *Allocator) Release(p *particle.Particle) (Promotion, error) {
	idx, ok := a.slotOf[p.ID()]
	if !ok {
		return Promotion{}, fmt.Errorf("%w: electron %d", ErrNotAssigned, p.ID())
	}
	a.vacate(idx)

	if a.slots[idx].shell != Inner {
		return Promotion{}, nil
	}

	freed := a.SlotPosition(idx)
	candidates := make([]int, 0, parameter.OuterShellSlots)
	for i := range a.slots {
		if a.slots[i].shell == Outer && a.slots[i].occupant != nil {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return Promotion{}, nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return vmath.DistanceSq(freed, a.SlotPosition(candidates[i])) < vmath.DistanceSq(freed, a.SlotPosition(candidates[j]))
	})

	from := candidates[0]
	promoted := a.slots[from].occupant
	a.vacate(from)
	a.occupy(idx, promoted)
	return Promotion{Electron: promoted, From: from, To: idx}, nil
}

// SlotOf returns the slot index held by p
func (a *Allocator) SlotOf(p *particle.Particle) (int, bool) {
	idx, ok := a.slotOf[p.ID()]
	return idx, ok
}

// Occupied returns the number of filled slots
func (a *Allocator) Occupied() int { return len(a.slotOf) }

// Capacity returns the total number of slots
func (a *Allocator) Capacity() int { return len(a.slots) }

// Reset empties every slot without touching particle destinations
func (a *Allocator) Reset() {
	for i := range a.slots {
		a.slots[i].occupant = nil
	}
	clear(a.slotOf)
}

// Slots returns a snapshot of the table for views
func (a *Allocator) Slots() []Slot {
	out := make([]Slot, len(a.slots))
	for i := range a.slots {
		s := &a.slots[i]
		out[i] = Slot{
			Index:    i,
			Shell:    s.shell,
			Radius:   s.radius,
			Angle:    s.angle,
			Position: a.SlotPosition(i),
		}
		if s.occupant != nil {
			out[i].Occupant = s.occupant.ID()
			out[i].Occupied = true
		}
	}
	return out
}

func (a *Allocator) occupy(idx int, p *particle.Particle) {
	a.slots[idx].occupant = p
	a.slotOf[p.ID()] = idx
	p.SetDestination(a.SlotPosition(idx))
}

func (a *Allocator) vacate(idx int) {
	if occ := a.slots[idx].occupant; occ != nil {
		delete(a.slotOf, occ.ID())
	}
	a.slots[idx].occupant = nil
}
