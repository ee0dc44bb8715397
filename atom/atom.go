// Package atom owns the particles of a single atom and keeps their destinations consistent
//
// Every mutation runs synchronously: nucleons are re-packed as a whole, electrons are
// assigned or released slot by slot, and a notification is queued for views.
// The atom is not safe for concurrent mutation; drive it from one loop.
package atom

import (
	"fmt"
	"log"
	"slices"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/atom-builder/event"
	"github.com/lixenwraith/atom-builder/nucleus"
	"github.com/lixenwraith/atom-builder/particle"
	"github.com/lixenwraith/atom-builder/shell"
	"github.com/lixenwraith/atom-builder/status"
)

// Atom is the aggregate root of protons, neutrons and electrons
type Atom struct {
	cfg Config

	center        r2.Vec
	nucleusOffset r2.Vec

	// Insertion order matters: it drives nucleon interleaving
	protons   []*particle.Particle
	neutrons  []*particle.Particle
	electrons []*particle.Particle

	shells *shell.Allocator

	// Packed nucleon spots relative to center, before the nucleus offset is added
	home map[particle.ID]r2.Vec

	// Ownership table: member ID -> pick-up listener registered at add time
	listeners map[particle.ID]particle.ListenerID

	queue *event.EventQueue
	seq   uint64

	metrics      *metrics
	reconfigures int64

	// Re-entrancy guard; pick-ups arriving mid-mutation are deferred
	busy    bool
	pending []*particle.Particle
}

// Option customizes an Atom at construction
type Option func(*Atom)

// WithEventQueue routes notifications to q instead of a private queue
func WithEventQueue(q *event.EventQueue) Option {
	return func(a *Atom) { a.queue = q }
}

// WithMetrics publishes counts into reg after every mutation
func WithMetrics(reg *status.Registry) Option {
	return func(a *Atom) { a.metrics = newMetrics(reg) }
}

// WithRand supplies the source for the random electron add mode
func WithRand(rng shell.RandSource) Option {
	return func(a *Atom) {
		mode, _ := shell.ParseAddMode(a.cfg.ElectronAddMode)
		a.shells.SetAddMode(mode, rng)
	}
}

// New creates an empty atom at center
func New(center r2.Vec, cfg *Config, opts ...Option) (*Atom, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("atom config: %w", err)
	}

	a := &Atom{
		cfg:       *cfg,
		center:    center,
		shells:    shell.New(center, cfg.InnerShellRadius, cfg.OuterShellRadius),
		listeners: make(map[particle.ID]particle.ListenerID),
		home:      make(map[particle.ID]r2.Vec),
		queue:     event.NewEventQueue(),
	}
	if mode, _ := shell.ParseAddMode(cfg.ElectronAddMode); mode == shell.AddRandom {
		a.shells.SetAddMode(mode, rand.New(rand.NewSource(uint64(time.Now().UnixNano()))))
	}
	for _, opt := range opts {
		opt(a)
	}
	a.publish()
	return a, nil
}

// Add makes p a member and lays it out
// Nucleons trigger a full re-pack; electrons take the preferred open shell slot
// A particle being dragged is refused; on error the atom is unchanged
func (a *Atom) Add(p *particle.Particle) error {
	t := p.Type()
	if !t.Valid() {
		return fmt.Errorf("add particle %d (%s): %w", p.ID(), t, ErrInvalidParticleType)
	}
	if a.Contains(p) {
		return fmt.Errorf("add %s %d: %w", t, p.ID(), ErrAlreadyMember)
	}
	if p.UserControlled() {
		return fmt.Errorf("add %s %d: %w", t, p.ID(), ErrUserControlled)
	}

	a.begin()
	defer a.end()

	switch t {
	case particle.TypeElectron:
		slot, err := a.shells.Assign(p)
		if err != nil {
			return fmt.Errorf("add electron %d: %w", p.ID(), err)
		}
		a.electrons = append(a.electrons, p)
		a.emit(event.EventParticleAdded, &event.ParticlePayload{ID: p.ID(), Type: t})
		a.emit(event.EventElectronAssigned, &event.ShellPayload{ID: p.ID(), Slot: slot, FromSlot: -1})
	case particle.TypeProton:
		a.protons = append(a.protons, p)
		a.emit(event.EventParticleAdded, &event.ParticlePayload{ID: p.ID(), Type: t})
		a.reconfigure()
	case particle.TypeNeutron:
		a.neutrons = append(a.neutrons, p)
		a.emit(event.EventParticleAdded, &event.ParticlePayload{ID: p.ID(), Type: t})
		a.reconfigure()
	}

	p.SetVelocity(a.cfg.ParticleVelocity)
	a.listeners[p.ID()] = p.OnControlChange(a.onControlChange)
	return nil
}

// Remove detaches member p and re-lays out the rest
// p keeps its current position and destination; the caller owns it from here
func (a *Atom) Remove(p *particle.Particle) error {
	return a.remove(p, false)
}

// Extract removes and returns the most recently added member of type t
// Returns nil with no error when there is no such member
func (a *Atom) Extract(t particle.Type) (*particle.Particle, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("extract %s: %w", t, ErrInvalidParticleType)
	}
	list := a.collection(t)
	if len(*list) == 0 {
		return nil, nil
	}
	p := (*list)[len(*list)-1]
	if err := a.remove(p, false); err != nil {
		return nil, err
	}
	return p, nil
}

// Clear drops every member in one pass without intermediate re-layout
func (a *Atom) Clear() {
	a.begin()
	defer a.end()

	counts := event.CountsPayload{
		Protons:   len(a.protons),
		Neutrons:  len(a.neutrons),
		Electrons: len(a.electrons),
	}

	for _, list := range [][]*particle.Particle{a.protons, a.neutrons, a.electrons} {
		for _, p := range list {
			if id, ok := a.listeners[p.ID()]; ok {
				p.RemoveControlListener(id)
			}
		}
	}
	clear(a.listeners)
	clear(a.home)

	a.protons = a.protons[:0]
	a.neutrons = a.neutrons[:0]
	a.electrons = a.electrons[:0]
	a.shells.Reset()

	a.emit(event.EventAtomCleared, &counts)
}

// SetNucleusOffset translates the nucleus rigidly by the change in offset
// Settled nucleons move with it; nucleons mid-animation only have their destination shifted
// Destinations are rebuilt from packed home spots, so returning to a previous offset is exact
// Electrons are unaffected
func (a *Atom) SetNucleusOffset(v r2.Vec) {
	delta := v.Sub(a.nucleusOffset)
	a.nucleusOffset = v
	if delta == (r2.Vec{}) {
		return
	}

	a.forNucleons(func(p *particle.Particle) {
		dest := a.home[p.ID()].Add(v)
		if p.Settled() {
			p.SetPositionAndDestination(dest)
		} else {
			p.SetDestination(dest)
		}
	})

	a.emit(event.EventNucleusOffsetChanged, &event.OffsetPayload{Value: v, Delta: delta})
	if a.metrics != nil {
		a.metrics.offsetX.Set(v.X)
		a.metrics.offsetY.Set(v.Y)
	}
}

// Reposition moves the atom center
// Settled particles move with the atom; animating ones are redirected to their new slots
func (a *Atom) Reposition(center r2.Vec) {
	delta := center.Sub(a.center)
	if delta == (r2.Vec{}) {
		return
	}

	a.begin()
	defer a.end()

	settled := make(map[particle.ID]bool, a.Size())
	a.forMembers(func(p *particle.Particle) { settled[p.ID()] = p.Settled() })

	a.center = center
	a.shells.SetCenter(center)
	a.reconfigure()

	a.forMembers(func(p *particle.Particle) {
		if settled[p.ID()] {
			p.SetPosition(p.Destination())
		}
	})

	a.emit(event.EventAtomMoved, &event.OffsetPayload{Value: center, Delta: delta})
}

// Step animates every member toward its destination
// Returns the number of particles that moved
func (a *Atom) Step(dt time.Duration) int {
	moved := 0
	a.forMembers(func(p *particle.Particle) {
		if p.Step(dt) {
			moved++
		}
	})
	return moved
}

// --- Reads ---

func (a *Atom) Center() r2.Vec { return a.center }
func (a *Atom) NucleusOffset() r2.Vec { return a.nucleusOffset }
func (a *Atom) Config() Config { return a.cfg }
func (a *Atom) ProtonCount() int { return len(a.protons) }
func (a *Atom) NeutronCount() int { return len(a.neutrons) }
func (a *Atom) ElectronCount() int { return len(a.electrons) }

// Charge is protons minus electrons
func (a *Atom) Charge() int { return len(a.protons) - len(a.electrons) }

// Weight is the nucleon count
func (a *Atom) Weight() int { return len(a.protons) + len(a.neutrons) }

// Size is the total member count
func (a *Atom) Size() int { return len(a.protons) + len(a.neutrons) + len(a.electrons) }

// Snapshot captures the current counts
func (a *Atom) Snapshot() Snapshot {
	return Snapshot{Protons: len(a.protons), Neutrons: len(a.neutrons), Electrons: len(a.electrons)}
}

// Protons returns members in insertion order; the slice is a copy
func (a *Atom) Protons() []*particle.Particle { return slices.Clone(a.protons) }
func (a *Atom) Neutrons() []*particle.Particle { return slices.Clone(a.neutrons) }
func (a *Atom) Electrons() []*particle.Particle { return slices.Clone(a.electrons) }

// Nucleons returns protons and neutrons in the packing order
func (a *Atom) Nucleons() []*particle.Particle {
	return nucleus.Interleave(a.protons, a.neutrons)
}

// Contains reports membership of p
func (a *Atom) Contains(p *particle.Particle) bool {
	if !p.Type().Valid() {
		return false
	}
	return slices.Contains(*a.collection(p.Type()), p)
}

// ShellSlots returns the electron slot table for views
func (a *Atom) ShellSlots() []shell.Slot { return a.shells.Slots() }

// Events returns the notification queue
func (a *Atom) Events() *event.EventQueue { return a.queue }

// Reconfigures returns how many nucleus re-packs have run
func (a *Atom) Reconfigures() int64 { return a.reconfigures }

// --- Internals ---

func (a *Atom) remove(p *particle.Particle, pickup bool) error {
	t := p.Type()
	if !t.Valid() {
		return fmt.Errorf("remove particle %d (%s): %w", p.ID(), t, ErrInvalidParticleType)
	}
	list := a.collection(t)
	idx := slices.Index(*list, p)
	if idx < 0 {
		return fmt.Errorf("remove %s %d: %w", t, p.ID(), ErrParticleNotFound)
	}
	listener, ok := a.listeners[p.ID()]
	if !ok {
		return fmt.Errorf("remove %s %d: %w", t, p.ID(), ErrMissingRemovalListener)
	}

	a.begin()
	defer a.end()

	p.RemoveControlListener(listener)
	delete(a.listeners, p.ID())
	delete(a.home, p.ID())
	*list = slices.Delete(*list, idx, idx+1)
	a.emit(event.EventParticleRemoved, &event.ParticlePayload{ID: p.ID(), Type: t, UserPickup: pickup})

	if t == particle.TypeElectron {
		promo, err := a.shells.Release(p)
		if err != nil {
			// Membership and slot table disagree; surface it, the electron is already detached
			return fmt.Errorf("remove electron %d: %w", p.ID(), err)
		}
		if promo.Electron != nil {
			a.emit(event.EventElectronAssigned, &event.ShellPayload{
				ID:       promo.Electron.ID(),
				Slot:     promo.To,
				FromSlot: promo.From,
			})
		}
		return nil
	}

	a.reconfigure()
	return nil
}

// onControlChange is the pick-up listener registered on every member
func (a *Atom) onControlChange(p *particle.Particle, controlled bool) {
	if !controlled {
		return
	}
	if a.busy {
		a.pending = append(a.pending, p)
		return
	}
	if err := a.remove(p, true); err != nil {
		log.Printf("atom: pick-up of %s %d failed: %v", p.Type(), p.ID(), err)
	}
}

func (a *Atom) begin() { a.busy = true }

// end releases the guard, publishes metrics and drains deferred pick-ups
func (a *Atom) end() {
	a.busy = false
	a.publish()

	for len(a.pending) > 0 {
		p := a.pending[0]
		a.pending = a.pending[1:]
		if p.UserControlled() && a.Contains(p) {
			if err := a.remove(p, true); err != nil {
				log.Printf("atom: deferred pick-up of %s %d failed: %v", p.Type(), p.ID(), err)
			}
		}
	}
}

// reconfigure re-packs every nucleon around center, then shifts by the nucleus offset
func (a *Atom) reconfigure() {
	placements := nucleus.Pack(a.protons, a.neutrons, a.center, a.cfg.NucleonRadius)
	for i := range placements {
		a.home[placements[i].Particle.ID()] = placements[i].Point
		placements[i].Point = placements[i].Point.Add(a.nucleusOffset)
	}
	nucleus.Apply(placements)

	center := a.center.Add(a.nucleusOffset)
	a.reconfigures++
	a.emit(event.EventNucleusReconfigured, &event.NucleusPayload{
		Protons:  len(a.protons),
		Neutrons: len(a.neutrons),
		Center:   center,
	})
}

func (a *Atom) collection(t particle.Type) *[]*particle.Particle {
	switch t {
	case particle.TypeProton:
		return &a.protons
	case particle.TypeNeutron:
		return &a.neutrons
	default:
		return &a.electrons
	}
}

func (a *Atom) forNucleons(fn func(*particle.Particle)) {
	for _, p := range a.protons {
		fn(p)
	}
	for _, p := range a.neutrons {
		fn(p)
	}
}

func (a *Atom) forMembers(fn func(*particle.Particle)) {
	a.forNucleons(fn)
	for _, p := range a.electrons {
		fn(p)
	}
}

func (a *Atom) emit(t event.EventType, payload any) {
	a.seq++
	a.queue.Push(event.Event{Type: t, Payload: payload, Seq: a.seq})
}
