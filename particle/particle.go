package particle

import (
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/atom-builder/parameter"
	"github.com/lixenwraith/atom-builder/vmath"
)

// ID uniquely identifies a particle for the lifetime of the process
type ID uint64

var nextID atomic.Uint64

// ListenerID identifies a registered user-control listener for removal
type ListenerID uint64

// ControlListener is invoked when the user-control flag changes
type ControlListener func(p *Particle, controlled bool)

type listenerEntry struct {
	id ListenerID
	fn ControlListener
}

// Particle is a single proton, neutron or electron
// Position moves toward Destination on Step; Destination may be redirected at any time
// without touching Position, so in-flight animations never pop
type Particle struct {
	id  ID
	typ Type

	position    r2.Vec
	destination r2.Vec
	zLayer      int
	velocity    float64

	userControlled bool

	listeners    []listenerEntry
	nextListener ListenerID
}

// New creates a settled particle at pos with a fresh ID
// Type is not validated here; the atom rejects invalid types on add
func New(t Type, pos r2.Vec) *Particle {
	return &Particle{
		id:          ID(nextID.Add(1)),
		typ:         t,
		position:    pos,
		destination: pos,
		velocity:    parameter.ParticleVelocity,
	}
}

func (p *Particle) ID() ID { return p.id }
func (p *Particle) Type() Type { return p.typ }
func (p *Particle) Position() r2.Vec { return p.position }
func (p *Particle) Destination() r2.Vec { return p.destination }
func (p *Particle) ZLayer() int { return p.zLayer }
func (p *Particle) UserControlled() bool { return p.userControlled }
func (p *Particle) Velocity() float64 { return p.velocity }
func (p *Particle) SetZLayer(z int) { p.zLayer = z }
func (p *Particle) SetDestination(d r2.Vec) { p.destination = d }

// SetPosition moves the particle without changing its destination (drag path)
func (p *Particle) SetPosition(pos r2.Vec) { p.position = pos }

// SetPositionAndDestination places the particle at rest at pos
func (p *Particle) SetPositionAndDestination(pos r2.Vec) {
	p.position = pos
	p.destination = pos
}

// SetVelocity sets the animation speed in world units per second
func (p *Particle) SetVelocity(v float64) {
	if v < 0 {
		v = 0
	}
	p.velocity = v
}

// Settled reports whether the particle rests at its destination
func (p *Particle) Settled() bool {
	return vmath.Equal(p.position, p.destination)
}

// Step advances position toward destination by velocity*dt, snapping when within one step
// User-controlled particles are positioned by the drag source and do not animate
// Returns true if the particle moved
func (p *Particle) Step(dt time.Duration) bool {
	if p.userControlled || p.Settled() {
		return false
	}
	p.position, _ = vmath.MoveToward(p.position, p.destination, p.velocity*dt.Seconds())
	return true
}

// SetUserControlled updates the drag flag and notifies listeners on change
// Listeners run on a snapshot, so they may deregister themselves while being notified
func (p *Particle) SetUserControlled(controlled bool) {
	if p.userControlled == controlled {
		return
	}
	p.userControlled = controlled

	if len(p.listeners) == 0 {
		return
	}
	snapshot := make([]listenerEntry, len(p.listeners))
	copy(snapshot, p.listeners)
	for _, l := range snapshot {
		l.fn(p, controlled)
	}
}

// OnControlChange registers fn and returns a handle for RemoveControlListener
func (p *Particle) OnControlChange(fn ControlListener) ListenerID {
	p.nextListener++
	p.listeners = append(p.listeners, listenerEntry{id: p.nextListener, fn: fn})
	return p.nextListener
}

// RemoveControlListener deregisters a listener, returns false if id is unknown
func (p *Particle) RemoveControlListener(id ListenerID) bool {
	for i, l := range p.listeners {
		if l.id == id {
			p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// ListenerCount returns the number of registered control listeners
func (p *Particle) ListenerCount() int {
	return len(p.listeners)
}
