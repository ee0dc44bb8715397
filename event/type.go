package event

// EventType identifies an atom notification
type EventType int

const (
	// EventNone is the zero value and never emitted
	EventNone EventType = iota

	// EventParticleAdded signals a particle joined the atom
	// Trigger: Atom.Add | Payload: *ParticlePayload
	EventParticleAdded

	// EventParticleRemoved signals a particle left the atom
	// Trigger: Atom.Remove, Atom.Extract, user pick-up | Payload: *ParticlePayload
	EventParticleRemoved

	// EventNucleusReconfigured signals fresh nucleon destinations
	// Trigger: any nucleon membership change, Atom.Reposition | Payload: *NucleusPayload
	EventNucleusReconfigured

	// EventElectronAssigned signals an electron took a shell slot
	// Trigger: Atom.Add of an electron, inner-shell backfill | Payload: *ShellPayload
	EventElectronAssigned

	// EventNucleusOffsetChanged signals a rigid nucleus translation
	// Trigger: Atom.SetNucleusOffset | Payload: *OffsetPayload
	EventNucleusOffsetChanged

	// EventAtomCleared signals every particle was dropped in one pass
	// Trigger: Atom.Clear | Payload: *CountsPayload
	EventAtomCleared

	// EventAtomMoved signals the atom center changed
	// Trigger: Atom.Reposition | Payload: *OffsetPayload
	EventAtomMoved
)

// Event is a single queued notification
type Event struct {
	Type    EventType
	Payload any
	Seq     uint64 // Monotonic per emitter, for ordering and dedup
}
