package event

import "github.com/lixenwraith/atom-builder/parameter"

// EventQueue is a fixed ring of atom notifications
// The atom and its views run on one loop, so there is no synchronization
// When full, the oldest event is overwritten
type EventQueue struct {
	events [parameter.EventQueueSize]Event
	head   uint64 // next read
	tail   uint64 // next write
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends ev, dropping the oldest pending event on overflow
func (eq *EventQueue) Push(ev Event) {
	eq.events[eq.tail&parameter.EventBufferMask] = ev
	eq.tail++
	if eq.tail-eq.head > parameter.EventQueueSize {
		eq.head = eq.tail - parameter.EventQueueSize
	}
}

// Consume returns pending events oldest first and empties the queue
func (eq *EventQueue) Consume() []Event {
	if eq.tail == eq.head {
		return nil
	}
	out := make([]Event, 0, eq.tail-eq.head)
	for i := eq.head; i < eq.tail; i++ {
		idx := i & parameter.EventBufferMask
		out = append(out, eq.events[idx])
		// Drop payload references
		eq.events[idx] = Event{}
	}
	eq.head = eq.tail
	return out
}

// Len returns the pending event count
func (eq *EventQueue) Len() int {
	return int(eq.tail - eq.head)
}
