package event

import (
	"testing"

	"github.com/lixenwraith/atom-builder/parameter"
)

func TestQueueFIFO(t *testing.T) {
	q := NewEventQueue()
	for i := 1; i <= 5; i++ {
		q.Push(Event{Type: EventParticleAdded, Seq: uint64(i)})
	}
	if q.Len() != 5 {
		t.Errorf("Expected 5 pending, got %d", q.Len())
	}

	events := q.Consume()
	if len(events) != 5 {
		t.Fatalf("Expected 5 events, got %d", len(events))
	}
	for i, ev := range events {
		if ev.Seq != uint64(i+1) {
			t.Errorf("Event %d out of order: seq %d", i, ev.Seq)
		}
	}
	if q.Consume() != nil {
		t.Error("Expected empty queue after consume")
	}
}

func TestQueueOverflowKeepsNewest(t *testing.T) {
	q := NewEventQueue()
	total := parameter.EventQueueSize + 10
	for i := 0; i < total; i++ {
		q.Push(Event{Type: EventNucleusReconfigured, Seq: uint64(i)})
	}

	events := q.Consume()
	if len(events) != parameter.EventQueueSize {
		t.Fatalf("Expected %d events, got %d", parameter.EventQueueSize, len(events))
	}
	if events[0].Seq != 10 {
		t.Errorf("Expected oldest surviving seq 10, got %d", events[0].Seq)
	}
	if events[len(events)-1].Seq != uint64(total-1) {
		t.Errorf("Expected newest seq %d, got %d", total-1, events[len(events)-1].Seq)
	}
}

func TestQueueReusesSlotsAfterConsume(t *testing.T) {
	q := NewEventQueue()
	for round := 0; round < 3; round++ {
		for i := 0; i < parameter.EventQueueSize-1; i++ {
			q.Push(Event{Type: EventParticleAdded, Seq: uint64(i)})
		}
		events := q.Consume()
		if len(events) != parameter.EventQueueSize-1 {
			t.Fatalf("Round %d: expected %d events, got %d", round, parameter.EventQueueSize-1, len(events))
		}
		if events[0].Seq != 0 || q.Len() != 0 {
			t.Errorf("Round %d: seq %d first, %d left", round, events[0].Seq, q.Len())
		}
	}
}

type recorder struct {
	seen []EventType
}

func (r *recorder) HandleEvent(_ *int, ev Event) { r.seen = append(r.seen, ev.Type) }
func (r *recorder) EventTypes() []EventType {
	return []EventType{EventParticleAdded, EventAtomCleared}
}

func TestRouterDispatch(t *testing.T) {
	q := NewEventQueue()
	router := NewRouter[*int](q)

	rec := &recorder{}
	router.Register(rec)

	count := 0
	router.Register(HandlerFunc[*int]{
		Types: []EventType{EventAtomCleared},
		Fn:    func(ctx *int, _ Event) { *ctx++ },
	})

	q.Push(Event{Type: EventParticleAdded})
	q.Push(Event{Type: EventNucleusReconfigured})
	q.Push(Event{Type: EventAtomCleared})

	if n := router.DispatchAll(&count); n != 3 {
		t.Errorf("Expected 3 dispatched, got %d", n)
	}
	if len(rec.seen) != 2 || rec.seen[0] != EventParticleAdded || rec.seen[1] != EventAtomCleared {
		t.Errorf("Unexpected recorder sequence: %v", rec.seen)
	}
	if count != 1 {
		t.Errorf("Expected func handler to fire once, got %d", count)
	}
	if router.HandlerCount(EventAtomCleared) != 2 {
		t.Errorf("Expected 2 handlers for EventAtomCleared")
	}
}

func TestRegistryNames(t *testing.T) {
	if EventNucleusReconfigured.String() != "EventNucleusReconfigured" {
		t.Errorf("Unexpected name %s", EventNucleusReconfigured)
	}
	if et, ok := GetEventType("eventatomcleared"); !ok || et != EventAtomCleared {
		t.Errorf("Case-insensitive lookup failed: %v %v", et, ok)
	}
	if _, ok := GetEventType("EventQuark"); ok {
		t.Error("Unknown name should not resolve")
	}
	if EventNone.String() != "EventNone" {
		t.Error("Zero type should print EventNone")
	}
}

func TestParseTypes(t *testing.T) {
	tests := []struct {
		list    string
		want    []EventType
		wantErr bool
	}{
		{"", nil, false},
		{"ParticleAdded, eventatomcleared", []EventType{EventParticleAdded, EventAtomCleared}, false},
		{"all", AllTypes(), false},
		{"added,quark", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.list, func(t *testing.T) {
			got, err := ParseTypes(tt.list)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTypes(%q) error = %v", tt.list, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseTypes(%q) = %v, want %v", tt.list, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Type %d = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
	if len(AllTypes()) != 7 || AllTypes()[0] != EventParticleAdded {
		t.Errorf("AllTypes = %v", AllTypes())
	}
}
