package event

import (
	"fmt"
	"sort"
	"strings"
)

var (
	nameToType = make(map[string]EventType)
	typeToName = make(map[EventType]string)
)

func init() {
	RegisterType("EventParticleAdded", EventParticleAdded)
	RegisterType("EventParticleRemoved", EventParticleRemoved)
	RegisterType("EventNucleusReconfigured", EventNucleusReconfigured)
	RegisterType("EventElectronAssigned", EventElectronAssigned)
	RegisterType("EventNucleusOffsetChanged", EventNucleusOffsetChanged)
	RegisterType("EventAtomCleared", EventAtomCleared)
	RegisterType("EventAtomMoved", EventAtomMoved)
}

// RegisterType maps a string name to an EventType
func RegisterType(name string, et EventType) {
	nameToType[name] = et
	typeToName[et] = name
}

// GetEventType returns the EventType for a given name, case-insensitive
// The "Event" prefix is optional: "atomcleared" resolves like "EventAtomCleared"
func GetEventType(name string) (EventType, bool) {
	if et, ok := nameToType[name]; ok {
		return et, true
	}
	for n, et := range nameToType {
		if strings.EqualFold(n, name) || strings.EqualFold(n, "Event"+name) {
			return et, true
		}
	}
	return EventNone, false
}

// AllTypes returns every registered type in declaration order
func AllTypes() []EventType {
	out := make([]EventType, 0, len(typeToName))
	for et := range typeToName {
		out = append(out, et)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseTypes resolves a comma-separated list of names; "all" selects every type
// and an empty list selects none
func ParseTypes(list string) ([]EventType, error) {
	var out []EventType
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		switch {
		case name == "":
			continue
		case strings.EqualFold(name, "all"):
			return AllTypes(), nil
		}
		et, ok := GetEventType(name)
		if !ok {
			return nil, fmt.Errorf("unknown event type %q", name)
		}
		out = append(out, et)
	}
	return out, nil
}

func (t EventType) String() string {
	if name, ok := typeToName[t]; ok {
		return name
	}
	return "EventNone"
}
