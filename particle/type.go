package particle

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidType is returned for a particle type outside proton, neutron, electron
var ErrInvalidType = errors.New("invalid particle type")

// Type identifies the kind of subatomic particle
// Zero value is invalid so an uninitialized particle is never placed
type Type uint8

const (
	TypeInvalid Type = iota
	TypeProton
	TypeNeutron
	TypeElectron
)

var typeNames = [...]string{
	TypeInvalid:  "invalid",
	TypeProton:   "proton",
	TypeNeutron:  "neutron",
	TypeElectron: "electron",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// Valid reports whether t is one of the three recognized particle types
func (t Type) Valid() bool {
	return t >= TypeProton && t <= TypeElectron
}

// IsNucleon reports whether t is packed into the nucleus
func (t Type) IsNucleon() bool {
	return t == TypeProton || t == TypeNeutron
}

// ParseType resolves a case-insensitive type name
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "proton":
		return TypeProton, nil
	case "neutron":
		return TypeNeutron, nil
	case "electron":
		return TypeElectron, nil
	}
	return TypeInvalid, fmt.Errorf("%w: %q", ErrInvalidType, name)
}
