package atom

// Snapshot is a throwaway count of an atom's particles
// Comparing snapshots is how a target configuration is checked without touching layout
type Snapshot struct {
	Protons   int
	Neutrons  int
	Electrons int
}

func (s Snapshot) Charge() int { return s.Protons - s.Electrons }
func (s Snapshot) Weight() int { return s.Protons + s.Neutrons }

// Equal compares all three counts
func (s Snapshot) Equal(o Snapshot) bool { return s == o }

// Neutral reports zero net charge
func (s Snapshot) Neutral() bool { return s.Charge() == 0 }
