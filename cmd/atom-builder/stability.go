package main

// bandStable is a rough valley-of-stability check for the demo
// Light nuclei want N close to Z; heavier ones tolerate a growing neutron excess
// A real isotope table can replace it through instability.StabilityFunc
func bandStable(protons, neutrons int) bool {
	switch {
	case protons == 0:
		return neutrons == 0
	case protons == 1:
		return neutrons <= 2
	}
	low := protons - 1
	high := protons + 1 + protons/4
	return neutrons >= low && neutrons <= high
}
