package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Float 2D helpers for layout math
// Layout positions are float64 r2.Vec; exact equality is meaningful because
// destinations are only ever assigned or translated, never integrated

// Polar returns the vector at radius and angle (radians) from the origin
func Polar(radius, angle float64) r2.Vec {
	return r2.Vec{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
}

// Distance returns the Euclidean distance between a and b
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(a.Sub(b))
}

// DistanceSq returns the squared distance between a and b, sqrt-free for sort keys
func DistanceSq(a, b r2.Vec) float64 {
	return r2.Norm2(a.Sub(b))
}

// Equal reports exact component equality
func Equal(a, b r2.Vec) bool {
	return a.X == b.X && a.Y == b.Y
}

// ApproxEqual reports component equality within tol
func ApproxEqual(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// MoveToward advances from toward to by at most maxStep
// Returns the new point and true if it reached the target (snapped)
func MoveToward(from, to r2.Vec, maxStep float64) (r2.Vec, bool) {
	delta := to.Sub(from)
	dist := r2.Norm(delta)
	if dist == 0 || maxStep >= dist {
		return to, true
	}
	if maxStep <= 0 {
		return from, false
	}
	return from.Add(delta.Scale(maxStep / dist)), false
}

// NormalizeAngle wraps angle into [0, 2π)
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
