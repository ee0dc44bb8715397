package vmath

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestPolar(t *testing.T) {
	v := Polar(2, math.Pi/2)
	if !ApproxEqual(v, r2.Vec{X: 0, Y: 2}, 1e-12) {
		t.Errorf("Polar(2, π/2) = %v, want (0, 2)", v)
	}
}

func TestMoveToward(t *testing.T) {
	from := r2.Vec{}
	to := r2.Vec{X: 10}

	p, arrived := MoveToward(from, to, 4)
	if arrived {
		t.Fatal("Expected not arrived after partial step")
	}
	if !ApproxEqual(p, r2.Vec{X: 4}, 1e-12) {
		t.Errorf("Expected (4, 0), got %v", p)
	}

	p, arrived = MoveToward(p, to, 100)
	if !arrived || !Equal(p, to) {
		t.Errorf("Expected snap to target, got %v arrived=%v", p, arrived)
	}

	p, arrived = MoveToward(from, to, 0)
	if arrived || !Equal(p, from) {
		t.Errorf("Zero step should not move, got %v", p)
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDistance(t *testing.T) {
	a := r2.Vec{X: 1, Y: 1}
	b := r2.Vec{X: 4, Y: 5}
	if d := Distance(a, b); d != 5 {
		t.Errorf("Distance = %v, want 5", d)
	}
	if d := DistanceSq(a, b); d != 25 {
		t.Errorf("DistanceSq = %v, want 25", d)
	}
}
