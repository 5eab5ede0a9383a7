package world

import (
	"math"
	"testing"
)

func TestNormalizedZeroVector(t *testing.T) {
	if got := (Vec3{}).Normalized(); got != (Vec3{}) {
		t.Fatalf("zero vector normalized to %+v", got)
	}
	v := Vec3{X: 3, Y: 0, Z: 4}.Normalized()
	if math.Abs(v.Len()-1) > 1e-12 {
		t.Fatalf("unit length = %v", v.Len())
	}
}

func TestLerpAngleShortestPath(t *testing.T) {
	// 350deg -> 10deg should rotate +20deg, not -340.
	a := 350 * math.Pi / 180
	b := 10 * math.Pi / 180
	got := lerpAngle(a, b, 1)
	want := 370 * math.Pi / 180
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("lerpAngle wrapped the long way: %v, want %v", got, want)
	}

	// Halfway across the opposite direction stays within pi of the start.
	got = lerpAngle(0, math.Pi/2, 0.5)
	if math.Abs(got-math.Pi/4) > 1e-12 {
		t.Fatalf("lerpAngle(0, pi/2, 0.5) = %v", got)
	}
}
