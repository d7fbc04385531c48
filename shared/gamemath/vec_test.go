package gamemath

import (
	"math"
	"testing"
)

func almostEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestClampLength(t *testing.T) {
	v := Vec2{X: 30, Y: 40}.ClampLength(5)
	if !almostEqual(v.X, 3) || !almostEqual(v.Y, 4) {
		t.Fatalf("clamped to %+v, want (3, 4)", v)
	}

	short := Vec2{X: 1, Y: 2}
	if got := short.ClampLength(100); got != short {
		t.Fatalf("short vector changed: %+v", got)
	}

	zero := Vec2{}
	if got := zero.ClampLength(10); got != zero {
		t.Fatalf("zero vector changed: %+v", got)
	}
}

func TestVecFromAngle(t *testing.T) {
	up := VecFromAngle(0)
	if !almostEqual(up.X, 0) || !almostEqual(up.Y, 1) {
		t.Fatalf("angle 0 = %+v, want straight up", up)
	}

	right := VecFromAngle(math.Pi / 2)
	if !almostEqual(right.X, 1) || !almostEqual(right.Y, 0) {
		t.Fatalf("angle pi/2 = %+v, want straight right", right)
	}

	down := VecFromAngle(math.Pi)
	if !almostEqual(down.X, 0) || !almostEqual(down.Y, -1) {
		t.Fatalf("angle pi = %+v, want straight down", down)
	}
}

func TestDist(t *testing.T) {
	a := Vec2{X: 1, Y: 1}
	b := Vec2{X: 4, Y: 5}
	if got := Dist(a, b); !almostEqual(got, 5) {
		t.Fatalf("dist = %v, want 5", got)
	}
	if got := Dist(a, a); got != 0 {
		t.Fatalf("dist to self = %v", got)
	}
}

func TestAddScale(t *testing.T) {
	v := Vec2{X: 1, Y: -2}.Add(Vec2{X: 3, Y: 4}).Scale(2)
	if v.X != 8 || v.Y != 4 {
		t.Fatalf("got %+v, want (8, 4)", v)
	}
}
