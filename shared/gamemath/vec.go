// Package gamemath provides the small float32 vector math shared between
// client and server. It must have zero dependencies on ebiten or any
// graphics library so the dedicated server binary stays headless.
package gamemath

import "math"

// Vec2 is a position or velocity in world space. World units are pixels,
// +Y is up and the origin is the center of the field.
type Vec2 struct {
	X float32
	Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// LengthSq returns the squared length of v.
func (v Vec2) LengthSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Length returns the length of v.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.LengthSq())))
}

// ClampLength rescales v to length max if it is longer, preserving
// direction. Shorter vectors are returned unchanged.
func (v Vec2) ClampLength(max float32) Vec2 {
	sq := v.LengthSq()
	if sq <= max*max {
		return v
	}
	return v.Scale(max / float32(math.Sqrt(float64(sq))))
}

// VecFromAngle returns the unit vector for an angle in radians.
// Zero points straight up (+Y), matching actor facing.
func VecFromAngle(angle float32) Vec2 {
	return Vec2{
		X: float32(math.Sin(float64(angle))),
		Y: float32(math.Cos(float64(angle))),
	}
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Vec2) float32 {
	return Vec2{a.X - b.X, a.Y - b.Y}.Length()
}
