// Package core provides fundamental types and utilities for the vanguard
// platform. It contains no external dependencies (especially no Bubble Tea)
// to keep simulation logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned bounding box in world units.
// World units are fractional cells; the renderer truncates to screen cells.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Overlaps reports whether this rectangle overlaps another.
// Edge-touching rectangles do NOT overlap: each left edge must be strictly
// less than the other's right edge, on both axes. Every collision check in
// the simulation goes through this one predicate so hit semantics stay
// consistent everywhere.
func (r Rect) Overlaps(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains reports whether the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// CenterDistance returns the distance between the centers of two rectangles.
func (r Rect) CenterDistance(other Rect) float64 {
	ax, ay := r.Center()
	bx, by := other.Center()
	return math.Hypot(bx-ax, by-ay)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// AbsF returns the absolute value of a float64.
func AbsF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// MinF returns the smaller of two float64 values.
func MinF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// MaxF returns the larger of two float64 values.
func MaxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
