package editor

import "math"

// Vec is a 2D world-space coordinate or offset.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + w.
func (v Vec) Add(w Vec) Vec { return Vec{v.X + w.X, v.Y + w.Y} }

// Sub returns v - w.
func (v Vec) Sub(w Vec) Vec { return Vec{v.X - w.X, v.Y - w.Y} }

// Dist returns the Euclidean distance between v and w.
func (v Vec) Dist(w Vec) float64 {
	return math.Hypot(v.X-w.X, v.Y-w.Y)
}

// Mid returns the midpoint between v and w.
func (v Vec) Mid(w Vec) Vec {
	return Vec{(v.X + w.X) / 2, (v.Y + w.Y) / 2}
}

// Rect is an axis-aligned rectangle. Min/Max are normalized so that
// Min.X <= Max.X and Min.Y <= Max.Y when constructed via RectBetween.
type Rect struct {
	Min Vec `json:"min"`
	Max Vec `json:"max"`
}

// RectBetween builds a normalized rectangle spanning two corner points
// in any orientation. This is the marquee rectangle between the gesture
// start and the current pointer position.
func RectBetween(a, b Vec) Rect {
	return Rect{
		Min: Vec{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Max: Vec{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
	}
}

// Contains reports whether p lies inside the rectangle (inclusive).
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}
