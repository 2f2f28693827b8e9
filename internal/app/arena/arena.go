/*
Package arena defines the fixed geometry of the presence room and the
movement constants shared by the server core and the client engine.

The arena is a bounded 2D plane. Every position, client- or server-side,
is clamped so the avatar stays fully inside it.
*/
package arena

import (
	"math"
	"time"
)

const (
	// Width and Height are the arena dimensions in world units.
	Width  = 600.0
	Height = 300.0

	// AvatarHalf is the avatar's half-extent. Positions are clamped so the
	// whole avatar stays inside the arena.
	AvatarHalf = 6.0

	// MoveSpeed is the distance an avatar travels per animation tick.
	MoveSpeed = 4.0

	// MaxMessageLen is the maximum chat message length in characters,
	// counted after trimming.
	MaxMessageLen = 120

	// BubbleTTL is how long a message stays eligible for bubble rendering.
	BubbleTTL = 5000 * time.Millisecond

	// SendCooldown is the minimum interval between sends by one sender.
	SendCooldown = 3000 * time.Millisecond
)

// Point is a position in arena coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Len returns the Euclidean length of p treated as a vector.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Clamp returns the nearest point whose avatar fits entirely inside the
// arena: AvatarHalf ≤ x ≤ Width−AvatarHalf, AvatarHalf ≤ y ≤ Height−AvatarHalf.
func Clamp(p Point) Point {
	return Point{
		X: clampAxis(p.X, AvatarHalf, Width-AvatarHalf),
		Y: clampAxis(p.Y, AvatarHalf, Height-AvatarHalf),
	}
}

// Finite reports whether both coordinates are finite numbers. NaN or ±Inf
// coordinates cannot be clamped meaningfully and are rejected upstream.
func Finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func clampAxis(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
