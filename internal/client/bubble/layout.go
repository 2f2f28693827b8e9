/*
Package bubble computes speech-bubble placement and word-wrapped text blocks.

This file is the layout engine proper: given one member's live messages
(newest first) and their current avatar position, it produces a vertical
stack of non-overlapping bubbles, most recent closest to the avatar, each
anchored to the avatar's x-coordinate by a downward-pointing triangle.
*/
package bubble

import (
	"strings"

	"plaza/internal/app/arena"
	"plaza/internal/app/room"
)

const (
	// MaxTextWidth is the maximum pixel width of a wrapped text line.
	MaxTextWidth = 150.0

	// PadX and PadY are the bubble padding around the text block.
	PadX = 6.0
	PadY = 4.0

	// PointerHeight is the height of the triangle anchoring a bubble to
	// the avatar, and PointerHalf its half-width at the bubble edge.
	PointerHeight = 6.0
	PointerHalf   = 4.0

	// StackGap is the vertical gap between stacked bubbles.
	StackGap = 5.0
)

// Rect is an axis-aligned rectangle with a top-left origin.
type Rect struct {
	X, Y, W, H float64
}

// Bottom returns the rectangle's bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Overlaps reports whether two rectangles intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Bubble is one placed speech bubble.
type Bubble struct {
	// Message is the message this bubble displays.
	Message room.Message

	// Lines is the word-wrapped text, top to bottom.
	Lines []string

	// Rect is the bubble rectangle.
	Rect Rect

	// Pointer is the downward triangle anchoring the bubble: tip at the
	// avatar's x-coordinate, base on the bubble's bottom edge.
	Pointer [3]arena.Point

	// Index is the bubble's rank in the placed stack; 0 is the most
	// recent and sits closest to the avatar.
	Index int
}

// WrapText greedily wraps text into lines whose advance fits maxWidth.
// A single word wider than maxWidth is placed on its own line unshortened;
// the returned width then exceeds maxWidth. The second return value is the
// widest resulting line in pixels.
func WrapText(m Measurer, text string, maxWidth float64) ([]string, float64) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, 0
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		candidate := current + " " + word
		if m.Advance(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	lines = append(lines, current)

	var width float64
	for _, line := range lines {
		if w := m.Advance(line); w > width {
			width = w
		}
	}
	return lines, width
}

// Layout places bubbles for one member's live messages, given newest
// first. Bubbles stack upward from the avatar with no overlap; each one's
// pointer tip rests at the avatar's x-coordinate.
func Layout(m Measurer, msgs []room.Message, avatar arena.Point) []Bubble {
	bubbles := make([]Bubble, 0, len(msgs))

	// The first bubble's bottom edge clears the avatar and its pointer.
	offset := arena.AvatarHalf + PointerHeight

	for _, msg := range msgs {
		lines, textWidth := WrapText(m, msg.Text, MaxTextWidth)
		if len(lines) == 0 {
			continue
		}

		w := textWidth + 2*PadX
		h := float64(len(lines))*m.LineHeight() + 2*PadY

		rect := Rect{
			X: avatar.X - w/2,
			Y: avatar.Y - offset - h,
			W: w,
			H: h,
		}

		pointer := [3]arena.Point{
			{X: avatar.X - PointerHalf, Y: rect.Bottom()},
			{X: avatar.X + PointerHalf, Y: rect.Bottom()},
			{X: avatar.X, Y: rect.Bottom() + PointerHeight},
		}

		bubbles = append(bubbles, Bubble{
			Message: msg,
			Lines:   lines,
			Rect:    rect,
			Pointer: pointer,
			Index:   len(bubbles),
		})

		offset += h + StackGap
	}

	return bubbles
}
