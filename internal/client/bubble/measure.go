/*
Package bubble computes speech-bubble placement and word-wrapped text
blocks for the messages still within their display lifetime.

This file defines text measurement. Wrapping decisions depend on the
rendering font, so measurement is an interface: a real font face for
drawing backends, a fixed-advance measurer for headless use and tests.
*/
package bubble

import (
	"golang.org/x/image/font"
)

// Measurer reports pixel metrics for the rendering font.
type Measurer interface {
	// Advance returns the horizontal extent of s in pixels.
	Advance(s string) float64

	// LineHeight returns the vertical extent of one text line in pixels.
	LineHeight() float64
}

// FaceMeasurer measures against a real font.Face.
type FaceMeasurer struct {
	Face font.Face
}

// Advance returns the advance width of s in pixels.
func (m FaceMeasurer) Advance(s string) float64 {
	return float64(font.MeasureString(m.Face, s)) / 64
}

// LineHeight returns the face's line height in pixels.
func (m FaceMeasurer) LineHeight() float64 {
	return float64(m.Face.Metrics().Height) / 64
}

// FixedMeasurer assumes every rune advances by the same width, which holds
// for monospace rendering and makes wrap behavior exactly predictable in
// tests.
type FixedMeasurer struct {
	RuneWidth float64
	LineSpan  float64
}

// Advance returns len(s) in runes times the fixed rune width.
func (m FixedMeasurer) Advance(s string) float64 {
	return float64(len([]rune(s))) * m.RuneWidth
}

// LineHeight returns the fixed line span.
func (m FixedMeasurer) LineHeight() float64 {
	return m.LineSpan
}
