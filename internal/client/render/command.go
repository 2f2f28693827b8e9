/*
Package render turns room state into an ordered list of drawing commands.

The engine never draws directly; a backend (2D canvas, SVG builder, or a
test harness) consumes the command list. This keeps the render pass a pure
function of its inputs and makes frame content assertable in tests.
*/
package render

// Op identifies the drawing primitive a Command carries.
type Op string

const (
	OpCircle Op = "circle"
	OpRect   Op = "rect"
	OpText   Op = "text"
	OpLine   Op = "line"
)

// Command is one drawing instruction. Only the fields relevant to the Op
// are set: circles use X/Y/R, rects X/Y/W/H, text X/Y/Text, lines
// X/Y/X2/Y2. Fill distinguishes filled shapes from outlines.
type Command struct {
	Op    Op      `json:"op"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	X2    float64 `json:"x2,omitempty"`
	Y2    float64 `json:"y2,omitempty"`
	R     float64 `json:"r,omitempty"`
	W     float64 `json:"w,omitempty"`
	H     float64 `json:"h,omitempty"`
	Text  string  `json:"text,omitempty"`
	Color string  `json:"color"`
	Fill  bool    `json:"fill,omitempty"`
}
