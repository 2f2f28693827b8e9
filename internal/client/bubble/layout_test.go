package bubble

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plaza/internal/app/arena"
	"plaza/internal/app/room"
)

// mono makes wrap boundaries exact: 10px per rune, 15 runes per line at
// the default MaxTextWidth of 150.
var mono = FixedMeasurer{RuneWidth: 10, LineSpan: 12}

func liveMessages(texts ...string) []room.Message {
	base := time.Now()
	msgs := make([]room.Message, len(texts))
	for i, text := range texts {
		msgs[i] = room.Message{
			ID:        text,
			SenderID:  "u1",
			Text:      text,
			CreatedAt: base.Add(-time.Duration(i) * time.Second),
		}
	}
	return msgs
}

func TestWrapTextSingleLine(t *testing.T) {
	lines, width := WrapText(mono, "hello world", MaxTextWidth)
	require.Equal(t, []string{"hello world"}, lines)
	assert.Equal(t, 110.0, width)
}

func TestWrapTextBreaksAtWordBoundaries(t *testing.T) {
	// "aaaa bbbb cccc dddd" is 19 runes; "aaaa bbbb cccc" is 14 and fits,
	// adding " dddd" would make 19 and overflow.
	lines, width := WrapText(mono, "aaaa bbbb cccc dddd", MaxTextWidth)
	require.Equal(t, []string{"aaaa bbbb cccc", "dddd"}, lines)
	assert.Equal(t, 140.0, width)
}

func TestWrapTextOverWideWordGetsOwnLine(t *testing.T) {
	long := strings.Repeat("x", 20)
	lines, width := WrapText(mono, "hi "+long+" bye", MaxTextWidth)

	require.Equal(t, []string{"hi", long, "bye"}, lines)
	// The un-breakable word pushes the width past the wrap limit.
	assert.Equal(t, 200.0, width)
	assert.Greater(t, width, MaxTextWidth)
}

func TestWrapTextCollapsesWhitespace(t *testing.T) {
	lines, _ := WrapText(mono, "  hello \t world  ", MaxTextWidth)
	assert.Equal(t, []string{"hello world"}, lines)

	lines, width := WrapText(mono, "   ", MaxTextWidth)
	assert.Nil(t, lines)
	assert.Zero(t, width)
}

func TestLayoutSingleBubbleGeometry(t *testing.T) {
	avatar := arena.Point{X: 300, Y: 150}

	bubbles := Layout(mono, liveMessages("hello"), avatar)
	require.Len(t, bubbles, 1)

	b := bubbles[0]
	assert.Equal(t, 0, b.Index)

	// 5 runes at 10px plus padding.
	assert.Equal(t, 62.0, b.Rect.W)
	assert.Equal(t, 20.0, b.Rect.H)

	// Horizontally centered on the avatar.
	assert.Equal(t, avatar.X-b.Rect.W/2, b.Rect.X)

	// Bottom edge clears the avatar and the pointer.
	assert.Equal(t, avatar.Y-arena.AvatarHalf-PointerHeight, b.Rect.Bottom())

	// Pointer tip rests at the avatar's x, pointing down.
	assert.Equal(t, avatar.X, b.Pointer[2].X)
	assert.Equal(t, b.Rect.Bottom()+PointerHeight, b.Pointer[2].Y)
	assert.Equal(t, b.Rect.Bottom(), b.Pointer[0].Y)
	assert.Equal(t, b.Rect.Bottom(), b.Pointer[1].Y)
}

func TestLayoutStacksNewestClosestWithoutOverlap(t *testing.T) {
	avatar := arena.Point{X: 300, Y: 250}

	bubbles := Layout(mono, liveMessages(
		"newest",
		"aaaa bbbb cccc dddd eeee",
		"oldest message here",
	), avatar)
	require.Len(t, bubbles, 3)

	// Index 0 sits closest to the avatar, each older bubble strictly above.
	for i := 1; i < len(bubbles); i++ {
		assert.Less(t, bubbles[i].Rect.Bottom(), bubbles[i-1].Rect.Y,
			"bubble %d must clear the gap above bubble %d", i, i-1)
	}

	for i := 0; i < len(bubbles); i++ {
		for j := i + 1; j < len(bubbles); j++ {
			assert.False(t, bubbles[i].Rect.Overlaps(bubbles[j].Rect),
				"bubbles %d and %d overlap", i, j)
		}
	}
}

func TestLayoutStackAccountsForVaryingHeights(t *testing.T) {
	avatar := arena.Point{X: 300, Y: 250}

	// The middle message wraps to multiple lines; the stack must step by
	// each bubble's own height, not a fixed stride.
	msgs := liveMessages(
		"short",
		strings.Repeat("word ", 10)+"tall",
		"also short",
	)
	bubbles := Layout(mono, msgs, avatar)
	require.Len(t, bubbles, 3)

	assert.Greater(t, bubbles[1].Rect.H, bubbles[0].Rect.H)

	gap := bubbles[1].Rect.Bottom() - bubbles[0].Rect.Y
	assert.InDelta(t, -StackGap, gap, 1e-9)

	gap = bubbles[2].Rect.Bottom() - bubbles[1].Rect.Y
	assert.InDelta(t, -StackGap, gap, 1e-9)
}

func TestLayoutSkipsEmptyText(t *testing.T) {
	avatar := arena.Point{X: 300, Y: 150}

	msgs := liveMessages("visible", "   ")
	bubbles := Layout(mono, msgs, avatar)

	require.Len(t, bubbles, 1)
	assert.Equal(t, "visible", bubbles[0].Message.Text)
}

func TestLayoutIndexContiguousAcrossSkippedMessages(t *testing.T) {
	avatar := arena.Point{X: 300, Y: 250}

	// The blank message in the middle places no bubble; the ranks of the
	// placed bubbles must still run 0, 1 with no gap.
	bubbles := Layout(mono, liveMessages("newest", "   ", "oldest"), avatar)
	require.Len(t, bubbles, 2)

	assert.Equal(t, 0, bubbles[0].Index)
	assert.Equal(t, 1, bubbles[1].Index)
}
