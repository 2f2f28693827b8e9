package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plaza/internal/app/arena"
)

func TestDiscreteMovementAccumulatesPerTick(t *testing.T) {
	m := NewMovement(arena.Point{X: 300, Y: 150})
	m.Press(DirRight)

	for k := 1; k <= 100; k++ {
		pos, _ := m.Step()

		want := 300 + arena.MoveSpeed*float64(k)
		if want > arena.Width-arena.AvatarHalf {
			want = arena.Width - arena.AvatarHalf
		}
		assert.Equal(t, want, pos.X, "tick %d", k)
		assert.Equal(t, 150.0, pos.Y)
	}

	// Pinned at the boundary, further ticks no longer change position.
	pos, changed := m.Step()
	assert.Equal(t, arena.Width-arena.AvatarHalf, pos.X)
	assert.False(t, changed)
}

func TestDiscreteDiagonalComposesAdditively(t *testing.T) {
	m := NewMovement(arena.Point{X: 300, Y: 150})
	m.Press(DirRight)
	m.Press(DirDown)

	pos, changed := m.Step()
	assert.True(t, changed)
	assert.Equal(t, arena.Point{X: 304, Y: 154}, pos)
}

func TestOpposedDirectionsCancel(t *testing.T) {
	m := NewMovement(arena.Point{X: 300, Y: 150})
	m.Press(DirLeft)
	m.Press(DirRight)

	pos, changed := m.Step()
	assert.False(t, changed)
	assert.Equal(t, arena.Point{X: 300, Y: 150}, pos)
}

func TestReleaseStopsMovement(t *testing.T) {
	m := NewMovement(arena.Point{X: 300, Y: 150})
	m.Press(DirUp)
	m.Step()
	m.Release(DirUp)

	_, changed := m.Step()
	assert.False(t, changed)
}

func TestTargetApproachStepsAndSnaps(t *testing.T) {
	m := NewMovement(arena.Point{X: 400, Y: 300})
	start := m.Pos() // clamped to (400, 294)

	target := arena.Point{X: 100, Y: 100}
	m.SetTarget(target)

	prev := target.Sub(start).Len()
	for i := 0; i < 10000; i++ {
		pos, _ := m.Step()

		if !m.HasTarget() {
			// The final tick snaps exactly onto the target.
			assert.Equal(t, target, pos)
			return
		}

		dist := target.Sub(pos).Len()
		require.InDelta(t, prev-arena.MoveSpeed, dist, 1e-6, "distance must shrink by exactly the move speed")
		prev = dist
	}

	t.Fatal("target was never reached")
}

func TestTargetWithinSnapDistanceClearsWithoutMoving(t *testing.T) {
	m := NewMovement(arena.Point{X: 200, Y: 200})
	m.SetTarget(arena.Point{X: 200.5, Y: 200})

	pos, changed := m.Step()
	assert.False(t, changed)
	assert.Equal(t, arena.Point{X: 200, Y: 200}, pos)
	assert.False(t, m.HasTarget())
}

func TestNewTargetOverridesPrevious(t *testing.T) {
	m := NewMovement(arena.Point{X: 100, Y: 100})
	m.SetTarget(arena.Point{X: 500, Y: 100})
	m.Step()

	m.SetTarget(arena.Point{X: 100, Y: 250})
	pos, _ := m.Step()

	// Movement now heads toward the replacement target.
	assert.Less(t, pos.X, 104.1)
	assert.Greater(t, pos.Y, 100.0)
}

func TestHeldKeysWinOverPendingTarget(t *testing.T) {
	m := NewMovement(arena.Point{X: 300, Y: 150})
	m.SetTarget(arena.Point{X: 100, Y: 100})
	m.Press(DirRight)

	pos, _ := m.Step()
	assert.Equal(t, 304.0, pos.X)
	assert.True(t, m.HasTarget(), "target survives until keys are released")
}

func TestTargetOutsideArenaClearsOncePinned(t *testing.T) {
	m := NewMovement(arena.Point{X: 10, Y: 150})
	m.SetTarget(arena.Point{X: -500, Y: 150})

	// The chase reaches the boundary, then the clamp pins it in place;
	// the unreachable target must be dropped at that point.
	for i := 0; i < 10 && m.HasTarget(); i++ {
		m.Step()
	}

	assert.False(t, m.HasTarget())
	assert.Equal(t, arena.Point{X: arena.AvatarHalf, Y: 150}, m.Pos())

	_, changed := m.Step()
	assert.False(t, changed)
}

func TestTargetMovementClampsAtBounds(t *testing.T) {
	m := NewMovement(arena.Point{X: 10, Y: 10})
	m.SetTarget(arena.Point{X: -500, Y: -500})

	for i := 0; i < 50 && m.HasTarget(); i++ {
		m.Step()
	}

	pos := m.Pos()
	assert.GreaterOrEqual(t, pos.X, arena.AvatarHalf)
	assert.GreaterOrEqual(t, pos.Y, arena.AvatarHalf)
}
