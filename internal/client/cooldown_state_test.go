package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"plaza/internal/app/arena"
	"plaza/internal/pkg/clock"
)

func TestCooldownStateLifecycle(t *testing.T) {
	clk := clock.NewMock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	c := NewCooldownState(clk)

	assert.True(t, c.Ready())
	assert.Zero(t, c.Remaining())

	c.Start()
	assert.False(t, c.Ready())
	assert.Equal(t, arena.SendCooldown, c.Remaining())

	clk.Advance(time.Second)
	assert.Equal(t, 2*time.Second, c.Remaining())

	clk.Advance(2 * time.Second)
	assert.True(t, c.Ready())
}

func TestCooldownStateStartForOverridesWindow(t *testing.T) {
	clk := clock.NewMock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	c := NewCooldownState(clk)

	c.StartFor(500 * time.Millisecond)
	assert.Equal(t, 500*time.Millisecond, c.Remaining())

	clk.Advance(501 * time.Millisecond)
	assert.True(t, c.Ready())
}
