package client

import (
	"sync"
	"time"

	"plaza/internal/app/arena"
	"plaza/internal/pkg/clock"
)

// CooldownState mirrors the server's send cooldown on the client so the
// send control can be disabled and a countdown shown without a round trip.
// The server remains the enforcing side; this is presentation state.
type CooldownState struct {
	mu    sync.Mutex
	clk   clock.Clock
	until time.Time
}

// NewCooldownState creates a ready CooldownState.
func NewCooldownState(clk clock.Clock) *CooldownState {
	return &CooldownState{clk: clk}
}

// Ready reports whether a send attempt would currently be allowed.
func (c *CooldownState) Ready() bool {
	return c.Remaining() == 0
}

// Remaining returns the time left in the cooldown window, zero when ready.
func (c *CooldownState) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	left := c.until.Sub(c.clk.Now())
	if left < 0 {
		return 0
	}
	return left
}

// Start begins a full cooldown window, called after a successful send.
func (c *CooldownState) Start() {
	c.StartFor(arena.SendCooldown)
}

// StartFor begins a window of the given length, used when the server
// rejects a send and reports the remaining wait.
func (c *CooldownState) StartFor(d time.Duration) {
	c.mu.Lock()
	c.until = c.clk.Now().Add(d)
	c.mu.Unlock()
}
