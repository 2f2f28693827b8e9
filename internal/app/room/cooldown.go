/*
Package room contains the server-side core of the shared presence room.

This file defines the per-sender send cooldown gate. Each sender gets a
token bucket holding one token that refills every SendCooldown, so a
successful send opens a fixed window during which further attempts fail.
Attempts during the window are rejected, never queued.
*/
package room

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"plaza/internal/app/arena"
)

// cooldownSweepThreshold is the map size above which idle sender limiters
// are swept on the next consume.
const cooldownSweepThreshold = 1024

// Cooldown gates how often each sender may append to the message log.
type Cooldown struct {
	// mu protects concurrent access to the limits map.
	mu sync.RWMutex

	// limits maps a sender ID to its *rate.Limiter instance.
	limits map[string]*rate.Limiter

	// window is the cooldown duration started by a successful consume.
	window time.Duration
}

// NewCooldown creates a Cooldown with the standard send window.
func NewCooldown() *Cooldown {
	return NewCooldownWindow(arena.SendCooldown)
}

// NewCooldownWindow creates a Cooldown with a custom window.
func NewCooldownWindow(window time.Duration) *Cooldown {
	return &Cooldown{
		limits: make(map[string]*rate.Limiter),
		window: window,
	}
}

// TryConsume reports whether the sender may send at the given instant.
// On success the sender's cooldown window restarts; on failure no state
// changes. Time is passed in rather than read, so the gate follows the
// injected clock.
func (c *Cooldown) TryConsume(senderID string, now time.Time) bool {
	limiter := c.getLimiter(senderID, now)

	ok := limiter.AllowN(now, 1)

	if ok {
		c.maybeSweep(now)
	}
	return ok
}

// Remaining returns how long the sender must still wait at the given
// instant. Zero means the sender is ready.
func (c *Cooldown) Remaining(senderID string, now time.Time) time.Duration {
	c.mu.RLock()
	limiter, exists := c.limits[senderID]
	c.mu.RUnlock()

	if !exists {
		return 0
	}

	tokens := limiter.TokensAt(now)
	if tokens >= 1 {
		return 0
	}

	return time.Duration((1 - tokens) * float64(c.window))
}

// getLimiter returns the sender's limiter, creating it on first use with a
// full bucket. Double-checked locking keeps creation concurrent-safe.
func (c *Cooldown) getLimiter(senderID string, now time.Time) *rate.Limiter {
	c.mu.RLock()
	limiter, exists := c.limits[senderID]
	c.mu.RUnlock()

	if !exists {
		c.mu.Lock()
		limiter, exists = c.limits[senderID]
		if !exists {
			limiter = rate.NewLimiter(rate.Every(c.window), 1)
			c.limits[senderID] = limiter
		}
		c.mu.Unlock()
	}

	return limiter
}

// maybeSweep drops limiters whose bucket has refilled, once the map grows
// past the threshold. A full bucket means the sender has been idle for at
// least a whole window and will be recreated full on their next send.
func (c *Cooldown) maybeSweep(now time.Time) {
	c.mu.RLock()
	size := len(c.limits)
	c.mu.RUnlock()

	if size <= cooldownSweepThreshold {
		return
	}

	c.mu.Lock()
	for id, limiter := range c.limits {
		if limiter.TokensAt(now) >= float64(limiter.Burst()) {
			delete(c.limits, id)
		}
	}
	c.mu.Unlock()
}
