/*
Package client implements the per-session room client engine.

This file defines the Session, which owns all mutable per-client state:
the local optimistic position, the held-key set and pending target, the
cooldown mirror, and the cached server snapshot maintained by the polling
synchronization loop. Nothing here is a process-wide singleton; multiple
sessions run isolated in one process.
*/
package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"plaza/internal/app/arena"
	"plaza/internal/app/room"
	"plaza/internal/pkg/clock"
	"plaza/internal/pkg/logx"
)

// PollInterval is the synchronization cadence. It is independent of the
// animation tick rate; rendering runs from the cached snapshot between
// polls.
const PollInterval = 1000 * time.Millisecond

// ErrSendCooldown is returned by Send while the local cooldown mirror is
// running. The attempt never reaches the network.
var ErrSendCooldown = errors.New("client: send cooldown active")

// Sender submits a chat message. Implemented by the HTTP transport and by
// test fakes.
type Sender interface {
	Send(text string) (*room.Message, error)
}

// Transport is the full server boundary a session needs.
type Transport interface {
	Fetcher
	Pusher
	Sender
}

// Session is one member's presence in the room.
type Session struct {
	id        room.Identity
	movement  *Movement
	cooldown  *CooldownState
	transport Transport
	clk       clock.Clock
	logger    zerolog.Logger

	mu       sync.RWMutex
	snapshot RoomSnapshot
	started  bool

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewSession creates a Session for the given identity, starting at the
// arena center.
func NewSession(id room.Identity, transport Transport, clk clock.Clock) *Session {
	return &Session{
		id:        id,
		movement:  NewMovement(arena.Point{X: arena.Width / 2, Y: arena.Height / 2}),
		cooldown:  NewCooldownState(clk),
		transport: transport,
		clk:       clk,
		logger:    logx.With("session").With().Str("user_id", id.ID).Logger(),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Movement returns the session's movement controller.
func (s *Session) Movement() *Movement {
	return s.movement
}

// Cooldown returns the session's client-side cooldown mirror.
func (s *Session) Cooldown() *CooldownState {
	return s.cooldown
}

// Identity returns the session's member identity.
func (s *Session) Identity() room.Identity {
	return s.id
}

// Start launches the polling synchronization loop. It requires an
// established identity and must be balanced by Stop (or context
// cancellation) when the room is exited, or the timer leaks and the
// session keeps polling after navigation away.
func (s *Session) Start(ctx context.Context) error {
	if s.id.ID == "" {
		return room.ErrIdentityRequired
	}

	s.mu.Lock()
	s.started = true
	s.mu.Unlock()

	go s.pollLoop(ctx)
	return nil
}

// Stop deterministically terminates the polling loop and waits for the
// timer to be released. Safe to call more than once, and safe when Start
// never ran or failed; there is no loop to wait for then.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})

	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()

	if started {
		<-s.done
	}
}

func (s *Session) pollLoop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	// Immediate first pull so the room is populated before the first
	// scheduled tick.
	s.syncOnce()

	for {
		select {
		case <-ticker.C:
			s.syncOnce()
		case <-ctx.Done():
			s.logger.Info().Msg("Context cancelled. Polling loop stopped.")
			return
		case <-s.stop:
			s.logger.Info().Msg("Session stopped. Polling loop stopped.")
			return
		}
	}
}

// syncOnce pulls the full server state and replaces the cached snapshot
// wholesale. A failed fetch keeps the previous snapshot in effect; the
// next tick is the retry.
func (s *Session) syncOnce() {
	snap, err := s.transport.Fetch()
	if err != nil {
		s.logger.Warn().Err(err).Msg("Poll failed. Keeping last-known room state.")
		return
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
}

// Snapshot returns the cached room state from the last successful poll.
func (s *Session) Snapshot() RoomSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Tick advances the local movement by one animation tick. When the
// position changed it is pushed to the server asynchronously; rendering
// uses the returned optimistic position immediately and never waits for
// the acknowledgement.
func (s *Session) Tick() arena.Point {
	pos, changed := s.movement.Step()

	if changed {
		go func() {
			if err := s.transport.Push(pos.X, pos.Y); err != nil {
				s.logger.Warn().Err(err).Msg("Position push failed. Next movement report retries.")
			}
		}()
	}

	return pos
}

// Send submits a chat message. The local cooldown mirror rejects early
// while running; on a successful send it restarts for the full window.
// Whitespace-only text is a silent no-op, mirroring the server.
func (s *Session) Send(text string) (*room.Message, error) {
	if !s.cooldown.Ready() {
		return nil, ErrSendCooldown
	}

	msg, err := s.transport.Send(text)
	if err != nil {
		// A server-side rejection means the mirror drifted; resync it
		// from the server-reported remaining wait.
		var rl *RateLimitedError
		if errors.As(err, &rl) {
			s.cooldown.StartFor(rl.Remaining)
		}
		return nil, err
	}
	if msg == nil {
		return nil, nil
	}

	s.cooldown.Start()
	return msg, nil
}

// LiveMessages returns the given member's messages still within their
// bubble lifetime, newest first, evaluated against the cached snapshot.
func (s *Session) LiveMessages(userID string) []room.Message {
	now := s.clk.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []room.Message
	for i := len(s.snapshot.Messages) - 1; i >= 0; i-- {
		msg := s.snapshot.Messages[i]
		if msg.SenderID != userID || !msg.Live(now) {
			continue
		}
		out = append(out, msg)
	}
	return out
}
