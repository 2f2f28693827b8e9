/*
Package room contains the server-side core of the shared presence room.

This file defines the Service, the single entry point the HTTP layer talks
to. It composes the position registry, the message log, the send cooldown,
and the optional durable store.
*/
package room

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"plaza/internal/app/arena"
	"plaza/internal/pkg/clock"
	"plaza/internal/pkg/colorx"
	"plaza/internal/pkg/logx"
)

// persistTimeout bounds each fire-and-forget store write so a hung
// database cannot pile up goroutines forever.
const persistTimeout = 5 * time.Second

// Service is the authoritative room state and its operations.
type Service struct {
	registry *Registry
	log      *Log
	cooldown *Cooldown
	store    Store
	clk      clock.Clock

	// staleAfter filters registry snapshots by last-seen age.
	// Zero keeps every record forever, matching the reference behavior.
	staleAfter time.Duration

	logger zerolog.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithStaleCutoff makes Positions omit members whose last report is older
// than maxAge.
func WithStaleCutoff(maxAge time.Duration) Option {
	return func(s *Service) { s.staleAfter = maxAge }
}

// WithCooldownWindow overrides the send cooldown window.
func WithCooldownWindow(window time.Duration) Option {
	return func(s *Service) { s.cooldown = NewCooldownWindow(window) }
}

// NewService creates a Service. The store may be nil, in which case the
// room is memory-only and empties on restart.
func NewService(store Store, clk clock.Clock, opts ...Option) *Service {
	s := &Service{
		registry: NewRegistry(),
		log:      NewLog(),
		cooldown: NewCooldown(),
		store:    store,
		clk:      clk,
		logger:   logx.With("room"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Restore reloads last-known positions and the persisted message log from
// the store, so a server restart does not empty the room. Missing store is
// a no-op.
func (s *Service) Restore(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	recs, err := s.store.LoadPositions(ctx)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		s.registry.Restore(rec)
	}

	msgs, err := s.store.LoadMessages(ctx, time.Time{})
	if err != nil {
		return err
	}
	s.log.Restore(msgs)

	s.logger.Info().
		Int("positions", len(recs)).
		Int("messages", len(msgs)).
		Msg("Room state restored from store.")

	return nil
}

// ReportPosition upserts the member's position and schedules the durable
// write. The returned record carries the clamped coordinates actually
// stored.
func (s *Service) ReportPosition(id Identity, p arena.Point) (PositionRecord, error) {
	rec, err := s.registry.Upsert(id, p, s.clk.Now())
	if err != nil {
		return PositionRecord{}, err
	}

	s.persistPosition(rec)

	return rec, nil
}

// Positions returns the current snapshot of every member's position,
// filtered by the staleness cutoff when one is configured.
func (s *Service) Positions() []PositionRecord {
	return s.registry.Snapshot(s.clk.Now(), s.staleAfter)
}

// Send validates, stamps, and appends a chat message from the given member.
// A whitespace-only text is a silent no-op returning (nil, nil).
// ErrCooldownActive is returned while the sender's cooldown runs; the
// cooldown only restarts on an otherwise-valid send.
func (s *Service) Send(id Identity, text string) (*Message, error) {
	if id.ID == "" {
		return nil, ErrIdentityRequired
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if len([]rune(text)) > arena.MaxMessageLen {
		return nil, ErrMessageTooLong
	}

	now := s.clk.Now()

	if !s.cooldown.TryConsume(id.ID, now) {
		return nil, ErrCooldownActive
	}

	// Position snapshot at send time, fixed forever. A member who never
	// reported a position speaks from the arena center.
	pos := arena.Point{X: arena.Width / 2, Y: arena.Height / 2}
	if rec, ok := s.registry.Get(id.ID); ok {
		pos = rec.Pos()
	}

	msg := Message{
		ID:          uuid.New().String(),
		SenderID:    id.ID,
		SenderName:  id.Name(),
		SenderColor: colorx.ForUser(id.ID),
		Text:        text,
		X:           pos.X,
		Y:           pos.Y,
		CreatedAt:   now,
	}

	s.log.Append(msg)
	s.persistMessage(msg)

	return &msg, nil
}

// CooldownRemaining returns how long the member must wait before the next
// send. Zero means ready.
func (s *Service) CooldownRemaining(userID string) time.Duration {
	return s.cooldown.Remaining(userID, s.clk.Now())
}

// Messages returns the log, CreatedAt ascending, optionally restricted to
// messages created after cutoff (zero = full log, the reference behavior).
func (s *Service) Messages(cutoff time.Time) []Message {
	return s.log.Since(cutoff)
}

// LiveBubbles returns the member's messages still within their bubble
// lifetime, newest first.
func (s *Service) LiveBubbles(userID string) []Message {
	return s.log.LiveBySender(userID, s.clk.Now())
}

func (s *Service) persistPosition(rec PositionRecord) {
	if s.store == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		if err := s.store.SavePosition(ctx, rec); err != nil {
			s.logger.Warn().
				Err(err).
				Str("user_id", rec.UserID).
				Msg("Failed to persist position. In-memory state remains authoritative.")
		}
	}()
}

func (s *Service) persistMessage(msg Message) {
	if s.store == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		if err := s.store.AppendMessage(ctx, msg); err != nil {
			s.logger.Warn().
				Err(err).
				Str("message_id", msg.ID).
				Msg("Failed to persist message. In-memory state remains authoritative.")
		}
	}()
}
