package room

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plaza/internal/app/arena"
	"plaza/internal/pkg/clock"
)

// memStore is an in-memory Store for service tests.
type memStore struct {
	mu        sync.Mutex
	positions map[string]PositionRecord
	messages  []Message
}

func newMemStore() *memStore {
	return &memStore{positions: make(map[string]PositionRecord)}
}

func (s *memStore) SavePosition(_ context.Context, rec PositionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[rec.UserID] = rec
	return nil
}

func (s *memStore) AppendMessage(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return nil
}

func (s *memStore) LoadPositions(_ context.Context) ([]PositionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PositionRecord, 0, len(s.positions))
	for _, rec := range s.positions {
		out = append(out, rec)
	}
	return out, nil
}

func (s *memStore) LoadMessages(_ context.Context, _ time.Time) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

func newTestService() (*Service, *clock.Mock) {
	clk := clock.NewMock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	return NewService(nil, clk), clk
}

func TestSendValidatesText(t *testing.T) {
	s, _ := newTestService()

	// Whitespace-only text is a silent no-op.
	msg, err := s.Send(alice, "   \t  ")
	assert.NoError(t, err)
	assert.Nil(t, msg)
	assert.Empty(t, s.Messages(time.Time{}))

	// Over-length text is rejected.
	_, err = s.Send(alice, strings.Repeat("x", arena.MaxMessageLen+1))
	assert.ErrorIs(t, err, ErrMessageTooLong)

	// Exactly the limit, after trimming, is accepted.
	msg, err = s.Send(alice, "  "+strings.Repeat("x", arena.MaxMessageLen)+"  ")
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Len(t, []rune(msg.Text), arena.MaxMessageLen)
}

func TestSendRequiresIdentity(t *testing.T) {
	s, _ := newTestService()

	_, err := s.Send(Identity{}, "hello")
	assert.ErrorIs(t, err, ErrIdentityRequired)
}

func TestSendEnforcesCooldown(t *testing.T) {
	s, clk := newTestService()

	_, err := s.Send(alice, "first")
	require.NoError(t, err)

	clk.Advance(1000 * time.Millisecond)
	_, err = s.Send(alice, "too soon")
	assert.ErrorIs(t, err, ErrCooldownActive)
	assert.Greater(t, s.CooldownRemaining(alice.ID), time.Duration(0))

	clk.Advance(2001 * time.Millisecond)
	_, err = s.Send(alice, "second")
	assert.NoError(t, err)

	// Only the valid sends reached the log.
	assert.Len(t, s.Messages(time.Time{}), 2)
}

func TestSendFailedValidationDoesNotConsumeCooldown(t *testing.T) {
	s, _ := newTestService()

	_, err := s.Send(alice, strings.Repeat("x", 500))
	require.ErrorIs(t, err, ErrMessageTooLong)

	// The rejected send must not have started a window.
	_, err = s.Send(alice, "hello")
	assert.NoError(t, err)
}

func TestSendSnapshotsSenderPosition(t *testing.T) {
	s, _ := newTestService()

	_, err := s.ReportPosition(alice, arena.Point{X: 300, Y: 150})
	require.NoError(t, err)

	msg, err := s.Send(alice, "hi")
	require.NoError(t, err)
	assert.Equal(t, 300.0, msg.X)
	assert.Equal(t, 150.0, msg.Y)

	// Moving afterwards must not rewrite the snapshot.
	_, err = s.ReportPosition(alice, arena.Point{X: 10, Y: 10})
	require.NoError(t, err)

	logged := s.Messages(time.Time{})
	require.Len(t, logged, 1)
	assert.Equal(t, 300.0, logged[0].X)
	assert.Equal(t, 150.0, logged[0].Y)
}

func TestRoomConvergenceScenario(t *testing.T) {
	// User A at (300,150) sends "hi" at t=0. An observer polling at
	// t=1000ms sees the message in both the log and the live-bubble set;
	// polling again at t=5500ms sees it only in the log.
	s, clk := newTestService()

	_, err := s.ReportPosition(alice, arena.Point{X: 300, Y: 150})
	require.NoError(t, err)

	msg, err := s.Send(alice, "hi")
	require.NoError(t, err)
	require.NotNil(t, msg)

	clk.Advance(1000 * time.Millisecond)

	log := s.Messages(time.Time{})
	require.Len(t, log, 1)
	assert.Equal(t, "hi", log[0].Text)

	bubbles := s.LiveBubbles(alice.ID)
	require.Len(t, bubbles, 1)
	assert.Equal(t, msg.ID, bubbles[0].ID)

	clk.Advance(4500 * time.Millisecond)

	assert.Len(t, s.Messages(time.Time{}), 1)
	assert.Empty(t, s.LiveBubbles(alice.ID))
}

func TestServicePersistsAndRestores(t *testing.T) {
	store := newMemStore()
	clk := clock.NewMock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s := NewService(store, clk)

	_, err := s.ReportPosition(alice, arena.Point{X: 42, Y: 42})
	require.NoError(t, err)
	_, err = s.Send(alice, "durable")
	require.NoError(t, err)

	// Persistence is fire-and-forget; wait for the writes to land.
	require.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.positions) == 1 && len(store.messages) == 1
	}, time.Second, 5*time.Millisecond)

	restarted := NewService(store, clk)
	require.NoError(t, restarted.Restore(context.Background()))

	positions := restarted.Positions()
	require.Len(t, positions, 1)
	assert.Equal(t, 42.0, positions[0].X)

	msgs := restarted.Messages(time.Time{})
	require.Len(t, msgs, 1)
	assert.Equal(t, "durable", msgs[0].Text)
}

func TestPositionsHonorsStaleCutoffOption(t *testing.T) {
	clk := clock.NewMock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s := NewService(nil, clk, WithStaleCutoff(30*time.Second))

	_, err := s.ReportPosition(alice, arena.Point{X: 100, Y: 100})
	require.NoError(t, err)

	assert.Len(t, s.Positions(), 1)

	clk.Advance(31 * time.Second)
	assert.Empty(t, s.Positions())
}
