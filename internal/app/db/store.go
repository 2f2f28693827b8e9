/*
Package db provides the PostgreSQL connection pool and the durable room store.

This file implements room.Store on top of pgx. Message rows are append-only;
position rows are one-per-member upserts mirroring the in-memory registry's
last-write-wins semantics.
*/
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"plaza/internal/app/room"
)

// Store persists room state in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store backed by the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// SavePosition upserts the member's last-known position row.
func (s *Store) SavePosition(ctx context.Context, rec room.PositionRecord) error {
	const q = `
		INSERT INTO room_positions (user_id, display_name, nickname, color, x, y, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			nickname     = EXCLUDED.nickname,
			color        = EXCLUDED.color,
			x            = EXCLUDED.x,
			y            = EXCLUDED.y,
			updated_at   = EXCLUDED.updated_at`

	_, err := s.pool.Exec(ctx, q,
		rec.UserID, rec.DisplayName, rec.Nickname, rec.Color, rec.X, rec.Y, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert position for %s: %w", rec.UserID, err)
	}
	return nil
}

// AppendMessage appends one immutable message row.
func (s *Store) AppendMessage(ctx context.Context, msg room.Message) error {
	const q = `
		INSERT INTO room_messages (id, sender_id, sender_name, sender_color, text, x, y, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.pool.Exec(ctx, q,
		msg.ID, msg.SenderID, msg.SenderName, msg.SenderColor, msg.Text, msg.X, msg.Y, msg.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			// A retried fire-and-forget write; the row is already there.
			return nil
		}
		return fmt.Errorf("failed to append message %s: %w", msg.ID, err)
	}
	return nil
}

// LoadPositions returns the last-known position row for every member.
func (s *Store) LoadPositions(ctx context.Context) ([]room.PositionRecord, error) {
	const q = `
		SELECT user_id, display_name, nickname, color, x, y, updated_at
		FROM room_positions`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to load positions: %w", err)
	}
	defer rows.Close()

	var out []room.PositionRecord
	for rows.Next() {
		var rec room.PositionRecord
		if err := rows.Scan(&rec.UserID, &rec.DisplayName, &rec.Nickname,
			&rec.Color, &rec.X, &rec.Y, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan position row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// LoadMessages returns messages created after cutoff, CreatedAt ascending.
func (s *Store) LoadMessages(ctx context.Context, cutoff time.Time) ([]room.Message, error) {
	const q = `
		SELECT id, sender_id, sender_name, sender_color, text, x, y, created_at
		FROM room_messages
		WHERE created_at > $1
		ORDER BY created_at ASC`

	rows, err := s.pool.Query(ctx, q, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	defer rows.Close()

	var out []room.Message
	for rows.Next() {
		var msg room.Message
		if err := rows.Scan(&msg.ID, &msg.SenderID, &msg.SenderName,
			&msg.SenderColor, &msg.Text, &msg.X, &msg.Y, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		out = append(out, msg)
	}
	return out, rows.Err()
}
