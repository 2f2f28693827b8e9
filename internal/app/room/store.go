package room

import (
	"context"
	"time"
)

// Store is the durable persistence boundary for the room. Message rows are
// append-only; position rows are one-per-member upserts. Persistence is
// asynchronous and best-effort: a write failure is logged and swallowed,
// and the in-memory state remains authoritative.
type Store interface {
	// SavePosition upserts the member's last-known position row.
	SavePosition(ctx context.Context, rec PositionRecord) error

	// AppendMessage appends one immutable message row.
	AppendMessage(ctx context.Context, msg Message) error

	// LoadPositions returns the last-known position row for every member.
	LoadPositions(ctx context.Context) ([]PositionRecord, error)

	// LoadMessages returns messages created after cutoff, CreatedAt
	// ascending. A zero cutoff returns everything.
	LoadMessages(ctx context.Context, cutoff time.Time) ([]Message, error)
}
