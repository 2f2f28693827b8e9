/*
Package room contains the server-side core of the shared presence room.

This file defines the Registry, the authoritative last-known-position store.
It holds at most one record per member; a position write replaces the prior
value entirely (last-write-wins, no history).
*/
package room

import (
	"sync"
	"time"

	"plaza/internal/app/arena"
	"plaza/internal/pkg/colorx"
)

// PositionRecord is the current position of one member, plus the identity
// fields clients need to render the avatar.
type PositionRecord struct {
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	Nickname    string    `json:"nickname,omitempty"`
	Color       string    `json:"color"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	UpdatedAt   time.Time `json:"-"`
}

// Pos returns the record's position as a Point.
func (r PositionRecord) Pos() arena.Point {
	return arena.Point{X: r.X, Y: r.Y}
}

// Registry is the authoritative position store. One record per member,
// upsert semantics, never explicitly deleted.
type Registry struct {
	mu      sync.RWMutex
	records map[string]PositionRecord
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		records: make(map[string]PositionRecord),
	}
}

// Upsert replaces the member's record with the given position, stamped at
// now. Non-finite coordinates are rejected; finite out-of-bounds
// coordinates are clamped into the arena. Clients clamp too, but the
// registry cannot trust them to.
func (g *Registry) Upsert(id Identity, p arena.Point, now time.Time) (PositionRecord, error) {
	if id.ID == "" {
		return PositionRecord{}, ErrIdentityRequired
	}
	if !arena.Finite(p) {
		return PositionRecord{}, ErrPositionInvalid
	}

	p = arena.Clamp(p)

	rec := PositionRecord{
		UserID:      id.ID,
		DisplayName: id.DisplayName,
		Nickname:    id.Nickname,
		Color:       colorx.ForUser(id.ID),
		X:           p.X,
		Y:           p.Y,
		UpdatedAt:   now,
	}

	g.mu.Lock()
	g.records[id.ID] = rec
	g.mu.Unlock()

	return rec, nil
}

// Restore inserts a record as-is, used when reloading persisted positions
// at startup. Coordinates are still clamped in case the stored row predates
// server-side clamping.
func (g *Registry) Restore(rec PositionRecord) {
	p := arena.Clamp(arena.Point{X: rec.X, Y: rec.Y})
	rec.X, rec.Y = p.X, p.Y

	g.mu.Lock()
	g.records[rec.UserID] = rec
	g.mu.Unlock()
}

// Get returns the record for the given member and whether it exists.
func (g *Registry) Get(userID string) (PositionRecord, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	rec, ok := g.records[userID]
	return rec, ok
}

// Snapshot returns the current record for every known member, unordered.
// A non-zero maxAge filters out records not updated within maxAge of now;
// zero disables the cutoff, which is the default server behavior.
func (g *Registry) Snapshot(now time.Time, maxAge time.Duration) []PositionRecord {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]PositionRecord, 0, len(g.records))
	for _, rec := range g.records {
		if maxAge > 0 && now.Sub(rec.UpdatedAt) > maxAge {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Len returns the number of known members.
func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.records)
}
