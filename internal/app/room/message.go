/*
Package room contains the server-side core of the shared presence room.

This file defines the chat Message and the append-only Log. Messages are
immutable once written and are never deleted; the bubble lifetime is a view
predicate applied at read time, not a retention policy.
*/
package room

import (
	"sort"
	"sync"
	"time"

	"plaza/internal/app/arena"
)

// Message is one chat message. It carries the sender's position at send
// time, fixed forever, so bubbles replay where the sender stood.
type Message struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"senderId"`
	SenderName  string    `json:"senderName"`
	SenderColor string    `json:"senderColor"`
	Text        string    `json:"text"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Pos returns the message's position snapshot as a Point.
func (m Message) Pos() arena.Point {
	return arena.Point{X: m.X, Y: m.Y}
}

// Live reports whether the message is still within its bubble lifetime at
// the given instant.
func (m Message) Live(now time.Time) bool {
	return now.Sub(m.CreatedAt) < arena.BubbleTTL
}

// Log is the append-only message store. Display order is CreatedAt
// ascending; appends under a single lock give messages a total order.
type Log struct {
	mu       sync.RWMutex
	messages []Message
}

// NewLog creates an empty Log.
func NewLog() *Log {
	return &Log{}
}

// Append adds a message to the log. The message must already be validated
// and stamped by the caller.
func (l *Log) Append(msg Message) {
	l.mu.Lock()
	l.messages = append(l.messages, msg)
	l.mu.Unlock()
}

// Restore bulk-loads persisted messages at startup and re-sorts by
// CreatedAt so a partially ordered store read cannot break display order.
func (l *Log) Restore(msgs []Message) {
	l.mu.Lock()
	l.messages = append(l.messages, msgs...)
	sort.SliceStable(l.messages, func(i, j int) bool {
		return l.messages[i].CreatedAt.Before(l.messages[j].CreatedAt)
	})
	l.mu.Unlock()
}

// All returns every message, CreatedAt ascending.
func (l *Log) All() []Message {
	return l.Since(time.Time{})
}

// Since returns messages created strictly after cutoff, CreatedAt ascending.
// A zero cutoff returns the whole log.
func (l *Log) Since(cutoff time.Time) []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Message, 0, len(l.messages))
	for _, msg := range l.messages {
		if !cutoff.IsZero() && !msg.CreatedAt.After(cutoff) {
			continue
		}
		out = append(out, msg)
	}
	return out
}

// Recent returns the last n messages, CreatedAt ascending.
func (l *Log) Recent(n int) []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 || n > len(l.messages) {
		n = len(l.messages)
	}

	out := make([]Message, n)
	copy(out, l.messages[len(l.messages)-n:])
	return out
}

// LiveBySender returns the sender's messages still within their bubble
// lifetime at now, newest first: the order the bubble layout engine
// consumes (index 0 stacks closest to the avatar).
func (l *Log) LiveBySender(senderID string, now time.Time) []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Message
	for i := len(l.messages) - 1; i >= 0; i-- {
		msg := l.messages[i]
		if msg.SenderID != senderID || !msg.Live(now) {
			continue
		}
		out = append(out, msg)
	}
	return out
}

// Len returns the number of messages in the log.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}
