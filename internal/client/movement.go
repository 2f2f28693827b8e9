/*
Package client implements the per-session room client engine: the local
movement controller, the polling synchronization loop, and the client-side
cooldown mirror.

This file is the movement controller. It translates raw input (held
directional keys, or a single pointer/touch target) into a candidate next
position once per animation tick, clamped to the arena.
*/
package client

import (
	"sync"

	"plaza/internal/app/arena"
)

// Direction is a discrete movement direction driven by a held key.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// targetSnapDistance is the distance under which a pending target is
// dropped without moving; the avatar is already there for all practical
// purposes.
const targetSnapDistance = 1.0

// Movement is the local movement controller. All state is per-instance so
// several sessions can run isolated in one process.
type Movement struct {
	mu      sync.Mutex
	pos     arena.Point
	pressed map[Direction]bool
	target  *arena.Point
}

// NewMovement creates a controller starting at the given position.
func NewMovement(start arena.Point) *Movement {
	return &Movement{
		pos:     arena.Clamp(start),
		pressed: make(map[Direction]bool),
	}
}

// Press marks a direction key as held.
func (m *Movement) Press(d Direction) {
	m.mu.Lock()
	m.pressed[d] = true
	m.mu.Unlock()
}

// Release marks a direction key as no longer held.
func (m *Movement) Release(d Direction) {
	m.mu.Lock()
	delete(m.pressed, d)
	m.mu.Unlock()
}

// SetTarget sets the pointer/touch destination, replacing any previous one.
func (m *Movement) SetTarget(p arena.Point) {
	m.mu.Lock()
	t := p
	m.target = &t
	m.mu.Unlock()
}

// ClearTarget drops the pending destination, if any.
func (m *Movement) ClearTarget() {
	m.mu.Lock()
	m.target = nil
	m.mu.Unlock()
}

// HasTarget reports whether a destination is pending.
func (m *Movement) HasTarget() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target != nil
}

// Pos returns the current local position.
func (m *Movement) Pos() arena.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pos
}

// SetPos overrides the local position, clamped. Used when the server
// responds with a corrected (clamped) position.
func (m *Movement) SetPos(p arena.Point) {
	m.mu.Lock()
	m.pos = arena.Clamp(p)
	m.mu.Unlock()
}

// Step advances the position by one animation tick and returns the new
// position together with whether it changed. Held keys win over a pending
// target for the tick; per-axis deltas compose additively, so diagonal
// movement is faster than axis movement.
func (m *Movement) Step() (arena.Point, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.pos
	chasing := false

	switch {
	case len(m.pressed) > 0:
		if m.pressed[DirUp] {
			next.Y -= arena.MoveSpeed
		}
		if m.pressed[DirDown] {
			next.Y += arena.MoveSpeed
		}
		if m.pressed[DirLeft] {
			next.X -= arena.MoveSpeed
		}
		if m.pressed[DirRight] {
			next.X += arena.MoveSpeed
		}

	case m.target != nil:
		chasing = true
		delta := m.target.Sub(m.pos)
		dist := delta.Len()

		switch {
		case dist > arena.MoveSpeed:
			next.X += delta.X / dist * arena.MoveSpeed
			next.Y += delta.Y / dist * arena.MoveSpeed
		case dist > targetSnapDistance:
			next = *m.target
			m.target = nil
		default:
			m.target = nil
		}
	}

	next = arena.Clamp(next)

	changed := next != m.pos

	// A chase the clamp has pinned can never reach its target; drop it so
	// an out-of-bounds tap does not leave the avatar chasing forever.
	if chasing && !changed {
		m.target = nil
	}

	m.pos = next

	return next, changed
}
