/*
Package render turns room state into an ordered list of drawing commands.

This file is the frame assembler. Each animation tick it draws every other
member's avatar from the synchronized registry, the local member's avatar
from the optimistic local position (so self-movement never lags a poll),
then name tags, then speech bubbles.
*/
package render

import (
	"sort"
	"time"

	"plaza/internal/app/arena"
	"plaza/internal/app/room"
	"plaza/internal/client/bubble"
)

const (
	// nameTagOffset is the vertical distance of the name tag baseline
	// below the avatar center.
	nameTagOffset = arena.AvatarHalf + 12

	// selfOutlineRadius is the radius of the ring distinguishing the
	// local member's avatar.
	selfOutlineRadius = arena.AvatarHalf + 2

	outlineColor    = "#ffffff"
	bubbleFillColor = "#ffffff"
	bubbleTextColor = "#000000"
)

// Frame assembles the drawing commands for one animation tick.
// positions is the last-synced registry snapshot; messages the last-synced
// log; selfPos the local optimistic position, which overrides the
// registry's (possibly stale) record for selfID.
func Frame(positions []room.PositionRecord, messages []room.Message, selfID string, selfPos arena.Point, m bubble.Measurer, now time.Time) []Command {
	// Stable ordering keeps frames deterministic for identical inputs.
	recs := make([]room.PositionRecord, len(positions))
	copy(recs, positions)
	sort.Slice(recs, func(i, j int) bool { return recs[i].UserID < recs[j].UserID })

	avatarAt := make(map[string]arena.Point, len(recs)+1)

	var cmds []Command

	// Avatars. Self comes from the optimistic position even when the
	// registry still holds an older value; everyone else from the sync.
	selfSeen := false
	for _, rec := range recs {
		pos := rec.Pos()
		if rec.UserID == selfID {
			pos = selfPos
			selfSeen = true
		}
		avatarAt[rec.UserID] = pos

		cmds = append(cmds, Command{
			Op: OpCircle, X: pos.X, Y: pos.Y, R: arena.AvatarHalf,
			Color: rec.Color, Fill: true,
		})
		if rec.UserID == selfID {
			cmds = append(cmds, Command{
				Op: OpCircle, X: pos.X, Y: pos.Y, R: selfOutlineRadius,
				Color: outlineColor,
			})
		}
	}

	// A self avatar exists even before the first poll returns.
	if !selfSeen && selfID != "" {
		avatarAt[selfID] = selfPos
		cmds = append(cmds, Command{
			Op: OpCircle, X: selfPos.X, Y: selfPos.Y, R: arena.AvatarHalf,
			Color: outlineColor, Fill: true,
		})
		cmds = append(cmds, Command{
			Op: OpCircle, X: selfPos.X, Y: selfPos.Y, R: selfOutlineRadius,
			Color: outlineColor,
		})
	}

	// Name tags.
	for _, rec := range recs {
		pos := avatarAt[rec.UserID]
		name := rec.Nickname
		if name == "" {
			name = rec.DisplayName
		}
		cmds = append(cmds, Command{
			Op: OpText, X: pos.X, Y: pos.Y + nameTagOffset,
			Text: name, Color: rec.Color,
		})
	}

	// Bubbles, per member, newest closest to the avatar. A sender with no
	// known avatar position speaks from the message's own snapshot.
	for _, userID := range sortedSenders(messages) {
		anchor, ok := avatarAt[userID]
		live := liveBySender(messages, userID, now)
		if len(live) == 0 {
			continue
		}
		if !ok {
			anchor = live[0].Pos()
		}

		for _, b := range bubble.Layout(m, live, anchor) {
			cmds = append(cmds, bubbleCommands(b)...)
		}
	}

	return cmds
}

// bubbleCommands emits one bubble: rectangle, anchor pointer, text lines.
func bubbleCommands(b bubble.Bubble) []Command {
	cmds := []Command{
		{
			Op: OpRect, X: b.Rect.X, Y: b.Rect.Y, W: b.Rect.W, H: b.Rect.H,
			Color: bubbleFillColor, Fill: true,
		},
		{
			Op: OpRect, X: b.Rect.X, Y: b.Rect.Y, W: b.Rect.W, H: b.Rect.H,
			Color: b.Message.SenderColor,
		},
		{
			Op: OpLine, X: b.Pointer[0].X, Y: b.Pointer[0].Y,
			X2: b.Pointer[2].X, Y2: b.Pointer[2].Y, Color: b.Message.SenderColor,
		},
		{
			Op: OpLine, X: b.Pointer[1].X, Y: b.Pointer[1].Y,
			X2: b.Pointer[2].X, Y2: b.Pointer[2].Y, Color: b.Message.SenderColor,
		},
	}

	lineHeight := (b.Rect.H - 2*bubble.PadY) / float64(len(b.Lines))
	for i, line := range b.Lines {
		cmds = append(cmds, Command{
			Op: OpText, X: b.Rect.X + bubble.PadX,
			Y:    b.Rect.Y + bubble.PadY + float64(i+1)*lineHeight,
			Text: line, Color: bubbleTextColor,
		})
	}

	return cmds
}

// liveBySender filters messages to one sender's live set, newest first.
func liveBySender(messages []room.Message, senderID string, now time.Time) []room.Message {
	var out []room.Message
	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		if msg.SenderID != senderID || !msg.Live(now) {
			continue
		}
		out = append(out, msg)
	}
	return out
}

// sortedSenders returns the distinct sender IDs in the log, ordered.
func sortedSenders(messages []room.Message) []string {
	seen := make(map[string]bool)
	var out []string
	for _, msg := range messages {
		if !seen[msg.SenderID] {
			seen[msg.SenderID] = true
			out = append(out, msg.SenderID)
		}
	}
	sort.Strings(out)
	return out
}
