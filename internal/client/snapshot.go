package client

import "plaza/internal/app/room"

// RoomSnapshot is the client's cached copy of the server state, replaced
// wholesale on every successful poll. The previous snapshot stays in
// effect across failed polls.
type RoomSnapshot struct {
	// Positions is the full position registry at poll time, unordered.
	Positions []room.PositionRecord

	// Messages is the message log at poll time, CreatedAt ascending.
	Messages []room.Message
}

// Fetcher pulls the full room state. Implemented by the HTTP transport and
// by test fakes.
type Fetcher interface {
	Fetch() (RoomSnapshot, error)
}

// Pusher reports the local position to the server. Pushes are
// fire-and-forget; a failure is logged and the next movement report
// naturally retries.
type Pusher interface {
	Push(x, y float64) error
}
