package room

import "errors"

var (
	// ErrIdentityRequired is returned when an operation is attempted
	// without an established identity.
	ErrIdentityRequired = errors.New("room: identity required")

	// ErrPositionInvalid is returned for position reports whose
	// coordinates are NaN or infinite. Out-of-bounds finite coordinates
	// are clamped, not rejected.
	ErrPositionInvalid = errors.New("room: position coordinates are not finite")

	// ErrMessageEmpty is returned when a message is empty after trimming.
	// Callers usually treat it as a no-op rather than an error.
	ErrMessageEmpty = errors.New("room: message empty after trimming")

	// ErrMessageTooLong is returned when a trimmed message exceeds the
	// maximum length.
	ErrMessageTooLong = errors.New("room: message exceeds maximum length")

	// ErrCooldownActive is returned when a sender attempts to send during
	// their cooldown window.
	ErrCooldownActive = errors.New("room: send cooldown active")
)
