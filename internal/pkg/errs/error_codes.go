/*
Package errs provides custom error types and application-level error code constants.

These codes identify specific business or system errors both internally and
in responses to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON is malformed.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate exceeded the IP-level limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Presence Room Business Logic Errors
const (
	// ErrPositionInvalid indicates a position report with non-finite coordinates.
	ErrPositionInvalid = 2101

	// ErrMessageEmpty indicates a message whose text is empty after trimming.
	ErrMessageEmpty = 2201

	// ErrMessageTooLong indicates a message exceeding the maximum length.
	ErrMessageTooLong = 2202

	// ErrCooldownActive indicates a send attempt during the sender's cooldown window.
	ErrCooldownActive = 2203
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrUnauthorized indicates that the request lacks a valid identity token.
	ErrUnauthorized = 3001
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified server internal error.
	ErrUnknown = 5000
)
