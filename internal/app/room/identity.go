/*
Package room contains the server-side core of the shared presence room:
the authoritative position registry, the append-only message log, the
per-sender send cooldown, and the service that ties them together.
*/
package room

// Identity is the member identity supplied by the external authentication
// boundary. The room core never creates or mutates identities; it only
// attributes positions and messages to them.
type Identity struct {
	// ID is the stable unique member identifier.
	ID string

	// DisplayName is the member's full display name.
	DisplayName string

	// Nickname is the optional short name, preferred for display when set.
	Nickname string
}

// Name returns the nickname when present, otherwise the display name.
func (id Identity) Name() string {
	if id.Nickname != "" {
		return id.Nickname
	}
	return id.DisplayName
}
