package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the JWT claims carried by a room identity token.
// Identity is established by an external authentication service; this core
// only reads the claims it needs to attribute positions and messages.
type Payload struct {
	// StandardClaims embeds the JWT standard fields such as Exp (Expiration),
	// Iat (Issued At), and Iss (Issuer), required for validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// ID is the stable unique identifier of the member.
	ID string `json:"id"`

	// DisplayName is the member's full display name.
	DisplayName string `json:"display_name"`

	// Nickname is the member's optional short name, preferred in the room
	// when present.
	Nickname string `json:"nickname,omitempty"`
}

// Name returns the name to show in the room: the nickname when set,
// otherwise the display name.
func (p *Payload) Name() string {
	if p.Nickname != "" {
		return p.Nickname
	}
	return p.DisplayName
}
