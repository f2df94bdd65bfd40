package pass

import "time"

// Claims is what a pass carries. They are encrypted in the v4.local token,
// so they're not readable without the key.
type Claims struct {
	TicketID    string    `json:"ticket_id"`
	ScreeningID string    `json:"screening_id"`
	Movie       string    `json:"movie"`
	Auditorium  string    `json:"auditorium"`
	Seat        string    `json:"seat"`
	StartsAt    time.Time `json:"starts_at"`

	// Standard PASETO claims
	Issuer     string    `json:"iss"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}
