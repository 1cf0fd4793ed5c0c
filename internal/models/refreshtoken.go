package models

import "time"

// RefreshToken is the stored record for one opaque refresh token. Tokens are
// never hard-deleted: logout and rotation only set the revocation fields, so
// the row keeps its audit trail (which IP created it, which IP revoked it,
// and which token replaced it).
type RefreshToken struct {
	ID              string
	UserID          string
	Token           string
	ExpiresAt       time.Time
	CreatedAt       time.Time
	CreatedByIP     string
	RevokedAt       *time.Time
	RevokedByIP     string
	ReplacedByToken string
}

// Revoked reports whether the token has been revoked.
func (t *RefreshToken) Revoked() bool {
	return t.RevokedAt != nil
}

// Expired reports whether the token's lifetime has passed at the given instant.
func (t *RefreshToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// Active reports whether the token may still be exchanged: not revoked and
// not expired.
func (t *RefreshToken) Active(now time.Time) bool {
	return !t.Revoked() && !t.Expired(now)
}

// NearExpiry reports whether less than window remains of the token's
// lifetime. Refresh rotates tokens only once they enter this window.
func (t *RefreshToken) NearExpiry(now time.Time, window time.Duration) bool {
	return t.ExpiresAt.Sub(now) < window
}
