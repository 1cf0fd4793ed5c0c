package services

import "time"

// SessionContext supplies the per-request facts the session service needs
// (client IP for audit fields, current token values) and the setters used to
// write new tokens back to the caller's session storage. The HTTP layer
// implements it over cookies; tests use an in-memory fake.
//
// The session context is passed explicitly to every operation instead of
// living in ambient state.
type SessionContext interface {
	// ClientIP returns the caller's IP address. Operations refuse to run
	// when it is empty, since token audit fields could not be recorded.
	ClientIP() string

	// AccessToken returns the current access token value, or "".
	AccessToken() string

	// RefreshToken returns the current refresh token value, or "".
	RefreshToken() string

	// SetAccessToken stores a new access token expiring at the given time.
	SetAccessToken(token string, expiresAt time.Time)

	// SetRefreshToken stores a new refresh token expiring at the given time.
	SetRefreshToken(token string, expiresAt time.Time)

	// ClearTokens removes both tokens from session storage.
	ClearTokens()
}
