// Package httpapi exposes the session service over HTTP. Tokens travel in
// HTTP-only cookies; the client IP recorded on refresh tokens comes from the
// request.
package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mbelkin/storefront/internal/common"
)

// Cookie names used for session storage.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// GinSession implements services.SessionContext over gin request cookies.
// Construction fails when the client IP cannot be determined, since token
// audit fields would be unrecordable.
type GinSession struct {
	c  *gin.Context
	ip string
}

func NewGinSession(c *gin.Context) (*GinSession, error) {
	ip := c.ClientIP()
	if ip == "" {
		return nil, common.ErrMissingClientIP
	}
	return &GinSession{c: c, ip: ip}, nil
}

func (s *GinSession) ClientIP() string { return s.ip }

func (s *GinSession) AccessToken() string {
	value, err := s.c.Cookie(AccessTokenCookie)
	if err != nil {
		return ""
	}
	return value
}

func (s *GinSession) RefreshToken() string {
	value, err := s.c.Cookie(RefreshTokenCookie)
	if err != nil {
		return ""
	}
	return value
}

// SetAccessToken writes the access cookie with a lifetime equal to the
// token's own expiry.
func (s *GinSession) SetAccessToken(token string, expiresAt time.Time) {
	s.setCookie(AccessTokenCookie, token, expiresAt)
}

func (s *GinSession) SetRefreshToken(token string, expiresAt time.Time) {
	s.setCookie(RefreshTokenCookie, token, expiresAt)
}

func (s *GinSession) ClearTokens() {
	s.c.SetCookie(AccessTokenCookie, "", -1, "/", "", false, true)
	s.c.SetCookie(RefreshTokenCookie, "", -1, "/", "", false, true)
}

func (s *GinSession) setCookie(name, value string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	s.c.SetCookie(name, value, maxAge, "/", "", false, true)
}
