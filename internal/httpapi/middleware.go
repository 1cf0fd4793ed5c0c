package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mbelkin/storefront/internal/auth"
)

const claimsContextKey = "auth_claims"

// RequireAuth validates the access-token cookie and stores the parsed claims
// on the request context. Expired or malformed tokens abort with 401.
func RequireAuth(secretKey []byte, issuer, audience string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenValue, err := c.Cookie(AccessTokenCookie)
		if err != nil || tokenValue == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		claims, err := auth.ParseToken(tokenValue, secretKey, issuer, audience)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// CurrentClaims returns the claims stored by RequireAuth, or nil.
func CurrentClaims(c *gin.Context) *auth.Claims {
	value, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
