// Package auth implements access-token issuance and verification plus
// password hashing for the session service.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mbelkin/storefront/internal/common"
)

// Claims extends the registered JWT claims with the user name and one entry
// per assigned role.
type Claims struct {
	jwt.RegisteredClaims
	UserName string   `json:"username"`
	Roles    []string `json:"roles,omitempty"`
}

// TokenParams carries the fixed issuer/audience pair and the token lifetime.
type TokenParams struct {
	Issuer   string
	Audience string
	Validity time.Duration
}

// GenerateToken mints an HS256-signed access token for the given user.
func GenerateToken(userID, userName string, roles []string, secretKey []byte, p TokenParams) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    p.Issuer,
			Audience:  jwt.ClaimStrings{p.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.Validity)),
		},
		UserName: userName,
		Roles:    roles,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func parse(tokenString string, secretKey []byte, issuer, audience string) (*jwt.Token, *Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
	)
	return token, claims, err
}

// ParseToken verifies signature, issuer, audience, and expiry, and returns
// the embedded claims. Expired tokens yield common.ErrTokenExpired.
func ParseToken(tokenString string, secretKey []byte, issuer, audience string) (*Claims, error) {
	token, claims, err := parse(tokenString, secretKey, issuer, audience)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// ParseTokenAllowExpired verifies signature, issuer, and audience but
// tolerates an expired token. The refresh flow identifies the caller through
// the access token it is trying to renew, which by definition may already
// have run out.
func ParseTokenAllowExpired(tokenString string, secretKey []byte, issuer, audience string) (*Claims, error) {
	_, claims, err := parse(tokenString, secretKey, issuer, audience)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrInvalidToken
		}
		// The validator joins all claim errors, so an expired token can
		// also carry a wrong issuer or audience. Expiry is the only
		// failure tolerated here.
		if errors.Is(err, jwt.ErrTokenInvalidIssuer) || errors.Is(err, jwt.ErrTokenInvalidAudience) {
			return nil, common.ErrInvalidToken
		}
	}
	return claims, nil
}
