package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbelkin/storefront/internal/common"
)

var testSecret = []byte("test-secret")

func testParams(validity time.Duration) TokenParams {
	return TokenParams{Issuer: "storefront", Audience: "storefront-clients", Validity: validity}
}

func TestGenerateAndParseToken(t *testing.T) {
	tokenString, err := GenerateToken("u1", "alice", []string{"customer", "admin"}, testSecret, testParams(time.Minute))
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := ParseToken(tokenString, testSecret, "storefront", "storefront-clients")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "alice", claims.UserName)
	assert.Equal(t, []string{"customer", "admin"}, claims.Roles)
}

func TestParseToken_WrongSecret(t *testing.T) {
	tokenString, err := GenerateToken("u1", "alice", nil, testSecret, testParams(time.Minute))
	require.NoError(t, err)

	_, err = ParseToken(tokenString, []byte("other-secret"), "storefront", "storefront-clients")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_WrongIssuerOrAudience(t *testing.T) {
	tokenString, err := GenerateToken("u1", "alice", nil, testSecret, testParams(time.Minute))
	require.NoError(t, err)

	_, err = ParseToken(tokenString, testSecret, "somebody-else", "storefront-clients")
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	_, err = ParseToken(tokenString, testSecret, "storefront", "other-audience")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	tokenString, err := GenerateToken("u1", "alice", nil, testSecret, testParams(-time.Minute))
	require.NoError(t, err)

	_, err = ParseToken(tokenString, testSecret, "storefront", "storefront-clients")
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestParseTokenAllowExpired(t *testing.T) {
	tokenString, err := GenerateToken("u1", "alice", []string{"customer"}, testSecret, testParams(-time.Minute))
	require.NoError(t, err)

	claims, err := ParseTokenAllowExpired(tokenString, testSecret, "storefront", "storefront-clients")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)

	// a bad signature is still rejected
	_, err = ParseTokenAllowExpired(tokenString, []byte("other-secret"), "storefront", "storefront-clients")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseTokenAllowExpired_WrongIssuerOrAudience(t *testing.T) {
	// An expired token minted for another service must not be accepted just
	// because its expiry failure is tolerated.
	foreign := TokenParams{Issuer: "other-issuer", Audience: "other-audience", Validity: -time.Minute}
	tokenString, err := GenerateToken("u1", "alice", nil, testSecret, foreign)
	require.NoError(t, err)

	_, err = ParseTokenAllowExpired(tokenString, testSecret, "storefront", "storefront-clients")
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	// same issuer but foreign audience, still expired
	mixed := TokenParams{Issuer: "storefront", Audience: "other-audience", Validity: -time.Minute}
	tokenString, err = GenerateToken("u1", "alice", nil, testSecret, mixed)
	require.NoError(t, err)

	_, err = ParseTokenAllowExpired(tokenString, testSecret, "storefront", "storefront-clients")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not.a.token", testSecret, "storefront", "storefront-clients")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
