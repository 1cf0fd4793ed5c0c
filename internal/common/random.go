package common

import (
	"crypto/rand"
	"encoding/base64"
)

// MakeOpaqueToken generates an opaque secret of the given size in bytes,
// encoded with URL-safe base64 so it can travel in cookies and headers.
// Refresh tokens use 64 bytes of entropy.
func MakeOpaqueToken(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
