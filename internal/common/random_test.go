package common

import (
	"encoding/base64"
	"testing"
)

func TestMakeOpaqueToken_DecodesToRequestedSize(t *testing.T) {
	const n = 64
	s, err := MakeOpaqueToken(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		t.Fatalf("token is not valid url-safe base64: %v", err)
	}
	if len(raw) != n {
		t.Fatalf("expected %d raw bytes, got %d", n, len(raw))
	}
}

func TestMakeOpaqueToken_Unique(t *testing.T) {
	a, err := MakeOpaqueToken(64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := MakeOpaqueToken(64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatalf("two consecutive tokens should not collide")
	}
}
