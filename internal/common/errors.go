// Package common defines shared constants and sentinel errors used across
// the storefront services. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Auth errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Session context errors.
	ErrMissingClientIP = errors.New("client ip could not be determined")
)
