// Package common defines shared constants and sentinel errors used across
// the stackr server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorConflict     = errors.New("already exists")

	// Request validation errors.
	ErrBadRequest = errors.New("bad request")

	// Auth errors (invalid, expired, revoked or wrong-kind token).
	ErrInvalidToken = errors.New("invalid token")

	// ErrCorruptCredential marks a stored password digest that cannot be
	// parsed. It never crosses the service boundary; verification paths
	// degrade it to a plain mismatch.
	ErrCorruptCredential = errors.New("corrupt credential")
)
