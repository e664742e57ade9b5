// Package common defines shared constants and sentinel errors used across
// the tutor server and its CLI. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// ErrStoreUnavailable marks a failed round trip to the database. It is
	// retriable and must never be reported as "limit reached".
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrStatsNotFound means the user has no stats row yet. Stats are created
	// at sign-up or by the lazy read on /api/stats.
	ErrStatsNotFound = errors.New("user stats not found")

	// Validation errors.
	ErrValidation    = errors.New("validation error")
	ErrAlreadyExists = errors.New("already exists")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Tutor proxy errors.
	ErrLimitReached    = errors.New("daily limit reached")
	ErrUnsupportedMode = errors.New("unsupported mode")
	ErrUpstream        = errors.New("ai service error")
)
