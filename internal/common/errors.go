// Package common defines shared constants and sentinel errors used across
// the offline data-access layer. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound         = errors.New("not found")
	ErrMalformedPayload = errors.New("malformed cached payload")

	// Offline update errors. A write that fails with one of these was neither
	// applied locally nor queued.
	ErrUnsupportedOfflineUpdate = errors.New("update not supported offline")
	ErrEntityNotCached          = errors.New("entity not available offline")
	ErrInvalidRequest           = errors.New("invalid request")

	// Token errors (malformed or expired bearer token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
