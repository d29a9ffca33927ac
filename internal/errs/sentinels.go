// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across store/gateway/service layers.
var (
	// ErrNotFound indicates the requested record does not exist (local or remote).
	ErrNotFound = errors.New("not found")

	// ErrUnavailable indicates the remote backend could not be reached or failed.
	ErrUnavailable = errors.New("remote unavailable")

	// ErrValidation indicates the input was rejected before any storage or network call.
	ErrValidation = errors.New("validation")
)
