// Package common defines the sentinel errors shared across the store,
// coordinator and HTTP layers. Callers match them with errors.Is.
package common

import "errors"

var (
	// ErrNotFound means a referenced document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means the request carries no valid session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the caller is authenticated but not entitled,
	// e.g. deleting another user's post.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidOperation covers self-follow, cross-post replies and
	// malformed content.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrStoreFailure wraps an opaque data-store error.
	ErrStoreFailure = errors.New("store failure")
)
