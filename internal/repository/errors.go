// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to act on a resource owned by someone else, while
// ErrConflict signals that an operation cannot proceed because the row
// is already in a terminal state (e.g. approving a reprint request
// that was already resolved).
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed because
// of conflicting state, such as resolving a reprint request twice or
// recording production against a completed assignment. Handlers
// should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrConfigNotFound is returned when no label configuration row exists
// yet. Render paths fall back to the built-in default layout instead
// of failing.
var ErrConfigNotFound = errors.New("label configuration not found")
