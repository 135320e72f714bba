// Package apperr defines the error taxonomy shared by the task store,
// the HTTP layer and the client engine. Errors are wrapped with %w so
// callers classify them with errors.Is.
package apperr

import "errors"

var (
	// ErrValidation marks user-correctable input problems (bad shape,
	// missing required field).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned both when a task does not exist and when
	// it exists but belongs to another owner. The two cases are never
	// distinguished.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized marks a missing or invalid credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMissingEmail is returned when an authenticated identity has no
	// resolvable primary email. Provisioning cannot proceed without one.
	ErrMissingEmail = errors.New("identity has no primary email")

	// ErrStore marks an unexpected persistence failure.
	ErrStore = errors.New("store failure")
)
