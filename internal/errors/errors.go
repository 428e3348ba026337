package errors

import "errors"

// This package defines the sentinel errors shared by the orchestration core.
// Services wrap them with context (`fmt.Errorf("...: %w", ErrX)`) and callers
// use `errors.Is()` to decide how to surface a failure. The view API maps each
// sentinel to an HTTP status in one place.

var (
	// ErrIdentityMissing signifies that no caller identity is known. Every
	// mutating operation refuses to run until the user re-authenticates.
	ErrIdentityMissing = errors.New("identity missing")

	// ErrArchived signifies an attempt to add messages to a session that is
	// not in the ongoing state. It is raised before any network call.
	ErrArchived = errors.New("session is archived")

	// ErrNotFound signifies that a requested session or message could not be
	// located, locally or on the remote store.
	// This is typically mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data failed business rule validation
	// (empty text, rating out of range, unknown feedback type).
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that an operation conflicts with work still in
	// progress, e.g. a second send while a reply for the same session resolves.
	// This is typically mapped to a 409 Conflict HTTP status.
	ErrConflict = errors.New("resource conflict")

	// ErrPermission signifies that the remote store refused the caller.
	// This is typically mapped to a 403 Forbidden HTTP status.
	ErrPermission = errors.New("permission denied")

	// ErrUnavailable signifies a transport failure or an unexpected status from
	// the inference or persistence service. Nothing retries it automatically.
	ErrUnavailable = errors.New("remote service unavailable")

	// ErrInternal signifies an unexpected local failure.
	// This is typically mapped to a 500 Internal Server Error HTTP status.
	ErrInternal = errors.New("internal error")
)
