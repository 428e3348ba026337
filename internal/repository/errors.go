package repository

import "errors"

// This file defines custom errors specific to the repository client.

// ErrNotFound is returned when the persistence service answers 404 for a
// session or message (absent, deleted or expired).
//
// The service layer checks for this error to turn a failed session load into
// the "no longer available" banner instead of a generic load failure. A 404
// error wraps both this value and app_errors.ErrNotFound, so callers that only
// know the shared sentinels still match it with errors.Is.
var ErrNotFound = errors.New("repository: not found")
