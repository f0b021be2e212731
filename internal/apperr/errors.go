package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrInvalidState is returned when a lifecycle transition is attempted from a
// non-matching status.
var ErrInvalidState = errors.New("invalid state")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden indicates the caller is not authorized for this request.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrTimeout indicates the operation exceeded its outer bound. The underlying
// write may still have committed; callers must re-check state.
var ErrTimeout = errors.New("timeout")

// ErrUnavailable indicates the data store is unreachable.
var ErrUnavailable = errors.New("unavailable")
