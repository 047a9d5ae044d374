package domain

import "errors"

var (
	// ErrInvalidSequence means the requested transition repeats the user's
	// last recorded status (or is a STOP with nothing running).
	ErrInvalidSequence = errors.New("invalid action sequence")

	// ErrUnknownUser means the user does not exist or is inactive.
	ErrUnknownUser = errors.New("unknown user")

	// ErrStoreUnavailable wraps persistence failures. Callers may retry.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrForbidden means the acting user may not read or modify the target.
	ErrForbidden = errors.New("forbidden")

	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidRange  = errors.New("invalid date range")
	ErrInvalidInput  = errors.New("invalid input")
)
