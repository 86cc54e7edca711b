package ledger

import "errors"

var (
	// ErrValidation marks malformed input to a mutation: an empty required
	// field, a non-positive amount, or a missing required reference. The
	// operation is rejected before any persistence attempt.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced group or member that no longer exists
	// at mutation time, e.g. a group deleted by a concurrent session.
	ErrNotFound = errors.New("not found")
)
