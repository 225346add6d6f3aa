package artifact

import "errors"

var (
	// ErrNotFound is returned when no guide exists for the given id.
	ErrNotFound = errors.New("artifact not found")

	// ErrInvalidID is returned for ids that cannot name a stored guide.
	ErrInvalidID = errors.New("invalid artifact id")
)
