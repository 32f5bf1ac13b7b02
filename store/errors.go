package store

import "errors"

var (
	// ErrUnauthorized means the caller's resolved scope is empty.
	ErrUnauthorized = errors.New("no authorised business areas")

	// ErrNotFound covers both a missing id and an id outside the caller's
	// scope, so existence never leaks across business areas.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden means an update tried to move a record into a business
	// area the caller does not own.
	ErrForbidden = errors.New("business area not in caller scope")

	// ErrConflict means an Idempotency-Key is already taken by a row the
	// caller cannot replay, either outside their scope or soft-deleted.
	ErrConflict = errors.New("idempotency key already used")
)
