package domain

import "errors"

// Sentinel errors shared between services and the transport layer. Handlers
// map these to HTTP status codes; everything else is treated as an internal
// failure and never echoed to the client.
var (
	// ErrInvalidInput marks malformed, missing, or oversized input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmailTaken is returned when registering with an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUnauthenticated covers missing, malformed, or unknown credentials.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden means the caller is authenticated but does not own the
	// resource.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the resource id resolved to nothing.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable marks a store call that timed out or could not reach
	// the database. Retryable, never conflated with ErrNotFound.
	ErrUnavailable = errors.New("store unavailable")
)
