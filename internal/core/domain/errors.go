package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Pagination Errors.

	// ErrMalformedResponse indicates an expected field was missing from a page.
	// Callers degrade to "zero items" for the affected page or repository.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrNoProgress indicates a paged collection returned a cursor that did not
	// advance. Traversal must abort rather than loop forever.
	ErrNoProgress = errors.New("pagination made no progress")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// Authentication Errors.

	// ErrAuthRequired indicates no token is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the authentication credentials are invalid.
	ErrAuthInvalid = errors.New("authentication invalid")
)
