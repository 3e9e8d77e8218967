package github

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/repopulse/internal/core/domain"
)

// GitHub-specific errors.
var (
	// ErrInvalidBaseURL indicates the configured REST URL could not be parsed.
	ErrInvalidBaseURL = errors.New("github: invalid base URL")
)

// RateLimitError represents a rate limit exceeded error with reset time.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github: rate limit exceeded (limit %d, remaining %d), resets at %s",
		e.Limit, e.Remaining, e.ResetAt.Format(time.RFC3339))
}

// Is makes RateLimitError match domain.ErrRateLimited.
func (e *RateLimitError) Is(target error) bool {
	return target == domain.ErrRateLimited
}

// RateLimit returns the quota state carried by the error.
func (e *RateLimitError) RateLimit() *domain.RateLimit {
	return &domain.RateLimit{Limit: e.Limit, Remaining: e.Remaining, Reset: e.ResetAt}
}

// APIError represents a GitHub API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// TransportError wraps a failed request: network errors, non-200 GraphQL
// responses and GraphQL error payloads. Traversal aborts on these.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("github: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}
