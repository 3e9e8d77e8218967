package github

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/repopulse/internal/core/domain"
)

func TestRateLimitError(t *testing.T) {
	reset := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	err := &RateLimitError{ResetAt: reset, Remaining: 0, Limit: 5000}

	assert.Contains(t, err.Error(), "2030-01-01T00:00:00Z")
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", err), domain.ErrRateLimited)
	assert.Equal(t, &domain.RateLimit{Limit: 5000, Remaining: 0, Reset: reset}, err.RateLimit())
}

func TestErrorHelpers(t *testing.T) {
	notFound := &APIError{StatusCode: 404, Message: "Not Found"}
	unauthorized := &APIError{StatusCode: 401, Message: "Bad credentials"}
	transport := &TransportError{Op: "search", Err: errors.New("boom")}

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(unauthorized))
	assert.True(t, IsUnauthorized(unauthorized))
	assert.False(t, IsUnauthorized(errors.New("plain")))
	assert.NotErrorIs(t, transport, domain.ErrRateLimited)
	assert.Equal(t, "boom", errors.Unwrap(transport).Error())
	assert.Equal(t, "github: search: boom", transport.Error())
}
