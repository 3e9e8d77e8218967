package driven

import (
	"context"

	"github.com/custodia-labs/repopulse/internal/core/domain"
)

// AccountProvider reports on the credentials a client is using.
type AccountProvider interface {
	// ValidateCredentials returns the login behind the token.
	// Returns domain.ErrAuthInvalid if the token is rejected.
	ValidateCredentials(ctx context.Context) (string, error)

	// RateLimit returns the current request quota.
	RateLimit(ctx context.Context) (*domain.RateLimit, error)
}
