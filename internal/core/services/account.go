package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/repopulse/internal/core/domain"
	"github.com/custodia-labs/repopulse/internal/core/ports/driven"
	"github.com/custodia-labs/repopulse/internal/core/ports/driving"
	"github.com/custodia-labs/repopulse/internal/logger"
)

// Ensure AccountService implements the interface.
var _ driving.AccountService = (*AccountService)(nil)

// AccountService reports on the configured credentials.
type AccountService struct {
	provider driven.AccountProvider
}

// NewAccountService creates a new account service.
func NewAccountService(provider driven.AccountProvider) *AccountService {
	return &AccountService{provider: provider}
}

// Status validates the credentials and fetches the current quota.
// A failed quota lookup is logged and leaves RateLimit nil.
func (s *AccountService) Status(ctx context.Context) (*domain.AccountStatus, error) {
	if s.provider == nil {
		return nil, errors.New("account provider not configured")
	}

	login, err := s.provider.ValidateCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("validate credentials: %w", err)
	}

	status := &domain.AccountStatus{Login: login}
	limit, err := s.provider.RateLimit(ctx)
	if err != nil {
		logger.Warn("Could not read rate limit: %v", err)
		return status, nil
	}
	status.RateLimit = limit
	return status, nil
}
