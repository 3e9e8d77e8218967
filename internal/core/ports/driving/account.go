package driving

import (
	"context"

	"github.com/custodia-labs/repopulse/internal/core/domain"
)

// AccountService reports who the scanner runs as and how much quota is left.
type AccountService interface {
	Status(ctx context.Context) (*domain.AccountStatus, error)
}
