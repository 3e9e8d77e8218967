package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/repopulse/internal/core/domain"
	"github.com/custodia-labs/repopulse/internal/core/ports/driven"
	"github.com/custodia-labs/repopulse/internal/core/ports/driving"
	"github.com/custodia-labs/repopulse/internal/logger"
)

// Ensure CommitResolverService implements the interface.
var _ driving.CommitResolver = (*CommitResolverService)(nil)

// CommitResolverService resolves the SHAs found by a traversal into commit
// details. Rate limiting is advisory: a refused lookup is logged and the
// next SHA is attempted straight away.
type CommitResolverService struct {
	fetcher  driven.CommitDetailFetcher
	runStore driven.RunStore // Optional
}

// NewCommitResolverService creates a new resolver.
// runStore may be nil, in which case details are only returned.
func NewCommitResolverService(fetcher driven.CommitDetailFetcher, runStore driven.RunStore) *CommitResolverService {
	return &CommitResolverService{
		fetcher:  fetcher,
		runStore: runStore,
	}
}

// Resolve looks up every SHA of the traversal in repository then delivery order.
func (s *CommitResolverService) Resolve(
	ctx context.Context, req driving.ResolveRequest,
) (*driving.ResolveSummary, error) {
	if s.fetcher == nil {
		return nil, errors.New("resolve: detail fetcher not configured")
	}
	if req.Result == nil {
		return nil, fmt.Errorf("resolve: traversal result is required: %w", domain.ErrInvalidInput)
	}

	logger.Section("Commit details")
	summary := &driving.ResolveSummary{}

	for _, repo := range req.Result.Qualified {
		for _, sha := range req.Result.Commits[repo] {
			detail, limit, err := s.fetcher.GetCommitDetail(ctx, req.Organization, repo, sha)
			if limit != nil {
				summary.LastRateLimit = limit
			}

			if errors.Is(err, domain.ErrRateLimited) {
				summary.RateLimited++
				msg := rateLimitMessage(limit)
				logger.Warn("Rate limited resolving %s@%s: %s", repo, sha, msg)
				summary.Warnings = append(summary.Warnings, domain.Warning{
					Kind:       domain.WarningRateLimited,
					Repository: repo,
					Message:    fmt.Sprintf("%s skipped: %s", sha, msg),
				})
				continue
			}
			if err != nil {
				return summary, fmt.Errorf("resolve %s@%s: %w", repo, sha, err)
			}

			logger.Debug("Resolved %s@%s (%d files)", repo, sha, len(detail.Files))
			summary.Details = append(summary.Details, *detail)

			if s.runStore != nil && req.RunID != "" {
				if err := s.runStore.SaveCommitDetail(ctx, req.RunID, *detail); err != nil {
					return summary, fmt.Errorf("save commit detail: %w", err)
				}
			}
		}
	}

	return summary, nil
}

func rateLimitMessage(limit *domain.RateLimit) string {
	if limit == nil {
		return "rate limit exceeded"
	}
	return fmt.Sprintf("limit=%d remaining=%d reset=%s",
		limit.Limit, limit.Remaining, limit.Reset.Format(time.RFC3339))
}
