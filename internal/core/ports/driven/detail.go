package driven

import (
	"context"

	"github.com/custodia-labs/repopulse/internal/core/domain"
)

// CommitDetailFetcher resolves a commit SHA into full commit detail.
type CommitDetailFetcher interface {
	// GetCommitDetail fetches one commit.
	// The returned RateLimit reflects the response headers and may be nil
	// when the response carried none. A refused request returns an error
	// matching domain.ErrRateLimited.
	GetCommitDetail(ctx context.Context, owner, repo, sha string) (*domain.CommitDetail, *domain.RateLimit, error)
}
