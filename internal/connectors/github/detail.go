package github

import (
	"context"
	"errors"
	"fmt"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/repopulse/internal/core/domain"
)

// GetCommitDetail fetches one commit with its touched files.
// The quota state is returned whenever the response carried it, including
// alongside a RateLimitError. A missing commit matches domain.ErrNotFound.
func (c *Client) GetCommitDetail(
	ctx context.Context, owner, repo, sha string,
) (*domain.CommitDetail, *domain.RateLimit, error) {
	commit, resp, err := c.rest.Repositories.GetCommit(ctx, owner, repo, sha, nil)
	if err != nil {
		wrapped := c.wrapError(err, "get commit")
		var limitErr *RateLimitError
		if errors.As(wrapped, &limitErr) {
			return nil, limitErr.RateLimit(), wrapped
		}
		if IsNotFound(wrapped) {
			return nil, responseRate(resp), fmt.Errorf("commit %s: %w: %w", sha, domain.ErrNotFound, wrapped)
		}
		return nil, responseRate(resp), wrapped
	}

	return mapCommitDetail(repo, commit), responseRate(resp), nil
}

func responseRate(resp *gh.Response) *domain.RateLimit {
	if resp == nil || resp.Rate.Limit == 0 {
		return nil
	}
	return &domain.RateLimit{
		Limit:     resp.Rate.Limit,
		Remaining: resp.Rate.Remaining,
		Reset:     resp.Rate.Reset.Time.UTC(),
	}
}

func mapCommitDetail(repo string, commit *gh.RepositoryCommit) *domain.CommitDetail {
	detail := &domain.CommitDetail{
		Repository: repo,
		SHA:        commit.GetSHA(),
	}
	if c := commit.GetCommit(); c != nil {
		detail.Message = c.GetMessage()
		if committer := c.GetCommitter(); committer != nil {
			detail.Committer = domain.Signature{
				Name:  committer.GetName(),
				Email: committer.GetEmail(),
			}
			detail.Timestamp = committer.GetDate().Time.UTC()
		}
	}
	for _, f := range commit.Files {
		detail.Files = append(detail.Files, domain.FileChange{
			Status:   f.GetStatus(),
			Filename: f.GetFilename(),
		})
	}
	return detail
}
