package github

import (
	"context"
	"fmt"

	"github.com/shurcooL/githubv4"

	"github.com/custodia-labs/repopulse/internal/core/domain"
)

// FetchCommitPage fetches one page of a branch history after cursor.
// A response without the repository, the ref or the history is reported
// as domain.ErrMalformedResponse.
func (c *Client) FetchCommitPage(
	ctx context.Context, q domain.CommitQuery, cursor domain.Cursor,
) (*domain.Page[domain.CommitRef], error) {
	var query commitHistoryQuery
	variables := map[string]any{
		"owner":        githubv4.String(q.Organization),
		"name":         githubv4.String(q.Repository),
		"branch":       githubv4.String(q.Branch),
		"pageSize":     githubv4.Int(q.PageSize),
		"since":        githubv4.GitTimestamp{Time: q.Since.UTC()},
		"commitCursor": cursorVar(string(cursor)),
	}

	if err := c.query(ctx, "commit history", &query, variables); err != nil {
		return nil, err
	}

	switch {
	case query.Repository == nil:
		return nil, fmt.Errorf("%w: repository %s/%s missing", domain.ErrMalformedResponse, q.Organization, q.Repository)
	case query.Repository.Ref == nil:
		return nil, fmt.Errorf("%w: ref %s missing on %s", domain.ErrMalformedResponse, q.Branch, q.Repository)
	case query.Repository.Ref.Target.Commit.History == nil:
		return nil, fmt.Errorf("%w: no history for %s on %s", domain.ErrMalformedResponse, q.Repository, q.Branch)
	}

	history := query.Repository.Ref.Target.Commit.History
	page := &domain.Page[domain.CommitRef]{HasMore: bool(history.PageInfo.HasNextPage)}
	cursors := make([]githubv4.String, 0, len(history.Edges))
	for _, e := range history.Edges {
		cursors = append(cursors, e.Cursor)
		page.Items = append(page.Items, domain.CommitRef{
			ID:  string(e.Node.ID),
			SHA: string(e.Node.Oid),
		})
	}
	page.NextCursor = domain.Cursor(nextCursor(cursors, history.PageInfo))
	return page, nil
}
