package github

import (
	"context"
	"fmt"
	"time"

	"github.com/shurcooL/githubv4"

	"github.com/custodia-labs/repopulse/internal/core/domain"
)

// SearchQuery builds the search string selecting repositories of an owner
// pushed strictly after since.
func SearchQuery(owner string, since time.Time) string {
	return fmt.Sprintf("user:%s pushed:>%s", owner, since.UTC().Format(time.RFC3339))
}

// FetchRepositoryPage fetches one page of the repository search, each
// result carrying the first page of its branch history.
func (c *Client) FetchRepositoryPage(
	ctx context.Context, q domain.RepositoryQuery, cursor domain.Cursor,
) (*domain.RepositoryPage, error) {
	var query repositorySearchQuery
	variables := map[string]any{
		"repoPageSize":   githubv4.Int(q.PageSize),
		"repoCursor":     cursorVar(string(cursor)),
		"searchQuery":    githubv4.String(SearchQuery(q.Organization, q.Since)),
		"branch":         githubv4.String(q.Branch),
		"commitPageSize": githubv4.Int(q.CommitPageSize),
		"since":          githubv4.GitTimestamp{Time: q.Since.UTC()},
	}

	if err := c.query(ctx, "search repositories", &query, variables); err != nil {
		return nil, err
	}

	search := query.Search
	page := &domain.RepositoryPage{RepositoryCount: int(search.RepositoryCount)}
	page.HasMore = bool(search.PageInfo.HasNextPage)

	cursors := make([]githubv4.String, 0, len(search.Edges))
	for _, edge := range search.Edges {
		cursors = append(cursors, edge.Cursor)
		page.Items = append(page.Items, mapRepository(edge))
	}
	page.NextCursor = domain.Cursor(nextCursor(cursors, search.PageInfo))

	return page, nil
}

func mapRepository(edge repositoryEdge) domain.RepositorySummary {
	node := edge.Node.Repository
	repo := domain.RepositorySummary{
		ID:       string(node.ID),
		Name:     string(node.Name),
		PushedAt: node.PushedAt.UTC(),
	}
	if node.Ref == nil || node.Ref.Target.Commit.History == nil {
		return repo
	}

	history := node.Ref.Target.Commit.History
	mapped := &domain.CommitHistory{}
	cursors := make([]githubv4.String, 0, len(history.Edges))
	for _, e := range history.Edges {
		cursors = append(cursors, e.Cursor)
		mapped.Page.Items = append(mapped.Page.Items, domain.CommitRef{
			ID:  string(e.Node.ID),
			SHA: string(e.Node.Oid),
		})
		mapped.Preview = append(mapped.Preview, domain.CommitPreview{
			SHA:           string(e.Node.Oid),
			Message:       string(e.Node.Message),
			CommitterName: string(e.Node.Committer.Name),
			CommittedDate: e.Node.CommittedDate.UTC(),
		})
	}
	mapped.Page.HasMore = bool(history.PageInfo.HasNextPage)
	mapped.Page.NextCursor = domain.Cursor(nextCursor(cursors, history.PageInfo))
	repo.History = mapped
	return repo
}
