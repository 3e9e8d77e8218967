package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/repopulse/internal/core/domain"
)

// mockRepositoryPager serves repository pages keyed by cursor.
type mockRepositoryPager struct {
	pages   map[domain.Cursor]*domain.RepositoryPage
	err     error
	cursors []domain.Cursor
	queries []domain.RepositoryQuery
}

func (m *mockRepositoryPager) FetchRepositoryPage(
	_ context.Context, query domain.RepositoryQuery, cursor domain.Cursor,
) (*domain.RepositoryPage, error) {
	m.cursors = append(m.cursors, cursor)
	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, m.err
	}
	page, ok := m.pages[cursor]
	if !ok {
		return nil, fmt.Errorf("unexpected repository cursor %q", cursor)
	}
	// Hand out a copy so Normalize in the orchestrator cannot leak between runs.
	cp := *page
	return &cp, nil
}

// commitCall records one CommitPager invocation.
type commitCall struct {
	repo   string
	cursor domain.Cursor
}

// mockCommitPager serves commit pages keyed by repository and cursor.
type mockCommitPager struct {
	pages map[string]map[domain.Cursor]*domain.Page[domain.CommitRef]
	errs  map[string]error
	calls []commitCall
}

func (m *mockCommitPager) FetchCommitPage(
	_ context.Context, query domain.CommitQuery, cursor domain.Cursor,
) (*domain.Page[domain.CommitRef], error) {
	m.calls = append(m.calls, commitCall{repo: query.Repository, cursor: cursor})
	if err, ok := m.errs[query.Repository]; ok {
		return nil, err
	}
	page, ok := m.pages[query.Repository][cursor]
	if !ok {
		return nil, fmt.Errorf("unexpected commit cursor %q for %s", cursor, query.Repository)
	}
	cp := *page
	return &cp, nil
}

// mockDetailFetcher returns canned details or errors per SHA.
type mockDetailFetcher struct {
	errs  map[string]error
	limit *domain.RateLimit
	calls []string
}

func (m *mockDetailFetcher) GetCommitDetail(
	_ context.Context, _, repo, sha string,
) (*domain.CommitDetail, *domain.RateLimit, error) {
	m.calls = append(m.calls, repo+"@"+sha)
	if err, ok := m.errs[sha]; ok {
		return nil, m.limit, err
	}
	return &domain.CommitDetail{
		Repository: repo,
		SHA:        sha,
		Committer:  domain.Signature{Name: "Dev", Email: "dev@example.com"},
		Timestamp:  time.Date(2017, 4, 6, 0, 0, 0, 0, time.UTC),
		Message:    "commit " + sha,
		Files:      []domain.FileChange{{Status: "modified", Filename: "main.go"}},
	}, m.limit, nil
}

// repo builds a summary with an embedded history of the given SHAs.
func repo(name string, hasMore bool, next domain.Cursor, shas ...string) domain.RepositorySummary {
	items := make([]domain.CommitRef, len(shas))
	for i, sha := range shas {
		items[i] = domain.CommitRef{ID: "C_" + sha, SHA: sha}
	}
	return domain.RepositorySummary{
		ID:       "R_" + name,
		Name:     name,
		PushedAt: time.Date(2017, 4, 10, 0, 0, 0, 0, time.UTC),
		History: &domain.CommitHistory{
			Page: domain.Page[domain.CommitRef]{Items: items, NextCursor: next, HasMore: hasMore},
		},
	}
}

// repoWithoutHistory builds a summary whose response had no history.
func repoWithoutHistory(name string) domain.RepositorySummary {
	return domain.RepositorySummary{ID: "R_" + name, Name: name}
}

func repoPage(count int, hasMore bool, next domain.Cursor, repos ...domain.RepositorySummary) *domain.RepositoryPage {
	return &domain.RepositoryPage{
		Page: domain.Page[domain.RepositorySummary]{
			Items:      repos,
			NextCursor: next,
			HasMore:    hasMore,
		},
		RepositoryCount: count,
	}
}

func commitPage(hasMore bool, next domain.Cursor, shas ...string) *domain.Page[domain.CommitRef] {
	items := make([]domain.CommitRef, len(shas))
	for i, sha := range shas {
		items[i] = domain.CommitRef{ID: "C_" + sha, SHA: sha}
	}
	return &domain.Page[domain.CommitRef]{Items: items, NextCursor: next, HasMore: hasMore}
}

func testRequest(inclusions, exclusions []string) domain.TraversalRequest {
	return domain.TraversalRequest{
		Organization:    "acme",
		Branch:          "master",
		Since:           time.Date(2017, 4, 5, 6, 0, 0, 0, time.UTC),
		PageSize:        2,
		CommitPageSize:  3,
		HistoryPageSize: 50,
		Filter:          domain.NewNamePatternFilter(inclusions, exclusions),
	}
}
