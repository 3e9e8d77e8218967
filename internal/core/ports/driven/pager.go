package driven

import (
	"context"

	"github.com/custodia-labs/repopulse/internal/core/domain"
)

// RepositoryPager fetches pages of the repository activity search.
type RepositoryPager interface {
	// FetchRepositoryPage returns the page starting at cursor.
	// An empty cursor requests the first page.
	// Network and HTTP failures are returned as errors and are not retried.
	FetchRepositoryPage(
		ctx context.Context, query domain.RepositoryQuery, cursor domain.Cursor,
	) (*domain.RepositoryPage, error)
}

// CommitPager fetches pages of one branch history.
type CommitPager interface {
	// FetchCommitPage returns the page of commits starting at cursor.
	// Returns an error wrapping domain.ErrMalformedResponse when the
	// response lacks the repository, ref, target or history.
	FetchCommitPage(
		ctx context.Context, query domain.CommitQuery, cursor domain.Cursor,
	) (*domain.Page[domain.CommitRef], error)
}
