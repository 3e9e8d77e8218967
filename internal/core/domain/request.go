package domain

import "time"

// TraversalRequest holds everything one traversal needs.
type TraversalRequest struct {
	Organization string
	Branch       string
	Since        time.Time

	// PageSize is the number of repositories per search page.
	PageSize int

	// CommitPageSize bounds the commit page embedded in each search result.
	CommitPageSize int

	// HistoryPageSize is the page size used when paging a branch history.
	HistoryPageSize int

	// Filter decides which repositories have their commits collected.
	Filter *NamePatternFilter
}

// RepositoryQuery returns the search parameters for this request.
func (r TraversalRequest) RepositoryQuery() RepositoryQuery {
	return RepositoryQuery{
		Organization:   r.Organization,
		Since:          r.Since,
		PageSize:       r.PageSize,
		CommitPageSize: r.CommitPageSize,
		Branch:         r.Branch,
	}
}

// CommitQuery returns the history parameters for one repository.
func (r TraversalRequest) CommitQuery(repository string) CommitQuery {
	return CommitQuery{
		Organization: r.Organization,
		Repository:   repository,
		Branch:       r.Branch,
		Since:        r.Since,
		PageSize:     r.HistoryPageSize,
	}
}
