package domain

import "time"

// RepositorySummary is a repository returned by the activity search.
// It lives only for the duration of one traversal.
type RepositorySummary struct {
	// ID is the upstream node identifier.
	ID string

	// Name is the repository name without owner.
	Name string

	// PushedAt is the last push time reported by the search.
	PushedAt time.Time

	// History is the embedded first page of commits on the requested branch.
	// Nil means the response carried no history at all (missing ref, or a
	// target that is not a commit), which is distinct from an empty page.
	History *CommitHistory
}

// HasCommits reports whether the embedded history contains any commit.
func (r RepositorySummary) HasCommits() bool {
	return r.History != nil && len(r.History.Page.Items) > 0
}

// CommitHistory is the first page of a branch history embedded in a
// repository search result.
type CommitHistory struct {
	// Page holds the commit identifiers and the cursor to continue from.
	Page Page[CommitRef]

	// Preview carries the extra per-commit fields the search returns.
	// Entries align with Page.Items.
	Preview []CommitPreview
}

// CommitRef identifies a commit discovered on a branch.
type CommitRef struct {
	// ID is the upstream node identifier.
	ID string

	// SHA is the git object id.
	SHA string
}

// CommitPreview is the short commit summary embedded in a search page.
type CommitPreview struct {
	SHA           string
	Message       string
	CommitterName string
	CommittedDate time.Time
}

// RepositoryPage is one page of the repository search.
type RepositoryPage struct {
	Page[RepositorySummary]

	// RepositoryCount is the server-reported total for the whole search.
	RepositoryCount int
}

// RepositoryQuery holds the parameters of the repository search.
type RepositoryQuery struct {
	Organization   string
	Since          time.Time
	PageSize       int
	CommitPageSize int
	Branch         string
}

// CommitQuery holds the parameters of a branch history query.
type CommitQuery struct {
	Organization string
	Repository   string
	Branch       string
	Since        time.Time
	PageSize     int
}
