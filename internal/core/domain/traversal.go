package domain

import (
	"fmt"
	"time"
)

// WarningKind classifies a non-fatal problem found during a traversal.
type WarningKind string

const (
	// WarningMalformedResponse means expected nested data was missing.
	WarningMalformedResponse WarningKind = "malformed_response"

	// WarningCountMismatch means the number of repositories seen differs
	// from the count the server reported.
	WarningCountMismatch WarningKind = "count_mismatch"

	// WarningRateLimited means a detail lookup was refused by the rate limit.
	WarningRateLimited WarningKind = "rate_limited"
)

// Warning is a partial failure surfaced alongside otherwise complete results.
type Warning struct {
	Kind       WarningKind
	Repository string
	Message    string
}

func (w Warning) String() string {
	if w.Repository == "" {
		return fmt.Sprintf("%s: %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: %s: %s", w.Kind, w.Repository, w.Message)
}

// TraversalResult accumulates the outcome of one traversal.
// It is created empty and filled in page by page.
type TraversalResult struct {
	// RepositoryCount is the total reported by the first repository page.
	RepositoryCount int

	// Seen is the number of repositories delivered across all pages.
	Seen int

	// Qualified lists repositories that passed the name filter, in discovery order.
	Qualified []string

	// Disqualified lists repositories rejected by the name filter, in discovery order.
	Disqualified []string

	// Commits maps qualified repository name to commit SHAs in delivery order.
	Commits map[string][]string

	// Pushed maps every seen repository name to its last push time.
	Pushed map[string]time.Time

	// Previews maps qualified repository name to the embedded commit summaries.
	Previews map[string][]CommitPreview

	// Warnings lists partial failures in the order they occurred.
	Warnings []Warning
}

// NewTraversalResult creates an empty result.
func NewTraversalResult() *TraversalResult {
	return &TraversalResult{
		Qualified:    []string{},
		Disqualified: []string{},
		Commits:      make(map[string][]string),
		Pushed:       make(map[string]time.Time),
		Previews:     make(map[string][]CommitPreview),
	}
}

// AddWarning records a partial failure.
func (r *TraversalResult) AddWarning(kind WarningKind, repository, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{
		Kind:       kind,
		Repository: repository,
		Message:    fmt.Sprintf(format, args...),
	})
}

// Complete reports whether every repository the server counted was classified.
func (r *TraversalResult) Complete() bool {
	return len(r.Qualified)+len(r.Disqualified) == r.RepositoryCount
}

// CommitCount returns the total number of SHAs across all repositories.
func (r *TraversalResult) CommitCount() int {
	n := 0
	for _, shas := range r.Commits {
		n += len(shas)
	}
	return n
}
