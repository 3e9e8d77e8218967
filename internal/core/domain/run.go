package domain

import "time"

// Run is the persisted summary of one traversal.
type Run struct {
	ID              string
	Organization    string
	Branch          string
	Since           time.Time
	StartedAt       time.Time
	FinishedAt      time.Time
	RepositoryCount int
	Qualified       []string
	Disqualified    []string

	// Commits maps qualified repository name to commit SHAs.
	Commits map[string][]string

	// Warnings holds the rendered warnings of the traversal.
	Warnings []string
}

// NewRun builds a Run from a finished traversal.
func NewRun(id string, req TraversalRequest, started, finished time.Time, result *TraversalResult) Run {
	run := Run{
		ID:              id,
		Organization:    req.Organization,
		Branch:          req.Branch,
		Since:           req.Since,
		StartedAt:       started,
		FinishedAt:      finished,
		RepositoryCount: result.RepositoryCount,
		Qualified:       append([]string(nil), result.Qualified...),
		Disqualified:    append([]string(nil), result.Disqualified...),
		Commits:         make(map[string][]string, len(result.Commits)),
	}
	for name, shas := range result.Commits {
		run.Commits[name] = append([]string(nil), shas...)
	}
	for _, w := range result.Warnings {
		run.Warnings = append(run.Warnings, w.String())
	}
	return run
}
