package driven

import (
	"context"

	"github.com/custodia-labs/repopulse/internal/core/domain"
)

// RunStore persists traversal runs and the commit details resolved for them.
type RunStore interface {
	// SaveRun stores or replaces a run summary.
	SaveRun(ctx context.Context, run domain.Run) error

	// GetRun retrieves a run by ID. Returns domain.ErrNotFound if absent.
	GetRun(ctx context.Context, id string) (*domain.Run, error)

	// ListRuns returns all runs, newest first.
	ListRuns(ctx context.Context) ([]domain.Run, error)

	// SaveCommitDetail stores the detail of one commit under a run.
	SaveCommitDetail(ctx context.Context, runID string, detail domain.CommitDetail) error

	// ListCommitDetails returns the details stored for a run in insertion order.
	ListCommitDetails(ctx context.Context, runID string) ([]domain.CommitDetail, error)
}
