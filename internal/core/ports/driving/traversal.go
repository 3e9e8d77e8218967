package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/repopulse/internal/core/domain"
)

// Traverser walks the repository search and the history of every
// qualifying repository.
type Traverser interface {
	// Traverse runs one traversal to completion.
	// Malformed pages become warnings on the result. Transport failures and
	// pagination that stops advancing abort with an error.
	Traverse(ctx context.Context, req domain.TraversalRequest) (*domain.TraversalResult, error)
}

// CommitResolver turns the SHAs of a traversal into commit details.
type CommitResolver interface {
	// Resolve looks up every SHA in result. Rate-limited lookups are recorded
	// as warnings and skipped; other failures abort.
	Resolve(ctx context.Context, req ResolveRequest) (*ResolveSummary, error)
}

// ResolveRequest describes one detail-resolution pass.
type ResolveRequest struct {
	Organization string
	Result       *domain.TraversalResult

	// RunID, when set, stores each detail under that run.
	RunID string
}

// ResolveSummary reports what a resolution pass did.
type ResolveSummary struct {
	Details     []domain.CommitDetail
	RateLimited int
	Warnings    []domain.Warning

	// LastRateLimit is the most recent quota state seen.
	LastRateLimit *domain.RateLimit
}

// RunService records traversals and reads them back.
type RunService interface {
	// Record persists a finished traversal that began at started and returns its run.
	Record(
		ctx context.Context, req domain.TraversalRequest, started time.Time, result *domain.TraversalResult,
	) (*domain.Run, error)

	// List returns all stored runs, newest first.
	List(ctx context.Context) ([]domain.Run, error)

	// Get returns one run and its stored commit details.
	Get(ctx context.Context, id string) (*domain.Run, []domain.CommitDetail, error)
}

// SettingsService loads and validates scan settings.
type SettingsService interface {
	// Get returns the settings from configuration with defaults applied.
	Get() (*domain.ScanSettings, error)

	// Validate checks settings are usable for a scan.
	Validate(settings *domain.ScanSettings) error

	// Set parses a raw string value for key and persists it.
	// Returns domain.ErrInvalidInput for unknown keys or unparsable values.
	Set(key, raw string) error

	// Keys returns every settable key.
	Keys() []string
}
