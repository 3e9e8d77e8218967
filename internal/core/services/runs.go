package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/repopulse/internal/core/domain"
	"github.com/custodia-labs/repopulse/internal/core/ports/driven"
	"github.com/custodia-labs/repopulse/internal/core/ports/driving"
)

// Ensure RunService implements the interface.
var _ driving.RunService = (*RunService)(nil)

// RunService records traversals in a RunStore.
type RunService struct {
	store driven.RunStore
	now   func() time.Time
}

// NewRunService creates a new run service.
func NewRunService(store driven.RunStore) *RunService {
	return &RunService{
		store: store,
		now:   time.Now,
	}
}

// Record persists a finished traversal under a fresh run ID.
func (s *RunService) Record(
	ctx context.Context, req domain.TraversalRequest, started time.Time, result *domain.TraversalResult,
) (*domain.Run, error) {
	if s.store == nil {
		return nil, errors.New("run store not configured")
	}
	if result == nil {
		return nil, fmt.Errorf("record run: result is required: %w", domain.ErrInvalidInput)
	}

	run := domain.NewRun(uuid.New().String(), req, started.UTC(), s.now().UTC(), result)
	if err := s.store.SaveRun(ctx, run); err != nil {
		return nil, fmt.Errorf("save run: %w", err)
	}
	return &run, nil
}

// List returns all stored runs, newest first.
func (s *RunService) List(ctx context.Context) ([]domain.Run, error) {
	if s.store == nil {
		return nil, errors.New("run store not configured")
	}
	return s.store.ListRuns(ctx)
}

// Get returns one run and the commit details stored for it.
func (s *RunService) Get(ctx context.Context, id string) (*domain.Run, []domain.CommitDetail, error) {
	if s.store == nil {
		return nil, nil, errors.New("run store not configured")
	}

	run, err := s.store.GetRun(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get run: %w", err)
	}

	details, err := s.store.ListCommitDetails(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list commit details: %w", err)
	}
	return run, details, nil
}
