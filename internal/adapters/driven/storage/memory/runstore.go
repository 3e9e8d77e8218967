package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/repopulse/internal/core/domain"
	"github.com/custodia-labs/repopulse/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu      sync.RWMutex
	runs    map[string]domain.Run
	details map[string][]domain.CommitDetail
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs:    make(map[string]domain.Run),
		details: make(map[string][]domain.CommitDetail),
	}
}

// SaveRun stores or replaces a run.
func (s *RunStore) SaveRun(_ context.Context, run domain.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

// GetRun retrieves a run by ID.
func (s *RunStore) GetRun(_ context.Context, id string) (*domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// ListRuns returns all runs, newest first.
func (s *RunStore) ListRuns(_ context.Context) ([]domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := make([]domain.Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	return runs, nil
}

// SaveCommitDetail appends a commit detail to a run.
func (s *RunStore) SaveCommitDetail(_ context.Context, runID string, detail domain.CommitDetail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[runID]; !ok {
		return domain.ErrNotFound
	}
	s.details[runID] = append(s.details[runID], detail)
	return nil
}

// ListCommitDetails returns the details of a run in insertion order.
func (s *RunStore) ListCommitDetails(_ context.Context, runID string) ([]domain.CommitDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.runs[runID]; !ok {
		return nil, domain.ErrNotFound
	}
	details := make([]domain.CommitDetail, len(s.details[runID]))
	copy(details, s.details[runID])
	return details, nil
}
