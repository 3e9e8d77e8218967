package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/repopulse/internal/core/domain"
	"github.com/custodia-labs/repopulse/internal/core/ports/driven"
	"github.com/custodia-labs/repopulse/internal/core/ports/driving"
	"github.com/custodia-labs/repopulse/internal/logger"
)

// Ensure TraversalOrchestrator implements the interface.
var _ driving.Traverser = (*TraversalOrchestrator)(nil)

// TraversalOrchestrator drives the repository search and, for every
// qualifying repository, the branch history to exhaustion.
//
// It issues one request at a time. The history of repository A is fully
// collected before repository B is looked at, so results are deterministic
// for an unchanged upstream.
type TraversalOrchestrator struct {
	repos   driven.RepositoryPager
	commits driven.CommitPager
}

// NewTraversalOrchestrator creates a new orchestrator.
func NewTraversalOrchestrator(repos driven.RepositoryPager, commits driven.CommitPager) *TraversalOrchestrator {
	return &TraversalOrchestrator{
		repos:   repos,
		commits: commits,
	}
}

// Traverse runs one traversal to completion.
func (o *TraversalOrchestrator) Traverse(
	ctx context.Context, req domain.TraversalRequest,
) (*domain.TraversalResult, error) {
	if o.repos == nil || o.commits == nil {
		return nil, errors.New("traverse: pagers not configured")
	}
	if req.Organization == "" {
		return nil, fmt.Errorf("traverse: organization is required: %w", domain.ErrInvalidInput)
	}
	if req.Filter == nil {
		return nil, fmt.Errorf("traverse: name filter is required: %w", domain.ErrInvalidInput)
	}

	logger.Section("Repository traversal")
	logger.Info("Searching %s for repositories pushed after %s", req.Organization, req.Since.Format("2006-01-02T15:04:05Z07:00"))

	result := domain.NewTraversalResult()
	tracker := domain.NewCursorTracker("repositories")
	query := req.RepositoryQuery()
	classified := make(map[string]struct{})

	var cursor domain.Cursor
	first := true
	for {
		page, err := o.repos.FetchRepositoryPage(ctx, query, cursor)
		if err != nil {
			return nil, fmt.Errorf("fetch repository page: %w", err)
		}
		page.Normalize()

		if first {
			result.RepositoryCount = page.RepositoryCount
			first = false
		} else if page.RepositoryCount != result.RepositoryCount {
			logger.Debug("Repository count changed mid-traversal: %d -> %d", result.RepositoryCount, page.RepositoryCount)
		}
		logger.Debug("Repository page: %d items, hasMore=%t", len(page.Items), page.HasMore)

		for _, repo := range page.Items {
			// Search order can shift between pages. The first delivery wins.
			if _, dup := classified[repo.Name]; dup {
				logger.Warn("Repository %s delivered again, keeping its first classification", repo.Name)
				result.AddWarning(domain.WarningCountMismatch, repo.Name,
					"delivered more than once, later occurrence ignored")
				continue
			}
			classified[repo.Name] = struct{}{}

			if err := o.visitRepository(ctx, req, repo, result); err != nil {
				return nil, err
			}
		}
		result.Seen += len(page.Items)

		next, more, err := tracker.Advance(len(page.Items), page.NextCursor, page.HasMore)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		logger.Debug("Repository cursor: %s", next)
		cursor = next
	}

	checkCounts(result)

	logger.Info("Traversal complete: %d repositories over %d pages, %d qualified, %d commits",
		result.RepositoryCount, tracker.Pages()+1, len(result.Qualified), result.CommitCount())
	return result, nil
}

// visitRepository classifies one repository and collects its history when qualified.
func (o *TraversalOrchestrator) visitRepository(
	ctx context.Context, req domain.TraversalRequest, repo domain.RepositorySummary, result *domain.TraversalResult,
) error {
	result.Pushed[repo.Name] = repo.PushedAt

	if !req.Filter.IsQualified(repo.Name) {
		logger.Debug("Disqualified %s", repo.Name)
		result.Disqualified = append(result.Disqualified, repo.Name)
		return nil
	}

	logger.Debug("Qualified %s", repo.Name)
	result.Qualified = append(result.Qualified, repo.Name)
	result.Commits[repo.Name] = []string{}

	if repo.History == nil {
		logger.Warn("No history for %s on %s", repo.Name, req.Branch)
		result.AddWarning(domain.WarningMalformedResponse, repo.Name, "no history on branch %s", req.Branch)
		return nil
	}
	if !repo.HasCommits() {
		return nil
	}

	result.Previews[repo.Name] = repo.History.Preview
	return o.collectCommits(ctx, req, repo, result)
}

// collectCommits pages the history of one repository to exhaustion, starting
// from the page embedded in the search result.
func (o *TraversalOrchestrator) collectCommits(
	ctx context.Context, req domain.TraversalRequest, repo domain.RepositorySummary, result *domain.TraversalResult,
) error {
	tracker := domain.NewCursorTracker("commits of " + repo.Name)
	query := req.CommitQuery(repo.Name)

	page := repo.History.Page
	for {
		page.Normalize()
		for _, c := range page.Items {
			result.Commits[repo.Name] = append(result.Commits[repo.Name], c.SHA)
		}

		next, more, err := tracker.Advance(len(page.Items), page.NextCursor, page.HasMore)
		if err != nil {
			return err
		}
		if !more {
			logger.Debug("Collected %d commits of %s over %d pages",
				len(result.Commits[repo.Name]), repo.Name, tracker.Pages()+1)
			return nil
		}

		fetched, err := o.commits.FetchCommitPage(ctx, query, next)
		if errors.Is(err, domain.ErrMalformedResponse) {
			logger.Warn("Incomplete history for %s: %v", repo.Name, err)
			result.AddWarning(domain.WarningMalformedResponse, repo.Name,
				"history stopped after %d commits: %v", len(result.Commits[repo.Name]), err)
			return nil
		}
		if err != nil {
			return fmt.Errorf("fetch commit page for %s: %w", repo.Name, err)
		}
		page = *fetched
	}
}

// checkCounts compares the repositories classified with the count the
// server reported. Repeated deliveries are classified once, so Seen may
// exceed the classified total.
func checkCounts(result *domain.TraversalResult) {
	if result.Complete() {
		return
	}
	classified := len(result.Qualified) + len(result.Disqualified)
	logger.Warn("Classified %d repositories but server reported %d", classified, result.RepositoryCount)
	result.AddWarning(domain.WarningCountMismatch, "",
		"saw %d repositories (%d distinct) across all pages, server reported %d",
		result.Seen, classified, result.RepositoryCount)
}
