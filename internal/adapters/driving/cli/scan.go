package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/repopulse/internal/core/domain"
	"github.com/custodia-labs/repopulse/internal/core/ports/driven"
	"github.com/custodia-labs/repopulse/internal/core/ports/driving"
)

var (
	scanOrg             string
	scanSince           string
	scanBranch          string
	scanInclude         []string
	scanExclude         []string
	scanPageSize        int
	scanCommitPageSize  int
	scanHistoryPageSize int
	scanDetails         bool
	scanStore           bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Collect commits from recently pushed repositories",
	Long: `Searches the organisation for repositories pushed since the given time,
classifies each by name pattern and collects the full branch history of every
qualifying repository.

Flags override the stored configuration for this run only.

--since accepts an RFC3339 timestamp, a date (2006-01-02) or a look-back
duration such as 36h or 7d.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	f := scanCmd.Flags()
	f.StringVar(&scanOrg, "org", "", "organisation to scan")
	f.StringVar(&scanSince, "since", "", "only repositories pushed after this time")
	f.StringVar(&scanBranch, "branch", "", "branch whose history is collected")
	f.StringSliceVar(&scanInclude, "include", nil, "inclusion patterns (* wildcard)")
	f.StringSliceVar(&scanExclude, "exclude", nil, "exclusion patterns (* wildcard)")
	f.IntVar(&scanPageSize, "page-size", 0, "repositories per search page")
	f.IntVar(&scanCommitPageSize, "commit-page-size", 0, "commits embedded per repository in the search")
	f.IntVar(&scanHistoryPageSize, "history-page-size", 0, "commits per history page")
	f.BoolVar(&scanDetails, "details", false, "resolve commit details over REST")
	f.BoolVar(&scanStore, "store", false, "record the run in the local database")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	if wiring.Connect == nil {
		return errors.New("github connection not wired")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if err := applyScanFlags(cmd, settings, time.Now()); err != nil {
		return err
	}
	if err := settingsService.Validate(settings); err != nil {
		return err
	}

	ctx := commandContext(cmd)

	history, err := openHistory(settings.DataDir)
	if err != nil {
		return err
	}
	if history != nil && history.Close != nil {
		defer func() { _ = history.Close() }()
	}

	var runs driven.RunStore
	if history != nil {
		runs = history.Store
	}
	session, err := wiring.Connect(ctx, settings.GitHub, runs)
	if err != nil {
		return fmt.Errorf("connect to github: %w", err)
	}

	req := settings.TraversalRequest()
	started := time.Now()
	result, err := session.Traverser.Traverse(ctx, req)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	printer := newPrinter(cmd)
	printer.Traversal(req, result)

	resolveReq := driving.ResolveRequest{Organization: req.Organization, Result: result}
	if history != nil {
		run, err := history.Service.Record(ctx, req, started, result)
		if err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		resolveReq.RunID = run.ID
		if scanStore {
			cmd.Printf("\nRecorded run %s\n", run.ID)
		}
	}

	if !scanDetails {
		return nil
	}
	summary, err := session.Resolver.Resolve(ctx, resolveReq)
	printer.Resolve(summary)
	if err != nil {
		return fmt.Errorf("resolve details: %w", err)
	}
	return nil
}

// openHistory opens the SQLite store with --store, else a throwaway one.
// Returns nil when neither is wired.
func openHistory(dataDir string) (*RunHistory, error) {
	if scanStore {
		if wiring.OpenRuns == nil {
			return nil, errors.New("run store not wired")
		}
		history, err := wiring.OpenRuns(dataDir)
		if err != nil {
			return nil, fmt.Errorf("open run store: %w", err)
		}
		return history, nil
	}
	if wiring.MemoryRuns == nil {
		return nil, nil
	}
	return wiring.MemoryRuns(), nil
}

// applyScanFlags overrides settings with the flags set on this invocation.
func applyScanFlags(cmd *cobra.Command, settings *domain.ScanSettings, now time.Time) error {
	f := cmd.Flags()
	if f.Changed("org") {
		settings.Organization = strings.TrimSpace(scanOrg)
	}
	if f.Changed("branch") {
		settings.Branch = strings.TrimSpace(scanBranch)
	}
	if f.Changed("since") {
		since, err := parseSince(scanSince, now)
		if err != nil {
			return err
		}
		settings.Since = since
	}
	if f.Changed("include") {
		settings.Inclusions = trimPatterns(scanInclude)
	}
	if f.Changed("exclude") {
		settings.Exclusions = trimPatterns(scanExclude)
	}
	if f.Changed("page-size") {
		settings.PageSize = scanPageSize
	}
	if f.Changed("commit-page-size") {
		settings.CommitPageSize = scanCommitPageSize
	}
	if f.Changed("history-page-size") {
		settings.HistoryPageSize = scanHistoryPageSize
	}
	return nil
}

// trimPatterns drops the spaces a user types after the commas of a list.
func trimPatterns(raw []string) []string {
	patterns := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// parseSince accepts RFC3339, a bare date or a look-back duration.
// Durations may use a d suffix for days.
func parseSince(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t.UTC(), nil
	}
	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err == nil && n >= 0 {
			return now.UTC().AddDate(0, 0, -n).Truncate(time.Second), nil
		}
	}
	if d, err := time.ParseDuration(raw); err == nil && d >= 0 {
		return now.UTC().Add(-d).Truncate(time.Second), nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid --since %q: use RFC3339, YYYY-MM-DD or a duration like 36h or 7d",
		domain.ErrInvalidInput, raw)
}
