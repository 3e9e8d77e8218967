package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/repopulse/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/repopulse/internal/core/domain"
	"github.com/custodia-labs/repopulse/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.RunStore = (*Store)(nil)

// DatabaseFile is the file name of the run database inside the data directory.
const DatabaseFile = "runs.db"

// Store is a SQLite-based run store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.repopulse/data/runs.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".repopulse", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// Pragmas in the DSN apply to every pooled connection.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Runs ====================

// SaveRun stores or replaces a run summary together with its repositories.
// Commit details already stored for the run are kept.
func (s *Store) SaveRun(ctx context.Context, run domain.Run) error {
	names := make(map[string]struct{}, len(run.Qualified))
	for _, name := range run.Qualified {
		if _, dup := names[name]; dup {
			return fmt.Errorf("%w: repository %s listed twice in run %s", domain.ErrInvalidInput, name, run.ID)
		}
		names[name] = struct{}{}
	}

	disqualifiedJSON, err := marshalList(run.Disqualified)
	if err != nil {
		return fmt.Errorf("marshalling disqualified: %w", err)
	}
	warningsJSON, err := marshalList(run.Warnings)
	if err != nil {
		return fmt.Errorf("marshalling warnings: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, organization, branch, since, started_at, finished_at,
			repository_count, disqualified, warnings)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			organization = excluded.organization,
			branch = excluded.branch,
			since = excluded.since,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			repository_count = excluded.repository_count,
			disqualified = excluded.disqualified,
			warnings = excluded.warnings
	`, run.ID, run.Organization, run.Branch, run.Since.UTC(), run.StartedAt.UTC(), run.FinishedAt.UTC(),
		run.RepositoryCount, disqualifiedJSON, warningsJSON)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM run_repositories WHERE run_id = ?", run.ID); err != nil {
		return fmt.Errorf("clearing run repositories: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_repositories (run_id, position, name, commits)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing repository insert: %w", err)
	}
	defer stmt.Close()

	for i, name := range run.Qualified {
		commitsJSON, err := marshalList(run.Commits[name])
		if err != nil {
			return fmt.Errorf("marshalling commits of %s: %w", name, err)
		}
		if _, err := stmt.ExecContext(ctx, run.ID, i, name, commitsJSON); err != nil {
			return fmt.Errorf("saving repository %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, organization, branch, since, started_at, finished_at,
			repository_count, disqualified, warnings
		FROM runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := s.loadRepositories(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]domain.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, organization, branch, since, started_at, finished_at,
			repository_count, disqualified, warnings
		FROM runs ORDER BY started_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	for i := range runs {
		if err := s.loadRepositories(ctx, &runs[i]); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// loadRepositories fills Qualified and Commits of a run.
func (s *Store) loadRepositories(ctx context.Context, run *domain.Run) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, commits FROM run_repositories
		WHERE run_id = ? ORDER BY position
	`, run.ID)
	if err != nil {
		return fmt.Errorf("querying run repositories: %w", err)
	}
	defer rows.Close()

	run.Commits = make(map[string][]string)
	for rows.Next() {
		var name, commitsJSON string
		if err := rows.Scan(&name, &commitsJSON); err != nil {
			return fmt.Errorf("scanning run repository: %w", err)
		}
		commits, err := unmarshalList(commitsJSON)
		if err != nil {
			return fmt.Errorf("unmarshalling commits of %s: %w", name, err)
		}
		run.Qualified = append(run.Qualified, name)
		run.Commits[name] = commits
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating run repositories: %w", err)
	}
	return nil
}

// ==================== Commit details ====================

// SaveCommitDetail appends a commit detail to a run.
func (s *Store) SaveCommitDetail(ctx context.Context, runID string, detail domain.CommitDetail) error {
	exists, err := s.runExists(ctx, runID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}

	filesJSON, err := json.Marshal(fileRecords(detail.Files))
	if err != nil {
		return fmt.Errorf("marshalling files: %w", err)
	}

	var committedAt sql.NullTime
	if !detail.Timestamp.IsZero() {
		committedAt = sql.NullTime{Time: detail.Timestamp.UTC(), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO commit_details (run_id, repository, sha, committer_name, committer_email,
			committed_at, message, files)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, detail.Repository, detail.SHA, detail.Committer.Name, detail.Committer.Email,
		committedAt, detail.Message, string(filesJSON))
	if err != nil {
		return fmt.Errorf("saving commit detail: %w", err)
	}
	return nil
}

// ListCommitDetails returns the details of a run in insertion order.
func (s *Store) ListCommitDetails(ctx context.Context, runID string) ([]domain.CommitDetail, error) {
	exists, err := s.runExists(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT repository, sha, committer_name, committer_email, committed_at, message, files
		FROM commit_details WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying commit details: %w", err)
	}
	defer rows.Close()

	details := []domain.CommitDetail{}
	for rows.Next() {
		var detail domain.CommitDetail
		var committedAt sql.NullTime
		var filesJSON string
		if err := rows.Scan(&detail.Repository, &detail.SHA, &detail.Committer.Name,
			&detail.Committer.Email, &committedAt, &detail.Message, &filesJSON); err != nil {
			return nil, fmt.Errorf("scanning commit detail: %w", err)
		}
		if committedAt.Valid {
			detail.Timestamp = committedAt.Time.UTC()
		}

		var files []fileRecord
		if err := json.Unmarshal([]byte(filesJSON), &files); err != nil {
			return nil, fmt.Errorf("unmarshalling files: %w", err)
		}
		for _, f := range files {
			detail.Files = append(detail.Files, domain.FileChange{Status: f.Status, Filename: f.Filename})
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating commit details: %w", err)
	}
	return details, nil
}

func (s *Store) runExists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM runs WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking run: %w", err)
	}
	return true, nil
}

// ==================== Helpers ====================

// fileRecord is the JSON shape of a changed file.
type fileRecord struct {
	Status   string `json:"status"`
	Filename string `json:"filename"`
}

func fileRecords(files []domain.FileChange) []fileRecord {
	records := make([]fileRecord, 0, len(files))
	for _, f := range files {
		records = append(records, fileRecord{Status: f.Status, Filename: f.Filename})
	}
	return records
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.Run, error) {
	var run domain.Run
	var since, startedAt, finishedAt time.Time
	var disqualifiedJSON, warningsJSON string
	if err := row.Scan(&run.ID, &run.Organization, &run.Branch, &since, &startedAt, &finishedAt,
		&run.RepositoryCount, &disqualifiedJSON, &warningsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	run.Since = since.UTC()
	run.StartedAt = startedAt.UTC()
	run.FinishedAt = finishedAt.UTC()

	var err error
	if run.Disqualified, err = unmarshalList(disqualifiedJSON); err != nil {
		return nil, fmt.Errorf("unmarshalling disqualified: %w", err)
	}
	if run.Warnings, err = unmarshalList(warningsJSON); err != nil {
		return nil, fmt.Errorf("unmarshalling warnings: %w", err)
	}
	return &run, nil
}

// marshalList encodes a string list, writing nil as an empty array.
func marshalList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// unmarshalList decodes a string list. An empty array decodes to nil.
func unmarshalList(data string) ([]string, error) {
	var items []string
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}
