// Package sqlite provides a SQLite-based implementation of driven.RunStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
//   - runs: one row per traversal with its totals and rendered warnings
//   - run_repositories: qualified repositories of a run, in traversal order,
//     with their commit SHAs
//   - commit_details: resolved commit details of a run
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.repopulse/data/runs.db
package sqlite
