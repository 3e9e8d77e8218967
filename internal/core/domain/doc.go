// Package domain defines the core entities for repopulse.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RepositorySummary: A repository returned by the activity search
//   - CommitRef: A commit identifier discovered on a branch
//   - Page: One page of a cursor-paged collection
//   - TraversalResult: The outcome of one full traversal
//   - CommitDetail: A commit resolved through the REST API
//   - NamePatternFilter: Inclusion/exclusion name matching
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
