// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - RepositoryPager: Pages through the repository activity search
//   - CommitPager: Pages through a branch history
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - CommitDetailFetcher: Resolves commit SHAs. Without it, only SHAs are reported.
//   - RunStore: Persists traversal runs and commit details. Without it, nothing is kept.
//   - AccountProvider: Token and quota lookup for the status command.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
