// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The traversal itself is single-threaded: one request is outstanding at a
// time and nothing is retried. Retry policy, if any, belongs to the adapters.
package services
