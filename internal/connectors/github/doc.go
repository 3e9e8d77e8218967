// Package github implements the GitHub side of a repository traversal.
//
// Repository search and branch history are paged over the GraphQL API with
// [github.com/shurcooL/githubv4]. Per-commit detail comes from the REST API
// through [github.com/google/go-github/v80/github].
//
// # Pagination
//
// The repository search embeds the first page of each repository's branch
// history, so a repository with a short history costs no extra request.
// Longer histories continue through [Client.FetchCommitPage] from the
// cursor of the last embedded commit.
//
// The cursor to continue from is the cursor of the last edge on a page.
// When a page has no edges the endCursor of its pageInfo is used instead.
//
// # Rate Limiting
//
// Every request passes through one transport that:
//
//  1. Throttles with a token bucket when requests_per_second is set.
//  2. Records X-RateLimit-Limit, X-RateLimit-Remaining and
//     X-RateLimit-Reset from every response, GraphQL and REST.
//
// The client never waits for a quota reset. A refused REST lookup is
// returned as a [RateLimitError], which matches [domain.ErrRateLimited],
// and the caller decides whether to move on.
//
// # Error Handling
//
//   - GraphQL transport or payload failures: [TransportError]
//   - Missing repository, ref or history on a history page:
//     [domain.ErrMalformedResponse]
//   - REST 403 with exhausted quota, 429, secondary limits: [RateLimitError]
//   - Other REST error responses: [APIError]
package github
