package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/repopulse/internal/core/domain"
	"github.com/custodia-labs/repopulse/internal/core/ports/driven"
)

// Ensure Client implements the driven ports.
var (
	_ driven.RepositoryPager     = (*Client)(nil)
	_ driven.CommitPager         = (*Client)(nil)
	_ driven.CommitDetailFetcher = (*Client)(nil)
	_ driven.AccountProvider     = (*Client)(nil)
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second
)

// Client talks to GitHub over GraphQL (repository and history paging) and
// REST (commit detail). Both share one HTTP client, so throttling and rate
// limit tracking cover every request.
type Client struct {
	gql         *githubv4.Client
	rest        *gh.Client
	rateLimiter *RateLimiter
}

// NewClient creates a client from options.
// An oauth2 static token source authenticates requests unless opts.HTTPClient is set.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	opts = opts.withDefaults()

	httpClient := opts.HTTPClient
	if httpClient == nil {
		if opts.Token == "" {
			return nil, domain.ErrAuthRequired
		}
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: opts.Token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = opts.Timeout
	}

	return newClient(httpClient, opts)
}

// NewClientWithHTTPClient creates a client over a caller-supplied http.Client.
// Useful for tests and for http.Clients that handle token refresh.
func NewClientWithHTTPClient(httpClient *http.Client, graphqlURL, restURL string) (*Client, error) {
	return newClient(httpClient, Options{GraphQLURL: graphqlURL, RESTURL: restURL}.withDefaults())
}

func newClient(httpClient *http.Client, opts Options) (*Client, error) {
	limiter := NewRateLimiter(opts.RequestsPerSecond)

	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped := *httpClient
	wrapped.Transport = &transport{base: base, limiter: limiter}

	rest := gh.NewClient(&wrapped)
	restURL := opts.RESTURL
	if !strings.HasSuffix(restURL, "/") {
		restURL += "/"
	}
	baseURL, err := url.Parse(restURL)
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, opts.RESTURL)
	}
	rest.BaseURL = baseURL

	return &Client{
		gql:         githubv4.NewEnterpriseClient(opts.GraphQLURL, &wrapped),
		rest:        rest,
		rateLimiter: limiter,
	}, nil
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// ValidateCredentials checks the token by fetching the authenticated user.
// Returns the user's login.
func (c *Client) ValidateCredentials(ctx context.Context) (string, error) {
	user, _, err := c.rest.Users.Get(ctx, "")
	if err != nil {
		err = c.wrapError(err, "validate credentials")
		if IsUnauthorized(err) {
			return "", fmt.Errorf("%w: %w", domain.ErrAuthInvalid, err)
		}
		return "", err
	}
	return user.GetLogin(), nil
}

// RateLimit returns the current core rate limit status as reported by the API.
func (c *Client) RateLimit(ctx context.Context) (*domain.RateLimit, error) {
	limits, _, err := c.rest.RateLimit.Get(ctx)
	if err != nil {
		return nil, c.wrapError(err, "get rate limit")
	}
	core := limits.GetCore()
	if core == nil {
		return c.rateLimiter.Snapshot(), nil
	}
	return &domain.RateLimit{
		Limit:     core.Limit,
		Remaining: core.Remaining,
		Reset:     core.Reset.Time.UTC(),
	}, nil
}

// query runs a GraphQL query and classifies failures as transport errors.
func (c *Client) query(ctx context.Context, op string, q any, variables map[string]any) error {
	if err := c.gql.Query(ctx, q, variables); err != nil {
		return &TransportError{Op: op, Err: err}
	}
	return nil
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time.UTC(),
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		resetAt := time.Now().UTC()
		if abuseErr.RetryAfter != nil {
			resetAt = resetAt.Add(*abuseErr.RetryAfter)
		}
		return &RateLimitError{
			ResetAt:   resetAt,
			Remaining: c.rateLimiter.Remaining(),
			Limit:     c.rateLimiter.Limit(),
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		if limitErr := c.rateLimiter.CheckRateLimit(ghErr.Response); limitErr != nil {
			return limitErr
		}
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return &TransportError{Op: operation, Err: err}
}
