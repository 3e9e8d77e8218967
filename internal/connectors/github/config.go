package github

import (
	"net/http"
	"time"

	"github.com/custodia-labs/repopulse/internal/core/domain"
)

// Options configures a Client.
type Options struct {
	// GraphQLURL is the GraphQL endpoint. Default: https://api.github.com/graphql
	GraphQLURL string

	// RESTURL is the REST API base URL. Default: https://api.github.com/
	RESTURL string

	// Token is a personal access token or OAuth access token.
	Token string

	// RequestsPerSecond throttles outgoing requests. Zero or less disables throttling.
	RequestsPerSecond float64

	// Timeout bounds each HTTP request. Default: DefaultTimeout.
	Timeout time.Duration

	// HTTPClient, when set, is used instead of an oauth2 client built from Token.
	HTTPClient *http.Client
}

// OptionsFromSettings builds client options from scan settings.
func OptionsFromSettings(s domain.GitHubSettings) Options {
	return Options{
		GraphQLURL:        s.GraphQLURL,
		RESTURL:           s.RESTURL,
		Token:             s.Token,
		RequestsPerSecond: s.RequestsPerSecond,
	}
}

func (o Options) withDefaults() Options {
	if o.GraphQLURL == "" {
		o.GraphQLURL = domain.DefaultGraphQLURL
	}
	if o.RESTURL == "" {
		o.RESTURL = domain.DefaultRESTURL
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}
