package domain

import "time"

// Default scan settings.
const (
	DefaultBranch          = "master"
	DefaultPageSize        = 100
	DefaultCommitPageSize  = 3
	DefaultHistoryPageSize = 100
	DefaultGraphQLURL      = "https://api.github.com/graphql"
	DefaultRESTURL         = "https://api.github.com/"

	// MaxPageSize is the largest page GitHub accepts for connections.
	MaxPageSize = 100
)

// ScanSettings is the persisted configuration for a scan.
type ScanSettings struct {
	Organization    string
	Branch          string
	Since           time.Time
	PageSize        int
	CommitPageSize  int
	HistoryPageSize int
	Inclusions      []string
	Exclusions      []string

	// GitHub holds connection settings.
	GitHub GitHubSettings

	// DataDir is where the SQLite store lives. Empty means the default.
	DataDir string
}

// GitHubSettings configures the API endpoints and credentials.
type GitHubSettings struct {
	GraphQLURL string
	RESTURL    string
	Token      string

	// RequestsPerSecond throttles outgoing requests. Zero disables throttling.
	RequestsPerSecond float64
}

// DefaultScanSettings returns the settings used when nothing is configured.
func DefaultScanSettings() ScanSettings {
	return ScanSettings{
		Branch:          DefaultBranch,
		Since:           time.Now().UTC().AddDate(0, 0, -7).Truncate(time.Second),
		PageSize:        DefaultPageSize,
		CommitPageSize:  DefaultCommitPageSize,
		HistoryPageSize: DefaultHistoryPageSize,
		Inclusions:      []string{"*"},
		Exclusions:      []string{},
		GitHub: GitHubSettings{
			GraphQLURL: DefaultGraphQLURL,
			RESTURL:    DefaultRESTURL,
		},
	}
}

// TraversalRequest builds a traversal request from the settings.
func (s ScanSettings) TraversalRequest() TraversalRequest {
	return TraversalRequest{
		Organization:    s.Organization,
		Branch:          s.Branch,
		Since:           s.Since,
		PageSize:        s.PageSize,
		CommitPageSize:  s.CommitPageSize,
		HistoryPageSize: s.HistoryPageSize,
		Filter:          NewNamePatternFilter(s.Inclusions, s.Exclusions),
	}
}
