package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultScanSettings(t *testing.T) {
	before := time.Now().UTC()
	settings := DefaultScanSettings()

	assert.Equal(t, DefaultBranch, settings.Branch)
	assert.Equal(t, DefaultPageSize, settings.PageSize)
	assert.Equal(t, DefaultCommitPageSize, settings.CommitPageSize)
	assert.Equal(t, DefaultHistoryPageSize, settings.HistoryPageSize)
	assert.Equal(t, []string{"*"}, settings.Inclusions)
	assert.Empty(t, settings.Exclusions)
	assert.Equal(t, DefaultGraphQLURL, settings.GitHub.GraphQLURL)
	assert.Equal(t, DefaultRESTURL, settings.GitHub.RESTURL)
	assert.Empty(t, settings.GitHub.Token)
	assert.Zero(t, settings.GitHub.RequestsPerSecond)

	// Since defaults to one week back, whole seconds.
	assert.Equal(t, time.UTC, settings.Since.Location())
	assert.Zero(t, settings.Since.Nanosecond())
	assert.WithinDuration(t, before.AddDate(0, 0, -7), settings.Since, 2*time.Second)
}

func TestScanSettings_TraversalRequest(t *testing.T) {
	since := time.Date(2017, 4, 5, 6, 0, 0, 0, time.UTC)
	settings := ScanSettings{
		Organization:    "acme",
		Branch:          "main",
		Since:           since,
		PageSize:        25,
		CommitPageSize:  3,
		HistoryPageSize: 50,
		Inclusions:      []string{"alm*", "web*"},
		Exclusions:      []string{"*-test"},
	}

	req := settings.TraversalRequest()

	assert.Equal(t, "acme", req.Organization)
	assert.Equal(t, "main", req.Branch)
	assert.Equal(t, since, req.Since)
	assert.Equal(t, 25, req.PageSize)
	assert.Equal(t, 3, req.CommitPageSize)
	assert.Equal(t, 50, req.HistoryPageSize)
	require.NotNil(t, req.Filter)
	assert.True(t, req.Filter.IsQualified("almWebTool"))
	assert.False(t, req.Filter.IsQualified("alm-test"))
	assert.False(t, req.Filter.IsQualified("otherLib"))
}

func TestTraversalRequest_Queries(t *testing.T) {
	since := time.Date(2017, 4, 5, 6, 0, 0, 0, time.UTC)
	req := TraversalRequest{
		Organization:    "acme",
		Branch:          "master",
		Since:           since,
		PageSize:        100,
		CommitPageSize:  3,
		HistoryPageSize: 40,
	}

	assert.Equal(t, RepositoryQuery{
		Organization:   "acme",
		Since:          since,
		PageSize:       100,
		CommitPageSize: 3,
		Branch:         "master",
	}, req.RepositoryQuery())

	assert.Equal(t, CommitQuery{
		Organization: "acme",
		Repository:   "almCore",
		Branch:       "master",
		Since:        since,
		PageSize:     40,
	}, req.CommitQuery("almCore"))
}
