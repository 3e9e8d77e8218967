package github

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repopulse/internal/core/domain"
)

var testSince = time.Date(2017, 4, 5, 6, 0, 0, 0, time.UTC)

func testRepositoryQuery() domain.RepositoryQuery {
	return domain.RepositoryQuery{
		Organization:   "acme",
		Since:          testSince,
		PageSize:       2,
		CommitPageSize: 3,
		Branch:         "master",
	}
}

const searchPageResponse = `{"data":{"search":{
	"repositoryCount": 3,
	"edges": [
		{"cursor": "r1", "node": {
			"id": "R_1", "name": "alpha", "pushedAt": "2017-04-06T10:00:00Z",
			"ref": {"target": {"history": {
				"edges": [
					{"cursor": "h1", "node": {"oid": "aaa", "id": "C_1", "message": "first",
						"committer": {"name": "Ada"}, "committedDate": "2017-04-06T09:00:00Z"}},
					{"cursor": "h2", "node": {"oid": "bbb", "id": "C_2", "message": "second",
						"committer": {"name": "Bob"}, "committedDate": "2017-04-06T08:00:00Z"}}
				],
				"pageInfo": {"hasNextPage": true, "endCursor": "h2"}
			}}}
		}},
		{"cursor": "r2", "node": {
			"id": "R_2", "name": "beta", "pushedAt": "2017-04-07T10:00:00Z",
			"ref": null
		}}
	],
	"pageInfo": {"hasNextPage": true, "endCursor": "r2"}
}}}`

func TestSearchQuery(t *testing.T) {
	assert.Equal(t, "user:acme pushed:>2017-04-05T06:00:00Z", SearchQuery("acme", testSince))

	local := time.Date(2017, 4, 5, 8, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	assert.Equal(t, "user:acme pushed:>2017-04-05T06:00:00Z", SearchQuery("acme", local))
}

func TestClient_FetchRepositoryPage(t *testing.T) {
	t.Run("maps repositories and embedded history", func(t *testing.T) {
		var got graphqlRequest
		client := newTestClient(t, func(req graphqlRequest) string {
			got = req
			return searchPageResponse
		}, nil)

		page, err := client.FetchRepositoryPage(context.Background(), testRepositoryQuery(), "")

		require.NoError(t, err)
		assert.Equal(t, 3, page.RepositoryCount)
		assert.True(t, page.HasMore)
		assert.Equal(t, domain.Cursor("r2"), page.NextCursor)
		require.Len(t, page.Items, 2)

		alpha := page.Items[0]
		assert.Equal(t, "R_1", alpha.ID)
		assert.Equal(t, "alpha", alpha.Name)
		assert.Equal(t, time.Date(2017, 4, 6, 10, 0, 0, 0, time.UTC), alpha.PushedAt)
		require.NotNil(t, alpha.History)
		assert.Equal(t, []domain.CommitRef{{ID: "C_1", SHA: "aaa"}, {ID: "C_2", SHA: "bbb"}}, alpha.History.Page.Items)
		assert.True(t, alpha.History.Page.HasMore)
		assert.Equal(t, domain.Cursor("h2"), alpha.History.Page.NextCursor)
		require.Len(t, alpha.History.Preview, 2)
		assert.Equal(t, domain.CommitPreview{
			SHA:           "aaa",
			Message:       "first",
			CommitterName: "Ada",
			CommittedDate: time.Date(2017, 4, 6, 9, 0, 0, 0, time.UTC),
		}, alpha.History.Preview[0])

		beta := page.Items[1]
		assert.Equal(t, "beta", beta.Name)
		assert.Nil(t, beta.History)
		assert.False(t, beta.HasCommits())

		assert.Contains(t, got.Query, "search(first: $repoPageSize, after: $repoCursor, type: REPOSITORY, query: $searchQuery)")
		assert.Nil(t, got.Variables["repoCursor"])
		assert.Equal(t, "user:acme pushed:>2017-04-05T06:00:00Z", got.Variables["searchQuery"])
		assert.Equal(t, "master", got.Variables["branch"])
		assert.EqualValues(t, 2, got.Variables["repoPageSize"])
		assert.EqualValues(t, 3, got.Variables["commitPageSize"])
		assert.Equal(t, "2017-04-05T06:00:00Z", got.Variables["since"])
	})

	t.Run("sends cursor on later pages", func(t *testing.T) {
		var got graphqlRequest
		client := newTestClient(t, func(req graphqlRequest) string {
			got = req
			return searchPageResponse
		}, nil)

		_, err := client.FetchRepositoryPage(context.Background(), testRepositoryQuery(), "r2")

		require.NoError(t, err)
		assert.Equal(t, "r2", got.Variables["repoCursor"])
	})

	t.Run("empty history is not missing history", func(t *testing.T) {
		client := newTestClient(t, func(graphqlRequest) string {
			return `{"data":{"search":{"repositoryCount":1,"edges":[
				{"cursor":"r1","node":{"id":"R_1","name":"quiet","pushedAt":"2017-04-06T10:00:00Z",
					"ref":{"target":{"history":{"edges":[],"pageInfo":{"hasNextPage":false,"endCursor":null}}}}}}
			],"pageInfo":{"hasNextPage":false,"endCursor":"r1"}}}}`
		}, nil)

		page, err := client.FetchRepositoryPage(context.Background(), testRepositoryQuery(), "")

		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		require.NotNil(t, page.Items[0].History)
		assert.False(t, page.Items[0].HasCommits())
		assert.False(t, page.HasMore)
	})

	t.Run("uses end cursor when page has no edges", func(t *testing.T) {
		client := newTestClient(t, func(graphqlRequest) string {
			return `{"data":{"search":{"repositoryCount":0,"edges":[],
				"pageInfo":{"hasNextPage":false,"endCursor":"end"}}}}`
		}, nil)

		page, err := client.FetchRepositoryPage(context.Background(), testRepositoryQuery(), "")

		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, domain.Cursor("end"), page.NextCursor)
	})

	t.Run("records rate limit headers", func(t *testing.T) {
		client := newTestClient(t, func(graphqlRequest) string { return searchPageResponse }, nil)
		assert.Nil(t, client.RateLimiter().Snapshot())

		_, err := client.FetchRepositoryPage(context.Background(), testRepositoryQuery(), "")

		require.NoError(t, err)
		snapshot := client.RateLimiter().Snapshot()
		require.NotNil(t, snapshot)
		assert.Equal(t, 4321, snapshot.Remaining)
		assert.Equal(t, 5000, snapshot.Limit)
	})

	t.Run("graphql errors are transport errors", func(t *testing.T) {
		client := newTestClient(t, func(graphqlRequest) string {
			return `{"data":null,"errors":[{"message":"Something went wrong"}]}`
		}, nil)

		page, err := client.FetchRepositoryPage(context.Background(), testRepositoryQuery(), "")

		assert.Nil(t, page)
		var transportErr *TransportError
		assert.ErrorAs(t, err, &transportErr)
		assert.Contains(t, err.Error(), "search repositories")
	})
}
