package github

import "github.com/shurcooL/githubv4"

// pageInfo is the GraphQL PageInfo object.
type pageInfo struct {
	HasNextPage githubv4.Boolean
	EndCursor   githubv4.String
}

// previewEdge is one commit of the history embedded in a repository search.
type previewEdge struct {
	Node struct {
		Oid       githubv4.String
		ID        githubv4.String
		Message   githubv4.String
		Committer struct {
			Name githubv4.String
		}
		CommittedDate githubv4.DateTime
	}
	Cursor githubv4.String
}

// previewHistory is the first history page embedded in a repository search.
type previewHistory struct {
	Edges    []previewEdge
	PageInfo pageInfo
}

// repositoryEdge is one search result.
type repositoryEdge struct {
	Cursor githubv4.String
	Node   struct {
		Repository struct {
			ID       githubv4.String
			Name     githubv4.String
			PushedAt githubv4.DateTime
			Ref      *struct {
				Target struct {
					Commit struct {
						History *previewHistory `graphql:"history(first: $commitPageSize, since: $since)"`
					} `graphql:"... on Commit"`
				}
			} `graphql:"ref(qualifiedName: $branch)"`
		} `graphql:"... on Repository"`
	}
}

// repositorySearchQuery finds repositories of an owner pushed after a date,
// with the first page of each branch history.
type repositorySearchQuery struct {
	Search struct {
		RepositoryCount githubv4.Int
		Edges           []repositoryEdge
		PageInfo        pageInfo
	} `graphql:"search(first: $repoPageSize, after: $repoCursor, type: REPOSITORY, query: $searchQuery)"`
}

// commitEdge is one commit of a branch history page.
type commitEdge struct {
	Node struct {
		Oid githubv4.String
		ID  githubv4.String
	}
	Cursor githubv4.String
}

// commitHistoryQuery pages the history of one branch.
type commitHistoryQuery struct {
	Repository *struct {
		Ref *struct {
			Target struct {
				Commit struct {
					History *struct {
						Edges    []commitEdge
						PageInfo pageInfo
					} `graphql:"history(first: $pageSize, since: $since, after: $commitCursor)"`
				} `graphql:"... on Commit"`
			}
		} `graphql:"ref(qualifiedName: $branch)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// cursorVar returns the GraphQL value for an optional cursor.
func cursorVar(c string) *githubv4.String {
	if c == "" {
		return nil
	}
	s := githubv4.String(c)
	return &s
}

// nextCursor picks the cursor to continue from: the cursor of the last edge,
// or endCursor when the page has no edges.
func nextCursor(edgeCursors []githubv4.String, info pageInfo) string {
	if n := len(edgeCursors); n > 0 {
		return string(edgeCursors[n-1])
	}
	return string(info.EndCursor)
}
