package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTraversalResult_Complete(t *testing.T) {
	result := NewTraversalResult()
	result.RepositoryCount = 3
	result.Qualified = append(result.Qualified, "almCore", "webTool")
	result.Disqualified = append(result.Disqualified, "otherLib")

	assert.True(t, result.Complete())

	result.RepositoryCount = 4
	assert.False(t, result.Complete())
}

func TestTraversalResult_CommitCount(t *testing.T) {
	result := NewTraversalResult()
	result.Commits["a"] = []string{"1", "2"}
	result.Commits["b"] = []string{}
	result.Commits["c"] = []string{"3"}

	assert.Equal(t, 3, result.CommitCount())
}

func TestTraversalResult_AddWarning(t *testing.T) {
	result := NewTraversalResult()

	result.AddWarning(WarningMalformedResponse, "core", "no history on %s", "master")
	result.AddWarning(WarningCountMismatch, "", "saw %d of %d", 2, 3)

	assert.Len(t, result.Warnings, 2)
	assert.Equal(t, "malformed_response: core: no history on master", result.Warnings[0].String())
	assert.Equal(t, "count_mismatch: saw 2 of 3", result.Warnings[1].String())
}

func TestNewRun_CopiesResult(t *testing.T) {
	since := time.Date(2017, 4, 5, 6, 0, 0, 0, time.UTC)
	started := since.Add(time.Hour)
	finished := started.Add(time.Minute)
	req := TraversalRequest{Organization: "acme", Branch: "master", Since: since}

	result := NewTraversalResult()
	result.RepositoryCount = 2
	result.Qualified = append(result.Qualified, "core")
	result.Disqualified = append(result.Disqualified, "docs")
	result.Commits["core"] = []string{"abc"}
	result.AddWarning(WarningCountMismatch, "", "mismatch")

	run := NewRun("run-1", req, started, finished, result)

	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, "acme", run.Organization)
	assert.Equal(t, since, run.Since)
	assert.Equal(t, []string{"core"}, run.Qualified)
	assert.Equal(t, []string{"docs"}, run.Disqualified)
	assert.Equal(t, []string{"count_mismatch: mismatch"}, run.Warnings)

	result.Commits["core"][0] = "mutated"
	assert.Equal(t, "abc", run.Commits["core"][0])
}

func TestCommitDetail_Summary(t *testing.T) {
	detail := CommitDetail{Message: "Fix pager cursor handling\n\nLonger body"}

	assert.Equal(t, "Fix pager cursor handling", detail.Summary(0))
	assert.Equal(t, "Fix pager", detail.Summary(9))
}
