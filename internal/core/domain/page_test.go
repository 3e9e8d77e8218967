package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_Normalize(t *testing.T) {
	t.Run("final page drops cursor", func(t *testing.T) {
		p := Page[CommitRef]{Items: []CommitRef{{SHA: "a"}}, NextCursor: "c1", HasMore: false}
		p.Normalize()
		assert.True(t, p.NextCursor.IsZero())
	})

	t.Run("non-final page keeps cursor", func(t *testing.T) {
		p := Page[CommitRef]{Items: []CommitRef{{SHA: "a"}}, NextCursor: "c1", HasMore: true}
		p.Normalize()
		assert.Equal(t, Cursor("c1"), p.NextCursor)
	})
}

func TestCursorTracker_Advance(t *testing.T) {
	t.Run("final page stops", func(t *testing.T) {
		tracker := NewCursorTracker("repositories")

		next, ok, err := tracker.Advance(3, "", false)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.True(t, next.IsZero())
	})

	t.Run("fresh cursor advances", func(t *testing.T) {
		tracker := NewCursorTracker("repositories")

		next, ok, err := tracker.Advance(2, "c1", true)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, Cursor("c1"), next)
		assert.Equal(t, 1, tracker.Pages())
	})

	t.Run("repeated cursor is no progress", func(t *testing.T) {
		tracker := NewCursorTracker("commits")
		_, _, err := tracker.Advance(1, "c1", true)
		require.NoError(t, err)

		_, ok, err := tracker.Advance(1, "c1", true)

		assert.False(t, ok)
		assert.True(t, errors.Is(err, ErrNoProgress))
		assert.Contains(t, err.Error(), "commits")
	})

	t.Run("missing cursor is no progress", func(t *testing.T) {
		tracker := NewCursorTracker("commits")

		_, _, err := tracker.Advance(1, "", true)

		assert.True(t, errors.Is(err, ErrNoProgress))
	})

	t.Run("empty page with more is no progress", func(t *testing.T) {
		tracker := NewCursorTracker("commits")

		_, _, err := tracker.Advance(0, "c9", true)

		assert.True(t, errors.Is(err, ErrNoProgress))
	})
}

func TestCursorTracker_LoopTerminatesAndVisitsInOrder(t *testing.T) {
	pages := map[Cursor]Page[string]{
		"":   {Items: []string{"a", "b"}, NextCursor: "c1", HasMore: true},
		"c1": {Items: []string{"c"}, NextCursor: "c2", HasMore: true},
		"c2": {Items: []string{"d", "e"}, HasMore: false},
	}

	tracker := NewCursorTracker("letters")
	var visited []string
	cursor := Cursor("")
	for {
		page := pages[cursor]
		visited = append(visited, page.Items...)

		next, more, err := tracker.Advance(len(page.Items), page.NextCursor, page.HasMore)
		require.NoError(t, err)
		if !more {
			break
		}
		cursor = next
	}

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, visited)
}

func TestCursorTracker_CycleIsDetected(t *testing.T) {
	pages := map[Cursor]Page[string]{
		"":   {Items: []string{"a"}, NextCursor: "c1", HasMore: true},
		"c1": {Items: []string{"b"}, NextCursor: "c2", HasMore: true},
		"c2": {Items: []string{"c"}, NextCursor: "c1", HasMore: true},
	}

	tracker := NewCursorTracker("letters")
	cursor := Cursor("")
	var err error
	for i := 0; i < 10; i++ {
		page := pages[cursor]
		var more bool
		cursor, more, err = tracker.Advance(len(page.Items), page.NextCursor, page.HasMore)
		if err != nil || !more {
			break
		}
	}

	assert.True(t, errors.Is(err, ErrNoProgress))
}
