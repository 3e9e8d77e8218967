package domain

import "fmt"

// Cursor is an opaque position in a paged collection, issued by the
// upstream source and passed back verbatim on the next request.
// The empty cursor means "from the beginning".
type Cursor string

// IsZero reports whether the cursor is absent.
func (c Cursor) IsZero() bool {
	return c == ""
}

// Page is one page of a cursor-paged collection.
type Page[T any] struct {
	// Items holds the page contents in server order.
	Items []T

	// NextCursor is the position after the last item. Absent when HasMore is false.
	NextCursor Cursor

	// HasMore reports whether another page follows.
	HasMore bool
}

// Normalize clears NextCursor on the final page.
func (p *Page[T]) Normalize() {
	if !p.HasMore {
		p.NextCursor = ""
	}
}

// CursorTracker guards a paging loop against cursors that do not advance.
// Every cursor it accepts is remembered, so a loop driven through Advance
// visits each position at most once and therefore terminates.
type CursorTracker struct {
	collection string
	seen       map[Cursor]struct{}
}

// NewCursorTracker creates a tracker for the named collection.
// The name only appears in error messages.
func NewCursorTracker(collection string) *CursorTracker {
	return &CursorTracker{
		collection: collection,
		seen:       make(map[Cursor]struct{}),
	}
}

// Advance validates a page and returns the cursor for the next request.
// It returns ok=false when the collection is exhausted. A page that claims
// more items without an unseen cursor, or without any items, yields
// ErrNoProgress.
func (t *CursorTracker) Advance(itemCount int, next Cursor, hasMore bool) (Cursor, bool, error) {
	if !hasMore {
		return "", false, nil
	}
	if itemCount == 0 {
		return "", false, fmt.Errorf("%s: empty page reports more items: %w", t.collection, ErrNoProgress)
	}
	if next.IsZero() {
		return "", false, fmt.Errorf("%s: missing cursor on non-final page: %w", t.collection, ErrNoProgress)
	}
	if _, dup := t.seen[next]; dup {
		return "", false, fmt.Errorf("%s: cursor %q repeated: %w", t.collection, next, ErrNoProgress)
	}
	t.seen[next] = struct{}{}
	return next, true, nil
}

// Pages returns the number of cursors accepted so far.
func (t *CursorTracker) Pages() int {
	return len(t.seen)
}
