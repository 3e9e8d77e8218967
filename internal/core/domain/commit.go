package domain

import "time"

// CommitDetail is a commit resolved through the per-commit lookup.
type CommitDetail struct {
	Repository string
	SHA        string
	Committer  Signature
	Timestamp  time.Time
	Message    string
	Files      []FileChange
}

// Signature identifies the person who committed a change.
type Signature struct {
	Name  string
	Email string
}

// FileChange is one file touched by a commit.
type FileChange struct {
	// Status is the change kind reported upstream (added, modified, removed, renamed).
	Status string

	// Filename is the repository-relative path.
	Filename string
}

// Summary returns the first line of the commit message, truncated to max runes.
func (d CommitDetail) Summary(limit int) string {
	msg := d.Message
	for i, r := range msg {
		if r == '\n' {
			msg = msg[:i]
			break
		}
	}
	runes := []rune(msg)
	if limit > 0 && len(runes) > limit {
		return string(runes[:limit])
	}
	return msg
}

// RateLimit is the quota state carried by the X-RateLimit-* headers.
type RateLimit struct {
	Limit     int
	Remaining int
	Reset     time.Time
}
