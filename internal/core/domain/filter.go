package domain

import (
	"regexp"
	"strings"
)

// NamePatternFilter decides whether a repository name takes part in a
// traversal. A name qualifies when it matches at least one inclusion
// pattern and none of the exclusion patterns. Matching ignores case.
//
// A pattern without '*' must equal the name. A pattern with '*' matches
// from the start of the name, where each '*' stands for any run of
// characters; the end of the name is not anchored, so "rally*" means
// "starts with rally" and "*eif*" means "contains eif".
type NamePatternFilter struct {
	inclusions []namePattern
	exclusions []namePattern
}

type namePattern struct {
	raw     string
	literal string
	re      *regexp.Regexp
}

// NewNamePatternFilter compiles the inclusion and exclusion lists.
// Patterns are used as written, surrounding spaces included.
// Blank patterns are ignored.
func NewNamePatternFilter(inclusions, exclusions []string) *NamePatternFilter {
	return &NamePatternFilter{
		inclusions: compilePatterns(inclusions),
		exclusions: compilePatterns(exclusions),
	}
}

// IsQualified reports whether name passes the filter.
func (f *NamePatternFilter) IsQualified(name string) bool {
	if f == nil {
		return false
	}

	included := false
	for _, p := range f.inclusions {
		if p.matches(name) {
			included = true
			break
		}
	}
	if !included {
		return false
	}

	for _, p := range f.exclusions {
		if p.matches(name) {
			return false
		}
	}
	return true
}

// Inclusions returns the inclusion patterns as configured.
func (f *NamePatternFilter) Inclusions() []string {
	return rawPatterns(f.inclusions)
}

// Exclusions returns the exclusion patterns as configured.
func (f *NamePatternFilter) Exclusions() []string {
	return rawPatterns(f.exclusions)
}

func compilePatterns(patterns []string) []namePattern {
	compiled := make([]namePattern, 0, len(patterns))
	for _, raw := range patterns {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		p := namePattern{raw: raw}
		if !strings.Contains(raw, "*") {
			p.literal = strings.ToLower(raw)
		} else {
			parts := strings.Split(raw, "*")
			for i, part := range parts {
				parts[i] = regexp.QuoteMeta(part)
			}
			// QuoteMeta output is always a valid expression.
			p.re = regexp.MustCompile("(?i)^" + strings.Join(parts, ".*"))
		}
		compiled = append(compiled, p)
	}
	return compiled
}

func (p namePattern) matches(name string) bool {
	if p.re != nil {
		return p.re.MatchString(name)
	}
	return strings.ToLower(name) == p.literal
}

func rawPatterns(patterns []namePattern) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = p.raw
	}
	return out
}
