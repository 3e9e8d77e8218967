package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/repopulse/internal/core/domain"
	"github.com/custodia-labs/repopulse/internal/core/ports/driving"
)

const (
	timeLayout   = "2006-01-02 15:04"
	shortSHA     = 7
	summaryWidth = 60
	shaRowSize   = 8
)

// Printer writes reports to w.
type Printer struct {
	w      io.Writer
	styles *Styles
}

// NewPrinter creates a printer. Nil styles print plain text.
func NewPrinter(w io.Writer, styles *Styles) *Printer {
	if styles == nil {
		styles = PlainStyles()
	}
	return &Printer{w: w, styles: styles}
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) section(name string) {
	p.printf("\n%s\n", p.styles.Subtitle.Render(name))
}

// Traversal prints the outcome of one traversal.
func (p *Printer) Traversal(req domain.TraversalRequest, result *domain.TraversalResult) {
	p.printf("%s\n", p.styles.Title.Render(fmt.Sprintf("%s: repositories pushed since %s (branch %s)",
		req.Organization, req.Since.UTC().Format(time.RFC3339), req.Branch)))
	p.printf("  reported %d  seen %d  qualified %s  disqualified %d  commits %s\n",
		result.RepositoryCount, result.Seen,
		p.styles.Success.Render(fmt.Sprint(len(result.Qualified))),
		len(result.Disqualified),
		p.styles.Success.Render(fmt.Sprint(result.CommitCount())))

	if len(result.Qualified) > 0 {
		p.section("Qualified")
		width := nameWidth(result.Qualified)
		for _, name := range result.Qualified {
			line := fmt.Sprintf("  %-*s  %4d commits", width, name, len(result.Commits[name]))
			if pushed, ok := result.Pushed[name]; ok && !pushed.IsZero() {
				line += p.styles.Muted.Render("  pushed " + pushed.UTC().Format(timeLayout))
			}
			p.printf("%s\n", line)
			previewed := make(map[string]bool, len(result.Previews[name]))
			for _, preview := range result.Previews[name] {
				previewed[preview.SHA] = true
				p.printf("    %s %s %s\n",
					p.styles.Muted.Render(abbreviate(preview.SHA)),
					firstLine(preview.Message, summaryWidth),
					p.styles.Muted.Render("("+preview.CommitterName+")"))
			}
			p.shaRows(result.Commits[name], previewed)
		}
	}

	if len(result.Disqualified) > 0 {
		p.section("Disqualified")
		width := nameWidth(result.Disqualified)
		for _, name := range result.Disqualified {
			line := fmt.Sprintf("  %-*s", width, name)
			if pushed, ok := result.Pushed[name]; ok && !pushed.IsZero() {
				line += "  pushed " + pushed.UTC().Format(timeLayout)
			}
			p.printf("%s\n", p.styles.Muted.Render(line))
		}
	}

	p.warnings(result.Warnings)
}

// Resolve prints the outcome of a commit detail pass.
func (p *Printer) Resolve(summary *driving.ResolveSummary) {
	if summary == nil {
		return
	}
	p.section("Commit details")
	p.printf("  resolved %s  rate limited %s\n",
		p.styles.Success.Render(fmt.Sprint(len(summary.Details))),
		p.rateLimitedCount(summary.RateLimited))
	p.details(summary.Details)
	if summary.LastRateLimit != nil {
		p.printf("  %s\n", p.styles.Muted.Render("quota: "+formatRateLimit(summary.LastRateLimit)))
	}
	p.warnings(summary.Warnings)
}

// Runs prints stored runs, one per line.
func (p *Printer) Runs(runs []domain.Run) {
	if len(runs) == 0 {
		p.printf("No runs recorded.\n")
		return
	}
	for _, run := range runs {
		commits := 0
		for _, shas := range run.Commits {
			commits += len(shas)
		}
		p.printf("%s  %s  %s@%s  %d qualified  %d commits",
			p.styles.Title.Render(run.ID),
			run.StartedAt.UTC().Format(timeLayout),
			run.Organization, run.Branch,
			len(run.Qualified), commits)
		if n := len(run.Warnings); n > 0 {
			p.printf("  %s", p.styles.Warning.Render(fmt.Sprintf("%d warnings", n)))
		}
		p.printf("\n")
	}
}

// Run prints one stored run with its commit details.
func (p *Printer) Run(run *domain.Run, details []domain.CommitDetail) {
	p.printf("%s\n", p.styles.Title.Render("Run "+run.ID))
	p.printf("  organization  %s\n", run.Organization)
	p.printf("  branch        %s\n", run.Branch)
	p.printf("  since         %s\n", run.Since.UTC().Format(time.RFC3339))
	p.printf("  started       %s\n", run.StartedAt.UTC().Format(time.RFC3339))
	p.printf("  duration      %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	p.printf("  repositories  %d reported, %d qualified, %d disqualified\n",
		run.RepositoryCount, len(run.Qualified), len(run.Disqualified))

	if len(run.Qualified) > 0 {
		p.section("Qualified")
		width := nameWidth(run.Qualified)
		for _, name := range run.Qualified {
			p.printf("  %-*s  %4d commits\n", width, name, len(run.Commits[name]))
		}
	}

	if len(details) > 0 {
		p.section("Commit details")
		p.details(details)
	}

	if len(run.Warnings) > 0 {
		p.section("Warnings")
		for _, w := range run.Warnings {
			p.printf("  %s\n", p.styles.Warning.Render(w))
		}
	}
}

// Status prints the account behind the configured token.
func (p *Printer) Status(status *domain.AccountStatus) {
	p.printf("Authenticated as %s\n", p.styles.Title.Render(status.Login))
	if status.RateLimit == nil {
		p.printf("Rate limit: %s\n", p.styles.Muted.Render("unknown"))
		return
	}
	line := formatRateLimit(status.RateLimit)
	if status.RateLimit.Remaining == 0 {
		line = p.styles.Error.Render(line)
	}
	p.printf("Rate limit: %s\n", line)
}

func (p *Printer) details(details []domain.CommitDetail) {
	for _, d := range details {
		p.printf("  %s %s %s %s\n",
			p.styles.Muted.Render(abbreviate(d.SHA)),
			d.Repository,
			d.Summary(summaryWidth),
			p.styles.Muted.Render(fmt.Sprintf("(%s, %s)", d.Committer.Name, d.Timestamp.UTC().Format(timeLayout))))
		for _, f := range d.Files {
			p.printf("      %-8s %s\n", f.Status, f.Filename)
		}
	}
}

// shaRows prints the SHAs not already shown as previews, shaRowSize per line.
func (p *Printer) shaRows(shas []string, skip map[string]bool) {
	row := make([]string, 0, shaRowSize)
	for _, sha := range shas {
		if skip[sha] {
			continue
		}
		row = append(row, abbreviate(sha))
		if len(row) == shaRowSize {
			p.printf("    %s\n", p.styles.Muted.Render(strings.Join(row, " ")))
			row = row[:0]
		}
	}
	if len(row) > 0 {
		p.printf("    %s\n", p.styles.Muted.Render(strings.Join(row, " ")))
	}
}

func (p *Printer) warnings(warnings []domain.Warning) {
	if len(warnings) == 0 {
		return
	}
	p.section("Warnings")
	for _, w := range warnings {
		p.printf("  %s\n", p.styles.Warning.Render(w.String()))
	}
}

func (p *Printer) rateLimitedCount(n int) string {
	if n == 0 {
		return p.styles.Success.Render("0")
	}
	return p.styles.Warning.Render(fmt.Sprint(n))
}

// ConfigValues prints configuration keys and values, masking secrets.
func (p *Printer) ConfigValues(values map[string]any) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p.printf("%s = %s\n", p.styles.Subtitle.Render(k), FormatValue(k, values[k]))
	}
}

// FormatValue renders a config value for display. Token values are masked.
func FormatValue(key string, value any) string {
	if strings.HasSuffix(key, "token") {
		s, _ := value.(string)
		return MaskSecret(s)
	}
	switch v := value.(type) {
	case []string:
		return "[" + strings.Join(v, ", ") + "]"
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

// MaskSecret shows only the ends of a secret.
func MaskSecret(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func formatRateLimit(l *domain.RateLimit) string {
	return fmt.Sprintf("%d/%d remaining, resets %s", l.Remaining, l.Limit, l.Reset.UTC().Format(time.RFC3339))
}

func nameWidth(names []string) int {
	width := 0
	for _, n := range names {
		if len(n) > width {
			width = len(n)
		}
	}
	return width
}

func abbreviate(sha string) string {
	if len(sha) > shortSHA {
		return sha[:shortSHA]
	}
	return sha
}

func firstLine(msg string, limit int) string {
	return domain.CommitDetail{Message: msg}.Summary(limit)
}
