// Package report renders build results for the terminal and for
// machine consumption.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/stylecraft/stylecraft"
)

// Reporter handles formatting and outputting build results
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, useColors bool) *Reporter {
	return &Reporter{w: w, useColors: ShouldUseColors(useColors)}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(forced bool) bool {
	// Explicit flag wins
	if forced {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, _ := os.Stdout.Stat(); fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintSummary writes the one-shot pass statistics.
func (r *Reporter) PrintSummary(result *stylecraft.BuildResult) {
	fmt.Fprintf(r.w, "%s\n", RenderStyle(StyleCyan, "Build summary", r.useColors))
	fmt.Fprintf(r.w, "  Files discovered: %d\n", result.Stats.FilesDiscovered)
	fmt.Fprintf(r.w, "  Files processed:  %d (skipped %d)\n", result.Stats.FilesScanned, result.Stats.FilesSkipped)
	fmt.Fprintf(r.w, "  Files rewritten:  %d\n", result.FilesTransformed)
	fmt.Fprintf(r.w, "  Call sites:       %d (%d served from cache)\n", result.CallSites, result.CacheHits)

	if len(result.Issues) == 0 && len(result.Warnings) == 0 {
		fmt.Fprintf(r.w, "%s\n", RenderStyle(StyleGreen, "✓ No issues", r.useColors))
	}
}

// PrintIssues writes property-level issues, sorted by file, line and
// column.
func (r *Reporter) PrintIssues(issues []stylecraft.TransformIssue) {
	sorted := make([]stylecraft.TransformIssue, len(issues))
	copy(sorted, issues)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Pos.Filename != sorted[j].Pos.Filename {
			return sorted[i].Pos.Filename < sorted[j].Pos.Filename
		}
		if sorted[i].Pos.Line != sorted[j].Pos.Line {
			return sorted[i].Pos.Line < sorted[j].Pos.Line
		}
		return sorted[i].Pos.Column < sorted[j].Pos.Column
	})

	for _, issue := range sorted {
		location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)
		severity := StyleYellow
		if issue.Severity == stylecraft.SeverityError {
			severity = StyleRed
		}
		fmt.Fprintf(r.w, "%s %s %s\n",
			RenderStyle(StyleCyan, location, r.useColors),
			RenderStyle(severity, issue.Severity+":", r.useColors),
			issue.Text)
	}
}

// PrintWarnings writes per-file warnings that did not stop the pass.
func (r *Reporter) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(r.w, "%s\n", RenderStyle(StyleYellow, "⚠ Warnings", r.useColors))
	for _, w := range warnings {
		fmt.Fprintf(r.w, "  - %s\n", w)
	}
}
