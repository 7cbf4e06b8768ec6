package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/stylecraft/stylecraft"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Issues    []JSONIssue `json:"issues"`
	Warnings  []string    `json:"warnings,omitempty"`
}

// JSONSummary contains high-level build counts
type JSONSummary struct {
	FilesDiscovered  int `json:"files_discovered"`
	FilesProcessed   int `json:"files_processed"`
	FilesSkipped     int `json:"files_skipped"`
	FilesTransformed int `json:"files_transformed"`
	CallSites        int `json:"call_sites"`
	CacheHits        int `json:"cache_hits"`
}

// JSONIssue represents a single property-level issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Property string `json:"property"`
	Message  string `json:"message"`
}

// WriteJSON exports a build result as indented JSON.
func WriteJSON(w io.Writer, result *stylecraft.BuildResult, version string) error {
	out := JSONOutput{
		Version:   version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Summary: JSONSummary{
			FilesDiscovered:  result.Stats.FilesDiscovered,
			FilesProcessed:   result.Stats.FilesScanned,
			FilesSkipped:     result.Stats.FilesSkipped,
			FilesTransformed: result.FilesTransformed,
			CallSites:        result.CallSites,
			CacheHits:        result.CacheHits,
		},
		Issues:   make([]JSONIssue, 0, len(result.Issues)),
		Warnings: result.Warnings,
	}
	for _, issue := range result.Issues {
		out.Issues = append(out.Issues, JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Property: issue.Property,
			Message:  issue.Text,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
