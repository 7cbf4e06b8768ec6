package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylecraft/stylecraft"
)

func sampleResult() *stylecraft.BuildResult {
	return &stylecraft.BuildResult{
		Stats: stylecraft.ScanStats{
			FilesDiscovered: 5,
			FilesScanned:    4,
			FilesSkipped:    1,
		},
		FilesTransformed: 2,
		CallSites:        3,
		CacheHits:        1,
		Issues: []stylecraft.TransformIssue{
			{
				Property: "bgd",
				Text:     "engine unavailable",
				Severity: stylecraft.SeverityWarning,
				Pos:      stylecraft.IssuePos{Filename: "b.js", Line: 4, Column: 3},
			},
			{
				Property: "color",
				Text:     "engine unavailable",
				Severity: stylecraft.SeverityWarning,
				Pos:      stylecraft.IssuePos{Filename: "a.js", Line: 10, Column: 1},
			},
		},
		Warnings: []string{"c.js: parse failed"},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult(), "1.2.3"))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "1.2.3", out.Version)
	assert.NotEmpty(t, out.Timestamp)
	assert.Equal(t, 5, out.Summary.FilesDiscovered)
	assert.Equal(t, 4, out.Summary.FilesProcessed)
	assert.Equal(t, 2, out.Summary.FilesTransformed)
	assert.Equal(t, 3, out.Summary.CallSites)
	assert.Equal(t, 1, out.Summary.CacheHits)
	require.Len(t, out.Issues, 2)
	assert.Equal(t, "b.js", out.Issues[0].File)
	assert.Equal(t, "engine unavailable", out.Issues[0].Message)
	assert.Equal(t, []string{"c.js: parse failed"}, out.Warnings)
}

func TestWriteJSONEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, &stylecraft.BuildResult{}, "dev"))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Empty(t, out.Issues)
	assert.Empty(t, out.Warnings)
}

func TestPrintIssuesSortedByPosition(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	r.PrintIssues(sampleResult().Issues)

	out := buf.String()
	aIdx := strings.Index(out, "a.js:10:1:")
	bIdx := strings.Index(out, "b.js:4:3:")
	require.GreaterOrEqual(t, aIdx, 0)
	require.GreaterOrEqual(t, bIdx, 0)
	assert.Less(t, aIdx, bIdx)
	assert.Contains(t, out, "warning:")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	r.PrintSummary(sampleResult())

	out := buf.String()
	assert.Contains(t, out, "Files discovered: 5")
	assert.Contains(t, out, "Call sites:       3 (1 served from cache)")
	assert.NotContains(t, out, "No issues")
}

func TestPrintSummaryCleanRun(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	r.PrintSummary(&stylecraft.BuildResult{})
	assert.Contains(t, buf.String(), "No issues")
}

func TestPrintWarnings(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	r.PrintWarnings(nil)
	assert.Empty(t, buf.String())

	r.PrintWarnings([]string{"c.js: parse failed"})
	assert.Contains(t, buf.String(), "c.js: parse failed")
}
