package stylecraft

// TransformIssue records one property-level failure. The transformer
// never aborts a file because of a single declaration: it collects
// issues and keeps going, so partial transformation of a file is an
// accepted outcome.
type TransformIssue struct {
	Property string   `json:"Property"` // style property the engine was asked about
	Text     string   `json:"Text"`     // failure description
	Severity string   `json:"Severity"` // "warning" or "error"
	Pos      IssuePos `json:"Pos"`      // source location of the declaration
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"`
	Line     int    `json:"Line"`
	Column   int    `json:"Column"` // 1-based
}

// Issue severity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)
