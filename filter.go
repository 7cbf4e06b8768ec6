package stylecraft

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExclusionFilter gates whether a file is processed at all. It holds the
// configured ordered sequence of exclusion entries; a file is skipped
// entirely when any entry matches it.
type ExclusionFilter struct {
	entries []string
}

// NewExclusionFilter builds a filter from configured entries.
func NewExclusionFilter(entries []string) *ExclusionFilter {
	return &ExclusionFilter{entries: entries}
}

// Excluded reports whether path is skipped. An entry containing no path
// separator and no dot is a bare folder name and expands to "<name>/**";
// every other entry matches verbatim as a glob. Paths whose first
// character is '.' are rejected here too, as a second line of defense
// against hidden files.
func (f *ExclusionFilter) Excluded(path string) bool {
	p := filepath.ToSlash(path)
	p = strings.TrimPrefix(p, "./")
	if strings.HasPrefix(p, ".") {
		return true
	}
	for _, entry := range f.entries {
		pattern := entry
		if !strings.ContainsRune(entry, '/') && !strings.ContainsRune(entry, '.') {
			pattern = entry + "/**"
		}
		if ok, err := doublestar.Match(pattern, p); err == nil && ok {
			return true
		}
	}
	return false
}
