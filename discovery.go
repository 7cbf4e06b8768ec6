package stylecraft

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ScanStats tracks file discovery statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually processed (after filtering)
	FilesSkipped    int // Files skipped due to filtering
}

var (
	// gitignore caching
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// loadGitIgnore loads the .gitignore file once (thread-safe).
// Gracefully degrades if .gitignore doesn't exist.
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// shouldSkipFile decides whether a discovered file is excluded from the
// transformation pass.
//
// Two-layer filtering:
// 1. Exclusion filter: the configured exclude entries, matched against
// the path relative to the source root.
// 2. Gitignore: gitignored files are skipped too (relative paths only;
// absolute paths such as /tmp/... are not subject to project ignores).
func shouldSkipFile(relPath string, filter *ExclusionFilter) bool {
	if filter != nil && filter.Excluded(relPath) {
		return true
	}

	if !filepath.IsAbs(relPath) {
		gi := loadGitIgnore()
		if gi != nil && gi.MatchesPath(relPath) {
			return true
		}
	}

	return false
}

// DiscoverFiles expands the include patterns under sourceDir into the
// deduplicated set of candidate files for a one-shot pass, applying the
// two-layer filter and tracking statistics.
func DiscoverFiles(sourceDir string, includes []string, filter *ExclusionFilter) ([]string, ScanStats, error) {
	var files []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range includes {
		fullPattern := pattern
		if sourceDir != "" {
			fullPattern = filepath.Join(sourceDir, pattern)
		}

		matches, err := doublestar.FilepathGlob(fullPattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if shouldSkipFile(relativeTo(sourceDir, match), filter) {
				stats.FilesSkipped++
				continue
			}
			seen[match] = true
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	return files, stats, nil
}

// relativeTo rebases path under root for filter matching; on failure the
// path is used as is.
func relativeTo(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
