package stylecraft

import (
	"sync"

	"github.com/stylecraft/stylecraft/internal/ast"
)

// TransformCache memoizes transformed callback bodies by fingerprint so
// each distinct style declaration is handed to the style engine at most
// once per process. It is constructed once per run and passed by
// reference into the transformer, never held as a hidden singleton.
//
// The cache grows for the life of a build or watch session and is never
// pruned; style declarations in a codebase are finite and small, so the
// memory bound is the set of distinct declarations.
type TransformCache struct {
	mu      sync.Mutex
	seen    map[Fingerprint]bool
	entries map[Fingerprint]*ast.Node
}

// NewTransformCache returns an empty cache.
func NewTransformCache() *TransformCache {
	return &TransformCache{
		seen:    make(map[Fingerprint]bool),
		entries: make(map[Fingerprint]*ast.Node),
	}
}

// Memoize runs the at-most-once protocol for one fingerprint. On the
// first encounter it invokes transform, stores a deep copy of the body
// transform returns, and reports a miss. On later encounters it returns
// a fresh deep copy of the stored body and reports a hit, so mutation at
// one call site never affects another. The mutex is held across the
// whole check-then-insert sequence, which keeps a single writer per
// fingerprint if callers ever parallelize across files.
func (c *TransformCache) Memoize(fp Fingerprint, transform func() *ast.Node) (*ast.Node, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.seen[fp] {
		if entry, ok := c.entries[fp]; ok {
			return entry.Clone(), true
		}
		// Seen but never stored: a prior transform returned nothing.
		// Transform again rather than dropping the call site.
	}
	c.seen[fp] = true
	if body := transform(); body != nil {
		c.entries[fp] = body.Clone()
	}
	return nil, false
}

// Seen reports whether a fingerprint has been encountered.
func (c *TransformCache) Seen(fp Fingerprint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seen[fp]
}

// Len returns the number of stored transformed bodies.
func (c *TransformCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
