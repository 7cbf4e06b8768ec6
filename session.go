package stylecraft

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/stylecraft/stylecraft/internal/parser"
)

// Session owns the process-wide transformation state: one TransformCache
// shared by every file processed during a build or watch run, the style
// engine, and the configured filters. One file is fully walked and
// transformed before the next begins.
type Session struct {
	cfg    Config
	engine Engine
	cache  *TransformCache
	tr     *Transformer
	filter *ExclusionFilter
}

// NewSession wires a session from configuration and a style engine. The
// cache it creates lives for the session's whole lifetime, whether that
// is a single build or a long watch run.
func NewSession(cfg Config, engine Engine) *Session {
	cfg = cfg.withDefaults()
	cache := NewTransformCache()
	return &Session{
		cfg:    cfg,
		engine: engine,
		cache:  cache,
		tr:     NewTransformer(engine, cache, cfg.Trigger, cfg.ModuleScoped),
		filter: NewExclusionFilter(cfg.Exclude),
	}
}

// Cache exposes the session's transform cache, mainly for inspection.
func (s *Session) Cache() *TransformCache { return s.cache }

// BuildResult summarizes a one-shot pass.
type BuildResult struct {
	Stats            ScanStats
	FilesTransformed int // files with at least one rewritten call site
	CallSites        int // tracked call sites located
	CacheHits        int // call sites served from the transform cache
	Issues           []TransformIssue
	Warnings         []string // per-file failures that did not stop the pass
}

// Build runs a one-shot pass with a fresh session.
func Build(cfg Config, engine Engine) (*BuildResult, error) {
	return NewSession(cfg, engine).Build()
}

// Build discovers candidate files and transforms them one by one. A
// single file's failure is downgraded to a warning; the pass continues.
func (s *Session) Build() (*BuildResult, error) {
	files, stats, err := DiscoverFiles(s.cfg.SourceDir, s.cfg.Includes, s.filter)
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}

	result := &BuildResult{Stats: stats}
	for _, file := range files {
		if err := s.ProcessFile(file, result); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", file, err))
		}
	}
	return result, nil
}

// ProcessFile parses, transforms and writes back a single source file,
// accumulating counters and issues into result.
func (s *Session) ProcessFile(path string, result *BuildResult) error {
	// #nosec G304 - path comes from configured discovery patterns
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	tree, err := parser.Parse(string(src))
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	rel := relativeTo(s.cfg.SourceDir, path)
	pass := s.tr.Pass(rel)
	pass.Run(tree)

	result.CallSites += pass.CallSites()
	result.CacheHits += pass.CacheHits()
	result.Issues = append(result.Issues, pass.Issues()...)
	if pass.Edited() {
		result.FilesTransformed++
	}

	out := pass.Apply(src)
	return s.writeOutput(path, rel, out, pass.Edited())
}

// writeOutput places the transformed bytes. In place, only edited files
// are rewritten; with an output dir, every processed file is mirrored so
// the output tree stays complete.
func (s *Session) writeOutput(path, rel string, out []byte, edited bool) error {
	if s.cfg.WriteInPlace {
		if !edited {
			return nil
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return fmt.Errorf("write file: %w", err)
		}
		return nil
	}

	dest := filepath.Join(s.cfg.OutputDir, rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(dest, out, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
