package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stylecraft/stylecraft"
	"github.com/stylecraft/stylecraft/internal/engine"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the source tree and transform changed files",
	Long: `Run an initial one-shot pass, then keep watching the source tree and
re-transform each changed file synchronously. The transform cache is
shared for the whole session, so identical declarations keep their
tokens across saves.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.String("source", "src", "Source directory")
	f.String("output-dir", "dist", "Output directory for transformed sources")
	f.StringSlice("include", nil, "Glob patterns for files to include")
	f.StringSlice("exclude", nil, "Exclusion entries (bare folder names or globs)")
	f.StringSlice("extensions", nil, "File extensions to react to")
	f.Bool("module-scoped", false, "Scope generated tokens to their module")
	f.Bool("in-place", false, "Rewrite sources in place instead of the output dir")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	config := buildTransformConfig()

	level := slog.LevelInfo
	if config.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	session := stylecraft.NewSession(config, engine.NewGenerator())

	// Initial pass primes the cache so the first save of an already
	// transformed declaration is a cache hit.
	result, err := session.Build()
	if err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}
	slog.Info("initial pass complete",
		"files", result.Stats.FilesScanned,
		"call_sites", result.CallSites,
		"cache_hits", result.CacheHits)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := session.Watch(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
