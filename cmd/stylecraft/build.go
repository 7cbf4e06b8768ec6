package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stylecraft/stylecraft"
	"github.com/stylecraft/stylecraft/internal/engine"
	"github.com/stylecraft/stylecraft/internal/report"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Transform style declarations in a one-shot pass",
	Long: `Discover source files, rewrite every tracked call site into generated
utility-class tokens, and write the transformed sources to the output
directory (or in place with --in-place).`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.String("source", "src", "Source directory")
	f.String("output-dir", "dist", "Output directory for transformed sources")
	f.StringSlice("include", nil, "Glob patterns for files to include")
	f.StringSlice("exclude", nil, "Exclusion entries (bare folder names or globs)")
	f.Bool("module-scoped", false, "Scope generated tokens to their module")
	f.Bool("in-place", false, "Rewrite sources in place instead of the output dir")
	f.String("format", "text", "Output format: text|json")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	config := buildTransformConfig()

	result, err := stylecraft.Build(config, engine.NewGenerator())
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	if quiet {
		return nil
	}

	format, _ := cmd.Flags().GetString("format")
	if format == "json" {
		return report.WriteJSON(os.Stdout, result, version)
	}

	useColors := getBoolWithFallback("color", "color", false)
	reporter := report.NewReporter(os.Stdout, useColors)
	reporter.PrintIssues(result.Issues)
	reporter.PrintWarnings(result.Warnings)
	reporter.PrintSummary(result)
	return nil
}
