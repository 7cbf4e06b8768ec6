package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/stylecraft/stylecraft"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".stylecraft.yaml"
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence — only flags that were explicitly set)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (STYLECRAFT_* prefix)
	if err := k.Load(env.Provider("STYLECRAFT_", ".", func(s string) string {
		// STYLECRAFT_BUILD_SOURCE -> build.source
		// STYLECRAFT_BUILD_MODULE_SCOPED -> build.module.scoped (flat keys preferred)
		// STYLECRAFT_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "STYLECRAFT_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildTransformConfig constructs the library's Config struct from koanf state.
func buildTransformConfig() stylecraft.Config {
	config := stylecraft.Config{
		SourceDir:    getStringWithFallback("source", "build.source", "src"),
		OutputDir:    getStringWithFallback("output-dir", "build.output-dir", "dist"),
		Trigger:      getStringWithFallback("trigger", "trigger", stylecraft.DefaultTrigger),
		ModuleScoped: getBoolWithFallback("module-scoped", "build.module-scoped", false),
		WriteInPlace: getBoolWithFallback("in-place", "build.in-place", false),
		Verbose:      getBoolWithFallback("verbose", "verbose", false),
	}

	// Handle includes: check flag key first, then config key
	if includes := k.Strings("include"); len(includes) > 0 {
		config.Includes = includes
	} else if includes := k.Strings("build.include"); len(includes) > 0 {
		config.Includes = includes
	} else {
		config.Includes = stylecraft.DefaultIncludes
	}

	// Handle excludes the same way
	if exclude := k.Strings("exclude"); len(exclude) > 0 {
		config.Exclude = exclude
	} else if exclude := k.Strings("build.exclude"); len(exclude) > 0 {
		config.Exclude = exclude
	} else {
		config.Exclude = []string{"node_modules", "dist"}
	}

	// Watched extensions
	if exts := k.Strings("extensions"); len(exts) > 0 {
		config.Extensions = exts
	} else if exts := k.Strings("watch.extensions"); len(exts) > 0 {
		config.Extensions = exts
	} else {
		config.Extensions = stylecraft.DefaultExtensions
	}

	return config
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}
