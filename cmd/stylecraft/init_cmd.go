package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .stylecraft.yaml config file",
	Long:  `Create a .stylecraft.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".stylecraft.yaml"); err == nil && !force {
			return fmt.Errorf(".stylecraft.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".stylecraft.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created .stylecraft.yaml")
		return nil
	},
}

const defaultConfig = `# stylecraft configuration

# Shared settings
trigger: craftingStyles
verbose: false

# Build settings
build:
  source: src
  output-dir: dist
  include:
    - "**/*.js"
    - "**/*.jsx"
    - "**/*.ts"
    - "**/*.tsx"
  exclude:
    - node_modules
    - dist
  module-scoped: false
  in-place: false

# Watch settings
watch:
  extensions:
    - .js
    - .jsx
    - .ts
    - .tsx
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
