// Package main provides the stylecraft CLI tool for rewriting inline
// style declarations into generated utility-class tokens.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
