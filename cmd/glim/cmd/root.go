// Package cmd implements glim's cobra-based CLI, mirroring the teacher's
// cmd/dwscript/cmd layout: a root command with subcommands for running,
// REPL-ing, and debug-dumping a glim program (spec §6's CLI paragraph,
// expanded in SPEC_FULL.md §9).
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version = "0.1.0-dev"
)

var rootCmd = &cobra.Command{
	Use:   "glim",
	Short: "glim scripting language interpreter",
	Long: `glim is a small imperative/expressional scripting language:
closures, records, arrays, parallel blocks, and a suspendable input()
built around a resumable host interface.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) error {
	return fmt.Errorf(msg, args...)
}
