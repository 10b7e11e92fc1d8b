// Package cli provides the Cobra command structure for adoclint.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yaklabco/adoclint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root adoclint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "adoclint",
		Short: "A structural linter for AsciiDoc documents",
		Long: `adoclint checks AsciiDoc documents for structural and style problems.

It tokenizes each document line by line, builds a tree of sections, blocks,
lists and inline spans, and runs a set of rules over it: heading levels,
unterminated delimited blocks, table column counts, image alt text,
undefined attributes, whitespace and more. A rule that fails is isolated
and reported, so one bad rule never hides the findings of the others.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newLintCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	applyHelp(rootCmd, &color)

	return rootCmd
}
