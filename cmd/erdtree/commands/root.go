/*
Package commands implements the CLI surface for erdtree. The root command
disables cobra's own flag parsing and hands the raw argument vector to the
resolution engine, which owns the full parameter grammar: arguments must
reach it byte-for-byte so they can be merged with the configuration file
and re-parsed as one sequence.
*/
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Knodis-c/erdtree-3-1/cmd/erdtree/app"
	rctx "github.com/Knodis-c/erdtree-3-1/internal/context"
)

// NewRootCommand creates the root command for the application.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "erdtree [flags] [directory]",
		Short: "File-tree visualizer and disk usage analyzer",
		Long: `erdtree is a multi-threaded file-tree visualizer and disk usage analyzer.

It prints a directory tree with per-entry disk usage, with filtering by
hidden status, gitignore rules, glob or regex patterns, and configurable
sorting. Defaults can be stored in a configuration file; command-line
arguments always win over configured values.`,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				printUsage(cmd)
				return nil
			}

			return app.New().Run(cmd.Context(), args)
		},
	}

	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// wantsHelp scans the raw argument vector for a help request. The scan
// stops at the terminator because everything after it is the positional
// target, whatever its bytes look like.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "-h" || arg == "--help" {
			return true
		}
	}

	return false
}

func printUsage(cmd *cobra.Command) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, cmd.Long)
	fmt.Fprintf(out, "\nUsage:\n  %s\n\nFlags:\n", cmd.Use)
	fmt.Fprint(out, rctx.Grammar().FlagSet("erdtree").FlagUsages())
}
