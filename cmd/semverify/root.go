package main

import (
	"github.com/spf13/cobra"

	"github.com/kallio-oss/semverify/pkg/logging"
)

// newRootCmd builds the semverify root command, wiring check, serve, and
// rules as subcommands (§7's three driver entry points).
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "semverify",
		Short:         "Check a library's public API for SemVer-incompatible changes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetCount("verbose")
			if verbose > 0 {
				logging.SetLevel(-4) // slog.LevelDebug
			}
		},
	}

	root.PersistentFlags().CountP("verbose", "v", "increase logging verbosity")
	root.PersistentFlags().String("baseline", "", "path to the baseline graph fixture JSON")
	root.PersistentFlags().String("current", "", "path to the current graph fixture JSON")
	root.PersistentFlags().String("rules", "rules", "directory of rule YAML files")
	root.PersistentFlags().String("extractor-cmd", "", "external command that prints a graph fixture to stdout, instead of --baseline/--current files")
	root.PersistentFlags().Int("concurrency", 0, "max rules evaluated concurrently (0 = unbounded)")
	root.PersistentFlags().StringP("output", "o", "text", "diagnostic output format: text or json")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newRulesCmd())

	return root
}
