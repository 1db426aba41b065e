package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newRulesCmd groups rule-set introspection subcommands.
func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect the loaded rule set",
	}
	cmd.AddCommand(newRulesListCmd())
	return cmd
}

func newRulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every rule in the configured rule directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ruleList, err := loadRuleSet(cfg)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLINT LEVEL\tREQUIRED UPDATE\tDESCRIPTION")
			for _, r := range ruleList {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.LintLevel, r.RequiredUpdate, r.Description)
			}
			return tw.Flush()
		},
	}
}
