package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kallio-oss/semverify/pkg/diagnostic"
	"github.com/kallio-oss/semverify/pkg/logging"
	"github.com/kallio-oss/semverify/pkg/runner"
)

// newCheckCmd runs one evaluation of the loaded rule set against the
// baseline/current graphs and prints a diagnostic report.
func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compare the current API graph against a baseline and report SemVer issues",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ruleList, err := loadRuleSet(cfg)
			if err != nil {
				return err
			}

			ctx := logging.WithRunID(cmd.Context(), newRunIDOrEmpty())
			baseline, current, err := loadGraphs(ctx, cfg)
			if err != nil {
				return err
			}

			result, err := runner.Run(ctx, ruleList, baseline, current, runner.Options{
				Concurrency:    cfg.Concurrency,
				LevelOverrides: cfg.EffectiveLevelOverrides(),
			})
			if err != nil {
				return err
			}
			for _, re := range result.RuleErrors {
				logging.Warn("rule evaluation problem", "rule", re.RuleID, "error", re.Err)
			}

			if cfg.OutputFormat == "json" {
				if err := diagnostic.WriteJSON(os.Stdout, result.Diagnostics, result.Summary); err != nil {
					return err
				}
			} else {
				diagnostic.WriteText(os.Stdout, result.Diagnostics, result.Summary)
			}

			if result.Summary.Failures > 0 {
				os.Exit(1)
			}
			return nil
		},
	}
	return cmd
}
