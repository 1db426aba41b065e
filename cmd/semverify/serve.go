package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kallio-oss/semverify/pkg/diagnostic"
	"github.com/kallio-oss/semverify/pkg/logging"
	"github.com/kallio-oss/semverify/pkg/runner"
	"github.com/kallio-oss/semverify/pkg/watcher"
	"github.com/kallio-oss/semverify/pkg/web"
)

// newServeCmd starts the dashboard and, optionally, re-runs the check
// whenever the rule directory or either graph fixture changes.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live dashboard of the check run, re-checking on file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			srv := web.NewServer()
			ctx := cmd.Context()

			runOnce := func() {
				runID := srv.NewRunID()
				runCtx := logging.WithRunID(ctx, runID)

				ruleList, err := loadRuleSet(cfg)
				if err != nil {
					logging.ErrorContext(runCtx, "failed to load rules", "error", err)
					return
				}
				srv.SetRules(ruleList)

				baseline, current, err := loadGraphs(runCtx, cfg)
				if err != nil {
					logging.ErrorContext(runCtx, "failed to load graphs", "error", err)
					return
				}

				for _, r := range ruleList {
					_ = srv.PublishRuleStarted(r.ID)
				}

				result, err := runner.Run(runCtx, ruleList, baseline, current, runner.Options{
					Concurrency:    cfg.Concurrency,
					LevelOverrides: cfg.EffectiveLevelOverrides(),
				})
				if err != nil {
					logging.ErrorContext(runCtx, "run failed", "error", err)
					return
				}

				matchedByRule := matchedRuleIDs(result.Diagnostics)
				for _, r := range ruleList {
					level := r.LintLevel
					if override, ok := cfg.EffectiveLevelOverrides()[r.ID]; ok {
						level = override
					}
					_, matched := matchedByRule[r.ID]
					_ = srv.PublishRuleFinished(r.ID, matched, level)
				}

				srv.SetResult(result.Diagnostics, result.Summary)
				_ = srv.PublishSummary(result.Summary)
			}

			runOnce()

			if cfg.Watch {
				fw, err := watcher.NewFileWatcher(cfg.RuleDir, cfg.BaselinePath, cfg.CurrentPath)
				if err != nil {
					return fmt.Errorf("starting watcher: %w", err)
				}
				if err := fw.Start(ctx); err != nil {
					return fmt.Errorf("starting watcher: %w", err)
				}
				deb := watcher.NewDebouncer(fw.Events(), 300*time.Millisecond, 3*time.Second)
				deb.Start(ctx)
				go func() {
					for range deb.Output() {
						logging.Info("change detected, re-running check")
						runOnce()
					}
				}()
			}

			return srv.Start(cfg.Port)
		},
	}
	return cmd
}

func matchedRuleIDs(diags []*diagnostic.Diagnostic) map[string]struct{} {
	out := make(map[string]struct{}, len(diags))
	for _, d := range diags {
		out[d.RuleID] = struct{}{}
	}
	return out
}
