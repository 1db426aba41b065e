package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kallio-oss/semverify/pkg/apimodel"
	"github.com/kallio-oss/semverify/pkg/config"
	"github.com/kallio-oss/semverify/pkg/rules"
	"github.com/kallio-oss/semverify/pkg/toolchain"
)

// loadConfig layers defaults/env/config-file under whichever flags the
// invoking command registered, per pkg/config's precedence order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(cmd.Flags())
}

// loadGraphs produces the baseline/current roots, either by reading the
// two fixture files directly or by shelling out to cfg.ExtractorCmd once
// per scope.
func loadGraphs(ctx context.Context, cfg *config.Config) (baseline, current apimodel.Vertex, err error) {
	load := func(path string) (apimodel.Vertex, error) {
		var data []byte
		if cfg.ExtractorCmd != "" {
			data, err = toolchain.NewCommandExtractor().Extract(ctx, cfg.ExtractorCmd, nil, path)
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, err
		}
		g, err := apimodel.LoadFixture(data)
		if err != nil {
			return nil, err
		}
		return g.Root(), nil
	}

	baselineVertex, err := load(cfg.BaselinePath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading baseline graph: %w", err)
	}
	currentVertex, err := load(cfg.CurrentPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading current graph: %w", err)
	}
	return baselineVertex, currentVertex, nil
}

// loadRuleSet loads every rule under cfg.RuleDir, printing non-fatal
// per-file load errors to stderr rather than aborting the run — a typo
// in one rule file shouldn't block evaluating the rest (§7).
func loadRuleSet(cfg *config.Config) ([]*rules.Rule, error) {
	ruleList, loadErrs := rules.LoadDir(cfg.RuleDir)
	for _, e := range loadErrs {
		fmt.Fprintf(os.Stderr, "warning: %v\n", e)
	}
	if len(ruleList) == 0 {
		return nil, fmt.Errorf("no rules loaded from %s", cfg.RuleDir)
	}
	return ruleList, nil
}
