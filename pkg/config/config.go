// Package config loads semverify's configuration by layering defaults,
// an optional semverify.toml file, SEMVERIFY_* environment variables,
// and command-line flags, in that increasing-precedence order.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/kallio-oss/semverify/pkg/rules"
)

// Config holds all configuration for a check or serve invocation.
type Config struct {
	// BaselinePath and CurrentPath point at the two graph fixture JSON
	// documents to compare (spec §6.1's ingestion contract).
	BaselinePath string `koanf:"baseline"`
	CurrentPath  string `koanf:"current"`

	// RuleDir holds the YAML rule files to load (§4.3).
	RuleDir string `koanf:"rules"`

	// ExtractorCmd, when set, is run instead of reading BaselinePath/
	// CurrentPath directly (pkg/toolchain.CommandExtractor).
	ExtractorCmd string `koanf:"extractor-cmd"`

	// Concurrency bounds concurrent rule evaluation (§5). Zero means
	// unbounded.
	Concurrency int `koanf:"concurrency"`

	// OutputFormat selects the diagnostic formatter: "text" or "json".
	OutputFormat string `koanf:"output"`

	// WebMode is loaded from the "web" key; no command reads it. The
	// dashboard is started by the "serve" subcommand.
	WebMode bool `koanf:"web"`
	Port    int  `koanf:"port"`
	Watch   bool `koanf:"watch"`

	Verbosity  string `koanf:"verbosity"`
	VerboseCnt int    `koanf:"verbose"`

	// LevelOverrides lets an operator downgrade/upgrade a rule's
	// lint_level by id without editing the rule file, e.g.
	// SEMVERIFY_LEVEL_STRUCT_PUB_FIELD_MISSING=warn.
	LevelOverrides map[string]string `koanf:"level"`
}

// EffectiveLevelOverrides converts the raw string overrides into
// rules.LintLevel, dropping (with no error) any value that doesn't name
// a known level; the runner treats an absent override as "use the
// rule's own lint_level."
func (c *Config) EffectiveLevelOverrides() map[string]rules.LintLevel {
	if len(c.LevelOverrides) == 0 {
		return nil
	}
	out := make(map[string]rules.LintLevel, len(c.LevelOverrides))
	for id, raw := range c.LevelOverrides {
		switch strings.ToLower(raw) {
		case "deny":
			out[id] = rules.Deny
		case "warn":
			out[id] = rules.Warn
		case "allow":
			out[id] = rules.Allow
		}
	}
	return out
}

// Load loads configuration from defaults, config file, environment
// variables, and flags. Priority: Flags > Env > Config File > Defaults.
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"baseline":      "",
		"current":       "",
		"rules":         "rules",
		"extractor-cmd": "",
		"concurrency":   0,
		"output":        "text",
		"web":           false,
		"port":          8080,
		"watch":         false,
		"verbosity":     "",
		"verbose":       0,
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Config file is optional; a missing file is not an error.
	_ = k.Load(file.Provider("semverify.toml"), toml.Parser())

	if err := k.Load(env.Provider("SEMVERIFY_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "SEMVERIFY_"))
		// Rule ids contain underscores, so only the "level_" prefix
		// becomes a key separator for lint-level overrides.
		if strings.HasPrefix(key, "level_") {
			return "level." + strings.TrimPrefix(key, "level_")
		}
		return strings.ReplaceAll(key, "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := k.Unmarshal("level", &cfg.LevelOverrides); err != nil {
		return nil, fmt.Errorf("failed to unmarshal level overrides: %w", err)
	}

	return &cfg, nil
}

type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
