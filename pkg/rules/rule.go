// Package rules loads and validates lint rule records (spec §4.3, §6.2):
// self-contained YAML declarations each naming a query, its arguments, and
// the diagnostic templates rendered against matched rows.
package rules

import "fmt"

// RequiredUpdate is the SemVer bump a rule violation implies.
type RequiredUpdate string

const (
	Major RequiredUpdate = "Major"
	Minor RequiredUpdate = "Minor"
)

// LintLevel is a rule's default severity.
type LintLevel string

const (
	Deny  LintLevel = "Deny"
	Warn  LintLevel = "Warn"
	Allow LintLevel = "Allow"
)

// Witness is the optional record a rule carries to describe how to render
// a minimal reproduction snippet for a matched row.
type Witness struct {
	HintTemplate string `yaml:"hint_template"`
}

// Rule is one lint declaration (§4.3).
type Rule struct {
	ID                     string         `yaml:"id"`
	HumanReadableName      string         `yaml:"human_readable_name"`
	Description            string         `yaml:"description"`
	Reference              string         `yaml:"reference"`
	ReferenceLink          string         `yaml:"reference_link"`
	RequiredUpdate         RequiredUpdate `yaml:"required_update"`
	LintLevel              LintLevel      `yaml:"lint_level"`
	Query                  string         `yaml:"query"`
	Arguments              map[string]any `yaml:"arguments"`
	ErrorMessage           string         `yaml:"error_message"`
	PerResultErrorTemplate string         `yaml:"per_result_error_template"`
	Witness                *Witness       `yaml:"witness"`

	// SourcePath is the file the rule was loaded from, set by LoadDir.
	SourcePath string `yaml:"-"`
}

// Validate checks the structural constraints the loader must enforce
// (§6.2): required fields present, required_update/lint_level in their
// allowed sets, and every $arg referenced by the query present in
// Arguments.
func (r *Rule) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("rule missing required field \"id\"")
	}
	if r.Query == "" {
		return fmt.Errorf("rule %q missing required field \"query\"", r.ID)
	}
	switch r.RequiredUpdate {
	case Major, Minor:
	default:
		return fmt.Errorf("rule %q has invalid required_update %q (want Major or Minor)", r.ID, r.RequiredUpdate)
	}
	switch r.LintLevel {
	case Deny, Warn, Allow:
	default:
		return fmt.Errorf("rule %q has invalid lint_level %q (want Deny, Warn, or Allow)", r.ID, r.LintLevel)
	}

	referenced := referencedArgs(r.Query)
	for name := range referenced {
		if _, ok := r.Arguments[name]; !ok {
			return fmt.Errorf("rule %q references argument $%s which is not declared in arguments", r.ID, name)
		}
	}
	return nil
}

// referencedArgs scans raw query text for `$name` tokens. The loader uses
// this cheap lexical scan rather than a full parse so argument validation
// doesn't require the query to already compile (a separate, later error
// class per §7, "query compile error").
func referencedArgs(src string) map[string]bool {
	out := map[string]bool{}
	runes := []rune(src)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '$' {
			continue
		}
		j := i + 1
		for j < len(runes) && (isIdentRune(runes[j])) {
			j++
		}
		if j > i+1 {
			out[string(runes[i+1:j])] = true
		}
		i = j - 1
	}
	return out
}

func isIdentRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}
