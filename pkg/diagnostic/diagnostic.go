// Package diagnostic holds the per-rule, per-row findings the runner
// produces (spec §6.3) and formats them for a terminal or for machine
// consumption.
package diagnostic

import (
	"sort"

	"github.com/kallio-oss/semverify/pkg/rules"
)

// Diagnostic is one failed or warned rule's full report: its identity,
// rationale, and the rendered message for every matched row.
type Diagnostic struct {
	RuleID             string
	HumanReadableName  string
	Description        string
	Reference          string
	ReferenceLink      string
	RequiredUpdate     rules.RequiredUpdate
	LintLevel          rules.LintLevel
	Messages           []string
	SourceFile         string // span filename of the first matched row, used only for sort order
	SourceLine         int    // span begin line of the first matched row
	RenderWarnings     []string
}

// Summary aggregates counts across an entire run (§6.3, §6.4).
type Summary struct {
	Passed         int
	Failures       int
	Warnings       int
	Skipped        int
	MaxRequired    rules.RequiredUpdate
	HasMaxRequired bool
	Cancelled      bool
}

// AddResult folds one rule's outcome into the summary (§4.5, §8 property 6).
func (s *Summary) AddResult(level rules.LintLevel, matched bool, required rules.RequiredUpdate) {
	if !matched {
		s.Passed++
		return
	}
	switch level {
	case rules.Deny:
		s.Failures++
	case rules.Warn:
		s.Warnings++
	case rules.Allow:
		s.Skipped++
		return // Allow never contributes to required_update (§3 DESIGN decision)
	}
	s.bumpMax(required)
}

func (s *Summary) bumpMax(required rules.RequiredUpdate) {
	if !s.HasMaxRequired {
		s.MaxRequired = required
		s.HasMaxRequired = true
		return
	}
	if s.MaxRequired == rules.Major {
		return
	}
	if required == rules.Major {
		s.MaxRequired = rules.Major
	}
}

// Sort orders diagnostics by (rule id, span filename, begin line), the
// stable order §4.5 requires before emission.
func Sort(diags []*Diagnostic) {
	sort.Slice(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		if a.SourceFile != b.SourceFile {
			return a.SourceFile < b.SourceFile
		}
		return a.SourceLine < b.SourceLine
	})
}
