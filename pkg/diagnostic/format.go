package diagnostic

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/kallio-oss/semverify/pkg/rules"
)

// WriteText renders diagnostics to w as colored, human-readable text,
// grouped per rule and capped off with the run summary.
func WriteText(w io.Writer, diags []*Diagnostic, summary Summary) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	for _, d := range diags {
		levelColor := red
		label := "FAIL"
		if d.LintLevel == rules.Warn {
			levelColor = yellow
			label = "WARN"
		}
		levelColor.Fprintf(w, "%s ", label)
		bold.Fprintf(w, "%s", d.RuleID)
		fmt.Fprintf(w, " — %s\n", d.HumanReadableName)
		fmt.Fprintf(w, "  %s\n", d.Description)
		if d.Reference != "" {
			cyan.Fprintf(w, "  reference: %s\n", d.Reference)
		}
		if d.ReferenceLink != "" {
			cyan.Fprintf(w, "  %s\n", d.ReferenceLink)
		}
		for _, msg := range d.Messages {
			fmt.Fprintf(w, "    - %s\n", msg)
		}
		fmt.Fprintln(w)
	}

	summaryColor := green
	if summary.Failures > 0 {
		summaryColor = red
	} else if summary.Warnings > 0 {
		summaryColor = yellow
	}
	summaryColor.Fprintf(w, "Summary: %d failed, %d warnings, %d allowed, %d passed\n",
		summary.Failures, summary.Warnings, summary.Skipped, summary.Passed)
	if summary.HasMaxRequired {
		fmt.Fprintf(w, "Required SemVer update: %s\n", summary.MaxRequired)
	}
	if summary.Cancelled {
		yellow.Fprintln(w, "Run was cancelled; results are partial.")
	}
}

// jsonSummary and jsonDiagnostic mirror Summary/Diagnostic with stable
// lowercase field names for machine consumption (§6.3).
type jsonDiagnostic struct {
	RuleID            string   `json:"rule_id"`
	HumanReadableName string   `json:"human_readable_name"`
	Description       string   `json:"description"`
	Reference         string   `json:"reference,omitempty"`
	ReferenceLink     string   `json:"reference_link,omitempty"`
	RequiredUpdate    string   `json:"required_update"`
	LintLevel         string   `json:"lint_level"`
	Messages          []string `json:"messages"`
}

type jsonSummary struct {
	Passed      int    `json:"passed"`
	Failures    int    `json:"failures"`
	Warnings    int    `json:"warnings"`
	Skipped     int    `json:"skipped"`
	MaxRequired string `json:"max_required_update,omitempty"`
	Cancelled   bool   `json:"cancelled"`
}

type jsonReport struct {
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
	Summary     jsonSummary      `json:"summary"`
}

// WriteJSON renders the full report as a single JSON document.
func WriteJSON(w io.Writer, diags []*Diagnostic, summary Summary) error {
	report := jsonReport{
		Summary: jsonSummary{
			Passed:    summary.Passed,
			Failures:  summary.Failures,
			Warnings:  summary.Warnings,
			Skipped:   summary.Skipped,
			Cancelled: summary.Cancelled,
		},
	}
	if summary.HasMaxRequired {
		report.Summary.MaxRequired = string(summary.MaxRequired)
	}
	for _, d := range diags {
		report.Diagnostics = append(report.Diagnostics, jsonDiagnostic{
			RuleID:            d.RuleID,
			HumanReadableName: d.HumanReadableName,
			Description:       d.Description,
			Reference:         d.Reference,
			ReferenceLink:     d.ReferenceLink,
			RequiredUpdate:    string(d.RequiredUpdate),
			LintLevel:         string(d.LintLevel),
			Messages:          d.Messages,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
