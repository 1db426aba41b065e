// Package runner evaluates a loaded rule set against two graphs and
// produces a summary plus per-rule diagnostics (spec §4.5). Rules are
// mutually independent and may be evaluated concurrently with no
// ordering constraint (§5).
package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kallio-oss/semverify/pkg/apimodel"
	"github.com/kallio-oss/semverify/pkg/diagnostic"
	"github.com/kallio-oss/semverify/pkg/engine"
	"github.com/kallio-oss/semverify/pkg/query"
	"github.com/kallio-oss/semverify/pkg/rules"
	"github.com/kallio-oss/semverify/pkg/template"
)

// RuleError is a per-rule problem that does not abort the rest of the
// run: a query compile error, a malformed template, or a fatal
// evaluation error (§7).
type RuleError struct {
	RuleID string
	Err    error
}

func (e *RuleError) Error() string { return fmt.Sprintf("rule %s: %v", e.RuleID, e.Err) }

// Options configures a run.
type Options struct {
	// Concurrency bounds the number of rules evaluated at once. Zero
	// means unbounded (one goroutine per rule).
	Concurrency int
	// LevelOverrides lets the driver override a rule's default
	// lint_level by id (§4.3 "The effective lint level may be
	// overridden by a rule-level configuration supplied by the driver").
	LevelOverrides map[string]rules.LintLevel
}

// Result is the outcome of a full run.
type Result struct {
	Diagnostics []*diagnostic.Diagnostic
	Summary     diagnostic.Summary
	RuleErrors  []*RuleError
}

type compiledRule struct {
	rule     *rules.Rule
	query    *query.Query
	perRow   *template.Template
	hintTmpl *template.Template
}

// Run compiles and evaluates every rule against the two graph roots.
func Run(ctx context.Context, ruleList []*rules.Rule, baselineRoot, currentRoot apimodel.Vertex, opts Options) (*Result, error) {
	var mu sync.Mutex
	var ruleErrors []*RuleError

	compiled := make([]*compiledRule, 0, len(ruleList))
	for _, r := range ruleList {
		q, err := query.Parse(r.Query)
		if err != nil {
			ruleErrors = append(ruleErrors, &RuleError{RuleID: r.ID, Err: fmt.Errorf("query compile error: %w", err)})
			continue
		}
		cr := &compiledRule{rule: r, query: q}
		if r.PerResultErrorTemplate != "" {
			cr.perRow, err = template.Parse(r.PerResultErrorTemplate)
			if err != nil {
				ruleErrors = append(ruleErrors, &RuleError{RuleID: r.ID, Err: fmt.Errorf("malformed per_result_error_template: %w", err)})
				continue
			}
		}
		if r.Witness != nil && r.Witness.HintTemplate != "" {
			cr.hintTmpl, err = template.Parse(r.Witness.HintTemplate)
			if err != nil {
				ruleErrors = append(ruleErrors, &RuleError{RuleID: r.ID, Err: fmt.Errorf("malformed witness hint_template: %w", err)})
				continue
			}
		}
		compiled = append(compiled, cr)
	}

	var diags []*diagnostic.Diagnostic
	var summary diagnostic.Summary

	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for _, cr := range compiled {
		cr := cr
		g.Go(func() error {
			rows, err := engine.Evaluate(gctx, cr.query, cr.rule.Arguments, baselineRoot, currentRoot)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					summary.Cancelled = true
					return nil
				}
				ruleErrors = append(ruleErrors, &RuleError{RuleID: cr.rule.ID, Err: err})
				return nil
			}

			level := cr.rule.LintLevel
			if opts.LevelOverrides != nil {
				if override, ok := opts.LevelOverrides[cr.rule.ID]; ok {
					level = override
				}
			}
			matched := len(rows) > 0
			summary.AddResult(level, matched, cr.rule.RequiredUpdate)

			if matched && level != rules.Allow {
				diags = append(diags, buildDiagnostic(cr, rows, level))
			}
			return nil
		})
	}
	_ = g.Wait() // goroutines never return a non-nil error; Wait only joins them

	diagnostic.Sort(diags)
	return &Result{Diagnostics: diags, Summary: summary, RuleErrors: ruleErrors}, nil
}

func buildDiagnostic(cr *compiledRule, rows []engine.Row, level rules.LintLevel) *diagnostic.Diagnostic {
	d := &diagnostic.Diagnostic{
		RuleID:            cr.rule.ID,
		HumanReadableName: cr.rule.HumanReadableName,
		Description:       cr.rule.Description,
		Reference:         cr.rule.Reference,
		ReferenceLink:     cr.rule.ReferenceLink,
		RequiredUpdate:    cr.rule.RequiredUpdate,
		LintLevel:         level,
	}

	for _, row := range rows {
		if cr.perRow != nil {
			msg, warnings := cr.perRow.Render(row)
			d.Messages = append(d.Messages, msg)
			d.RenderWarnings = append(d.RenderWarnings, warnings...)
		} else if cr.rule.ErrorMessage != "" {
			d.Messages = append(d.Messages, cr.rule.ErrorMessage)
		}

		if d.SourceFile == "" {
			if f, ok := row["span_filename"].(string); ok {
				d.SourceFile = f
			}
			switch l := row["span_begin_line"].(type) {
			case int:
				d.SourceLine = l
			case int64:
				d.SourceLine = int(l)
			}
		}
	}
	return d
}
