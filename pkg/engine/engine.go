// Package engine evaluates a parsed query (pkg/query) against two
// read-only graphs (pkg/apimodel), implementing the join and traversal
// semantics of spec §4.2.
package engine

import (
	"context"
	"fmt"

	"github.com/kallio-oss/semverify/pkg/apimodel"
	"github.com/kallio-oss/semverify/pkg/query"
)

// Row is a single output-row mapping produced by one rule match.
type Row map[string]any

// EvalError reports a fatal problem encountered while evaluating a
// single rule's query: an unresolved tag, an unknown fold operator, a
// type mismatch on a comparison operator, or similar. It never aborts
// other rules' evaluation (§7).
type EvalError struct {
	Msg string
}

func (e *EvalError) Error() string { return e.Msg }

// delta is one field's own contribution to a row under evaluation: the
// tags it binds and the outputs it emits. Evaluation threads deltas
// through sibling fields and merges them, rather than mutating a single
// shared row, so that multiplicities (an edge yielding several targets)
// compose as a cross product instead of clobbering each other.
type delta struct {
	tags    map[string]any
	outputs map[string]any
}

func emptyDelta() delta {
	return delta{tags: map[string]any{}, outputs: map[string]any{}}
}

func mergeMap(a, b map[string]any) map[string]any {
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Evaluate runs one rule's compiled query against the two graph roots,
// returning every joined output row (§4.2 steps 3-5). Evaluation is
// deterministic for a given graph enumeration order (§8 property 1).
func Evaluate(ctx context.Context, q *query.Query, args map[string]any, baselineRoot, currentRoot apimodel.Vertex) ([]Row, error) {
	plan, err := planScopes(q)
	if err != nil {
		return nil, err
	}

	roots := map[string]apimodel.Vertex{"baseline": baselineRoot, "current": currentRoot}
	scopes := map[string]*query.Scope{"baseline": q.Baseline, "current": q.Current}

	firstName, secondName := plan.first, plan.second
	firstDeltas, err := evalFieldList(roots[firstName], scopes[firstName].Root.Children, args, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", firstName, err)
	}

	var rows []Row
	for _, fd := range firstDeltas {
		select {
		case <-ctx.Done():
			return rows, ctx.Err()
		default:
		}

		secondDeltas, err := evalFieldList(roots[secondName], scopes[secondName].Root.Children, args, fd.tags)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", secondName, err)
		}
		for _, sd := range secondDeltas {
			row := Row{}
			for k, v := range fd.outputs {
				row[k] = v
			}
			for k, v := range sd.outputs {
				row[k] = v
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}
