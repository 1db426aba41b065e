package engine

import (
	"fmt"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/kallio-oss/semverify/pkg/cycles"
	"github.com/kallio-oss/semverify/pkg/query"
)

// scopePlan is the result of analyzing a query's tag flow: which scope
// evaluates first, and which second (§4.2 steps 1-2).
type scopePlan struct {
	first  string
	second string
}

const (
	nodeBaseline = 0
	nodeCurrent  = 1
)

// planScopes computes, for each tag, which scope produces it (via @tag)
// and which scope(s) consume it (via %name), builds a two-node graph
// with an edge from the producing scope to the consuming scope, and
// orders the scopes so each runs only after the tags it consumes are
// bound. A tag produced by both scopes, or scopes with mixed/cyclic
// cross-dependencies, are rejected with an EvalError rather than guessed
// at. The check runs when Evaluate is called, before either scope is
// walked; rule loading does not perform it.
func planScopes(q *query.Query) (*scopePlan, error) {
	baseProduced := collectProducedTags(q.Baseline.Root)
	curProduced := collectProducedTags(q.Current.Root)
	baseConsumed := collectConsumedTags(q.Baseline.Root)
	curConsumed := collectConsumedTags(q.Current.Root)

	for tag := range baseProduced {
		if curProduced[tag] {
			return nil, &EvalError{Msg: fmt.Sprintf("tag %q is produced by both baseline and current scopes", tag)}
		}
	}

	g := simple.NewDirectedGraph()
	g.AddNode(simple.Node(nodeBaseline))
	g.AddNode(simple.Node(nodeCurrent))

	// baseline consuming a tag current produces: current -> baseline
	for tag := range baseConsumed {
		if baseProduced[tag] {
			continue // bound within the same scope's own traversal
		}
		if !curProduced[tag] {
			return nil, &EvalError{Msg: fmt.Sprintf("unresolved tag %%%s referenced in baseline scope", tag)}
		}
		g.SetEdge(g.NewEdge(simple.Node(nodeCurrent), simple.Node(nodeBaseline)))
	}
	// current consuming a tag baseline produces: baseline -> current
	for tag := range curConsumed {
		if curProduced[tag] {
			continue
		}
		if !baseProduced[tag] {
			return nil, &EvalError{Msg: fmt.Sprintf("unresolved tag %%%s referenced in current scope", tag)}
		}
		g.SetEdge(g.NewEdge(simple.Node(nodeBaseline), simple.Node(nodeCurrent)))
	}

	// With only two scopes, any cross-dependency in both directions is
	// necessarily a 2-node strongly connected component: Tarjan is the
	// sole cycle check, no separate topological sort needed to catch it.
	if sccs := cycles.NewTarjanSCC(g).FindSCCs(); len(sccs) > 0 {
		return nil, &EvalError{Msg: "mixed tag dependency between baseline and current scopes forms a cycle"}
	}

	// Tarjan having ruled out a cycle, at most one of the two edges below
	// exists, so the order is read directly off it instead of calling a
	// general-purpose topological sort for a two-node graph.
	if g.HasEdgeFromTo(nodeCurrent, nodeBaseline) {
		return &scopePlan{first: "current", second: "baseline"}, nil
	}
	return &scopePlan{first: "baseline", second: "current"}, nil
}

func collectProducedTags(root *query.Field) map[string]bool {
	out := map[string]bool{}
	var walk func(*query.Field)
	walk = func(f *query.Field) {
		if f.HasTag {
			out[f.Tag] = true
		}
		for _, c := range f.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}

func collectConsumedTags(root *query.Field) map[string]bool {
	out := map[string]bool{}
	var walk func(*query.Field)
	walk = func(f *query.Field) {
		for _, filt := range f.Filters {
			if filt.Value != nil && filt.Value.TagName != "" {
				out[filt.Value.TagName] = true
			}
		}
		for _, c := range f.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}
