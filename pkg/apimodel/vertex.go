// Package apimodel implements the graph ingestion contract (spec §6.1):
// enumeration of root items, per-vertex property/edge lookup by name, and
// variant discrimination. It also provides an in-memory reference Graph
// used by tests, fixtures, and the "check" CLI path when no external
// extractor is wired.
package apimodel

import "github.com/kallio-oss/semverify/pkg/schema"

// Vertex is the engine-facing view of one node in an API graph. Scalars
// returned by Property are string, bool, int, or []string. Edge returns
// nil or an empty slice when the vertex has no targets under that name,
// so callers test len rather than nil — the same "zero results" the
// query layer uses for no match.
type Vertex interface {
	Kind() schema.Kind
	Property(name string) (any, bool)
	Edge(name string) []Vertex
}

// vertex is the one concrete Vertex implementation: a kind tag plus two
// lookup tables built once per item by the adapters in adapt.go. Every
// concrete schema type is translated into this generic shape so the
// query engine never needs a type switch over schema.* structs.
type vertex struct {
	kind  schema.Kind
	props map[string]any
	edges map[string][]Vertex
}

func (v *vertex) Kind() schema.Kind { return v.kind }

func (v *vertex) Property(name string) (any, bool) {
	val, ok := v.props[name]
	return val, ok
}

func (v *vertex) Edge(name string) []Vertex {
	return v.edges[name]
}

func newVertex(kind schema.Kind) *vertex {
	return &vertex{kind: kind, props: map[string]any{}, edges: map[string][]Vertex{}}
}
