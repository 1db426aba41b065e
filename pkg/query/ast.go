// Package query implements the declarative graph query language of
// spec §4.1: a lexer and recursive-descent parser turning rule query
// text into an AST, evaluated by pkg/engine against two graphs.
//
// Concrete syntax (GraphQL-flavored, matching the bracket/directive
// pseudocode spec.md §4.1 already uses):
//
//	baseline {
//	  item {
//	    ... on Enum {
//	      name @tag(name: "enum_name") @output(name: "enum_name")
//	      visibility_limit @filter(op: "=", value: "public")
//	      variant @fold {
//	        name @tag(name: "variant_name")
//	      } @transform(op: "count") @filter(op: ">", value: 0)
//	    }
//	  }
//	}
//	current {
//	  item {
//	    ... on Enum {
//	      name @filter(op: "=", value: %enum_name)
//	    }
//	  }
//	}
package query

// Query is the top-level parsed rule query: the two independent scopes.
type Query struct {
	Baseline *Scope
	Current  *Scope
}

// Scope is one top-level named traversal ("baseline" or "current").
type Scope struct {
	Name string
	Root *Field // always an edge field, conventionally named "item"
}

// Field is one node in the selection tree: either a property access
// (no Children) or an edge selection (has Children). TypeRefine narrows
// the parent vertex to a specific schema.Kind before descending.
type Field struct {
	Name       string
	TypeRefine string // "" if no "... on X" applied to this field
	Fold       bool
	Optional   bool
	Transform  string // aggregation op, e.g. "count"; "" if none
	Filters    []*Filter
	Tag        string
	HasTag     bool
	Output     string
	HasOutput  bool
	Children   []*Field
}

// IsLeaf reports whether this field is a property access (no sub-selection).
func (f *Field) IsLeaf() bool { return len(f.Children) == 0 }

// Filter is one `@filter(op: ..., value: ...)` directive.
type Filter struct {
	Op    string
	Value *Value
}

// Value is the right-hand side of a filter, or an @output/@transform
// argument: exactly one of the fields below is populated.
type Value struct {
	Literal any    // string, bool, int64, float64, []any, or nil
	ArgName string // set for "$name" tokens, resolved at eval time from Rule.Arguments
	TagName string // set for "%name" tokens, resolved at join time from tag bindings
}

// IsRef reports whether this value is an argument or tag reference rather
// than a literal.
func (v *Value) IsRef() bool { return v.ArgName != "" || v.TagName != "" }
