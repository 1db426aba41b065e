// Package template implements the small dedicated diagnostic renderer of
// spec §4.4: substitution, joins, repeats, and simple conditionals against
// one output row. It deliberately does not adopt a general template
// engine (§9 "Templating") — the helper set is fixed and small enough
// that a bespoke recursive-descent renderer is both simpler and safer
// than embedding a Turing-complete templating language for user-authored
// rule files.
package template

import (
	"fmt"
	"strconv"
	"strings"
)

// Template is a parsed diagnostic template, ready to render against many
// rows.
type Template struct {
	nodes []node
}

// Parse compiles template source. A malformed tag (unknown helper,
// unmatched block) is a rule-load-time error; a missing field at render
// time is not (§7 "template render error").
func Parse(src string) (*Template, error) {
	items, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	nodes, rest, err := parseNodes(items)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("unexpected closing tag %q", rest[0].text)
	}
	return &Template{nodes: nodes}, nil
}

// Render expands the template against a row, returning the rendered
// string and a list of warnings for any field the template referenced
// but the row did not contain. Missing fields render as empty strings
// rather than aborting the render (§4.4, §7).
func (t *Template) Render(row map[string]any) (string, []string) {
	env := &scope{vars: row}
	var buf strings.Builder
	var warnings []string
	for _, n := range t.nodes {
		n.render(env, &buf, &warnings)
	}
	return buf.String(), warnings
}

type scope struct {
	vars   map[string]any
	parent *scope
}

func (s *scope) lookup(name string) (any, bool) {
	if v, ok := s.vars[name]; ok {
		return v, true
	}
	if s.parent != nil {
		return s.parent.lookup(name)
	}
	return nil, false
}

func child(parent *scope) *scope {
	return &scope{vars: map[string]any{}, parent: parent}
}

// --- AST ---

type node interface {
	render(env *scope, buf *strings.Builder, warnings *[]string)
}

type textNode string

func (n textNode) render(_ *scope, buf *strings.Builder, _ *[]string) {
	buf.WriteString(string(n))
}

// arg is either a bare identifier (resolved against the current scope) or
// a quoted string literal.
type arg struct {
	ident   string
	literal string
	isLit   bool
}

func evalArg(env *scope, a arg, warnings *[]string) any {
	if a.isLit {
		return a.literal
	}
	v, ok := env.lookup(a.ident)
	if !ok {
		*warnings = append(*warnings, a.ident)
		return nil
	}
	return v
}

// exprNode is `{{name}}` (fn == "") or a helper call `{{fn arg...}}`.
type exprNode struct {
	fn   string
	args []arg
}

func (n exprNode) render(env *scope, buf *strings.Builder, warnings *[]string) {
	v := n.eval(env, warnings)
	buf.WriteString(displayString(v))
}

func (n exprNode) eval(env *scope, warnings *[]string) any {
	if n.fn == "" {
		return evalArg(env, n.args[0], warnings)
	}
	switch n.fn {
	case "lowercase":
		v := evalArg(env, n.args[0], warnings)
		return strings.ToLower(displayString(v))
	case "to_string":
		v := evalArg(env, n.args[0], warnings)
		return displayString(v)
	case "join":
		sep := displayString(evalArg(env, n.args[0], warnings))
		listVal := evalArg(env, n.args[1], warnings)
		arr, _ := listVal.([]any)
		parts := make([]string, len(arr))
		for i, e := range arr {
			parts[i] = displayString(e)
		}
		return strings.Join(parts, sep)
	case "eq":
		a := evalArg(env, n.args[0], warnings)
		b := evalArg(env, n.args[1], warnings)
		return displayString(a) == displayString(b)
	default:
		return nil
	}
}

type repeatNode struct {
	list arg
	body []node
}

func (n repeatNode) render(env *scope, buf *strings.Builder, warnings *[]string) {
	listVal := evalArg(env, n.list, warnings)
	arr, _ := listVal.([]any)
	for i, item := range arr {
		c := child(env)
		c.vars["@index"] = int64(i)
		c.vars["@last"] = i == len(arr)-1
		if m, ok := item.(map[string]any); ok {
			for k, v := range m {
				c.vars[k] = v
			}
		} else {
			c.vars["this"] = item
		}
		for _, b := range n.body {
			b.render(c, buf, warnings)
		}
	}
}

type ifNode struct {
	cond exprNode
	then []node
	els  []node
}

func (n ifNode) render(env *scope, buf *strings.Builder, warnings *[]string) {
	if truthy(n.cond.eval(env, warnings)) {
		for _, b := range n.then {
			b.render(env, buf, warnings)
		}
		return
	}
	for _, b := range n.els {
		b.render(env, buf, warnings)
	}
}

type unlessNode struct {
	cond exprNode
	body []node
}

func (n unlessNode) render(env *scope, buf *strings.Builder, warnings *[]string) {
	if !truthy(n.cond.eval(env, warnings)) {
		for _, b := range n.body {
			b.render(env, buf, warnings)
		}
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}

func displayString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
