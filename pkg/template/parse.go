package template

import (
	"fmt"
	"strings"
)

type tagKind int

const (
	tagText tagKind = iota
	tagExpr
	tagRepeatOpen
	tagRepeatClose
	tagIfOpen
	tagElse
	tagIfClose
	tagUnlessOpen
	tagUnlessClose
)

type item struct {
	kind tagKind
	text string // raw text for tagText; trimmed tag body otherwise
}

// tokenize splits template source into a flat stream of text runs and
// `{{ ... }}` tag bodies.
func tokenize(src string) ([]item, error) {
	var items []item
	i := 0
	for i < len(src) {
		start := strings.Index(src[i:], "{{")
		if start < 0 {
			items = append(items, item{kind: tagText, text: src[i:]})
			break
		}
		if start > 0 {
			items = append(items, item{kind: tagText, text: src[i : i+start]})
		}
		tagStart := i + start + 2
		end := strings.Index(src[tagStart:], "}}")
		if end < 0 {
			return nil, fmt.Errorf("unterminated {{ tag")
		}
		body := strings.TrimSpace(src[tagStart : tagStart+end])
		kind, err := classify(body)
		if err != nil {
			return nil, err
		}
		items = append(items, item{kind: kind, text: body})
		i = tagStart + end + 2
	}
	return items, nil
}

func classify(body string) (tagKind, error) {
	switch {
	case body == "/repeat":
		return tagRepeatClose, nil
	case body == "/if":
		return tagIfClose, nil
	case body == "/unless":
		return tagUnlessClose, nil
	case body == "else":
		return tagElse, nil
	case strings.HasPrefix(body, "#repeat"):
		return tagRepeatOpen, nil
	case strings.HasPrefix(body, "#if"):
		return tagIfOpen, nil
	case strings.HasPrefix(body, "#unless"):
		return tagUnlessOpen, nil
	default:
		return tagExpr, nil
	}
}

// splitWords tokenizes a tag body on whitespace, treating a double-quoted
// span as one token (so `join " " list` keeps the separator intact).
func splitWords(s string) []string {
	var words []string
	var cur strings.Builder
	inQuote := false
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case r == ' ' && !inQuote:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return words
}

func argFromToken(tok string) arg {
	if len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' {
		return arg{isLit: true, literal: tok[1 : len(tok)-1]}
	}
	return arg{ident: tok}
}

func parseExprBody(body string) (exprNode, error) {
	words := splitWords(body)
	if len(words) == 0 {
		return exprNode{}, fmt.Errorf("empty template expression")
	}
	switch words[0] {
	case "lowercase", "to_string":
		if len(words) != 2 {
			return exprNode{}, fmt.Errorf("%q takes exactly one argument", words[0])
		}
		return exprNode{fn: words[0], args: []arg{argFromToken(words[1])}}, nil
	case "join":
		if len(words) != 3 {
			return exprNode{}, fmt.Errorf("\"join\" takes a separator and a list argument")
		}
		return exprNode{fn: "join", args: []arg{argFromToken(words[1]), argFromToken(words[2])}}, nil
	case "eq":
		if len(words) != 3 {
			return exprNode{}, fmt.Errorf("\"eq\" takes exactly two arguments")
		}
		return exprNode{fn: "eq", args: []arg{argFromToken(words[1]), argFromToken(words[2])}}, nil
	default:
		if len(words) != 1 {
			return exprNode{}, fmt.Errorf("unknown template helper %q", words[0])
		}
		return exprNode{args: []arg{argFromToken(words[0])}}, nil
	}
}

// parseNodes consumes items recursively-descent, returning the node list
// for the current block plus whatever items remain (a closing tag the
// caller must itself consume, or nothing at end of input).
func parseNodes(items []item) ([]node, []item, error) {
	var out []node
	for len(items) > 0 {
		it := items[0]
		switch it.kind {
		case tagText:
			out = append(out, textNode(it.text))
			items = items[1:]

		case tagExpr:
			e, err := parseExprBody(it.text)
			if err != nil {
				return nil, nil, err
			}
			out = append(out, e)
			items = items[1:]

		case tagRepeatOpen:
			words := splitWords(it.text)
			if len(words) != 2 {
				return nil, nil, fmt.Errorf("\"#repeat\" takes exactly one list argument")
			}
			body, rest, err := parseNodes(items[1:])
			if err != nil {
				return nil, nil, err
			}
			if len(rest) == 0 || rest[0].kind != tagRepeatClose {
				return nil, nil, fmt.Errorf("unterminated {{#repeat}}")
			}
			out = append(out, repeatNode{list: argFromToken(words[1]), body: body})
			items = rest[1:]

		case tagIfOpen:
			words := splitWords(it.text)
			cond, err := parseExprBody(strings.Join(words[1:], " "))
			if err != nil {
				return nil, nil, err
			}
			thenBody, rest, err := parseNodes(items[1:])
			if err != nil {
				return nil, nil, err
			}
			var elseBody []node
			if len(rest) > 0 && rest[0].kind == tagElse {
				elseBody, rest, err = parseNodes(rest[1:])
				if err != nil {
					return nil, nil, err
				}
			}
			if len(rest) == 0 || rest[0].kind != tagIfClose {
				return nil, nil, fmt.Errorf("unterminated {{#if}}")
			}
			out = append(out, ifNode{cond: cond, then: thenBody, els: elseBody})
			items = rest[1:]

		case tagUnlessOpen:
			words := splitWords(it.text)
			cond, err := parseExprBody(strings.Join(words[1:], " "))
			if err != nil {
				return nil, nil, err
			}
			body, rest, err := parseNodes(items[1:])
			if err != nil {
				return nil, nil, err
			}
			if len(rest) == 0 || rest[0].kind != tagUnlessClose {
				return nil, nil, fmt.Errorf("unterminated {{#unless}}")
			}
			out = append(out, unlessNode{cond: cond, body: body})
			items = rest[1:]

		case tagRepeatClose, tagIfClose, tagUnlessClose, tagElse:
			return out, items, nil

		default:
			return nil, nil, fmt.Errorf("unrecognized tag %q", it.text)
		}
	}
	return out, items, nil
}
