package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/kallio-oss/semverify/pkg/query"
)

// regexCache compiles each pattern once per process, matching the design
// note to compile patterns once per rule load (§9 "Regex safety"). The
// standard library's RE2 engine guarantees linear-time matching, so no
// separate bounded-timeout guard is needed the way a backtracking engine
// would require.
var regexCache sync.Map // pattern string -> *regexp.Regexp

func compileRegexCached(pattern string) (*regexp.Regexp, error) {
	if cached, ok := regexCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &EvalError{Msg: fmt.Sprintf("invalid regex %q: %v", pattern, err)}
	}
	regexCache.Store(pattern, re)
	return re, nil
}

// resolveValue turns a filter's right-hand side into a concrete scalar,
// interpolating `$name` argument references and `%name` tag references
// (§4.1 "Argument interpolation").
func resolveValue(v *query.Value, args, availTags map[string]any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if v.ArgName != "" {
		val, ok := args[v.ArgName]
		if !ok {
			return nil, &EvalError{Msg: fmt.Sprintf("unbound argument $%s", v.ArgName)}
		}
		return val, nil
	}
	if v.TagName != "" {
		val, ok := availTags[v.TagName]
		if !ok {
			return nil, &EvalError{Msg: fmt.Sprintf("unresolved tag %%%s", v.TagName)}
		}
		return val, nil
	}
	return v.Literal, nil
}

// evalFilter applies one @filter directive to a scalar already read from
// a vertex property or fold aggregate.
func evalFilter(lhs any, filt *query.Filter, args, availTags map[string]any) (bool, error) {
	rhs, err := resolveValue(filt.Value, args, availTags)
	if err != nil {
		return false, err
	}
	return compare(lhs, filt.Op, rhs)
}

// compare implements the filter operators of §4.1. A nil left-hand side
// (an output from an absent @optional branch) always evaluates to false,
// per §4.2's edge-case policy — the row is simply not produced, never an
// error.
func compare(lhs any, op string, rhs any) (bool, error) {
	if lhs == nil {
		return false, nil
	}
	switch op {
	case "=":
		return valuesEqual(lhs, rhs), nil
	case "!=":
		return !valuesEqual(lhs, rhs), nil
	case ">", "<", ">=", "<=":
		lf, lok := toFloat(lhs)
		rf, rok := toFloat(rhs)
		if !lok || !rok {
			return false, &EvalError{Msg: fmt.Sprintf("operator %q requires numeric operands", op)}
		}
		switch op {
		case ">":
			return lf > rf, nil
		case "<":
			return lf < rf, nil
		case ">=":
			return lf >= rf, nil
		default:
			return lf <= rf, nil
		}
	case "contains", "not_contains":
		ls, lok := lhs.(string)
		rs, rok := rhs.(string)
		if !lok || !rok {
			return false, &EvalError{Msg: fmt.Sprintf("operator %q requires string operands", op)}
		}
		has := strings.Contains(ls, rs)
		if op == "contains" {
			return has, nil
		}
		return !has, nil
	case "regex":
		ls, lok := lhs.(string)
		pattern, rok := rhs.(string)
		if !lok || !rok {
			return false, &EvalError{Msg: "operator \"regex\" requires string operands"}
		}
		re, err := compileRegexCached(pattern)
		if err != nil {
			return false, err
		}
		return re.MatchString(ls), nil
	case "one_of":
		arr, ok := rhs.([]any)
		if !ok {
			return false, &EvalError{Msg: "operator \"one_of\" requires an array value"}
		}
		for _, item := range arr {
			if valuesEqual(lhs, item) {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, &EvalError{Msg: fmt.Sprintf("unknown filter operator %q", op)}
	}
}

// valuesEqual implements §4.2's "numeric comparisons on strings compare as
// numbers when both sides parse" rule, which in particular normalizes
// discriminant text so "1" and "0x1" compare equal (§9).
func valuesEqual(a, b any) bool {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af == bf
		}
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int64:
		return float64(t), true
	case int:
		return float64(t), true
	case float64:
		return t, true
	case string:
		if n, err := strconv.ParseInt(t, 0, 64); err == nil {
			return float64(n), true
		}
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}
