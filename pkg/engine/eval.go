package engine

import (
	"fmt"

	"github.com/kallio-oss/semverify/pkg/apimodel"
	"github.com/kallio-oss/semverify/pkg/query"
	"github.com/kallio-oss/semverify/pkg/schema"
)

// evalFieldList evaluates a sibling field list against one vertex,
// threading accumulated tag bindings through each field in order so a
// later sibling's filter may reference an earlier sibling's tag, and
// composing multiplicities (a child with several matches) as a cross
// product across siblings.
func evalFieldList(v apimodel.Vertex, fields []*query.Field, args, availTags map[string]any) ([]delta, error) {
	acc := []delta{emptyDelta()}
	for _, f := range fields {
		var next []delta
		for _, a := range acc {
			merged := mergeMap(availTags, a.tags)
			results, err := evalField(v, f, args, merged)
			if err != nil {
				return nil, err
			}
			for _, r := range results {
				next = append(next, delta{
					tags:    mergeMap(a.tags, r.tags),
					outputs: mergeMap(a.outputs, r.outputs),
				})
			}
		}
		acc = next
		if len(acc) == 0 {
			return acc, nil
		}
	}
	return acc, nil
}

// evalField evaluates a single field against one vertex: a leaf property
// access, a type refinement, or an edge traversal (plain or folded).
func evalField(v apimodel.Vertex, f *query.Field, args, availTags map[string]any) ([]delta, error) {
	switch {
	case f.Name == "$refine":
		if v.Kind() != schema.Kind(f.TypeRefine) {
			return nil, nil
		}
		return evalFieldList(v, f.Children, args, availTags)

	case f.IsLeaf():
		val, _ := v.Property(f.Name)
		for _, filt := range f.Filters {
			ok, err := evalFilter(val, filt, args, availTags)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, nil
			}
		}
		d := emptyDelta()
		if f.HasTag {
			d.tags[f.Tag] = val
		}
		if f.HasOutput {
			d.outputs[f.Output] = val
		}
		return []delta{d}, nil

	case f.Fold:
		return evalFold(v, f, args, availTags)

	default:
		targets := v.Edge(f.Name)
		if len(targets) == 0 {
			if f.Optional {
				return []delta{zeroDelta(f)}, nil
			}
			return nil, nil
		}
		var all []delta
		for _, t := range targets {
			sub, err := evalFieldList(t, f.Children, args, availTags)
			if err != nil {
				return nil, err
			}
			all = append(all, sub...)
		}
		return all, nil
	}
}

// evalFold evaluates `edge @fold { ... }`. With @transform(op: "count") it
// reduces the sub-walk to a single scalar and applies the field's own
// filters/tag/output to that scalar (§4.2 step 3, "fold boundaries").
// Without a transform, every output inside the fold becomes an array,
// zipped positionally across the sub-walk's rows (§4.1 "Fold").
func evalFold(v apimodel.Vertex, f *query.Field, args, availTags map[string]any) ([]delta, error) {
	targets := v.Edge(f.Name)

	var subRows []delta
	if len(targets) == 0 {
		if f.Optional {
			// §9 open question: @optional under @fold is permitted and
			// contributes one empty row; the count still counts it.
			subRows = []delta{zeroChildDelta(f.Children)}
		}
	} else {
		for _, t := range targets {
			sub, err := evalFieldList(t, f.Children, args, availTags)
			if err != nil {
				return nil, err
			}
			subRows = append(subRows, sub...)
		}
	}

	switch f.Transform {
	case "count":
		val := int64(len(subRows))
		for _, filt := range f.Filters {
			ok, err := evalFilter(val, filt, args, availTags)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, nil
			}
		}
		d := emptyDelta()
		if f.HasTag {
			d.tags[f.Tag] = val
		}
		if f.HasOutput {
			d.outputs[f.Output] = val
		}
		return []delta{d}, nil

	case "":
		keys := collectOutputKeys(f.Children)
		arrs := make(map[string][]any, len(keys))
		for _, k := range keys {
			arrs[k] = make([]any, 0, len(subRows))
		}
		for _, r := range subRows {
			for _, k := range keys {
				v, ok := r.outputs[k]
				if !ok {
					v = nil
				}
				arrs[k] = append(arrs[k], v)
			}
		}
		d := emptyDelta()
		for k, arr := range arrs {
			d.outputs[k] = arr
		}
		return []delta{d}, nil

	default:
		return nil, &EvalError{Msg: fmt.Sprintf("unknown fold aggregation operator %q", f.Transform)}
	}
}

// zeroDelta builds the delta an absent @optional branch contributes: every
// tag and output declared anywhere under the field (including the field
// itself) is present but bound to nil.
func zeroDelta(f *query.Field) delta {
	d := emptyDelta()
	var walk func(*query.Field)
	walk = func(ff *query.Field) {
		if ff.HasTag {
			d.tags[ff.Tag] = nil
		}
		if ff.HasOutput {
			d.outputs[ff.Output] = nil
		}
		for _, c := range ff.Children {
			walk(c)
		}
	}
	walk(f)
	return d
}

func zeroChildDelta(children []*query.Field) delta {
	d := emptyDelta()
	for _, c := range children {
		cd := zeroDelta(c)
		for k, v := range cd.tags {
			d.tags[k] = v
		}
		for k, v := range cd.outputs {
			d.outputs[k] = v
		}
	}
	return d
}

// collectOutputKeys walks a field subtree (stopping at nested fold
// boundaries, which zip their own arrays independently) and returns every
// @output name declared, in first-seen order.
func collectOutputKeys(fields []*query.Field) []string {
	var keys []string
	seen := map[string]bool{}
	var walk func([]*query.Field)
	walk = func(fs []*query.Field) {
		for _, f := range fs {
			if f.HasOutput && !seen[f.Output] {
				seen[f.Output] = true
				keys = append(keys, f.Output)
			}
			if !f.Fold {
				walk(f.Children)
			}
		}
	}
	walk(fields)
	return keys
}
