package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kallio-oss/semverify/pkg/apimodel"
	"github.com/kallio-oss/semverify/pkg/query"
)

func mustParse(t *testing.T, src string) *query.Query {
	t.Helper()
	q, err := query.Parse(src)
	require.NoError(t, err)
	return q
}

func graphFrom(t *testing.T, fixtureJSON string) apimodel.Vertex {
	t.Helper()
	g, err := apimodel.LoadFixture([]byte(fixtureJSON))
	require.NoError(t, err)
	return g.Root()
}

func TestEvaluate_SimpleJoinOnTag(t *testing.T) {
	baseline := graphFrom(t, `{"items": [{"kind": "struct", "name": "Point"}]}`)
	current := graphFrom(t, `{"items": [{"kind": "struct", "name": "Point"}]}`)

	q := mustParse(t, `
		baseline {
			item {
				... on Struct {
					name @tag(name: "n") @output(name: "struct_name")
				}
			}
		}
		current {
			item {
				... on Struct {
					name @filter(op: "=", value: %n)
				}
			}
		}
	`)

	rows, err := Evaluate(context.Background(), q, nil, baseline, current)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Point", rows[0]["struct_name"])
}

func TestEvaluate_NoMatchProducesNoRows(t *testing.T) {
	baseline := graphFrom(t, `{"items": [{"kind": "struct", "name": "Point"}]}`)
	current := graphFrom(t, `{"items": []}`)

	q := mustParse(t, `
		baseline {
			item {
				... on Struct {
					name @tag(name: "n") @output(name: "struct_name")
				}
			}
		}
		current {
			item {
				... on Struct {
					name @filter(op: "=", value: %n)
				}
			}
		}
	`)

	rows, err := Evaluate(context.Background(), q, nil, baseline, current)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestEvaluate_FoldCountGate(t *testing.T) {
	baseline := graphFrom(t, `{"items": [{
		"kind": "struct", "name": "Point",
		"fields": [
			{"name": "x", "public_api_eligible": true},
			{"name": "y", "public_api_eligible": true}
		]
	}]}`)
	current := graphFrom(t, `{"items": [{
		"kind": "struct", "name": "Point",
		"fields": [{"name": "x", "public_api_eligible": true}]
	}]}`)

	q := mustParse(t, `
		baseline {
			item {
				... on Struct {
					name @tag(name: "sn") @output(name: "struct_name")
					field {
						public_api_eligible @filter(op: "=", value: true)
						name @tag(name: "fn") @output(name: "field_name")
					}
				}
			}
		}
		current {
			item {
				... on Struct {
					name @filter(op: "=", value: %sn)
					field @fold @transform(op: "count") @filter(op: "=", value: 0) {
						name @filter(op: "=", value: %fn)
					}
				}
			}
		}
	`)

	rows, err := Evaluate(context.Background(), q, nil, baseline, current)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "y", rows[0]["field_name"])
}

func TestEvaluate_OptionalOnlyFiresWhenEdgeStructurallyAbsent(t *testing.T) {
	// The edge exists (one variant) but nothing inside matches a filter;
	// @optional must NOT treat this as "absent" -- it only fires when
	// Edge() returns zero targets.
	withVariant := graphFrom(t, `{"items": [{
		"kind": "enum", "name": "E",
		"variants": [{"sub_kind": "plain", "name": "Other", "public_api_eligible": true}]
	}]}`)
	withoutVariant := graphFrom(t, `{"items": [{"kind": "enum", "name": "E", "variants": []}]}`)

	q := mustParse(t, `
		baseline {
			item {
				... on Enum {
					name @tag(name: "n") @output(name: "enum_name")
				}
			}
		}
		current {
			item {
				... on Enum {
					name @filter(op: "=", value: %n)
					variant @optional {
						... on PlainVariant {
							name @filter(op: "=", value: "Missing") @output(name: "matched")
						}
					}
				}
			}
		}
	`)

	rows, err := Evaluate(context.Background(), q, nil, withVariant, withVariant)
	require.NoError(t, err)
	// variant edge is present (non-empty) but the inner filter matches
	// nothing, so @optional does not kick in and no row is produced.
	assert.Empty(t, rows)

	rows, err = Evaluate(context.Background(), q, nil, withoutVariant, withoutVariant)
	require.NoError(t, err)
	// variant edge is structurally absent (zero targets): @optional
	// contributes one row with a nil "matched" output.
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0]["matched"])
}

func TestEvaluate_UnresolvedTagIsEvalError(t *testing.T) {
	baseline := graphFrom(t, `{"items": [{"kind": "struct", "name": "Point"}]}`)
	current := graphFrom(t, `{"items": [{"kind": "struct", "name": "Point"}]}`)

	q := mustParse(t, `
		baseline {
			item {
				... on Struct {
					name @filter(op: "=", value: %missing)
				}
			}
		}
		current {
			item {
				... on Struct {
					name
				}
			}
		}
	`)

	_, err := Evaluate(context.Background(), q, nil, baseline, current)
	require.Error(t, err)
}

func TestEvaluate_ArgumentInterpolation(t *testing.T) {
	baseline := graphFrom(t, `{"items": [{"kind": "struct", "name": "Point"}]}`)
	current := graphFrom(t, `{"items": [{"kind": "struct", "name": "Point"}]}`)

	q := mustParse(t, `
		baseline {
			item {
				... on Struct {
					visibility_limit @filter(op: "=", value: $want_visibility)
					name @tag(name: "n") @output(name: "struct_name")
				}
			}
		}
		current {
			item {
				... on Struct {
					name @filter(op: "=", value: %n)
				}
			}
		}
	`)

	args := map[string]any{"want_visibility": ""}
	rows, err := Evaluate(context.Background(), q, args, baseline, current)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestEvaluate_DeterministicRowOrder(t *testing.T) {
	baseline := graphFrom(t, `{"items": [
		{"kind": "struct", "name": "A"},
		{"kind": "struct", "name": "B"},
		{"kind": "struct", "name": "C"}
	]}`)
	current := graphFrom(t, `{"items": [
		{"kind": "struct", "name": "A"},
		{"kind": "struct", "name": "B"},
		{"kind": "struct", "name": "C"}
	]}`)

	q := mustParse(t, `
		baseline {
			item {
				... on Struct {
					name @tag(name: "n") @output(name: "struct_name")
				}
			}
		}
		current {
			item {
				... on Struct {
					name @filter(op: "=", value: %n)
				}
			}
		}
	`)

	var lastOrder []any
	for i := 0; i < 5; i++ {
		rows, err := Evaluate(context.Background(), q, nil, baseline, current)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		order := make([]any, len(rows))
		for i, r := range rows {
			order[i] = r["struct_name"]
		}
		if lastOrder != nil {
			assert.Equal(t, lastOrder, order)
		}
		lastOrder = order
	}
	assert.Equal(t, []any{"A", "B", "C"}, lastOrder)
}

func TestEvaluate_ContextCancellation(t *testing.T) {
	baseline := graphFrom(t, `{"items": [{"kind": "struct", "name": "A"}]}`)
	current := graphFrom(t, `{"items": [{"kind": "struct", "name": "A"}]}`)

	q := mustParse(t, `
		baseline {
			item {
				... on Struct {
					name @tag(name: "n") @output(name: "struct_name")
				}
			}
		}
		current {
			item {
				... on Struct {
					name @filter(op: "=", value: %n)
				}
			}
		}
	`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Evaluate(ctx, q, nil, baseline, current)
	assert.ErrorIs(t, err, context.Canceled)
}
