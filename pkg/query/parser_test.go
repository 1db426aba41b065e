package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_BothScopesRequired(t *testing.T) {
	_, err := Parse(`baseline { item { name } }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "baseline and current")
}

func TestParse_DuplicateScope(t *testing.T) {
	_, err := Parse(`baseline { item { name } } baseline { item { name } }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate baseline")
}

func TestParse_UnknownScope(t *testing.T) {
	_, err := Parse(`weird { item { name } } current { item { name } }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown top-level scope")
}

func TestParse_DirectivesAndTypeRefinement(t *testing.T) {
	src := `
		baseline {
			item {
				... on Enum {
					name @tag(name: "enum_name") @output(name: "enum_name")
					variant @fold @transform(op: "count") @filter(op: "!=", value: 0) {
						name
					}
				}
			}
		}
		current {
			item {
				... on Enum {
					name @filter(op: "=", value: %enum_name)
				}
			}
		}
	`
	q, err := Parse(src)
	require.NoError(t, err)
	require.NotNil(t, q.Baseline)
	require.NotNil(t, q.Current)

	itemField := q.Baseline.Root.Children[0]
	assert.Equal(t, "item", itemField.Name)

	refine := itemField.Children[0]
	assert.Equal(t, "$refine", refine.Name)
	assert.Equal(t, "Enum", refine.TypeRefine)

	nameField := refine.Children[0]
	assert.True(t, nameField.HasTag)
	assert.Equal(t, "enum_name", nameField.Tag)
	assert.True(t, nameField.HasOutput)

	variantField := refine.Children[1]
	assert.True(t, variantField.Fold)
	assert.Equal(t, "count", variantField.Transform)
	require.Len(t, variantField.Filters, 1)
	assert.Equal(t, "!=", variantField.Filters[0].Op)
	assert.Equal(t, int64(0), variantField.Filters[0].Value.Literal)
}

func TestParse_UnknownDirective(t *testing.T) {
	_, err := Parse(`baseline { item @bogus { name } } current { item { name } }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown directive")
}

func TestParse_ArrayLiteralRejectsRefs(t *testing.T) {
	_, err := Parse(`baseline { item { name @filter(op: "one_of", value: [$x, "a"]) } } current { item { name } }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array literals")
}

func TestParse_ArgAndTagValueKinds(t *testing.T) {
	src := `
		baseline {
			item {
				name @filter(op: "=", value: $want) @tag(name: "n")
			}
		}
		current {
			item {
				name @filter(op: "=", value: %n)
			}
		}
	`
	q, err := Parse(src)
	require.NoError(t, err)
	baseFilter := q.Baseline.Root.Children[0].Children[0].Filters[0]
	assert.Equal(t, "want", baseFilter.Value.ArgName)

	curFilter := q.Current.Root.Children[0].Children[0].Filters[0]
	assert.Equal(t, "n", curFilter.Value.TagName)
}
