package apimodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kallio-oss/semverify/pkg/schema"
)

func TestLoadFixture_RootEnumeration(t *testing.T) {
	g, err := LoadFixture([]byte(`{
		"items": [
			{"kind": "struct", "name": "A", "visibility": "public"},
			{"kind": "enum", "name": "B", "visibility": "public"}
		]
	}`))
	require.NoError(t, err)

	root := g.Root()
	assert.Equal(t, schema.Kind("GraphRoot"), root.Kind())

	items := root.Edge("item")
	require.Len(t, items, 2)
	assert.Equal(t, schema.KindStruct, items[0].Kind())
	assert.Equal(t, schema.KindEnum, items[1].Kind())

	name, ok := items[0].Property("name")
	require.True(t, ok)
	assert.Equal(t, "A", name)
}

func TestLoadFixture_EmptyDocument(t *testing.T) {
	g, err := LoadFixture([]byte(`{"items": []}`))
	require.NoError(t, err)

	items := g.Root().Edge("item")
	assert.Empty(t, items)
}

func TestLoadFixture_UnknownKind(t *testing.T) {
	_, err := LoadFixture([]byte(`{"items": [{"kind": "bogus", "name": "X"}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown item kind")
}

func TestLoadFixture_MalformedJSON(t *testing.T) {
	_, err := LoadFixture([]byte(`not json`))
	require.Error(t, err)
}

func TestLoadFixture_EnumVariantsAndAttributes(t *testing.T) {
	g, err := LoadFixture([]byte(`{
		"items": [{
			"kind": "enum",
			"name": "Weekday",
			"attrs": ["repr(u8)"],
			"attributes": [{"raw": "repr(u8)", "content": {"base": "repr", "arguments": [{"base": "u8"}]}}],
			"variants": [
				{"sub_kind": "plain", "name": "Monday", "public_api_eligible": true, "discriminant": "0"}
			]
		}]
	}`))
	require.NoError(t, err)

	enum := g.Root().Edge("item")[0]
	variants := enum.Edge("variant")
	require.Len(t, variants, 1)
	assert.Equal(t, schema.KindPlainVariant, variants[0].Kind())

	disc := variants[0].Edge("discriminant")
	require.Len(t, disc, 1)
	val, _ := disc[0].Property("value")
	assert.Equal(t, "0", val)

	attrs := enum.Edge("attribute")
	require.Len(t, attrs, 1)
	raw, _ := attrs[0].Property("raw_attribute")
	assert.Equal(t, "repr(u8)", raw)
}

func TestLoadFixture_FunctionPublicAPIEligibleDefault(t *testing.T) {
	g, err := LoadFixture([]byte(`{"items": [{"kind": "function", "name": "f"}]}`))
	require.NoError(t, err)

	fn := g.Root().Edge("item")[0]
	eligible, ok := fn.Property("public_api_eligible")
	require.True(t, ok)
	assert.Equal(t, true, eligible)
}
