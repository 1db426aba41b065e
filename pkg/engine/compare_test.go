package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare_NilLHSAlwaysFalse(t *testing.T) {
	for _, op := range []string{"=", "!=", ">", "contains", "regex", "one_of"} {
		ok, err := compare(nil, op, "anything")
		require.NoError(t, err)
		assert.False(t, ok, "op %q", op)
	}
}

func TestCompare_NumericNormalization(t *testing.T) {
	ok, err := compare("0x1", "=", "1")
	require.NoError(t, err)
	assert.True(t, ok, "0x1 should numerically equal 1")

	ok, err = compare("2", "!=", int64(3))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompare_ContainsRequiresStrings(t *testing.T) {
	_, err := compare([]string{"a", "b"}, "contains", "a")
	assert.Error(t, err, "contains must reject []string operands")

	ok, err := compare("hello world", "contains", "world")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = compare("hello world", "not_contains", "xyz")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompare_Regex(t *testing.T) {
	ok, err := compare("repr(u8)", "regex", "repr|non_exhaustive")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = compare("derive(Clone)", "regex", "repr|non_exhaustive")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompare_OneOfRequiresArray(t *testing.T) {
	_, err := compare("a", "one_of", "not-an-array")
	assert.Error(t, err)

	ok, err := compare(int64(2), "one_of", []any{int64(1), int64(2), int64(3)})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = compare(int64(5), "one_of", []any{int64(1), int64(2), int64(3)})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompare_UnknownOperator(t *testing.T) {
	_, err := compare("a", "bogus", "b")
	assert.Error(t, err)
}

func TestCompare_OrderingRequiresNumeric(t *testing.T) {
	_, err := compare("not-a-number", ">", "also-not")
	assert.Error(t, err)

	ok, err := compare(int64(5), ">", int64(3))
	require.NoError(t, err)
	assert.True(t, ok)
}
