package diagnostic

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kallio-oss/semverify/pkg/rules"
)

func TestSummary_AddResult(t *testing.T) {
	var s Summary

	s.AddResult(rules.Deny, false, rules.Major)
	assert.Equal(t, 1, s.Passed)
	assert.False(t, s.HasMaxRequired)

	s.AddResult(rules.Deny, true, rules.Minor)
	assert.Equal(t, 1, s.Failures)
	assert.True(t, s.HasMaxRequired)
	assert.Equal(t, rules.Minor, s.MaxRequired)

	// Major always wins once seen, regardless of arrival order.
	s.AddResult(rules.Deny, true, rules.Major)
	assert.Equal(t, rules.Major, s.MaxRequired)
	s.AddResult(rules.Warn, true, rules.Minor)
	assert.Equal(t, rules.Major, s.MaxRequired, "a later Minor must not downgrade a confirmed Major")

	s.AddResult(rules.Allow, true, rules.Major)
	assert.Equal(t, 1, s.Skipped)
}

func TestSort_OrdersByRuleThenFileThenLine(t *testing.T) {
	diags := []*Diagnostic{
		{RuleID: "z_rule", SourceFile: "a.rs", SourceLine: 1},
		{RuleID: "a_rule", SourceFile: "b.rs", SourceLine: 5},
		{RuleID: "a_rule", SourceFile: "a.rs", SourceLine: 10},
		{RuleID: "a_rule", SourceFile: "a.rs", SourceLine: 2},
	}
	Sort(diags)

	require.Len(t, diags, 4)
	assert.Equal(t, "a_rule", diags[0].RuleID)
	assert.Equal(t, "a.rs", diags[0].SourceFile)
	assert.Equal(t, 2, diags[0].SourceLine)
	assert.Equal(t, 10, diags[1].SourceLine)
	assert.Equal(t, "b.rs", diags[2].SourceFile)
	assert.Equal(t, "z_rule", diags[3].RuleID)
}

func TestWriteJSON_RoundTrips(t *testing.T) {
	diags := []*Diagnostic{{
		RuleID:            "struct_pub_field_missing",
		HumanReadableName: "public struct field removed",
		RequiredUpdate:    rules.Major,
		LintLevel:         rules.Deny,
		Messages:          []string{"field Point.y is missing"},
	}}
	var summary Summary
	summary.AddResult(rules.Deny, true, rules.Major)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, diags, summary))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	ds := decoded["diagnostics"].([]any)
	require.Len(t, ds, 1)
	first := ds[0].(map[string]any)
	assert.Equal(t, "struct_pub_field_missing", first["rule_id"])

	sum := decoded["summary"].(map[string]any)
	assert.Equal(t, float64(1), sum["failures"])
	assert.Equal(t, "Major", sum["max_required_update"])
}

func TestWriteText_IncludesSummaryLine(t *testing.T) {
	var buf bytes.Buffer
	var summary Summary
	summary.AddResult(rules.Deny, true, rules.Major)

	WriteText(&buf, []*Diagnostic{{
		RuleID:            "r1",
		HumanReadableName: "test rule",
		Description:       "desc",
		LintLevel:         rules.Deny,
		Messages:          []string{"m1"},
	}}, summary)

	out := buf.String()
	assert.Contains(t, out, "r1")
	assert.Contains(t, out, "test rule")
	assert.Contains(t, out, "Summary: 1 failed")
	assert.Contains(t, out, "Required SemVer update: Major")
}
