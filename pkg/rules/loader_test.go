package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRuleFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDir_ValidRulesSortedByID(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "b.yml", `
id: b_rule
required_update: Minor
lint_level: Warn
query: |
  baseline { item { name } }
  current { item { name } }
`)
	writeRuleFile(t, dir, "a.yml", `
id: a_rule
required_update: Major
lint_level: Deny
query: |
  baseline { item { name } }
  current { item { name } }
`)

	ruleList, errs := LoadDir(dir)
	require.Empty(t, errs)
	require.Len(t, ruleList, 2)
	assert.Equal(t, "a_rule", ruleList[0].ID)
	assert.Equal(t, "b_rule", ruleList[1].ID)
}

func TestLoadDir_NonYAMLFilesIgnored(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "README.md", "not a rule")
	writeRuleFile(t, dir, "ok.yaml", `
id: ok_rule
required_update: Major
lint_level: Deny
query: |
  baseline { item { name } }
  current { item { name } }
`)

	ruleList, errs := LoadDir(dir)
	require.Empty(t, errs)
	require.Len(t, ruleList, 1)
	assert.Equal(t, "ok_rule", ruleList[0].ID)
}

func TestLoadDir_InvalidRuleCollectedAsLoadError(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "bad.yml", `
id: bad_rule
required_update: Sideways
lint_level: Deny
query: |
  baseline { item { name } }
  current { item { name } }
`)
	writeRuleFile(t, dir, "good.yml", `
id: good_rule
required_update: Major
lint_level: Deny
query: |
  baseline { item { name } }
  current { item { name } }
`)

	ruleList, errs := LoadDir(dir)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "bad.yml")
	require.Len(t, ruleList, 1)
	assert.Equal(t, "good_rule", ruleList[0].ID)
}

func TestRuleValidate_MissingID(t *testing.T) {
	r := &Rule{Query: "x", RequiredUpdate: Major, LintLevel: Deny}
	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id")
}

func TestRuleValidate_UndeclaredArgument(t *testing.T) {
	r := &Rule{
		ID:             "r1",
		RequiredUpdate: Major,
		LintLevel:      Deny,
		Query:          `baseline { item { name @filter(op: "=", value: $missing) } } current { item { name } }`,
		Arguments:      map[string]any{},
	}
	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$missing")
}

func TestRuleValidate_DeclaredArgumentPasses(t *testing.T) {
	r := &Rule{
		ID:             "r1",
		RequiredUpdate: Minor,
		LintLevel:      Warn,
		Query:          `baseline { item { name @filter(op: "=", value: $want) } } current { item { name } }`,
		Arguments:      map[string]any{"want": "x"},
	}
	assert.NoError(t, r.Validate())
}
