package watcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelevant_MatchesGraphFixturePathsExactly(t *testing.T) {
	fw := &FileWatcher{baselinePath: "/proj/baseline.json", currentPath: "/proj/current.json"}

	assert.True(t, fw.relevant("/proj/baseline.json"))
	assert.True(t, fw.relevant("/proj/current.json"))
	assert.False(t, fw.relevant("/proj/other.json"))
}

func TestRelevant_MatchesYAMLRuleFilesInRuleDirOnly(t *testing.T) {
	fw := &FileWatcher{ruleDir: "/proj/rules"}

	assert.True(t, fw.relevant("/proj/rules/foo.yml"))
	assert.True(t, fw.relevant("/proj/rules/foo.yaml"))
	assert.False(t, fw.relevant("/proj/rules/foo.txt"))
	assert.False(t, fw.relevant("/proj/rules/nested/foo.yml"), "only direct children of ruleDir are watched")
	assert.False(t, fw.relevant("/proj/other/foo.yml"))
}

func TestRelevant_EmptyPathsMatchNothing(t *testing.T) {
	fw := &FileWatcher{}
	assert.False(t, fw.relevant("/proj/anything.yml"))
}
