package toolchain

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandExtractor_ReturnsStdout(t *testing.T) {
	ex := NewCommandExtractor()
	out, err := ex.Extract(context.Background(), "echo", []string{"-n", `{"items":[]}`}, os.TempDir())
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, string(out))
}

func TestCommandExtractor_EmptyCommandIsError(t *testing.T) {
	ex := NewCommandExtractor()
	_, err := ex.Extract(context.Background(), "", nil, os.TempDir())
	assert.Error(t, err)
}

func TestCommandExtractor_NonZeroExitFoldsStderrIntoError(t *testing.T) {
	ex := NewCommandExtractor()
	_, err := ex.Extract(context.Background(), "sh", []string{"-c", "echo boom 1>&2; exit 1"}, os.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
