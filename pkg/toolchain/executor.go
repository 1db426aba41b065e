// Package toolchain runs an external graph extractor process, producing
// the JSON fixture documents pkg/apimodel.LoadFixture consumes. This is
// the concrete default for the ingestion contract of spec §6.1: the
// engine itself only depends on apimodel.Vertex, never on how a graph was
// produced.
package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Extractor runs a configured command against a crate/workspace path and
// returns its raw graph JSON.
type Extractor interface {
	Extract(ctx context.Context, command string, args []string, workspacePath string) ([]byte, error)
}

// CommandExtractor is the default Extractor: it shells out to whatever
// `--extractor-cmd` the driver configured, the same exec.CommandContext
// shape the corpus uses for invoking an external toolchain.
type CommandExtractor struct{}

// NewCommandExtractor returns the default Extractor.
func NewCommandExtractor() Extractor {
	return &CommandExtractor{}
}

// Extract runs the extractor command with the workspace path as its
// working directory and returns its standard output. Standard error is
// folded into the returned error on failure so a misconfigured extractor
// is diagnosable without re-running it by hand.
func (e *CommandExtractor) Extract(ctx context.Context, command string, args []string, workspacePath string) ([]byte, error) {
	if command == "" {
		return nil, fmt.Errorf("no extractor command configured")
	}
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = workspacePath

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("extractor command failed: %w\nstderr: %s", err, stderr.String())
	}
	return stdout.Bytes(), nil
}
