package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRunID_ReturnsEmptyWhenUnset(t *testing.T) {
	assert.Equal(t, "", GetRunID(context.Background()))
}

func TestWithRunID_RoundTrips(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-123")
	assert.Equal(t, "run-123", GetRunID(ctx))
}

func TestWithRequestID_PrependsRunIDWhenPresent(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-123")
	args := withRequestID(ctx, []any{"key", "value"})
	assert.Equal(t, []any{"runID", "run-123", "key", "value"}, args)
}

func TestWithRequestID_LeavesArgsUnchangedWhenAbsent(t *testing.T) {
	args := withRequestID(context.Background(), []any{"key", "value"})
	assert.Equal(t, []any{"key", "value"}, args)
}
