package watcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_CoalescesBurstIntoOneEvent(t *testing.T) {
	input := make(chan ChangeEvent)
	deb := NewDebouncer(input, 30*time.Millisecond, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	deb.Start(ctx)

	input <- ChangeEvent{Paths: []string{"a.yml"}}
	input <- ChangeEvent{Paths: []string{"b.yml"}}

	select {
	case out := <-deb.Output():
		assert.ElementsMatch(t, []string{"a.yml", "b.yml"}, out.Paths)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for debounced event")
	}
}

func TestDebouncer_MaxWaitFlushesDuringContinuousActivity(t *testing.T) {
	input := make(chan ChangeEvent)
	deb := NewDebouncer(input, time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	deb.Start(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; i < 20; i++ {
			select {
			case input <- ChangeEvent{Paths: []string{"r.yml"}}:
			case <-ctx.Done():
				return
			}
			<-ticker.C
		}
	}()

	select {
	case out := <-deb.Output():
		require.NotEmpty(t, out.Paths)
	case <-time.After(2 * time.Second):
		t.Fatal("maxWait never flushed despite continuous activity")
	}
	<-done
}

func TestDebouncer_ContextCancelFlushesAndClosesOutput(t *testing.T) {
	input := make(chan ChangeEvent)
	deb := NewDebouncer(input, time.Second, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	deb.Start(ctx)

	input <- ChangeEvent{Paths: []string{"x.yml"}}
	cancel()

	select {
	case out, ok := <-deb.Output():
		require.True(t, ok)
		assert.Equal(t, []string{"x.yml"}, out.Paths)
	case <-time.After(time.Second):
		t.Fatal("expected a flush on cancellation")
	}

	select {
	case _, ok := <-deb.Output():
		assert.False(t, ok, "output channel should be closed after cancellation flush")
	case <-time.After(time.Second):
		t.Fatal("output channel was never closed")
	}
}
