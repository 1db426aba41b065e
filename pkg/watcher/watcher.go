// Package watcher watches the rule directory and the two graph fixture
// files a check run reads from, so a "serve" run can debounce filesystem
// churn and trigger a fresh evaluation without the operator re-invoking
// the CLI by hand.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kallio-oss/semverify/pkg/logging"
)

// ChangeEvent is a batch of paths that changed within one debounce window.
type ChangeEvent struct {
	Paths     []string
	Timestamp time.Time
}

// FileWatcher watches a rule directory plus the baseline and current
// graph fixture files for changes that should trigger a re-check.
type FileWatcher struct {
	watcher      *fsnotify.Watcher
	ruleDir      string
	baselinePath string
	currentPath  string
	events       chan ChangeEvent
	done         chan struct{}
	mu           sync.Mutex
}

// NewFileWatcher creates a watcher over ruleDir and the two graph fixture
// paths. Graph paths are watched at their containing directory, since
// many editors and extractors replace a file via rename rather than
// writing it in place, an event fsnotify only reports on the directory.
func NewFileWatcher(ruleDir, baselinePath, currentPath string) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher:      w,
		ruleDir:      ruleDir,
		baselinePath: baselinePath,
		currentPath:  currentPath,
		events:       make(chan ChangeEvent, 100),
		done:         make(chan struct{}),
	}, nil
}

// Start begins watching and returns once the watch list is set up; events
// are delivered asynchronously on Events() until ctx is cancelled.
func (fw *FileWatcher) Start(ctx context.Context) error {
	if fw.ruleDir != "" {
		if err := fw.watcher.Add(fw.ruleDir); err != nil {
			logging.Warn("failed to watch rule directory", "path", fw.ruleDir, "error", err)
		}
	}
	for _, p := range []string{fw.baselinePath, fw.currentPath} {
		if p == "" {
			continue
		}
		dir := filepath.Dir(p)
		if err := fw.watcher.Add(dir); err != nil {
			logging.Warn("failed to watch graph fixture directory", "path", dir, "error", err)
		}
	}

	logging.Info("started watching for rule and graph changes",
		"rule_dir", fw.ruleDir, "baseline", fw.baselinePath, "current", fw.currentPath)

	go fw.processEvents(ctx)
	return nil
}

// relevant reports whether an fsnotify event's path is one this watcher
// cares about: a rule file under ruleDir, or either graph fixture path.
func (fw *FileWatcher) relevant(path string) bool {
	if fw.baselinePath != "" && filepath.Clean(path) == filepath.Clean(fw.baselinePath) {
		return true
	}
	if fw.currentPath != "" && filepath.Clean(path) == filepath.Clean(fw.currentPath) {
		return true
	}
	if fw.ruleDir != "" && filepath.Dir(path) == filepath.Clean(fw.ruleDir) {
		ext := strings.ToLower(filepath.Ext(path))
		return ext == ".yml" || ext == ".yaml"
	}
	return false
}

func (fw *FileWatcher) processEvents(ctx context.Context) {
	var changed []string
	flushTimer := time.NewTimer(100 * time.Millisecond)
	flushTimer.Stop()

	flush := func() {
		if len(changed) == 0 {
			return
		}
		fw.events <- ChangeEvent{Paths: changed, Timestamp: time.Now()}
		changed = nil
	}

	for {
		select {
		case <-ctx.Done():
			fw.watcher.Close()
			close(fw.events)
			close(fw.done)
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if fw.relevant(event.Name) {
				changed = append(changed, event.Name)
				flushTimer.Reset(100 * time.Millisecond)
			}

		case <-flushTimer.C:
			flush()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("watcher error", "error", err)
		}
	}
}

// Events returns the channel of debounced change batches.
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

// Stop stops the file watcher.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	select {
	case <-fw.done:
		return nil
	default:
	}
	return fw.watcher.Close()
}
