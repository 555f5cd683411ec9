package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ALT-F4-LLC/hours/internal/logging"
)

func startWatcher(t *testing.T, path string, onChange func(context.Context) error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	w := New(path, onChange, WithDebounce(20*time.Millisecond), WithLogger(logging.Discard()))
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})
	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.zip")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	var calls atomic.Int32
	startWatcher(t, path, func(context.Context) error {
		calls.Add(1)
		return nil
	})

	// A burst of writes settles into one reload.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	}
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.zip")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	var calls atomic.Int32
	startWatcher(t, path, func(context.Context) error {
		calls.Add(1)
		return nil
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.zip"), []byte("x"), 0o644))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestWatcherKeepsRunningAfterFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.zip")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	var calls atomic.Int32
	startWatcher(t, path, func(context.Context) error {
		calls.Add(1)
		return errors.New("broken archive")
	})

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("v3"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestRelevant(t *testing.T) {
	w := New("/data/export.zip", nil)
	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: "/data/export.zip", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/data/export.zip", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/data/export.zip", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/data/export.zip", Op: fsnotify.Remove}, false},
		{fsnotify.Event{Name: "/data/other.zip", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, w.relevant(tt.ev), "%s", tt.ev)
	}
}

func TestRunFailsForMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "gone", "export.zip"), nil, WithLogger(logging.Discard()))
	err := w.Run(context.Background())
	assert.Error(t, err)
}
