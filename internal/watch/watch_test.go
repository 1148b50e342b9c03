package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/verdant/internal/scan"
)

func newTestWatcher(t *testing.T, root string) *Watcher {
	t.Helper()
	cfg := &Config{Debounce: 20 * time.Millisecond, MaxWait: 100 * time.Millisecond}
	w, err := New(root, cfg, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(w.Stop)
	return w
}

func waitTrigger(w *Watcher, timeout time.Duration) bool {
	select {
	case <-w.Triggers():
		return true
	case <-time.After(timeout):
		return false
	}
}

func TestWatcherTriggersOnMarkdownChange(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.md")
	require.NoError(t, os.WriteFile(path, []byte("# A\n"), 0o644))

	w := newTestWatcher(t, root)

	require.NoError(t, os.WriteFile(path, []byte("# A changed\n"), 0o644))
	assert.True(t, waitTrigger(w, 2*time.Second), "expected a trigger after markdown write")
}

func TestWatcherCoalescesBursts(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.md")
	require.NoError(t, os.WriteFile(path, []byte("# A\n"), 0o644))

	w := newTestWatcher(t, root)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("# A\n\nrev\n"), 0o644))
		time.Sleep(2 * time.Millisecond)
	}

	assert.True(t, waitTrigger(w, 2*time.Second))
	assert.False(t, waitTrigger(w, 300*time.Millisecond), "burst should collapse into one trigger")
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	w := newTestWatcher(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x\n"), 0o644))
	assert.False(t, waitTrigger(w, 300*time.Millisecond), "non-markdown writes must not trigger")
}

func TestWatcherSeesNewSubdirectory(t *testing.T) {
	root := t.TempDir()
	w := newTestWatcher(t, root)

	sub := filepath.Join(root, "docs")
	require.NoError(t, os.Mkdir(sub, 0o755))
	// Let the create event land so the new directory joins the watch set.
	time.Sleep(250 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "new.md"), []byte("# New\n"), 0o644))
	assert.True(t, waitTrigger(w, 2*time.Second), "expected a trigger from the new subdirectory")
}

func TestWatcherStopIdempotent(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, nil, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	w.Stop()
	w.Stop()
}

func TestNewValidation(t *testing.T) {
	root := t.TempDir()

	_, err := New(filepath.Join(root, "missing"), nil, nil)
	assert.Error(t, err)

	file := filepath.Join(root, "plain.md")
	require.NoError(t, os.WriteFile(file, []byte("x\n"), 0o644))
	_, err = New(file, nil, nil)
	assert.ErrorIs(t, err, scan.ErrNotDirectory)

	_, err = New(root, &Config{Debounce: -time.Second, MaxWait: time.Second}, nil)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "defaults", cfg: *NewDefaultConfig()},
		{name: "zero debounce", cfg: Config{MaxWait: time.Second}, wantErr: true},
		{name: "max wait below debounce", cfg: Config{Debounce: time.Second, MaxWait: time.Millisecond}, wantErr: true},
		{name: "equal windows", cfg: Config{Debounce: time.Second, MaxWait: time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
