package scene_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nav-lattice/scene"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scene.yaml", sampleScene)
	other := writeFile(t, dir, "other.yaml", "x: 1\n")

	w, err := scene.NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	// Writes to unwatched files in the same directory are filtered out.
	require.NoError(t, os.WriteFile(other, []byte("x: 2\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte(sampleScene+"\n"), 0o644))

	abs, err := filepath.Abs(path)
	require.NoError(t, err)

	select {
	case name := <-w.Events:
		assert.Equal(t, abs, name)
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatcherClose(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scene.yaml", sampleScene)
	w, err := scene.NewWatcher(path)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	select {
	case _, ok := <-w.Events:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := scene.NewWatcher(filepath.Join(t.TempDir(), "missing", "scene.yaml"))
	assert.Error(t, err)
}
