package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `noSyntaxValidation: true
noSemanticValidation: false
quietPeriodMs: 250
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := Load(path)
	require.NoError(t, err)
	assert.True(t, settings.NoSyntaxValidation)
	assert.False(t, settings.NoSemanticValidation)
	assert.Equal(t, 250*time.Millisecond, settings.QuietPeriod())
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("noSyntaxValidation: [broken"), 0o644))

	settings, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestQuietPeriodFloor(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, Settings{}.QuietPeriod())
	assert.Equal(t, 500*time.Millisecond, Settings{QuietPeriodMS: -10}.QuietPeriod())
	assert.Equal(t, time.Second, Settings{QuietPeriodMS: 1000}.QuietPeriod())
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	var reloads atomic.Int32
	var got atomic.Value
	watcher, err := NewWatcher(path, func(s Settings) {
		got.Store(s)
		reloads.Add(1)
	})
	require.NoError(t, err)
	defer watcher.Close()

	// Creating the file after the watcher started still triggers a reload.
	require.NoError(t, os.WriteFile(path, []byte("quietPeriodMs: 100\n"), 0o644))

	require.Eventually(t, func() bool { return reloads.Load() > 0 }, 2*time.Second, 10*time.Millisecond)
	settings := got.Load().(Settings)
	assert.Equal(t, 100, settings.QuietPeriodMS)
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	var reloads atomic.Int32
	watcher, err := NewWatcher(path, func(Settings) { reloads.Add(1) })
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644))

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, reloads.Load())
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	watcher, err := NewWatcher(filepath.Join(t.TempDir(), "settings.yaml"), func(Settings) {})
	require.NoError(t, err)

	assert.NoError(t, watcher.Close())
	assert.NoError(t, watcher.Close())
}
