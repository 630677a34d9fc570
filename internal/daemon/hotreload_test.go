package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/config"
)

func newTestWatcher(t *testing.T) (*ConfigWatcher, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "toastui", "toastui.toml")
	w, err := NewConfigWatcher(path, nil)
	require.NoError(t, err)
	w.SetDebounce(10 * time.Millisecond)
	return w, path
}

func TestConfigWatcher_ReloadsValidConfig(t *testing.T) {
	w, path := newTestWatcher(t)

	reloaded := make(chan *config.Config, 1)
	w.SetReloadCallback(func(c *config.Config) { reloaded <- c })

	require.NoError(t, w.Start(context.Background(), config.DefaultConfig()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("[toast]\nmessage = \"Reloaded\"\n"), 0600))

	select {
	case c := <-reloaded:
		assert.Equal(t, "Reloaded", c.Toast.Message)
		assert.Equal(t, "Reloaded", w.GetCurrentConfig().Toast.Message)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}
}

func TestConfigWatcher_KeepsConfigOnInvalidFile(t *testing.T) {
	w, path := newTestWatcher(t)

	errs := make(chan error, 1)
	w.SetErrorCallback(func(err error) { errs <- err })

	initial := config.DefaultConfig()
	require.NoError(t, w.Start(context.Background(), initial))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("[display]\nposition = \"nowhere\"\n"), 0600))

	select {
	case err := <-errs:
		assert.ErrorContains(t, err, "invalid position")
		assert.Same(t, initial, w.GetCurrentConfig())
	case <-time.After(5 * time.Second):
		t.Fatal("validation error was not reported")
	}
}

func TestConfigWatcher_StartStopIdempotent(t *testing.T) {
	w, _ := newTestWatcher(t)

	require.NoError(t, w.Start(context.Background(), nil))
	require.NoError(t, w.Start(context.Background(), nil))
	w.Stop()
	assert.NotPanics(t, w.Stop)
}

func TestConfigWatcher_StopsOnContextCancel(t *testing.T) {
	w, _ := newTestWatcher(t)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, w.Start(ctx, nil))
	cancel()

	select {
	case <-w.doneCh:
	case <-time.After(5 * time.Second):
		t.Fatal("watch loop did not exit")
	}
}
