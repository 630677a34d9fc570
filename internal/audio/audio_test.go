package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/config"
)

func TestPlayer_SetVolumeClamps(t *testing.T) {
	p := NewPlayer(nil)

	p.SetVolume(0.5)
	assert.InDelta(t, 0.5, p.Volume(), 1e-9)

	p.SetVolume(-1)
	assert.InDelta(t, 0.0, p.Volume(), 1e-9)

	p.SetVolume(3)
	assert.InDelta(t, 1.0, p.Volume(), 1e-9)
}

func TestPlayer_EmptyPathIsNoop(t *testing.T) {
	p := NewPlayer(nil)
	assert.NoError(t, p.Play(""))
	assert.NoError(t, p.Preload(""))
}

func TestPlayer_UnsupportedFormat(t *testing.T) {
	p := NewPlayer(nil)
	err := p.Preload("/tmp/chime.flac")
	assert.ErrorContains(t, err, "unsupported audio format")
}

func TestPlayer_MissingFile(t *testing.T) {
	p := NewPlayer(nil)
	err := p.Preload(filepath.Join(t.TempDir(), "missing.wav"))
	assert.ErrorContains(t, err, "failed to open sound file")
}

func TestPlayer_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wave file"), 0644))

	p := NewPlayer(nil)
	err := p.Preload(path)
	assert.ErrorContains(t, err, "failed to decode sound")
}

func TestVolumeToExponent(t *testing.T) {
	assert.InDelta(t, 0.0, volumeToExponent(1), 1e-9)
	assert.InDelta(t, -1.0, volumeToExponent(0.5), 1e-9)
	assert.InDelta(t, -10.0, volumeToExponent(0), 1e-9)
}

func TestManager_DisabledByDefault(t *testing.T) {
	m := NewManager(nil, nil)
	assert.False(t, m.Enabled())
	assert.NoError(t, m.Start())
	assert.NoError(t, m.PlaySuccess())
}

func TestManager_MissingSoundDisables(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Audio.Enabled = true
	cfg.Audio.Success = filepath.Join(t.TempDir(), "missing.ogg")

	m := NewManager(cfg, nil)
	assert.False(t, m.Enabled())
	assert.NoError(t, m.PlaySuccess())
}

func TestManager_UpdateConfigVolume(t *testing.T) {
	m := NewManager(config.DefaultConfig(), nil)
	assert.InDelta(t, 0.8, m.player.Volume(), 1e-9)

	cfg := config.DefaultConfig()
	cfg.Audio.Volume = 25
	m.UpdateConfig(cfg)
	assert.InDelta(t, 0.25, m.player.Volume(), 1e-9)
}
