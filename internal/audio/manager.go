package audio

import (
	"log/slog"
	"os"
	"sync"

	"github.com/jmylchreest/toastui/internal/config"
)

// Manager plays the configured success sound.
type Manager struct {
	mu     sync.RWMutex
	logger *slog.Logger
	player *Player

	enabled bool
	sound   string
}

// NewManager creates a new audio manager.
func NewManager(cfg *config.Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := &Manager{
		logger: logger,
		player: NewPlayer(logger),
	}
	m.apply(cfg)
	return m
}

// apply loads settings from cfg.
func (m *Manager) apply(cfg *config.Config) {
	m.player.SetVolume(float64(cfg.Audio.Volume) / 100.0)

	sound := cfg.SuccessSound()
	if sound != "" {
		if _, err := os.Stat(sound); err != nil {
			m.logger.Warn("success sound not found", "path", sound)
			sound = ""
		}
	}

	m.mu.Lock()
	m.enabled = cfg.Audio.Enabled && sound != ""
	m.sound = sound
	m.mu.Unlock()
}

// Start preloads the success sound.
func (m *Manager) Start() error {
	m.mu.RLock()
	enabled, sound := m.enabled, m.sound
	m.mu.RUnlock()

	if !enabled {
		m.logger.Debug("audio disabled")
		return nil
	}
	if err := m.player.Preload(sound); err != nil {
		return err
	}
	m.logger.Info("audio manager started", "sound", sound)
	return nil
}

// Stop shuts down the audio manager.
func (m *Manager) Stop() {
	m.player.Close()
}

// Enabled reports whether a success sound will play.
func (m *Manager) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}

// PlaySuccess plays the success sound if one is configured.
func (m *Manager) PlaySuccess() error {
	m.mu.RLock()
	enabled, sound := m.enabled, m.sound
	m.mu.RUnlock()

	if !enabled {
		return nil
	}
	return m.player.Play(sound)
}

// UpdateConfig applies a hot-reloaded configuration.
func (m *Manager) UpdateConfig(cfg *config.Config) {
	m.player.ClearCache()
	m.apply(cfg)
	if err := m.Start(); err != nil {
		m.logger.Warn("failed to preload success sound", "error", err)
	}
}
