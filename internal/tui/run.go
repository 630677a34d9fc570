package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/toastui/internal/audio"
	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/daemon"
	"github.com/jmylchreest/toastui/internal/toast"
)

// RunOptions configures the TUI.
type RunOptions struct {
	Config     *config.Config
	ConfigPath string // Watched for changes; empty uses the default path
	Logger     *slog.Logger
	NoWatch    bool
}

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched := toast.NewLoopScheduler(8)
	defer sched.Close()

	am := audio.NewManager(cfg, logger)
	if err := am.Start(); err != nil {
		logger.Warn("audio unavailable", "error", err)
	}
	defer am.Stop()

	m := New(Options{
		Config:    cfg,
		Audio:     am,
		Logger:    logger,
		Scheduler: sched,
		Events:    sched.Events(),
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if !opts.NoWatch {
		watcher, err := daemon.NewConfigWatcher(opts.ConfigPath, logger)
		if err != nil {
			logger.Warn("config watcher disabled", "error", err)
		} else {
			watcher.SetReloadCallback(func(newConfig *config.Config) {
				p.Send(configReloadedMsg{cfg: newConfig})
			})
			watcher.SetErrorCallback(func(err error) {
				p.Send(statusMsg{text: "Config error: " + err.Error(), isErr: true})
			})
			if err := watcher.Start(ctx, cfg); err != nil {
				logger.Warn("failed to start config watcher", "error", err)
			} else {
				defer watcher.Stop()
			}
		}
	}

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.host.Close()
	}
	return err
}
