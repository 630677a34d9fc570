// Package main is the entry point for the toastuid desktop host.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/toastui/internal/audio"
	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/daemon"
	"github.com/jmylchreest/toastui/internal/dbus"
	"github.com/jmylchreest/toastui/internal/display"
	"github.com/jmylchreest/toastui/internal/theme"
	"github.com/jmylchreest/toastui/internal/toast"
)

const (
	appID   = "io.github.jmylchreest.toastuid"
	appName = "toastuid"

	// callTimeout bounds how long a D-Bus call waits for the main loop.
	callTimeout = 5 * time.Second
)

var (
	// Build-time variables
	version = "dev"
)

func main() {
	headless := flag.Bool("headless", false, "Run without the host window (D-Bus only)")
	configPath := flag.String("config", "", "Config file path")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		println("toastuid version", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	run(logger, *configPath, *headless)
}

func run(logger *slog.Logger, configPath string, headless bool) {
	logger.Info("starting toastuid", "version", version)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Warn("failed to load config, using defaults", "error", err)
		cfg = config.DefaultConfig()
	}
	if configPath == "" {
		configPath, _ = config.ConfigPath()
	}

	app := adw.NewApplication(appID, 0)

	var (
		dbusServer     *dbus.ToastServer
		displayManager *display.Manager
		themeLoader    *theme.Loader
		audioManager   *audio.Manager
		configWatcher  *daemon.ConfigWatcher
		running        atomic.Bool
	)

	stop := func() {
		if audioManager != nil {
			audioManager.Stop()
		}
		if configWatcher != nil {
			configWatcher.Stop()
		}
		if displayManager != nil {
			displayManager.Stop()
		}
		if dbusServer != nil {
			_ = dbusServer.Stop()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()

		// Stop components in GTK main loop context
		glib.IdleAdd(func() {
			if running.Load() {
				stop()
				app.Quit()
			}
		})
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			if displayManager != nil && !headless {
				displayManager.ShowWindow()
			}
			return
		}
		running.Store(true)

		themeLoader = theme.NewLoader(logger)
		if err := themeLoader.LoadTheme(cfg.Theme.Name); err != nil {
			logger.Warn("failed to load theme, using default", "theme", cfg.Theme.Name, "error", err)
		}
		themeLoader.Apply(nil)

		audioManager = audio.NewManager(cfg, logger)
		if err := audioManager.Start(); err != nil {
			logger.Warn("failed to start audio", "error", err)
		}

		displayManager = display.NewManager(&app.Application, cfg, logger)
		if err := displayManager.Start(); err != nil {
			logger.Error("failed to start display manager", "error", err)
			app.Quit()
			return
		}
		displayManager.SetSuccessCallback(func(t *toast.Toast) {
			go func() {
				if err := audioManager.PlaySuccess(); err != nil {
					logger.Debug("failed to play success sound", "id", t.ID(), "error", err)
				}
			}()
		})
		displayManager.SetQuitCallback(func() {
			logger.Info("host window closed")
			app.Quit()
		})

		dbusServer = dbus.NewToastServer(logger)
		dbusServer.SetShowHandler(func(message string, duration time.Duration) (string, error) {
			callCtx, callCancel := context.WithTimeout(ctx, callTimeout)
			defer callCancel()

			type shown struct {
				id  string
				err error
			}
			res, err := display.Invoke(callCtx, func() shown {
				t, err := displayManager.Show(message, duration)
				if err != nil {
					return shown{err: err}
				}
				return shown{id: t.ID()}
			})
			if err != nil {
				return "", err
			}
			return res.id, res.err
		})
		dbusServer.SetStatusHandler(func() dbus.Status {
			st := displayManager.Snapshot()
			return dbus.Status{
				Active:    st.Active,
				ID:        st.ID,
				Phase:     st.Phase.String(),
				MountedAt: st.MountedAt,
			}
		})
		dbusServer.SetDismissHandler(func() bool {
			callCtx, callCancel := context.WithTimeout(ctx, callTimeout)
			defer callCancel()

			dismissed, err := display.Invoke(callCtx, displayManager.Dismiss)
			if err != nil {
				logger.Warn("dismiss timed out", "error", err)
			}
			return dismissed
		})
		if err := dbusServer.Start(); err != nil {
			// The window still works without the bus.
			logger.Warn("failed to start D-Bus server", "error", err)
			dbusServer = nil
			if headless {
				app.Quit()
				return
			}
		} else {
			server := dbusServer
			displayManager.SetClosedCallback(func(t *toast.Toast) {
				if err := server.EmitClosed(t.ID()); err != nil {
					logger.Debug("failed to emit closed signal", "id", t.ID(), "error", err)
				}
			})
		}

		if configPath != "" {
			configWatcher, err = daemon.NewConfigWatcher(configPath, logger)
			if err != nil {
				logger.Warn("failed to create config watcher", "error", err)
			} else {
				configWatcher.SetReloadCallback(func(newConfig *config.Config) {
					glib.IdleAdd(func() {
						logger.Info("applying config changes")
						displayManager.UpdateConfig(newConfig)
						audioManager.UpdateConfig(newConfig)

						if newConfig.Theme.Name != cfg.Theme.Name {
							if err := themeLoader.LoadTheme(newConfig.Theme.Name); err != nil {
								logger.Warn("failed to load new theme", "theme", newConfig.Theme.Name, "error", err)
							}
						}
						cfg = newConfig
					})
				})
				configWatcher.SetErrorCallback(func(err error) {
					logger.Warn("config reload rejected", "error", err)
				})
				if err := configWatcher.Start(ctx, cfg); err != nil {
					logger.Warn("failed to start config watcher", "error", err)
				}
			}
		}

		logger.Info("toastuid ready", "dbus_interface", dbus.DBusInterface, "headless", headless)

		if !headless {
			displayManager.ShowWindow()
			return
		}

		// GTK apps quit when all windows are closed
		keepAliveWindow := gtk.NewWindow()
		keepAliveWindow.SetApplication(&app.Application)
		keepAliveWindow.SetDefaultSize(1, 1)
		keepAliveWindow.SetDecorated(false)
		keepAliveWindow.SetVisible(false)
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		stop()
		running.Store(false)
	})

	// Our flags are already parsed; GApplication only sees the program name.
	status := app.Run(append([]string{os.Args[0]}, flag.Args()...))
	cancel()

	if status != 0 {
		logger.Error("application exited with error", "status", status)
		os.Exit(status)
	}
	logger.Info(appName + " exited")
}
