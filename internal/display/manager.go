package display

import (
	"context"
	"log/slog"
	"time"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/toast"
)

// Status is a snapshot of the host for callers off the main loop.
type Status struct {
	Active    bool
	ID        string
	Phase     toast.Phase
	MountedAt time.Time
}

// Manager connects a toast.Host to GTK. Every method except Snapshot must
// be called on the GTK main loop; see Invoke.
type Manager struct {
	app    *gtk.Application
	config *config.Config
	logger *slog.Logger

	host   *toast.Host
	layout *LayoutManager
	popup  *Popup
	window *HostWindow

	onClosed  func(t *toast.Toast)
	onSuccess func(t *toast.Toast)
	onQuit    func()
}

// NewManager creates a new display manager.
func NewManager(app *gtk.Application, cfg *config.Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := &Manager{
		app:    app,
		config: cfg,
		logger: logger,
		host: toast.NewHost(MainLoopScheduler{}, toast.HostOptions{
			Message:  cfg.Toast.Message,
			Duration: cfg.ToastDuration(),
			Logger:   logger,
		}),
	}
	m.host.OnMount(m.mount)
	m.host.OnUnmount(m.unmount)
	return m
}

// Start checks for a display and prepares monitor selection.
func (m *Manager) Start() error {
	if gdk.DisplayGetDefault() == nil {
		return &DisplayError{Message: "no display available"}
	}
	m.layout = NewLayoutManager(m.config, m.logger)
	m.logger.Info("display manager started")
	return nil
}

// Stop tears down the mounted toast and closes all windows.
func (m *Manager) Stop() {
	m.host.Close()
	if m.window != nil {
		m.window.Close()
		m.window = nil
	}
	m.logger.Info("display manager stopped")
}

// Host returns the toast host.
func (m *Manager) Host() *toast.Host {
	return m.host
}

// SetClosedCallback sets the callback for toasts that finish their timeline.
func (m *Manager) SetClosedCallback(cb func(t *toast.Toast)) {
	m.onClosed = cb
}

// SetSuccessCallback sets the callback for the loading to success transition.
func (m *Manager) SetSuccessCallback(cb func(t *toast.Toast)) {
	m.onSuccess = cb
}

// SetQuitCallback sets the callback for the host window being closed.
func (m *Manager) SetQuitCallback(cb func()) {
	m.onQuit = cb
}

// ShowWindow presents the trigger window.
func (m *Manager) ShowWindow() {
	if m.window == nil {
		m.window = NewHostWindow(m.app, m.trigger, func() {
			m.window = nil
			if m.onQuit != nil {
				m.onQuit()
			}
		})
	}
	m.window.Present()
}

// trigger handles the window button.
func (m *Manager) trigger() {
	if _, err := m.Show("", 0); err != nil {
		m.logger.Debug("trigger ignored", "error", err)
	}
}

// Show mounts a toast. Empty message or zero duration use the config.
func (m *Manager) Show(message string, duration time.Duration) (*toast.Toast, error) {
	return m.host.TriggerWith(message, duration)
}

// Dismiss tears down the mounted toast. It reports whether one was mounted.
func (m *Manager) Dismiss() bool {
	if m.host.Active() == nil {
		return false
	}
	m.host.Close()
	return true
}

// Invoke runs fn on the GTK main loop and waits for its result. If ctx
// ends first fn is skipped.
func Invoke[T any](ctx context.Context, fn func() T) (T, error) {
	return invoke(ctx, func(f func()) { glib.IdleAdd(f) }, fn)
}

func invoke[T any](ctx context.Context, post func(func()), fn func() T) (T, error) {
	done := make(chan T, 1)
	post(func() {
		if ctx.Err() != nil {
			return
		}
		done <- fn()
	})

	select {
	case v := <-done:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Snapshot reads the host state. The host is safe for concurrent reads.
func (m *Manager) Snapshot() Status {
	t := m.host.Active()
	if t == nil {
		return Status{Phase: toast.PhaseClosed}
	}
	return Status{
		Active:    true,
		ID:        t.ID(),
		Phase:     t.Phase(),
		MountedAt: m.host.MountedAt(),
	}
}

// UpdateConfig applies a reloaded config. The mounted toast keeps its
// message and duration.
func (m *Manager) UpdateConfig(cfg *config.Config) {
	m.config = cfg
	m.host.SetDefaults(cfg.Toast.Message, cfg.ToastDuration())
	if m.layout != nil {
		m.layout.UpdateConfig(cfg)
	}
	if m.popup != nil {
		m.popup.UpdateConfig(cfg)
	}
}

// mount creates the popup and renders each transition of t. It runs
// before t is mounted.
func (m *Manager) mount(t *toast.Toast) {
	p := NewPopup(m.app, m.config, m.layout, m.logger)
	m.popup = p

	// Styles wait for the first frame so the hidden to shown transition runs.
	shown := false
	t.Subscribe(func(phase toast.Phase, st toast.State) {
		if shown {
			p.Apply(toast.StyleFor(st, t.Message()))
		}
		if phase == toast.PhaseSuccess && m.onSuccess != nil {
			m.onSuccess(t)
		}
	})

	p.Show()
	glib.IdleAdd(func() {
		if m.popup != p {
			return
		}
		shown = true
		p.Apply(t.Style())
	})
}

// unmount closes the popup once the toast is gone.
func (m *Manager) unmount(t *toast.Toast, closed bool) {
	if m.popup != nil {
		m.popup.Close()
		m.popup = nil
	}
	if closed && m.onClosed != nil {
		m.onClosed(t)
	}
}

// DisplayError represents a display-related error.
type DisplayError struct {
	Message string
	Cause   error
}

func (e *DisplayError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *DisplayError) Unwrap() error {
	return e.Cause
}
