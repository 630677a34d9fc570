package dbus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

// ToastServer implements the io.github.jmylchreest.Toastui interface.
type ToastServer struct {
	conn   *dbus.Conn
	logger *slog.Logger

	showHandler    ShowHandler
	statusHandler  StatusHandler
	dismissHandler DismissHandler

	mu      sync.Mutex
	running bool
}

// NewToastServer creates a new ToastServer.
func NewToastServer(logger *slog.Logger) *ToastServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ToastServer{logger: logger}
}

// SetShowHandler sets the handler called by Show.
func (s *ToastServer) SetShowHandler(handler ShowHandler) {
	s.showHandler = handler
}

// SetStatusHandler sets the handler called by Status.
func (s *ToastServer) SetStatusHandler(handler StatusHandler) {
	s.statusHandler = handler
}

// SetDismissHandler sets the handler called by Dismiss.
func (s *ToastServer) SetDismissHandler(handler DismissHandler) {
	s.dismissHandler = handler
}

// Start connects to the session bus and exports the service.
func (s *ToastServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("server already running")
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	s.conn = conn

	if err := conn.Export(s, DBusPath, DBusInterface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: DBusPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    DBusInterface,
				Methods: toastMethods(),
				Signals: toastSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), DBusPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(DBusBusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken", DBusBusName)
	}

	s.running = true
	s.logger.Info("D-Bus toast server started", "interface", DBusInterface, "path", DBusPath)
	return nil
}

// Stop releases the bus name. The shared session connection stays open.
func (s *ToastServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		if _, err := s.conn.ReleaseName(DBusBusName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
	}

	s.logger.Info("D-Bus toast server stopped")
	return nil
}

// Show mounts a toast.
// D-Bus method: Show(si) -> s
func (s *ToastServer) Show(message string, durationMs int32) (string, *dbus.Error) {
	s.logger.Debug("Show called", "message", message, "duration_ms", durationMs)
	if s.showHandler == nil {
		return "", dbus.NewError(ErrorFailed, []any{"no show handler"})
	}
	id, err := s.showHandler(message, durationFromMillis(durationMs))
	if err != nil {
		return "", toDBusError(err)
	}
	return id, nil
}

// Status reports the mounted toast.
// D-Bus method: Status() -> (bssx)
func (s *ToastServer) Status() (bool, string, string, int64, *dbus.Error) {
	var st Status
	if s.statusHandler != nil {
		st = s.statusHandler()
	}
	active, id, phase, mounted := statusToWire(st)
	return active, id, phase, mounted, nil
}

// Dismiss tears down the mounted toast without emitting Closed.
// D-Bus method: Dismiss() -> b
func (s *ToastServer) Dismiss() (bool, *dbus.Error) {
	s.logger.Debug("Dismiss called")
	if s.dismissHandler == nil {
		return false, nil
	}
	return s.dismissHandler(), nil
}

// EmitClosed emits the Closed signal for a toast that finished. A nil
// server reports an error.
func (s *ToastServer) EmitClosed(id string) error {
	if s == nil || s.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}
	if err := s.conn.Emit(DBusPath, ClosedSignal, id); err != nil {
		return fmt.Errorf("failed to emit Closed signal: %w", err)
	}
	s.logger.Debug("emitted Closed signal", "id", id)
	return nil
}

// toastMethods returns the D-Bus method introspection data.
func toastMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "Show",
			Args: []introspect.Arg{
				{Name: "message", Type: "s", Direction: "in"},
				{Name: "duration_ms", Type: "i", Direction: "in"},
				{Name: "id", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "Status",
			Args: []introspect.Arg{
				{Name: "active", Type: "b", Direction: "out"},
				{Name: "id", Type: "s", Direction: "out"},
				{Name: "phase", Type: "s", Direction: "out"},
				{Name: "mounted_unix", Type: "x", Direction: "out"},
			},
		},
		{
			Name: "Dismiss",
			Args: []introspect.Arg{
				{Name: "dismissed", Type: "b", Direction: "out"},
			},
		},
	}
}

// toastSignals returns the D-Bus signal introspection data.
func toastSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: "Closed",
			Args: []introspect.Arg{
				{Name: "id", Type: "s"},
			},
		},
	}
}
