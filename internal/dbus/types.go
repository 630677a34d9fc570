package dbus

import (
	"errors"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/toastui/internal/toast"
)

const (
	// DBusInterface is the trigger interface name.
	DBusInterface = "io.github.jmylchreest.Toastui"
	// DBusPath is the trigger object path.
	DBusPath = "/io/github/jmylchreest/Toastui"
	// DBusBusName is the bus name to claim.
	DBusBusName = "io.github.jmylchreest.Toastui"

	// ErrorAlreadyShowing is the D-Bus error name for a trigger while a
	// toast is mounted.
	ErrorAlreadyShowing = DBusInterface + ".Error.AlreadyShowing"
	// ErrorFailed is the D-Bus error name for any other failure.
	ErrorFailed = DBusInterface + ".Error.Failed"

	// ClosedSignal is the fully qualified name of the Closed signal.
	ClosedSignal = DBusInterface + ".Closed"
)

// Status describes the mounted toast, if any.
type Status struct {
	Active    bool      `json:"active" yaml:"active"`
	ID        string    `json:"id,omitempty" yaml:"id,omitempty"`
	Phase     string    `json:"phase" yaml:"phase"`
	MountedAt time.Time `json:"mounted_at,omitzero" yaml:"mounted_at,omitempty"`
}

// ShowHandler mounts a toast and returns its ID. Empty message and zero
// duration select the configured defaults.
type ShowHandler func(message string, duration time.Duration) (string, error)

// StatusHandler reports the host state.
type StatusHandler func() Status

// DismissHandler tears down the mounted toast and reports whether one was
// mounted.
type DismissHandler func() bool

// durationFromMillis converts the wire duration. Zero keeps the default
// and negative values pass through unchanged.
func durationFromMillis(ms int32) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// toDBusError maps handler errors onto D-Bus error names.
func toDBusError(err error) *dbus.Error {
	if err == nil {
		return nil
	}
	if errors.Is(err, toast.ErrAlreadyShowing) {
		return dbus.NewError(ErrorAlreadyShowing, []any{err.Error()})
	}
	return dbus.NewError(ErrorFailed, []any{err.Error()})
}

// fromDBusError maps a call error back onto package errors.
func fromDBusError(err error) error {
	var derr dbus.Error
	if errors.As(err, &derr) && derr.Name == ErrorAlreadyShowing {
		return toast.ErrAlreadyShowing
	}
	var dptr *dbus.Error
	if errors.As(err, &dptr) && dptr.Name == ErrorAlreadyShowing {
		return toast.ErrAlreadyShowing
	}
	return err
}

// statusFromWire builds a Status from the Status method's out arguments.
func statusFromWire(active bool, id, phase string, mountedUnix int64) Status {
	s := Status{Active: active, ID: id, Phase: phase}
	if mountedUnix > 0 {
		s.MountedAt = time.Unix(mountedUnix, 0)
	}
	return s
}

// statusToWire flattens a Status into the Status method's out arguments.
func statusToWire(s Status) (bool, string, string, int64) {
	var mounted int64
	if !s.MountedAt.IsZero() {
		mounted = s.MountedAt.Unix()
	}
	phase := s.Phase
	if phase == "" {
		phase = toast.PhaseClosed.String()
	}
	return s.Active, s.ID, phase, mounted
}
