package toast

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Host defaults.
const (
	DefaultHostMessage  = "Operation completed successfully!"
	DefaultHostDuration = 4000 * time.Millisecond
)

// ErrAlreadyShowing is returned by Trigger while a toast is mounted.
var ErrAlreadyShowing = errors.New("a toast is already showing")

// HostOptions configures a Host.
type HostOptions struct {
	Message  string
	Duration time.Duration
	Logger   *slog.Logger
	Now      func() time.Time // Wall clock for MountedAt; defaults to time.Now
}

// Host holds the "notification requested" flag and mounts at most one toast
// at a time. It is the surface-independent half of a host view.
type Host struct {
	mu     sync.Mutex
	sched  Scheduler
	logger *slog.Logger
	now    func() time.Time

	message  string
	duration time.Duration

	current   *Toast
	mountedAt time.Time

	onMount   func(*Toast)
	onUnmount func(t *Toast, closed bool)
}

// NewHost creates a host that schedules its toasts on sched.
func NewHost(sched Scheduler, opts HostOptions) *Host {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Message == "" {
		opts.Message = DefaultHostMessage
	}
	if opts.Duration == 0 {
		opts.Duration = DefaultHostDuration
	}
	return &Host{
		sched:    sched,
		logger:   opts.Logger,
		now:      opts.Now,
		message:  opts.Message,
		duration: opts.Duration,
	}
}

// OnMount sets the callback invoked when a toast is about to mount. The
// toast is still pending; subscribe to it to see the mount transition.
func (h *Host) OnMount(cb func(*Toast)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onMount = cb
}

// OnUnmount sets the callback invoked after a toast is removed. closed is
// true when the toast finished its timeline and false on early teardown.
func (h *Host) OnUnmount(cb func(t *Toast, closed bool)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUnmount = cb
}

// SetDefaults replaces the message and duration used by Trigger. The
// mounted toast, if any, keeps its own values.
func (h *Host) SetDefaults(message string, duration time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if message != "" {
		h.message = message
	}
	if duration != 0 {
		h.duration = duration
	}
}

// Defaults returns the message and duration used by Trigger.
func (h *Host) Defaults() (string, time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.message, h.duration
}

// Trigger mounts a toast with the host's defaults.
func (h *Host) Trigger() (*Toast, error) {
	return h.TriggerWith("", 0)
}

// TriggerWith mounts a toast, falling back to the host defaults for an
// empty message or zero duration. While a toast is mounted it returns the
// mounted toast and ErrAlreadyShowing.
func (h *Host) TriggerWith(message string, duration time.Duration) (*Toast, error) {
	h.mu.Lock()
	if h.current != nil {
		current := h.current
		h.mu.Unlock()
		h.logger.Debug("trigger ignored, toast already showing", "id", current.ID())
		return current, ErrAlreadyShowing
	}
	if message == "" {
		message = h.message
	}
	if duration == 0 {
		duration = h.duration
	}

	var t *Toast
	t = New(Options{
		Message:  message,
		Duration: duration,
		OnClose:  func() { h.release(t, true) },
	}, h.sched)
	h.current = t
	h.mountedAt = h.now()
	onMount := h.onMount
	h.mu.Unlock()

	// onMount runs before any timer exists, so OnUnmount always follows it.
	if onMount != nil {
		onMount(t)
	}

	t.Mount()
	h.logger.Debug("toast mounted", "id", t.ID(), "duration", duration)
	return t, nil
}

// Active returns the mounted toast, or nil.
func (h *Host) Active() *Toast {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// MountedAt returns when the active toast was mounted. Zero if none.
func (h *Host) MountedAt() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return time.Time{}
	}
	return h.mountedAt
}

// Close tears down the mounted toast without letting it finish.
func (h *Host) Close() {
	h.mu.Lock()
	t := h.current
	h.mu.Unlock()
	if t == nil {
		return
	}
	t.Unmount()
	h.release(t, false)
}

// release clears the flag if t is still the mounted toast.
func (h *Host) release(t *Toast, closed bool) {
	h.mu.Lock()
	if h.current != t {
		h.mu.Unlock()
		return
	}
	h.current = nil
	h.mountedAt = time.Time{}
	onUnmount := h.onUnmount
	h.mu.Unlock()

	t.Unmount()
	h.logger.Debug("toast unmounted", "id", t.ID(), "closed", closed)

	if onUnmount != nil {
		onUnmount(t, closed)
	}
}
