package toast

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Timeline constants.
const (
	// DefaultDuration is used when Options.Duration is zero.
	DefaultDuration = 3000 * time.Millisecond
	// LoadingDuration is how long the spinner is shown after mount.
	LoadingDuration = 1500 * time.Millisecond
	// ExitDuration is the exit animation length between hide and close.
	ExitDuration = 300 * time.Millisecond
)

// Phase is the lifecycle phase of a toast.
type Phase int

const (
	PhasePending Phase = iota // created, not yet mounted
	PhaseLoading
	PhaseSuccess
	PhaseExiting
	PhaseClosed
)

// PhaseNames maps phases to their display names.
var PhaseNames = map[Phase]string{
	PhasePending: "pending",
	PhaseLoading: "loading",
	PhaseSuccess: "success",
	PhaseExiting: "exiting",
	PhaseClosed:  "closed",
}

func (p Phase) String() string {
	if name, ok := PhaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// State holds the three flags the rendering is derived from.
// Loading and Success are never both true.
type State struct {
	Visible bool `json:"visible" yaml:"visible"`
	Loading bool `json:"loading" yaml:"loading"`
	Success bool `json:"success" yaml:"success"`
}

// Options configures a toast.
type Options struct {
	Message  string
	Duration time.Duration // Zero means DefaultDuration
	OnClose  func()
}

// Listener is called after every transition, outside the toast's lock.
type Listener func(phase Phase, state State)

// Toast is a single notification widget instance.
type Toast struct {
	mu sync.Mutex

	id       string
	message  string
	duration time.Duration
	onClose  func()
	sched    Scheduler

	state     State
	mounted   bool
	done      bool // closed or torn down; no further mutation
	closed    bool // onClose path completed
	listeners []Listener

	loadingTimer Timer
	hideTimer    Timer
	closeTimer   Timer
}

// New creates a toast in its initial state. Nothing is scheduled until Mount.
func New(opts Options, sched Scheduler) *Toast {
	if sched == nil {
		sched = TimeScheduler{}
	}
	duration := opts.Duration
	if duration == 0 {
		duration = DefaultDuration
	}
	return &Toast{
		id:       ulid.Make().String(),
		message:  opts.Message,
		duration: duration,
		onClose:  opts.OnClose,
		sched:    sched,
		state:    State{Visible: false, Loading: true, Success: false},
	}
}

// ID returns the toast's ULID.
func (t *Toast) ID() string {
	return t.id
}

// Message returns the message shown in the success phase.
func (t *Toast) Message() string {
	return t.message
}

// Duration returns the time from mount until the toast starts hiding.
func (t *Toast) Duration() time.Duration {
	return t.duration
}

// Subscribe registers a listener for state transitions.
func (t *Toast) Subscribe(l Listener) {
	if l == nil {
		return
	}
	t.mu.Lock()
	t.listeners = append(t.listeners, l)
	t.mu.Unlock()
}

// State returns a snapshot of the flags.
func (t *Toast) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Phase returns the current lifecycle phase.
func (t *Toast) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phaseLocked()
}

func (t *Toast) phaseLocked() Phase {
	switch {
	case t.done:
		return PhaseClosed
	case !t.mounted:
		return PhasePending
	case !t.state.Visible:
		return PhaseExiting
	case t.state.Success:
		return PhaseSuccess
	default:
		return PhaseLoading
	}
}

// Style returns the rendering for the current state.
func (t *Toast) Style() Style {
	return StyleFor(t.State(), t.message)
}

// Mount shows the toast and schedules its timeline. Calling Mount more than
// once, or after Unmount, does nothing.
func (t *Toast) Mount() {
	t.mu.Lock()
	if t.mounted || t.done {
		t.mu.Unlock()
		return
	}
	t.mounted = true
	t.state = State{Visible: true, Loading: true, Success: false}
	t.loadingTimer = t.sched.AfterFunc(LoadingDuration, t.finishLoading)
	t.hideTimer = t.sched.AfterFunc(t.duration, t.hide)
	t.mu.Unlock()

	t.emit()
}

// Unmount tears the toast down. Pending timers are cancelled, so OnClose
// never fires and the state is frozen. It is safe to call repeatedly.
func (t *Toast) Unmount() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return
	}
	t.done = true
	t.stopTimersLocked()
}

// Closed reports whether OnClose has run (or would have, had it been set).
func (t *Toast) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

func (t *Toast) finishLoading() {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return
	}
	t.loadingTimer = nil
	t.state.Loading = false
	t.state.Success = true
	t.mu.Unlock()

	t.emit()
}

func (t *Toast) hide() {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return
	}
	t.hideTimer = nil
	t.state.Visible = false
	t.closeTimer = t.sched.AfterFunc(ExitDuration, t.close)
	t.mu.Unlock()

	t.emit()
}

func (t *Toast) close() {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return
	}
	t.closeTimer = nil
	t.done = true
	t.closed = true
	// With durations shorter than LoadingDuration the loading timer is
	// still pending here.
	t.stopTimersLocked()
	onClose := t.onClose
	t.mu.Unlock()

	t.emit()
	if onClose != nil {
		onClose()
	}
}

func (t *Toast) stopTimersLocked() {
	for _, timer := range []*Timer{&t.loadingTimer, &t.hideTimer, &t.closeTimer} {
		if *timer != nil {
			(*timer).Stop()
			*timer = nil
		}
	}
}

func (t *Toast) emit() {
	t.mu.Lock()
	phase := t.phaseLocked()
	state := t.state
	listeners := make([]Listener, len(t.listeners))
	copy(listeners, t.listeners)
	t.mu.Unlock()

	for _, l := range listeners {
		l(phase, state)
	}
}
