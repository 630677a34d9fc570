// Package timeline drives a toast on a virtual clock and records every
// transition with its offset from mount.
package timeline

import (
	"time"

	"github.com/jmylchreest/toastui/internal/toast"
)

// Event kinds.
const (
	KindMount      = "mount"
	KindTransition = "transition"
	KindClose      = "close"
	KindUnmount    = "unmount"
)

// Event is one recorded step.
type Event struct {
	AtMs  int64       `json:"at_ms" yaml:"at_ms"`
	Kind  string      `json:"kind" yaml:"kind"`
	Phase string      `json:"phase" yaml:"phase"`
	State toast.State `json:"state" yaml:"state"`
	Icon  string      `json:"icon" yaml:"icon"`
	Text  string      `json:"text" yaml:"text"`
	Color string      `json:"background" yaml:"background"`
}

// Timeline is the recording of one toast.
type Timeline struct {
	ID         string  `json:"id" yaml:"id"`
	Message    string  `json:"message" yaml:"message"`
	DurationMs int64   `json:"duration_ms" yaml:"duration_ms"`
	Events     []Event `json:"events" yaml:"events"`
}

// Options configures Record.
type Options struct {
	Message  string
	Duration time.Duration // Zero uses toast.DefaultDuration

	// TeardownAt unmounts the toast at this offset when positive.
	TeardownAt time.Duration
}

// Record mounts a toast on a ManualScheduler and runs the clock until no
// timer is pending.
func Record(opts Options) *Timeline {
	sched := toast.NewManualScheduler()
	tl := &Timeline{Message: opts.Message}

	record := func(kind string, phase toast.Phase, st toast.State) {
		style := toast.StyleFor(st, opts.Message)
		tl.Events = append(tl.Events, Event{
			AtMs:  sched.Now().Milliseconds(),
			Kind:  kind,
			Phase: phase.String(),
			State: st,
			Icon:  style.Icon.String(),
			Text:  style.Text,
			Color: style.Background,
		})
	}

	var t *toast.Toast
	t = toast.New(toast.Options{
		Message:  opts.Message,
		Duration: opts.Duration,
		OnClose: func() {
			record(KindClose, t.Phase(), t.State())
		},
	}, sched)
	tl.ID = t.ID()
	tl.DurationMs = t.Duration().Milliseconds()

	// Mount emits its own transition; subscribing afterwards leaves the
	// mount record as the only event at 0ms.
	t.Mount()
	record(KindMount, t.Phase(), t.State())

	t.Subscribe(func(phase toast.Phase, st toast.State) {
		record(KindTransition, phase, st)
	})

	if opts.TeardownAt > 0 {
		sched.AdvanceTo(opts.TeardownAt)
		if !t.Closed() {
			t.Unmount()
			record(KindUnmount, t.Phase(), t.State())
		}
	}

	for sched.Pending() > 0 {
		sched.Advance(end(t.Duration()))
	}
	return tl
}

// end is long enough for every timer scheduled at mount to fire.
func end(d time.Duration) time.Duration {
	return max(d, toast.LoadingDuration) + toast.ExitDuration
}

// Find returns the first event of kind, or false.
func (tl *Timeline) Find(kind string) (Event, bool) {
	for _, e := range tl.Events {
		if e.Kind == kind {
			return e, true
		}
	}
	return Event{}, false
}
