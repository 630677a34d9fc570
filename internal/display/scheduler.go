package display

import (
	"sync/atomic"
	"time"

	"github.com/diamondburned/gotk4/pkg/core/glib"

	"github.com/jmylchreest/toastui/internal/toast"
)

// MainLoopScheduler runs toast timers as GLib timeout sources, so every
// transition happens on the GTK main loop.
type MainLoopScheduler struct{}

// AfterFunc implements toast.Scheduler. Negative delays fire on the next
// main loop iteration.
func (MainLoopScheduler) AfterFunc(d time.Duration, fn func()) toast.Timer {
	if d < 0 {
		d = 0
	}
	t := &sourceTimer{}
	t.handle = glib.TimeoutAdd(uint(d.Milliseconds()), func() bool {
		if t.fired.CompareAndSwap(false, true) {
			fn()
		}
		return false
	})
	return t
}

type sourceTimer struct {
	handle glib.SourceHandle
	fired  atomic.Bool
}

// Stop removes the source. Removing a source that already ran makes GLib
// warn, so fired timers only report false.
func (t *sourceTimer) Stop() bool {
	if !t.fired.CompareAndSwap(false, true) {
		return false
	}
	glib.SourceRemove(t.handle)
	return true
}
