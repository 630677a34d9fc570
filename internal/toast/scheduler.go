package toast

import (
	"sync"
	"sync/atomic"
	"time"
)

// Timer is a pending scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or the timer was already stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay. Implementations must never invoke
// fn synchronously from AfterFunc. Negative delays are handed to the
// underlying primitive as-is.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// TimeScheduler schedules on the runtime timer heap via time.AfterFunc.
// Callbacks run on their own goroutines.
type TimeScheduler struct{}

// AfterFunc implements Scheduler.
func (TimeScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Timer states shared by the loop scheduler.
const (
	timerPending int32 = iota
	timerStopped
	timerFired
)

// LoopScheduler hands fired callbacks to a single event loop through a
// channel, so every transition runs on the loop's goroutine.
type LoopScheduler struct {
	events chan func()
	done   chan struct{}
	once   sync.Once
}

// NewLoopScheduler creates a loop scheduler with the given channel buffer.
func NewLoopScheduler(buffer int) *LoopScheduler {
	return &LoopScheduler{
		events: make(chan func(), buffer),
		done:   make(chan struct{}),
	}
}

// Events returns the channel the loop must drain. Each received func must
// be called on the loop goroutine.
func (s *LoopScheduler) Events() <-chan func() {
	return s.events
}

// Close releases goroutines blocked on delivering fired timers.
func (s *LoopScheduler) Close() {
	s.once.Do(func() { close(s.done) })
}

// AfterFunc implements Scheduler.
func (s *LoopScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	lt := &loopTimer{fn: fn}
	lt.timer = time.AfterFunc(d, func() {
		select {
		case s.events <- lt.run:
		case <-s.done:
		}
	})
	return lt
}

type loopTimer struct {
	state atomic.Int32
	timer *time.Timer
	fn    func()
}

// run is invoked by the loop; a timer stopped after delivery is skipped.
func (t *loopTimer) run() {
	if t.state.CompareAndSwap(timerPending, timerFired) {
		t.fn()
	}
}

func (t *loopTimer) Stop() bool {
	if !t.state.CompareAndSwap(timerPending, timerStopped) {
		return false
	}
	t.timer.Stop()
	return true
}

// ManualScheduler is a virtual clock. Timers fire only when the clock is
// advanced, in deadline order (ties in scheduling order).
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*manualTimer
}

// NewManualScheduler creates a virtual clock at offset zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

type manualTimer struct {
	s       *ManualScheduler
	at      time.Duration
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

// AfterFunc implements Scheduler. Negative delays fire at the current time
// on the next advance, like time.AfterFunc.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTimer{s: s, at: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Now returns the virtual time elapsed since creation.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Advance moves the clock forward by d, firing due timers in order.
// Timers scheduled by fired callbacks also fire if due within the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()
	s.AdvanceTo(target)
}

// AdvanceTo moves the clock to the absolute offset at. Moving backwards is
// ignored.
func (s *ManualScheduler) AdvanceTo(at time.Duration) {
	for {
		s.mu.Lock()
		next := s.nextDueLocked(at)
		if next == nil {
			if at > s.now {
				s.now = at
			}
			s.compactLocked()
			s.mu.Unlock()
			return
		}
		if next.at > s.now {
			s.now = next.at
		}
		next.fired = true
		s.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

func (s *ManualScheduler) nextDueLocked(at time.Duration) *manualTimer {
	var next *manualTimer
	for _, t := range s.timers {
		if t.fired || t.stopped || t.at > at {
			continue
		}
		if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (s *ManualScheduler) compactLocked() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.fired && !t.stopped {
			live = append(live, t)
		}
	}
	s.timers = live
}
