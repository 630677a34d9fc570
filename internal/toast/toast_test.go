package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func TestNew_InitialState(t *testing.T) {
	tst := New(Options{Message: "Saved"}, NewManualScheduler())

	assert.Equal(t, State{Visible: false, Loading: true, Success: false}, tst.State())
	assert.Equal(t, PhasePending, tst.Phase())
	assert.Equal(t, DefaultDuration, tst.Duration())
	assert.NotEmpty(t, tst.ID())
}

func TestToast_ScenarioSaved(t *testing.T) {
	sched := NewManualScheduler()
	closes := 0
	tst := New(Options{Message: "Saved", Duration: ms(4000), OnClose: func() { closes++ }}, sched)
	tst.Mount()

	style := tst.Style()
	assert.Equal(t, PhaseLoading, tst.Phase())
	assert.Equal(t, IconSpinner, style.Icon)
	assert.Equal(t, "Loading...", style.Text)

	sched.AdvanceTo(ms(1499))
	assert.Equal(t, PhaseLoading, tst.Phase())

	sched.AdvanceTo(ms(1501))
	style = tst.Style()
	assert.Equal(t, PhaseSuccess, tst.Phase())
	assert.Equal(t, IconCheckmark, style.Icon)
	assert.Equal(t, "Saved", style.Text)

	sched.AdvanceTo(ms(3999))
	assert.True(t, tst.State().Visible)
	assert.Equal(t, PhaseSuccess, tst.Phase())

	sched.AdvanceTo(ms(4001))
	assert.False(t, tst.State().Visible)
	assert.Equal(t, HiddenPose, tst.Style().Pose)
	assert.Equal(t, PhaseExiting, tst.Phase())
	assert.Equal(t, 0, closes)

	sched.AdvanceTo(ms(4301))
	assert.Equal(t, 1, closes)
	assert.Equal(t, PhaseClosed, tst.Phase())
	assert.True(t, tst.Closed())
	assert.Equal(t, 0, sched.Pending())

	sched.Advance(10 * time.Second)
	assert.Equal(t, 1, closes)
}

func TestToast_ExactBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
	}{
		{"minimum", ms(1500)},
		{"default", DefaultDuration},
		{"demo", ms(4000)},
		{"long", ms(10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched := NewManualScheduler()
			var closedAt time.Duration = -1
			tst := New(Options{Message: "m", Duration: tt.duration, OnClose: func() { closedAt = sched.Now() }}, sched)
			tst.Mount()

			sched.AdvanceTo(LoadingDuration - time.Millisecond)
			assert.True(t, tst.State().Loading)

			sched.AdvanceTo(LoadingDuration)
			state := tst.State()
			assert.False(t, state.Loading)
			assert.True(t, state.Success)

			if tt.duration > LoadingDuration {
				sched.AdvanceTo(tt.duration - time.Millisecond)
				assert.True(t, tst.State().Visible)
			}

			sched.AdvanceTo(tt.duration)
			assert.False(t, tst.State().Visible)

			sched.AdvanceTo(tt.duration + ExitDuration - time.Millisecond)
			assert.Equal(t, time.Duration(-1), closedAt)

			sched.AdvanceTo(tt.duration + ExitDuration)
			assert.Equal(t, tt.duration+ExitDuration, closedAt)
		})
	}
}

func TestToast_LoadingAndSuccessNeverBoth(t *testing.T) {
	sched := NewManualScheduler()
	tst := New(Options{Message: "m", Duration: ms(4000)}, sched)

	var seen []State
	tst.Subscribe(func(_ Phase, s State) {
		seen = append(seen, s)
	})
	tst.Mount()
	sched.Advance(5 * time.Second)

	require.NotEmpty(t, seen)
	for _, s := range seen {
		assert.False(t, s.Loading && s.Success, "state %+v", s)
	}
}

func TestToast_DefaultDurationWithoutOnClose(t *testing.T) {
	sched := NewManualScheduler()
	tst := New(Options{Message: "m"}, sched)
	tst.Mount()

	assert.NotPanics(t, func() {
		sched.AdvanceTo(ms(3301))
	})
	assert.Equal(t, PhaseClosed, tst.Phase())
}

func TestToast_UnmountBeforeClose(t *testing.T) {
	offsets := []time.Duration{0, ms(1000), ms(1500), ms(2000), ms(4000), ms(4299)}

	for _, at := range offsets {
		t.Run(at.String(), func(t *testing.T) {
			sched := NewManualScheduler()
			closes := 0
			tst := New(Options{Message: "m", Duration: ms(4000), OnClose: func() { closes++ }}, sched)
			tst.Mount()

			sched.AdvanceTo(at)
			before := tst.State()
			tst.Unmount()

			assert.Equal(t, 0, sched.Pending(), "all timers cancelled")
			sched.Advance(10 * time.Second)

			assert.Equal(t, 0, closes)
			assert.Equal(t, before, tst.State())
			assert.Equal(t, PhaseClosed, tst.Phase())
			assert.False(t, tst.Closed())
		})
	}
}

func TestToast_UnmountIsIdempotent(t *testing.T) {
	sched := NewManualScheduler()
	tst := New(Options{Message: "m"}, sched)
	tst.Mount()

	tst.Unmount()
	assert.NotPanics(t, tst.Unmount)
}

func TestToast_MountTwice(t *testing.T) {
	sched := NewManualScheduler()
	closes := 0
	tst := New(Options{Message: "m", OnClose: func() { closes++ }}, sched)

	tst.Mount()
	tst.Mount()
	assert.Equal(t, 2, sched.Pending())

	sched.Advance(10 * time.Second)
	assert.Equal(t, 1, closes)
}

func TestToast_MountAfterUnmount(t *testing.T) {
	sched := NewManualScheduler()
	tst := New(Options{Message: "m"}, sched)
	tst.Unmount()
	tst.Mount()

	assert.Equal(t, 0, sched.Pending())
	assert.False(t, tst.State().Visible)
}

func TestToast_ShortDurationClosesBeforeLoadingEnds(t *testing.T) {
	sched := NewManualScheduler()
	closes := 0
	tst := New(Options{Message: "m", Duration: ms(500), OnClose: func() { closes++ }}, sched)
	tst.Mount()

	sched.AdvanceTo(ms(500))
	assert.Equal(t, PhaseExiting, tst.Phase())

	sched.AdvanceTo(ms(800))
	assert.Equal(t, 1, closes)
	assert.Equal(t, 0, sched.Pending())

	sched.AdvanceTo(ms(2000))
	state := tst.State()
	assert.True(t, state.Loading, "loading timer cancelled at close")
	assert.False(t, state.Success)
}

func TestToast_NegativeDurationHidesImmediately(t *testing.T) {
	sched := NewManualScheduler()
	tst := New(Options{Message: "m", Duration: -time.Second}, sched)
	tst.Mount()

	sched.Advance(0)
	assert.False(t, tst.State().Visible)
	sched.Advance(ExitDuration)
	assert.Equal(t, PhaseClosed, tst.Phase())
}

func TestToast_ListenerSequence(t *testing.T) {
	sched := NewManualScheduler()
	tst := New(Options{Message: "m", Duration: ms(4000)}, sched)

	var phases []Phase
	tst.Subscribe(func(p Phase, _ State) {
		phases = append(phases, p)
	})
	tst.Subscribe(nil)
	tst.Mount()
	sched.Advance(5 * time.Second)

	assert.Equal(t, []Phase{PhaseLoading, PhaseSuccess, PhaseExiting, PhaseClosed}, phases)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "closed", PhaseClosed.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
