package toast

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHost_Defaults(t *testing.T) {
	h := NewHost(NewManualScheduler(), HostOptions{})
	message, duration := h.Defaults()

	assert.Equal(t, DefaultHostMessage, message)
	assert.Equal(t, DefaultHostDuration, duration)
	assert.Nil(t, h.Active())
	assert.True(t, h.MountedAt().IsZero())
}

func TestHost_TriggerMountsAndReleases(t *testing.T) {
	sched := NewManualScheduler()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	h := NewHost(sched, HostOptions{Now: func() time.Time { return now }})

	var mounted []*Toast
	var unmounted []bool
	h.OnMount(func(t *Toast) { mounted = append(mounted, t) })
	h.OnUnmount(func(_ *Toast, closed bool) { unmounted = append(unmounted, closed) })

	tst, err := h.Trigger()
	require.NoError(t, err)
	require.NotNil(t, tst)

	assert.Same(t, tst, h.Active())
	assert.Equal(t, now, h.MountedAt())
	assert.Equal(t, DefaultHostMessage, tst.Message())
	assert.Equal(t, DefaultHostDuration, tst.Duration())
	assert.Equal(t, PhaseLoading, tst.Phase())
	assert.Len(t, mounted, 1)

	sched.Advance(DefaultHostDuration + ExitDuration)

	assert.Nil(t, h.Active())
	assert.Equal(t, []bool{true}, unmounted)
}

func TestHost_SecondTriggerIsIgnored(t *testing.T) {
	sched := NewManualScheduler()
	h := NewHost(sched, HostOptions{})

	unmounts := 0
	h.OnUnmount(func(*Toast, bool) { unmounts++ })

	first, err := h.Trigger()
	require.NoError(t, err)

	sched.Advance(2 * time.Second)
	second, err := h.Trigger()
	assert.ErrorIs(t, err, ErrAlreadyShowing)
	assert.Same(t, first, second)

	sched.Advance(10 * time.Second)
	assert.Equal(t, 1, unmounts, "one close per mount")

	third, err := h.Trigger()
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestHost_TriggerWithOverrides(t *testing.T) {
	sched := NewManualScheduler()
	h := NewHost(sched, HostOptions{Message: "default", Duration: 2 * time.Second})

	tst, err := h.TriggerWith("custom", 0)
	require.NoError(t, err)
	assert.Equal(t, "custom", tst.Message())
	assert.Equal(t, 2*time.Second, tst.Duration())
}

func TestHost_CloseTearsDown(t *testing.T) {
	sched := NewManualScheduler()
	h := NewHost(sched, HostOptions{})

	var closedFlags []bool
	h.OnUnmount(func(_ *Toast, closed bool) { closedFlags = append(closedFlags, closed) })

	tst, err := h.Trigger()
	require.NoError(t, err)

	sched.Advance(time.Second)
	h.Close()

	assert.Nil(t, h.Active())
	assert.Equal(t, []bool{false}, closedFlags)
	assert.Equal(t, 0, sched.Pending())

	sched.Advance(time.Minute)
	assert.False(t, tst.Closed())
	assert.Len(t, closedFlags, 1)

	assert.NotPanics(t, h.Close)
}

func TestHost_SetDefaults(t *testing.T) {
	h := NewHost(NewManualScheduler(), HostOptions{})
	h.SetDefaults("changed", 0)

	message, duration := h.Defaults()
	assert.Equal(t, "changed", message)
	assert.Equal(t, DefaultHostDuration, duration)

	h.SetDefaults("", time.Second)
	message, duration = h.Defaults()
	assert.Equal(t, "changed", message)
	assert.Equal(t, time.Second, duration)
}

func TestHost_MountBeforeUnmountWithRealTimers(t *testing.T) {
	h := NewHost(TimeScheduler{}, HostOptions{})

	var mu sync.Mutex
	var order []string
	unmounted := make(chan struct{})
	h.OnMount(func(tst *Toast) {
		assert.Equal(t, PhasePending, tst.Phase())
		mu.Lock()
		order = append(order, "mount")
		mu.Unlock()
	})
	h.OnUnmount(func(_ *Toast, _ bool) {
		mu.Lock()
		order = append(order, "unmount")
		mu.Unlock()
		close(unmounted)
	})

	_, err := h.TriggerWith("x", -time.Millisecond)
	require.NoError(t, err)

	select {
	case <-unmounted:
	case <-time.After(2 * time.Second):
		t.Fatal("toast never unmounted")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"mount", "unmount"}, order)
}
