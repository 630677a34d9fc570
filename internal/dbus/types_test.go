package dbus

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/toast"
)

func TestDurationFromMillis(t *testing.T) {
	assert.Equal(t, time.Duration(0), durationFromMillis(0))
	assert.Equal(t, 4*time.Second, durationFromMillis(4000))
	assert.Equal(t, -time.Second, durationFromMillis(-1000))
}

func TestToDBusError(t *testing.T) {
	assert.Nil(t, toDBusError(nil))

	derr := toDBusError(fmt.Errorf("trigger: %w", toast.ErrAlreadyShowing))
	require.NotNil(t, derr)
	assert.Equal(t, ErrorAlreadyShowing, derr.Name)

	derr = toDBusError(errors.New("boom"))
	require.NotNil(t, derr)
	assert.Equal(t, ErrorFailed, derr.Name)
	assert.Equal(t, []any{"boom"}, derr.Body)
}

func TestFromDBusError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"value already showing", dbus.Error{Name: ErrorAlreadyShowing, Body: []any{"x"}}, toast.ErrAlreadyShowing},
		{"pointer already showing", dbus.NewError(ErrorAlreadyShowing, nil), toast.ErrAlreadyShowing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, fromDBusError(tt.err), tt.want)
		})
	}

	other := dbus.NewError(ErrorFailed, []any{"boom"})
	assert.Equal(t, error(other), fromDBusError(other))
}

func TestStatusWire(t *testing.T) {
	mounted := time.Unix(1767268800, 0)
	st := Status{Active: true, ID: "01JABC", Phase: toast.PhaseSuccess.String(), MountedAt: mounted}

	active, id, phase, unix := statusToWire(st)
	assert.True(t, active)
	assert.Equal(t, "01JABC", id)
	assert.Equal(t, "success", phase)
	assert.Equal(t, mounted.Unix(), unix)

	back := statusFromWire(active, id, phase, unix)
	assert.True(t, back.MountedAt.Equal(mounted))
	assert.Equal(t, st.ID, back.ID)

	active, _, phase, unix = statusToWire(Status{})
	assert.False(t, active)
	assert.Equal(t, toast.PhaseClosed.String(), phase)
	assert.Zero(t, unix)
	assert.True(t, statusFromWire(false, "", "closed", 0).MountedAt.IsZero())
}

func TestClosedID(t *testing.T) {
	assert.Equal(t, "", closedID(nil))
	assert.Equal(t, "", closedID(&dbus.Signal{Name: "other.Closed", Body: []any{"a"}}))
	assert.Equal(t, "", closedID(&dbus.Signal{Name: ClosedSignal, Body: []any{42}}))
	assert.Equal(t, "abc", closedID(&dbus.Signal{Name: ClosedSignal, Body: []any{"abc"}}))
}

func TestToastServer_Handlers(t *testing.T) {
	s := NewToastServer(nil)

	_, derr := s.Show("hi", 1000)
	require.NotNil(t, derr)
	assert.Equal(t, ErrorFailed, derr.Name)

	var gotMsg string
	var gotDur time.Duration
	s.SetShowHandler(func(message string, d time.Duration) (string, error) {
		gotMsg, gotDur = message, d
		return "id-1", nil
	})
	id, derr := s.Show("hi", 1500)
	assert.Nil(t, derr)
	assert.Equal(t, "id-1", id)
	assert.Equal(t, "hi", gotMsg)
	assert.Equal(t, 1500*time.Millisecond, gotDur)

	s.SetShowHandler(func(string, time.Duration) (string, error) {
		return "id-1", toast.ErrAlreadyShowing
	})
	_, derr = s.Show("", 0)
	require.NotNil(t, derr)
	assert.Equal(t, ErrorAlreadyShowing, derr.Name)

	active, _, phase, _, derr := s.Status()
	assert.Nil(t, derr)
	assert.False(t, active)
	assert.Equal(t, "closed", phase)

	s.SetStatusHandler(func() Status {
		return Status{Active: true, ID: "id-1", Phase: "loading"}
	})
	active, id, phase, _, _ = s.Status()
	assert.True(t, active)
	assert.Equal(t, "id-1", id)
	assert.Equal(t, "loading", phase)

	dismissed, _ := s.Dismiss()
	assert.False(t, dismissed)
	s.SetDismissHandler(func() bool { return true })
	dismissed, _ = s.Dismiss()
	assert.True(t, dismissed)

	assert.Error(t, s.EmitClosed("id-1"))
}

func TestEmitClosed_NilServer(t *testing.T) {
	var s *ToastServer
	emit := func(id string) error { return s.EmitClosed(id) }

	assert.NotPanics(t, func() {
		assert.Error(t, emit("01ABC"))
	})
}
