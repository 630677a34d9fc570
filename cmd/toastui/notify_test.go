package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/dbus"
)

func activeStatus(id string) func(context.Context) (dbus.Status, error) {
	return func(context.Context) (dbus.Status, error) {
		return dbus.Status{Active: true, ID: id, Phase: "success"}, nil
	}
}

func TestWaitClosed(t *testing.T) {
	idle := func(context.Context) (dbus.Status, error) {
		return dbus.Status{Phase: "closed"}, nil
	}
	gone := func(context.Context) (dbus.Status, error) {
		return dbus.Status{}, errors.New("name has no owner")
	}

	tests := []struct {
		name    string
		signals []string
		status  func(context.Context) (dbus.Status, error)
		wantErr error
		anyErr  bool
	}{
		{name: "closed", signals: []string{"other", "01ABC"}, status: activeStatus("01ABC")},
		{name: "dismissed", status: idle, wantErr: errToastGone},
		{name: "replaced", status: activeStatus("01XYZ"), wantErr: errToastGone},
		{name: "daemon_gone", status: gone, anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closed := make(chan string, len(tt.signals))
			for _, s := range tt.signals {
				closed <- s
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			err := waitClosed(ctx, closed, "01ABC", tt.status, 10*time.Millisecond)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestWaitClosed_SignalAfterUnmount(t *testing.T) {
	closed := make(chan string, 1)
	idle := func(context.Context) (dbus.Status, error) {
		// The host clears the toast just before Closed is emitted.
		closed <- "01ABC"
		return dbus.Status{Phase: "closed"}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, waitClosed(ctx, closed, "01ABC", idle, 10*time.Millisecond))
}

func TestWaitClosed_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := waitClosed(ctx, make(chan string), "01ABC", activeStatus("01ABC"), time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}
