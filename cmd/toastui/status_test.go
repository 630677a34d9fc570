package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/toastui/internal/dbus"
)

func TestGenerateStatus(t *testing.T) {
	empty := generateStatus(dbus.Status{Phase: "closed"})
	assert.Equal(t, "empty", empty.Class)
	assert.Equal(t, "", empty.Text)

	st := dbus.Status{Active: true, ID: "01J", Phase: "success", MountedAt: time.Now().Add(-2 * time.Second)}
	got := generateStatus(st)
	assert.Equal(t, "success", got.Text)
	assert.Equal(t, "success", got.Class)
	assert.Contains(t, got.Tooltip, "01J success")
	assert.Contains(t, got.Tooltip, "ago")
}

func TestDescribeStatus(t *testing.T) {
	assert.Equal(t, "no toast showing", describeStatus(dbus.Status{}))
	assert.Equal(t, "01J loading", describeStatus(dbus.Status{Active: true, ID: "01J", Phase: "loading"}))
}
