package display

import (
	"log/slog"
	"unsafe"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/toastui/internal/config"
)

// Anchors are the layer-shell edges and margins for a popup position.
type Anchors struct {
	Top, Bottom, Left, Right bool

	MarginTop, MarginBottom, MarginLeft, MarginRight int
}

// AnchorsFor maps a screen corner onto layer-shell anchors. Centered
// positions anchor only the vertical edge, which centers horizontally.
func AnchorsFor(pos config.Position, offsetX, offsetY int) Anchors {
	var a Anchors
	if pos.IsBottom() {
		a.Bottom, a.MarginBottom = true, offsetY
	} else {
		a.Top, a.MarginTop = true, offsetY
	}

	switch pos {
	case config.PositionTopLeft, config.PositionBottomLeft:
		a.Left, a.MarginLeft = true, offsetX
	case config.PositionTopRight, config.PositionBottomRight:
		a.Right, a.MarginRight = true, offsetX
	}
	return a
}

// LayoutManager picks the monitor popups appear on.
type LayoutManager struct {
	config  *config.Config
	display *gdk.Display
	logger  *slog.Logger
}

// NewLayoutManager creates a new layout manager.
func NewLayoutManager(cfg *config.Config, logger *slog.Logger) *LayoutManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &LayoutManager{
		config:  cfg,
		display: gdk.DisplayGetDefault(),
		logger:  logger,
	}
}

// UpdateConfig swaps the config used for monitor selection.
func (l *LayoutManager) UpdateConfig(cfg *config.Config) {
	l.config = cfg
}

// GetMonitor returns the configured monitor, or nil to let the compositor
// choose. Out of range values fall back to the first monitor.
func (l *LayoutManager) GetMonitor() *gdk.Monitor {
	if l.display == nil {
		return nil
	}

	monitorNum := l.config.Display.Monitor
	if monitorNum == 0 {
		return nil
	}

	monitors := l.display.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		l.logger.Warn("no monitors list available")
		return nil
	}

	index := uint(monitorNum - 1)
	if index >= monitors.NItems() {
		l.logger.Warn("configured monitor not available, using first",
			"configured", monitorNum,
			"available", monitors.NItems(),
		)
		index = 0
	}

	return wrapMonitor(monitors.Item(index))
}

// wrapMonitor wraps a list item as a gdk.Monitor. gotk4 keeps its own
// wrapper unexported, and gdk.Monitor is a struct holding only the object.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}

// SetMonitor places a layer-shell window on monitor. A nil monitor is left
// to the compositor.
func (l *LayoutManager) SetMonitor(window *gtk.Window, monitor *gdk.Monitor) {
	if monitor == nil {
		return
	}
	layershell.SetMonitor(window, monitor)
}
