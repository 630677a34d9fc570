package display

import (
	"log/slog"
	"slices"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/toast"
)

// stateClasses are the classes Apply toggles on the toast box.
var stateClasses = []string{"loading", "success", "shown", "hidden"}

// Popup is the layer-shell window that renders one toast.
type Popup struct {
	window *gtk.Window
	config *config.Config
	logger *slog.Logger

	box       *gtk.Box
	iconSlot  *gtk.Box
	spinner   *gtk.Box
	checkmark *gtk.Label
	textLbl   *gtk.Label

	icon   toast.Icon
	closed bool
}

// NewPopup creates the popup window for a toast. The box starts in the
// hidden pose so the first Apply slides it in.
func NewPopup(app *gtk.Application, cfg *config.Config, layout *LayoutManager, logger *slog.Logger) *Popup {
	if logger == nil {
		logger = slog.Default()
	}

	p := &Popup{
		config: cfg,
		logger: logger,
		icon:   toast.IconSpinner,
	}

	p.window = gtk.NewWindow()
	p.window.SetApplication(app)
	p.window.SetDecorated(false)
	p.window.SetResizable(false)
	p.window.AddCSSClass("toast-window")
	p.window.SetDefaultSize(cfg.Display.Width, -1)

	layershell.InitForWindow(p.window)
	layershell.SetLayer(p.window, layershell.LayerShellLayerOverlay)
	layershell.SetExclusiveZone(p.window, 0)
	layershell.SetKeyboardMode(p.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(p.window, "toastui-toast")
	if layout != nil {
		layout.SetMonitor(p.window, layout.GetMonitor())
	}

	p.buildUI()
	p.applyAnchors()
	p.setClasses(toast.StyleFor(toast.State{Loading: true}, "").Classes)
	return p
}

// buildUI constructs the toast widget hierarchy.
func (p *Popup) buildUI() {
	p.box = gtk.NewBox(gtk.OrientationHorizontal, 10)
	p.box.AddCSSClass(colorSchemeClass(p.config))
	if !config.Position(p.config.Display.Position).IsBottom() {
		p.box.AddCSSClass("top")
	}

	p.iconSlot = gtk.NewBox(gtk.OrientationHorizontal, 0)
	p.iconSlot.SetVAlign(gtk.AlignCenter)

	p.spinner = gtk.NewBox(gtk.OrientationHorizontal, 0)
	p.spinner.AddCSSClass("toast-spinner")
	p.iconSlot.Append(p.spinner)

	p.textLbl = gtk.NewLabel(toast.LoadingText)
	p.textLbl.AddCSSClass("toast-text")
	p.textLbl.SetXAlign(0)
	p.textLbl.SetWrap(true)
	p.textLbl.SetHExpand(true)

	p.box.Append(p.iconSlot)
	p.box.Append(p.textLbl)
	p.window.SetChild(p.box)
}

// Apply renders a style. Swapping to the checkmark creates a fresh label
// so its keyframe animation starts from the beginning.
func (p *Popup) Apply(style toast.Style) {
	if p.closed {
		return
	}
	p.setClasses(style.Classes)
	p.textLbl.SetText(style.Text)

	if style.Icon == p.icon {
		return
	}
	p.icon = style.Icon
	switch style.Icon {
	case toast.IconCheckmark:
		p.iconSlot.Remove(p.spinner)
		p.checkmark = gtk.NewLabel("✓")
		p.checkmark.AddCSSClass("toast-checkmark")
		p.iconSlot.Append(p.checkmark)
	case toast.IconSpinner:
		if p.checkmark != nil {
			p.iconSlot.Remove(p.checkmark)
			p.checkmark = nil
		}
		p.iconSlot.Append(p.spinner)
	}
}

// setClasses replaces the state classes on the toast box.
func (p *Popup) setClasses(classes []string) {
	for _, c := range stateClasses {
		if slices.Contains(classes, c) {
			p.box.AddCSSClass(c)
		} else {
			p.box.RemoveCSSClass(c)
		}
	}
	p.box.AddCSSClass("toast")
}

// Show presents the popup.
func (p *Popup) Show() {
	p.window.Present()
}

// Close closes the popup.
func (p *Popup) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.window.Close()
}

// UpdateConfig re-anchors the popup after a config reload.
func (p *Popup) UpdateConfig(cfg *config.Config) {
	p.config = cfg
	p.applyAnchors()
}

// applyAnchors sets the layer-shell anchors and margins from config.
func (p *Popup) applyAnchors() {
	a := AnchorsFor(config.Position(p.config.Display.Position), p.config.Display.OffsetX, p.config.Display.OffsetY)

	layershell.SetAnchor(p.window, layershell.LayerShellEdgeTop, a.Top)
	layershell.SetAnchor(p.window, layershell.LayerShellEdgeBottom, a.Bottom)
	layershell.SetAnchor(p.window, layershell.LayerShellEdgeLeft, a.Left)
	layershell.SetAnchor(p.window, layershell.LayerShellEdgeRight, a.Right)

	layershell.SetMargin(p.window, layershell.LayerShellEdgeTop, a.MarginTop)
	layershell.SetMargin(p.window, layershell.LayerShellEdgeBottom, a.MarginBottom)
	layershell.SetMargin(p.window, layershell.LayerShellEdgeLeft, a.MarginLeft)
	layershell.SetMargin(p.window, layershell.LayerShellEdgeRight, a.MarginRight)
}

// colorSchemeClass returns "light" or "dark" based on config or the
// libadwaita style manager.
func colorSchemeClass(cfg *config.Config) string {
	switch config.ColorScheme(cfg.Theme.ColorScheme) {
	case config.ColorSchemeLight:
		return "light"
	case config.ColorSchemeDark:
		return "dark"
	default:
		if adw.StyleManagerGetDefault().Dark() {
			return "dark"
		}
		return "light"
	}
}
