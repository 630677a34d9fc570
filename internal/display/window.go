package display

import (
	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// Host window text.
const (
	WindowTitle  = "Toast Notification Demo"
	TriggerLabel = "Show Toast Notification"
)

// HostWindow is the trigger surface: a heading and one button.
type HostWindow struct {
	window  *adw.ApplicationWindow
	trigger *gtk.Button
}

// NewHostWindow builds the window. onTrigger runs on every click.
func NewHostWindow(app *gtk.Application, onTrigger func(), onClose func()) *HostWindow {
	w := &HostWindow{
		window: adw.NewApplicationWindow(app),
	}
	w.window.SetTitle(WindowTitle)
	w.window.SetDefaultSize(480, 320)

	content := gtk.NewBox(gtk.OrientationVertical, 0)
	content.Append(adw.NewHeaderBar())

	body := gtk.NewBox(gtk.OrientationVertical, 24)
	body.SetVExpand(true)
	body.SetHAlign(gtk.AlignCenter)
	body.SetVAlign(gtk.AlignCenter)

	heading := gtk.NewLabel(WindowTitle)
	heading.AddCSSClass("host-title")
	body.Append(heading)

	w.trigger = gtk.NewButtonWithLabel(TriggerLabel)
	w.trigger.AddCSSClass("host-trigger")
	w.trigger.SetHAlign(gtk.AlignCenter)
	w.trigger.ConnectClicked(onTrigger)
	body.Append(w.trigger)

	content.Append(body)
	w.window.SetContent(content)

	w.window.ConnectCloseRequest(func() bool {
		if onClose != nil {
			onClose()
		}
		return false
	})
	return w
}

// Present shows the window.
func (w *HostWindow) Present() {
	w.window.Present()
}

// Close closes the window.
func (w *HostWindow) Close() {
	w.window.Close()
}
