// Package display is the GTK4/libadwaita host for toasts. It owns the
// trigger window, the layer-shell popup that renders a toast's style, and
// a scheduler that runs toast timers on the GLib main loop.
package display
