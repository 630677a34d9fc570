// Package theme loads the GTK stylesheet for toast popups. The bundled
// themes share one keyframes partial that is parsed once when the theme is
// loaded at startup.
package theme
