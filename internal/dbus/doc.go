// Package dbus exports the toast trigger service on the session bus and
// provides the client used by the toastui CLI.
package dbus
