// Package daemon provides the long-running pieces shared by toastui and
// toastuid, currently configuration hot-reload.
package daemon
