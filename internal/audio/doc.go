// Package audio plays the optional success chime when a toast finishes
// loading. It uses the beep library for WAV, OGG and MP3 decoding.
package audio
