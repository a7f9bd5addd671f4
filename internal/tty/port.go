// Package tty implements the line-oriented, classified serial transport
// the device driver talks over: a fixed 115200 8N1 configuration, whole
// command lines out, deadline-bounded classified lines in.
package tty

import (
	"io"
	"time"
)

// Port is the minimal transport the TTY needs. Abstracting it behind an
// interface (rather than depending on *serial.Port directly) lets tests
// substitute an in-memory port and lets other backends (e.g. a mock
// device for CI) stand in for github.com/tarm/serial.
type Port interface {
	io.ReadWriteCloser
}

// Config holds the fixed serial configuration from spec.md §4.1.
type Config struct {
	// Device is the path to the serial device node.
	Device string

	// Baud is the bitrate. Fixed at 115200 for this spec.
	Baud int

	// ReadTimeout bounds a single underlying read call.
	ReadTimeout time.Duration

	// TotalDeadline bounds the cumulative time Read will spend
	// accumulating a line before giving up and returning Empty.
	TotalDeadline time.Duration
}

// DefaultConfig returns the spec-mandated 115200 8N1, ~100ms per-read,
// few-second total-deadline configuration for device.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:        device,
		Baud:          115200,
		ReadTimeout:   100 * time.Millisecond,
		TotalDeadline: 3 * time.Second,
	}
}
