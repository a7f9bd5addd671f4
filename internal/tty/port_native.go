package tty

import (
	"fmt"

	"github.com/tarm/serial"
)

// nativePort wraps github.com/tarm/serial for real serial device nodes.
type nativePort struct {
	port *serial.Port
}

// Open opens a real serial port using the given configuration.
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("tty: config cannot be nil")
	}

	sc := &serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	}

	p, err := serial.OpenPort(sc)
	if err != nil {
		return nil, fmt.Errorf("tty: failed to open %s: %w", cfg.Device, err)
	}

	return &nativePort{port: p}, nil
}

func (p *nativePort) Read(b []byte) (int, error) {
	return p.port.Read(b)
}

func (p *nativePort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

func (p *nativePort) Close() error {
	return p.port.Close()
}
