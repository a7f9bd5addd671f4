package gpio

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// pin is the minimal hardware surface the registry and Relay need. It is
// satisfied by a real periph.io gpio.PinIO and, in tests, by a fake that
// records level writes — the same split gopper's GPIODriver interface
// draws between core logic and a concrete hardware backend.
type pin interface {
	Out(level gpio.Level) error
	String() string
}

// resolvePin looks up the real host GPIO pin for address via periph's
// global pin registry (gpioreg), configuring it as a push-pull output
// driven low, per spec.md §4.2.
func resolvePin(address int) (pin, error) {
	name := fmt.Sprintf("GPIO%d", address)
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("gpio: no such pin %s", name)
	}
	if err := p.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("gpio: configuring %s as output: %w", name, err)
	}
	return p, nil
}
