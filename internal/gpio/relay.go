package gpio

import "periph.io/x/conn/v3/gpio"

// Relay wraps one GPIO pin configured as a push-pull output, used to
// physically trigger the temperature sensor circuit. It is exclusively
// owned by at most one Driver; returning it via Registry.Release is the
// only way to re-enable allocation of its address.
type Relay struct {
	address  int
	pin      pin
	registry *Registry
}

// Address returns the pin address this relay is bound to.
func (r *Relay) Address() int {
	return r.address
}

// High drives the relay pin high.
func (r *Relay) High() error {
	return r.pin.Out(gpio.High)
}

// Low drives the relay pin low.
func (r *Relay) Low() error {
	return r.pin.Out(gpio.Low)
}
