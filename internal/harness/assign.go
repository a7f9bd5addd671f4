package harness

import (
	"bufio"
	"io"
)

// AssignAndProbe runs spec.md §4.5 step 2 serially (operator interaction
// cannot be parallelized): dim every discovered screen, then for each
// driver — brighten it, ask the operator which serial that is, assign
// it, dim it again, then probe the registry's unassigned pin addresses
// one at a time until one causes the temperature reading to go active.
// That pin is kept (and so is already removed from the registry by
// Driver.SetPinAddress/Registry.Take); every other probed pin is
// released back to the pool before moving to the next candidate.
func (h *Harness) AssignAndProbe(in *bufio.Scanner, out io.Writer) {
	h.log.Info("dimming all screens...")
	for _, d := range h.drivers {
		d.DarkenScreen()
	}

	for _, d := range h.drivers {
		d.BrightenScreen()
		serial := PromptString(in, out, "Enter the serial of the device with the bright screen: ")
		d.SetSerial(serial)
		d.DarkenScreen()

		h.log.Debugf("number of unassigned addresses: %d", len(h.registry.Unassigned()))
		h.probePin(d)
	}
}

// probePin drives each currently-unassigned GPIO address high in turn
// and checks whether this device's temperature reading responds,
// keeping the first address that does and releasing every one that
// doesn't.
func (h *Harness) probePin(d driverLike) {
	for _, addr := range h.registry.Unassigned() {
		d.SetPinAddress(addr)
		if !d.HasRelay() {
			continue // address could not be taken (e.g. its pin did not resolve); try the next
		}
		d.StartTemp()
		if d.IsTempRunning() {
			d.StopTemp()
			h.log.Infof("address %d wired to device %s", addr, d.Serial())
			return
		}
		d.StopTemp()
		d.ReleasePinAddress()
	}
}

// driverLike is the subset of *driver.Driver's API probePin needs,
// named here so it can be exercised with a test double without
// importing the driver package's concrete TTY/relay plumbing.
type driverLike interface {
	SetPinAddress(addr int)
	HasRelay() bool
	StartTemp()
	StopTemp()
	IsTempRunning() bool
	ReleasePinAddress()
	Serial() string
}
