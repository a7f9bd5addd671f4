// Package driver implements the per-device menu-navigation state
// machine: THE core of this harness. A Driver owns one TTY, optionally
// one GPIO Relay, and the cumulative counters for whatever serial is
// currently assigned to it (spec.md §4.4).
package driver

import (
	"time"

	"github.com/sirupsen/logrus"

	"seymour-harness/internal/config"
	"seymour-harness/internal/counterstore"
	"seymour-harness/internal/gpio"
	"seymour-harness/internal/response"
	"seymour-harness/internal/tty"
)

// UninitialisedSerial is the sentinel serial a Driver carries before
// SetSerial is first called. Supplemented from
// original_source/src/device.rs's UNINITIALISED_SERIAL constant; no
// counter file is created for it, since spec.md's lifecycle statement
// says the Counter Store file is created lazily on first successful
// SetSerial, not at construction.
const UninitialisedSerial = "uninitialised"

// maxIgnorableReads bounds how many non-definitive responses
// IsBPRunning/IsTempRunning will tolerate before giving up and
// returning false, so a wedged or miswired line terminates rather than
// looping forever (spec.md §9 Open Question 3 reconciliation).
const maxIgnorableReads = 5

// Driver is one device under test's menu-navigation state machine.
type Driver struct {
	tty      *tty.TTY
	registry *gpio.Registry
	relay    *gpio.Relay
	store    *counterstore.Store
	cfg      *config.HarnessConfig
	log      *logrus.Entry

	serial   string
	state    MenuState
	counters counterstore.Counters
}

// New constructs a Driver around an already-connected TTY, inferring its
// initial MenuState from first, the Response already observed for this
// device during discovery (spec.md §4.4's initial-state table). Taking
// the observed Response as a parameter — rather than reading a fresh
// one — mirrors original_source/src/device.rs's Device::new(port,
// response), which reuses the discovery probe's response instead of
// consuming a second line from the device. The returned Driver's serial
// is UninitialisedSerial until SetSerial is called.
func New(t *tty.TTY, registry *gpio.Registry, store *counterstore.Store, cfg *config.HarnessConfig, log *logrus.Logger, first response.Response) *Driver {
	var entry *logrus.Entry
	if log != nil {
		entry = log.WithField("component", "driver")
	} else {
		entry = logrus.NewEntry(logrus.StandardLogger()).WithField("component", "driver")
	}

	d := &Driver{
		tty:      t,
		registry: registry,
		store:    store,
		cfg:      cfg,
		log:      entry,
		serial:   UninitialisedSerial,
	}

	d.state = d.inferInitialState(first)
	d.log.WithField("first_response", first).Infof("inferred initial state %s", d.state)
	return d
}

// inferInitialState implements spec.md §4.4's initial-state table.
func (d *Driver) inferInitialState(first response.Response) MenuState {
	switch first {
	case response.PasswordPrompt:
		d.write(response.Newline)
		d.tty.Read(nil)
		return LoginPrompt
	case response.DebugMenuReady, response.DebugMenuWithContinuedMessage:
		return DebugMenu
	case response.BPOn, response.BPOff, response.TempSuccess, response.TempFailed:
		return LifecycleMenu
	default:
		// LoginPrompt, ShellPrompt, Other, Empty, Rebooting all land here.
		return LoginPrompt
	}
}

func (d *Driver) write(c response.Command) {
	if err := d.tty.Write(c); err != nil {
		d.log.Warnf("write %s: %v", c, err)
	}
}

// drain reads and discards exactly one response, logging it.
func (d *Driver) drain() response.Response {
	r := d.tty.Read(nil)
	d.log.WithField("response", r).Trace("drained")
	return r
}

// step applies one transition row of spec.md §4.4's table that moves
// strictly closer to target, updating d.state. It assumes d.state !=
// target.
func (d *Driver) step(target MenuState) {
	if target == LoginPrompt {
		d.write(response.Quit)
		d.drain()
		d.state = LoginPrompt
		d.counters.Reboots++
		d.persist()
		return
	}

	if d.state == LoginPrompt {
		d.write(response.Login)
		d.drain()
		d.write(response.DebugMenu)
		d.drain()
		d.state = DebugMenu
		return
	}

	if menuOrder[target] > menuOrder[d.state] {
		fs := forward[d.state]
		d.write(fs.cmd)
		d.drain()
		d.state = fs.next
		return
	}

	d.write(response.UpMenuLevel)
	d.drain()
	d.state = backward[d.state]
}

// goTo drives the menu state machine to target, one step at a time,
// terminating in at most 3 transitions per spec.md §4.4/§8 invariant 6.
func (d *Driver) goTo(target MenuState) {
	for d.state != target {
		d.step(target)
	}
}

// persist rewrites the counter file for the driver's current serial.
// It is a no-op while the serial is still UninitialisedSerial, since no
// counter file exists for that sentinel key.
func (d *Driver) persist() {
	if d.serial == UninitialisedSerial {
		return
	}
	if err := d.store.Save(d.serial, d.counters); err != nil {
		d.log.Warnf("persisting counters for %s: %v", d.serial, err)
	}
}

// SetSerial replaces the driver's serial, then loads and immediately
// re-saves the Counter Store entry for the new key (spec.md §4.4).
func (d *Driver) SetSerial(serial string) {
	d.serial = serial
	d.counters = d.store.Load(serial)
	d.persist()
	d.log.WithField("serial", serial).Info("serial assigned")
}

// Serial returns the driver's currently assigned serial.
func (d *Driver) Serial() string {
	return d.serial
}

// State returns the driver's current belief about the on-device menu.
func (d *Driver) State() MenuState {
	return d.state
}

// Counters returns a snapshot of the driver's cumulative counters.
func (d *Driver) Counters() counterstore.Counters {
	return d.counters
}

// SetPinAddress takes a relay at addr from the GPIO Registry. On
// failure it logs a warning and leaves the driver with no relay, so
// temperature operations remain defined no-ops (spec.md §7).
func (d *Driver) SetPinAddress(addr int) {
	relay, ok := d.registry.Take(addr)
	if !ok {
		d.log.Warnf("could not take relay at address %d", addr)
		return
	}
	d.relay = relay
	d.log.WithField("address", addr).Info("relay assigned")
}

// ReleasePinAddress returns the driver's currently held relay (if any)
// to the GPIO Registry, leaving temperature operations as no-ops again.
// Used by the harness's pin-probing loop to undo a speculative
// SetPinAddress when the probed address turns out not to be wired to
// this device (spec.md §4.5 step 2).
func (d *Driver) ReleasePinAddress() {
	if d.relay == nil {
		return
	}
	d.registry.Release(d.relay)
	d.relay = nil
}

// HasRelay reports whether the driver currently holds a GPIO relay.
func (d *Driver) HasRelay() bool {
	return d.relay != nil
}

// StartBP enters LifecycleMenu and issues StartBP.
func (d *Driver) StartBP() {
	d.goTo(LifecycleMenu)
	d.write(response.StartBP)
	d.drain()
}

// IsBPRunning enters LifecycleMenu, issues CheckBPState, and loops on
// responses until a definitive BPOn/BPOff, ignoring the documented
// DebugMenuWithContinuedMessage noise. Any other response counts
// against a bounded retry budget; exhausting it returns false (spec.md
// §9 Open Question 3 reconciliation).
func (d *Driver) IsBPRunning() bool {
	d.goTo(LifecycleMenu)
	d.write(response.CheckBPState)

	ignored := 0
	for {
		r := d.drain()
		switch r {
		case response.BPOn:
			return true
		case response.BPOff:
			return false
		case response.DebugMenuWithContinuedMessage:
			continue
		default:
			ignored++
			if ignored >= maxIgnorableReads {
				return false
			}
		}
	}
}

// StartTemp drives the owned relay high. Absent a relay, this is a
// no-op with a warning.
func (d *Driver) StartTemp() {
	if d.relay == nil {
		d.log.Warn("start_temp: no relay assigned")
		return
	}
	if err := d.relay.High(); err != nil {
		d.log.Warnf("start_temp: %v", err)
	}
}

// StopTemp drives the owned relay low. Absent a relay, this is a no-op
// with a warning.
func (d *Driver) StopTemp() {
	if d.relay == nil {
		d.log.Warn("stop_temp: no relay assigned")
		return
	}
	if err := d.relay.Low(); err != nil {
		d.log.Warnf("stop_temp: %v", err)
	}
}

// IsTempRunning enters LifecycleMenu, issues ReadTemp, and loops on
// responses until the first TempSuccess (true) or TempFailed (false).
// Other responses are ignored up to the same bounded retry budget
// IsBPRunning uses, reconciling the two operations to one policy.
func (d *Driver) IsTempRunning() bool {
	d.goTo(LifecycleMenu)
	d.write(response.ReadTemp)

	ignored := 0
	for {
		r := d.drain()
		switch r {
		case response.TempSuccess:
			return true
		case response.TempFailed:
			return false
		default:
			ignored++
			if ignored >= maxIgnorableReads {
				return false
			}
		}
	}
}

// DarkenScreen enters BrightnessMenu and sets brightness low.
func (d *Driver) DarkenScreen() {
	d.goTo(BrightnessMenu)
	d.write(response.BrightnessLow)
	d.drain()
}

// BrightenScreen enters BrightnessMenu and sets brightness high.
func (d *Driver) BrightenScreen() {
	d.goTo(BrightnessMenu)
	d.write(response.BrightnessHigh)
	d.drain()
}

// Reboot drives the driver back to LoginPrompt, which implicitly
// increments the reboot counter exactly once, at the Quit transition
// (spec.md §9 Open Question 2 reconciliation: the sole canonical
// increment site).
func (d *Driver) Reboot() {
	d.goTo(LoginPrompt)
}

// TestCycle runs the five-step life-cycle test sequence from spec.md
// §4.4: reboot and wait for boot, drain the debug-menu banner, run
// bpCycles BP stimulus/observe rounds, run tempCycles relay
// stimulus/observe rounds, then reboot again.
func (d *Driver) TestCycle(bpCycles, tempCycles int) {
	d.log.WithField("serial", d.serial).Info("starting test cycle")

	d.Reboot()
	time.Sleep(d.cfg.BootWait())

	d.goTo(LifecycleMenu)
	bannerEnd := "["
	d.tty.Read(&bannerEnd)

	for i := 0; i < bpCycles; i++ {
		before := d.IsBPRunning()
		d.StartBP()
		time.Sleep(d.cfg.BPRun())
		after := d.IsBPRunning()
		if before != after {
			d.counters.BPSuccesses++
			d.persist()
		}
		d.log.WithFields(logrus.Fields{
			"cycle": i, "before": before, "after": after,
		}).Info("bp cycle complete")
	}

	for i := 0; i < tempCycles; i++ {
		d.StartTemp()
		before := d.IsTempRunning()
		d.StopTemp()
		after := d.IsTempRunning()
		if before != after {
			d.counters.TempSuccesses++
			d.persist()
		}
		d.log.WithFields(logrus.Fields{
			"cycle": i, "before": before, "after": after,
		}).Info("temp cycle complete")
	}

	d.Reboot()
	d.log.WithField("serial", d.serial).Info("test cycle complete")
}
