package harness

import (
	"testing"

	"github.com/sirupsen/logrus"

	"seymour-harness/internal/gpio"
)

// fakeProbeDriver is a driverLike test double that reports its relay as
// running only for one designated "wired" address, so probePin's
// keep-first-active / release-the-rest logic can be exercised without
// any real TTY or GPIO hardware.
type fakeProbeDriver struct {
	wiredAddress int
	current      int
	hasRelay     bool
	released     []int
	serial       string
}

func (d *fakeProbeDriver) SetPinAddress(addr int) { d.current = addr; d.hasRelay = true }
func (d *fakeProbeDriver) HasRelay() bool         { return d.hasRelay }
func (d *fakeProbeDriver) StartTemp()             {}
func (d *fakeProbeDriver) StopTemp()              {}
func (d *fakeProbeDriver) IsTempRunning() bool    { return d.current == d.wiredAddress }
func (d *fakeProbeDriver) ReleasePinAddress() {
	d.released = append(d.released, d.current)
	d.hasRelay = false
}
func (d *fakeProbeDriver) Serial() string { return d.serial }

var _ driverLike = (*fakeProbeDriver)(nil)

func testHarnessLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(nopWriter{})
	return l
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestProbePin_KeepsFirstActiveAddress(t *testing.T) {
	registry := gpio.NewRegistry(testHarnessLogger())
	h := New(nil, registry, nil, testHarnessLogger())

	d := &fakeProbeDriver{wiredAddress: 13, serial: "DEV1"}
	h.probePin(d)

	if d.current != 13 {
		t.Errorf("kept address = %d, want 13", d.current)
	}
	if !d.hasRelay {
		t.Error("expected the wired address's relay to remain held")
	}
	for _, r := range d.released {
		if r == 13 {
			t.Error("the wired address should never be released")
		}
	}
}

func TestProbePin_NoAddressWired(t *testing.T) {
	registry := gpio.NewRegistry(testHarnessLogger())
	h := New(nil, registry, nil, testHarnessLogger())

	d := &fakeProbeDriver{wiredAddress: -1, serial: "DEV2"}
	h.probePin(d)

	if d.hasRelay {
		t.Error("expected no relay held after an exhaustive unsuccessful probe")
	}
	if len(d.released) != len(gpio.Addresses) {
		t.Errorf("released %d addresses, want %d", len(d.released), len(gpio.Addresses))
	}
}
