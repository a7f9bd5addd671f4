// Package harness implements the top-level orchestration from spec.md
// §4.5: parallel port discovery, serial operator assignment and pin
// probing, and the worker-per-driver test-cycle pool. It is modeled on
// original_source/src/main.rs's discovery/assignment/run flow and on
// gopper's host/cmd/gopper-host interactive-CLI shape.
package harness

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"seymour-harness/internal/config"
	"seymour-harness/internal/counterstore"
	"seymour-harness/internal/driver"
	"seymour-harness/internal/gpio"
	"seymour-harness/internal/response"
	"seymour-harness/internal/tty"
)

// Harness owns the shared registry/store and the set of Drivers
// discovered for the current run.
type Harness struct {
	cfg      *config.HarnessConfig
	registry *gpio.Registry
	store    *counterstore.Store
	log      *logrus.Entry

	drivers []*driver.Driver
}

// New constructs a Harness. registry and store are shared across every
// discovered Driver.
func New(cfg *config.HarnessConfig, registry *gpio.Registry, store *counterstore.Store, log *logrus.Logger) *Harness {
	var entry *logrus.Entry
	if log != nil {
		entry = log.WithField("component", "harness")
	} else {
		entry = logrus.NewEntry(logrus.StandardLogger()).WithField("component", "harness")
	}
	return &Harness{cfg: cfg, registry: registry, store: store, log: entry}
}

// Drivers returns the set of Drivers discovered so far.
func (h *Harness) Drivers() []*driver.Driver {
	return h.drivers
}

// Discover scans the configured serial directory, probing every
// candidate entry in its own goroutine and joining results via a
// WaitGroup — the direct Go idiom for original_source's
// thread::spawn+.join() loop. A candidate is accepted as a Driver only
// if writing a Newline and reading for a ":" suffix yields a non-Empty
// response.
func (h *Harness) Discover() error {
	entries, err := os.ReadDir(h.cfg.SerialDir)
	if err != nil {
		h.log.Errorf("invalid serial device directory %s: %v", h.cfg.SerialDir, err)
		return err
	}

	results := make([]*driver.Driver, len(entries))
	var wg sync.WaitGroup
	for i, e := range entries {
		i, e := i, e
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = h.probe(filepath.Join(h.cfg.SerialDir, e.Name()))
		}()
	}
	wg.Wait()

	h.drivers = h.drivers[:0]
	for _, d := range results {
		if d != nil {
			h.drivers = append(h.drivers, d)
		}
	}
	h.log.Infof("number of devices detected: %d", len(h.drivers))
	return nil
}

// probe opens one candidate device path and, if it responds to a
// Newline with anything but Empty, constructs a Driver around it. A
// construction or open failure drops the candidate and returns nil —
// other candidates proceed (spec.md §7).
func (h *Harness) probe(devicePath string) *driver.Driver {
	h.log.Infof("testing port %s, this may take a moment...", devicePath)

	tcfg := tty.DefaultConfig(devicePath)
	tcfg.ReadTimeout = h.cfg.ReadTimeout()
	tcfg.TotalDeadline = h.cfg.TotalDeadline()
	port, err := tty.Open(tcfg)
	if err != nil {
		h.log.Debugf("could not open %s: %v", devicePath, err)
		return nil
	}
	t := tty.New(devicePath, port, tcfg, *h.cfg.Glyphs, h.log.Logger)

	if err := t.Write(response.Newline); err != nil {
		h.log.Debugf("could not write to %s: %v", devicePath, err)
		t.Close()
		return nil
	}
	expect := ":"
	r := t.Read(&expect)
	if r == response.Empty {
		t.Close()
		return nil
	}

	h.log.Debugf("%s is a valid port", devicePath)
	return driver.New(t, h.registry, h.store, h.cfg, h.log.Logger, r)
}
