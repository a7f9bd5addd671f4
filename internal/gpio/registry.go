// Package gpio implements the process-wide relay pin registry: a fixed
// inventory of ten addresses, handed out as exclusively-owned Relays and
// reclaimed on release (spec.md §4.2).
package gpio

import (
	"sync"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/host/v3"
)

// Addresses is the fixed inventory of relay pin addresses.
var Addresses = []int{4, 5, 6, 12, 13, 17, 18, 19, 20, 26}

// Registry is a pool of relay pin addresses shared by the drivers that
// hold it. Each NewRegistry call returns a separate pool with the full
// inventory; only the periph host initialisation behind it runs once per
// process. Take and Release are mutually exclusive across goroutines;
// two concurrent Take calls for the same address never both succeed.
type Registry struct {
	mu         sync.Mutex
	unassigned map[int]bool
	pins       map[int]pin // resolved lazily per address; nil entry means unresolved
	log        *logrus.Entry
	hostReady  bool
	resolve    func(address int) (pin, error)
}

var (
	initOnce sync.Once
	initErr  error
)

// NewRegistry constructs a Registry seeded with the full fixed inventory
// of addresses. GPIO host initialization failure is logged as a warning,
// not fatal — a Registry whose pins can't be resolved simply never
// succeeds a Take, per spec.md §7.
func NewRegistry(log *logrus.Logger) *Registry {
	initOnce.Do(func() {
		_, initErr = host.Init()
	})

	var entry *logrus.Entry
	if log != nil {
		entry = log.WithField("component", "gpio")
	} else {
		entry = logrus.NewEntry(logrus.StandardLogger()).WithField("component", "gpio")
	}

	r := &Registry{
		unassigned: make(map[int]bool, len(Addresses)),
		pins:       make(map[int]pin, len(Addresses)),
		log:        entry,
		hostReady:  initErr == nil,
		resolve:    resolvePin,
	}
	if initErr != nil {
		entry.Warnf("periph host init failed, GPIO relays unavailable: %v", initErr)
	}
	for _, a := range Addresses {
		r.unassigned[a] = true
	}
	return r
}

// Take removes address from the unassigned set and returns a Relay bound
// to it, configured as an output driven low. It returns (nil, false) if
// address is not currently unassigned, or if the underlying pin cannot
// be resolved/configured (e.g. no GPIO controller present).
func (r *Registry) Take(address int) (*Relay, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.unassigned[address] {
		return nil, false
	}

	p, ok := r.pins[address]
	if !ok {
		resolved, err := r.resolve(address)
		if err != nil {
			r.log.Warnf("take(%d): %v", address, err)
			return nil, false
		}
		p = resolved
		r.pins[address] = p
	}

	delete(r.unassigned, address)
	r.log.Debugf("took relay at address %d", address)
	return &Relay{address: address, pin: p, registry: r}, true
}

// Release restores address to the unassigned set and drives the pin low
// before releasing it. It is the only way to re-enable allocation of
// that address.
func (r *Registry) Release(relay *Relay) {
	if relay == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if relay.pin != nil {
		if err := relay.pin.Out(gpio.Low); err != nil {
			r.log.Warnf("release(%d): failed to drive pin low: %v", relay.address, err)
		}
	}
	r.unassigned[relay.address] = true
	r.log.Debugf("released relay at address %d", relay.address)
}

// Unassigned returns a snapshot of the currently unassigned addresses.
// Order is unspecified — per spec.md §4.2, ordering among addresses is
// irrelevant.
func (r *Registry) Unassigned() []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, 0, len(r.unassigned))
	for a := range r.unassigned {
		out = append(out, a)
	}
	return out
}
