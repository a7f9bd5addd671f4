package harness

import "sync"

// Run spawns one worker goroutine per discovered Driver, each running
// TestCycle iterations times, and blocks until every worker finishes.
// A panic inside one worker is recovered and logged, isolating the
// failure to that driver rather than crashing the whole harness
// (spec.md §5/§7).
func (h *Harness) Run(iterations, bpCycles, tempCycles int) {
	var wg sync.WaitGroup
	for _, d := range h.drivers {
		d := d
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					h.log.WithField("serial", d.Serial()).Errorf("worker panicked: %v", r)
				}
			}()
			for i := 1; i <= iterations; i++ {
				h.log.Infof("starting iteration %d of %d for device %s...", i, iterations, d.Serial())
				d.TestCycle(bpCycles, tempCycles)
			}
		}()
	}
	wg.Wait()
}
