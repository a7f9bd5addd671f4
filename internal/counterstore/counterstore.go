// Package counterstore persists the three cumulative per-device counters
// (reboots, BP successes, temp successes) to one text file per serial
// (spec.md §4.3).
package counterstore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	reboutsLabel = "Reboots: "
	bpLabel      = "Successful BP tests: "
	tempLabel    = "Successful temp tests: "
)

// Counters is the triple of monotonically non-decreasing counts a Driver
// tallies across its lifetime.
type Counters struct {
	Reboots       uint64
	BPSuccesses   uint64
	TempSuccesses uint64
}

// Store loads and saves Counters to <dir>/<serial>.txt.
type Store struct {
	dir string
	log *logrus.Entry
}

// New returns a Store rooted at dir (defaulted to "output" by the
// caller's config layer), creating the directory if it does not yet
// exist.
func New(dir string, log *logrus.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("counterstore: creating output dir %s: %w", dir, err)
	}
	var entry *logrus.Entry
	if log != nil {
		entry = log.WithField("component", "counterstore")
	} else {
		entry = logrus.NewEntry(logrus.StandardLogger()).WithField("component", "counterstore")
	}
	return &Store{dir: dir, log: entry}, nil
}

func (s *Store) path(serial string) string {
	return filepath.Join(s.dir, serial+".txt")
}

// Load returns the counters for serial. If the file is absent it is
// created with zeroed counters. If present, it is parsed line by line;
// an unparseable line is warned about and leaves the corresponding
// counter at its prior (zero, on first load) value — it never fails
// the caller.
func (s *Store) Load(serial string) Counters {
	p := s.path(serial)

	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debugf("creating counter file for %s", serial)
			zero := Counters{}
			if werr := s.Save(serial, zero); werr != nil {
				s.log.Warnf("could not create counter file for %s: %v", serial, werr)
			}
			return zero
		}
		s.log.Warnf("could not open counter file for %s: %v", serial, err)
		return Counters{}
	}
	defer f.Close()

	var c Counters
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		label, rest, ok := cutLabel(line)
		if !ok {
			s.log.Warnf("unparseable line in counter file for %s: %q", serial, line)
			continue
		}
		value, err := strconv.ParseUint(strings.TrimSpace(rest), 10, 64)
		if err != nil {
			s.log.Warnf("unable to parse value %q in counter file for %s", rest, serial)
			continue
		}
		switch label {
		case reboutsLabel:
			c.Reboots = value
		case bpLabel:
			c.BPSuccesses = value
		case tempLabel:
			c.TempSuccesses = value
		default:
			s.log.Warnf("unrecognised counter label in counter file for %s: %q", serial, label)
		}
	}
	if err := scanner.Err(); err != nil {
		s.log.Warnf("error reading counter file for %s: %v", serial, err)
	}
	return c
}

// cutLabel splits a line into one of the three known labels and its
// trailing value. Each label includes its ": " separator, so a line is
// accepted only if it starts with a label exactly as written by Save.
func cutLabel(line string) (label, rest string, ok bool) {
	for _, l := range []string{reboutsLabel, bpLabel, tempLabel} {
		if strings.HasPrefix(line, l) {
			return l, line[len(l):], true
		}
	}
	return "", "", false
}

// Save rewrites the whole counter file for serial with truncation
// semantics. A write failure is logged as a warning, not returned as a
// driver-fatal error to callers that don't need to react to it — Save
// still returns the error so callers that do care (e.g. tests) can.
func (s *Store) Save(serial string, c Counters) error {
	p := s.path(serial)

	data := fmt.Sprintf("%s%d\n%s%d\n%s%d\n",
		reboutsLabel, c.Reboots,
		bpLabel, c.BPSuccesses,
		tempLabel, c.TempSuccesses,
	)

	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		s.log.Warnf("could not open counter file for %s to write: %v", serial, err)
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(data); err != nil {
		s.log.Warnf("could not write counter file for %s: %v", serial, err)
		return err
	}
	return nil
}
