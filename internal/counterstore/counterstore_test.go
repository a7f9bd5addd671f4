package counterstore

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoad_FreshSerial is scenario S1 from spec.md §8.
func TestLoad_FreshSerial(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c := s.Load("ABC123")
	if c != (Counters{}) {
		t.Fatalf("Load of fresh serial = %+v, want zero", c)
	}

	data, err := os.ReadFile(filepath.Join(dir, "ABC123.txt"))
	if err != nil {
		t.Fatalf("reading created file: %v", err)
	}
	want := "Reboots: 0\nSuccessful BP tests: 0\nSuccessful temp tests: 0\n"
	if string(data) != want {
		t.Errorf("file contents = %q, want %q", data, want)
	}
}

// TestLoad_SeededSerial is scenario S2 from spec.md §8.
func TestLoad_SeededSerial(t *testing.T) {
	dir := t.TempDir()
	seed := "Reboots: 7\nSuccessful BP tests: 2\nSuccessful temp tests: 5\n"
	if err := os.WriteFile(filepath.Join(dir, "X.txt"), []byte(seed), 0o644); err != nil {
		t.Fatalf("seeding file: %v", err)
	}

	s, err := New(dir, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c := s.Load("X")
	want := Counters{Reboots: 7, BPSuccesses: 2, TempSuccesses: 5}
	if c != want {
		t.Errorf("Load(X) = %+v, want %+v", c, want)
	}
}

// TestSaveLoadRoundTrip is invariant 3 from spec.md §8.
func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := Counters{Reboots: 41, BPSuccesses: 9, TempSuccesses: 3}
	if err := s.Save("ROUNDTRIP", want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := s.Load("ROUNDTRIP")
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoad_ToleratesUnparseableLines(t *testing.T) {
	dir := t.TempDir()
	seed := "Reboots: notanumber\nSuccessful BP tests: 3\nbogus line with no label\nSuccessful temp tests: 1\n"
	if err := os.WriteFile(filepath.Join(dir, "Y.txt"), []byte(seed), 0o644); err != nil {
		t.Fatalf("seeding file: %v", err)
	}

	s, err := New(dir, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := s.Load("Y")
	want := Counters{Reboots: 0, BPSuccesses: 3, TempSuccesses: 1}
	if got != want {
		t.Errorf("Load(Y) = %+v, want %+v (bad lines should leave prior values)", got, want)
	}
}
