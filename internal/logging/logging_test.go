package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetup_CreatesLogDirAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := Setup(dir)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	logger.Info("hello from test")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading log dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 log file, got %d", len(entries))
	}

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected log file to contain the logged entry")
	}
}
