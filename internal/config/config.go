// Package config loads and defaults the harness's JSON configuration,
// following gopper's standalone/config pattern of unmarshal-then-
// apply-defaults so an empty or partial config still yields a fully
// spec-compliant harness.
package config

import (
	"encoding/json"
	"time"

	"seymour-harness/internal/response"
)

// HarnessConfig is the full set of tunables spec.md leaves as
// configuration: serial scan directory, output/log directories,
// per-operation timeouts, cycle counts, and the firmware glyph table.
type HarnessConfig struct {
	// SerialDir is the host directory scanned for candidate serial
	// device nodes (spec.md §6). Defaults to /dev/serial/by-path, the
	// literal path original_source/src/main.rs reads.
	SerialDir string `json:"serial_dir,omitempty"`

	// OutputDir is the counter store's root directory.
	OutputDir string `json:"output_dir,omitempty"`

	// LogDir is the directory trace-level log files are written under.
	LogDir string `json:"log_dir,omitempty"`

	// ReadTimeoutMillis bounds a single underlying serial read.
	ReadTimeoutMillis int `json:"read_timeout_millis,omitempty"`

	// TotalDeadlineMillis bounds the cumulative time a Read call spends
	// accumulating one classified line.
	TotalDeadlineMillis int `json:"total_deadline_millis,omitempty"`

	// BootWaitSeconds is the wall-clock minimum wait after a reboot
	// before the device is assumed to be back at the login prompt.
	BootWaitSeconds int `json:"boot_wait_seconds,omitempty"`

	// BPRunSeconds is the wall-clock minimum wait between starting a BP
	// cycle and sampling its running state a second time.
	BPRunSeconds int `json:"bp_run_seconds,omitempty"`

	// BPCycles and TempCycles are the default per-iteration cycle
	// counts from spec.md §4.4.
	BPCycles   int `json:"bp_cycles,omitempty"`
	TempCycles int `json:"temp_cycles,omitempty"`

	// Glyphs is the configurable command/response wire text. A nil pointer
	// (the JSON-unmarshalled zero value) is replaced wholesale by the
	// default glyph table; Glyphs is not merged field-by-field since a
	// firmware revision either speaks the default dialect or supplies
	// its own complete table.
	Glyphs *response.Glyphs `json:"glyphs,omitempty"`
}

// Load parses JSON configuration data (which may be empty) and applies
// spec-mandated defaults to every unset field.
func Load(data []byte) (*HarnessConfig, error) {
	var cfg HarnessConfig
	if len(data) > 0 {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the fully-defaulted configuration with no JSON
// override, the configuration a bare `cmd/seymour-harness` run uses.
func Default() *HarnessConfig {
	cfg := &HarnessConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *HarnessConfig) {
	if cfg.SerialDir == "" {
		cfg.SerialDir = "/dev/serial/by-path"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}
	if cfg.LogDir == "" {
		cfg.LogDir = "logs"
	}
	if cfg.ReadTimeoutMillis == 0 {
		cfg.ReadTimeoutMillis = 100
	}
	if cfg.TotalDeadlineMillis == 0 {
		cfg.TotalDeadlineMillis = 3000
	}
	if cfg.BootWaitSeconds == 0 {
		cfg.BootWaitSeconds = 60
	}
	if cfg.BPRunSeconds == 0 {
		cfg.BPRunSeconds = 75
	}
	if cfg.BPCycles == 0 {
		cfg.BPCycles = 3
	}
	if cfg.TempCycles == 0 {
		cfg.TempCycles = 2
	}
	if cfg.Glyphs == nil {
		g := response.DefaultGlyphs()
		cfg.Glyphs = &g
	}
}

// ReadTimeout returns ReadTimeoutMillis as a time.Duration.
func (c *HarnessConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutMillis) * time.Millisecond
}

// TotalDeadline returns TotalDeadlineMillis as a time.Duration.
func (c *HarnessConfig) TotalDeadline() time.Duration {
	return time.Duration(c.TotalDeadlineMillis) * time.Millisecond
}

// BootWait returns BootWaitSeconds as a time.Duration.
func (c *HarnessConfig) BootWait() time.Duration {
	return time.Duration(c.BootWaitSeconds) * time.Second
}

// BPRun returns BPRunSeconds as a time.Duration.
func (c *HarnessConfig) BPRun() time.Duration {
	return time.Duration(c.BPRunSeconds) * time.Second
}
