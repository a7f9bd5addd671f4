// Command seymour-harness runs the device life-cycle test harness:
// discover candidate serial devices, have the operator assign each its
// serial and a GPIO temperature-relay pin, then run the requested
// number of test-cycle iterations against every discovered device.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"seymour-harness/internal/config"
	"seymour-harness/internal/counterstore"
	"seymour-harness/internal/gpio"
	"seymour-harness/internal/harness"
	"seymour-harness/internal/logging"
)

// Version is surfaced in the startup log line, matching
// original_source/src/main.rs's VERSION constant.
const Version = "2.0.1"

var configPath = flag.String("config", "", "Path to a JSON harness configuration file (optional)")

func main() {
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seymour-harness: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.Setup(cfg.LogDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seymour-harness: %v\n", err)
		os.Exit(1)
	}
	log.Infof("Seymour Life Testing version: %s", Version)

	store, err := counterstore.New(cfg.OutputDir, log)
	if err != nil {
		log.Fatalf("could not initialise counter store: %v", err)
	}

	registry := gpio.NewRegistry(log)
	h := harness.New(cfg, registry, store, log)

	if err := h.Discover(); err != nil {
		log.Errorf("invalid serial location! please make sure %s exists: %v", cfg.SerialDir, err)
		os.Exit(1)
	}

	stdin := bufio.NewScanner(os.Stdin)
	h.AssignAndProbe(stdin, os.Stdout)

	iterations := harness.PromptIterationCount(stdin, os.Stdout, "Enter the number of iterations to complete: ")

	h.Run(iterations, cfg.BPCycles, cfg.TempCycles)
}

func loadConfig(path string) (*config.HarnessConfig, error) {
	if path == "" {
		return config.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return config.Load(data)
}
