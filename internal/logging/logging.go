// Package logging wires up the two-sink log setup from spec.md §6: a
// trace-level file under logs/<YYYY-MM-DD_HH.MM>.log and an info-level
// mirror to stdout, modeled on original_source/src/main.rs's
// fern::Dispatch two-chain setup.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// stdoutHook re-emits any entry at or above InfoLevel to stdout, while
// the base logger (at TraceLevel) writes everything to the log file.
// This mirrors fern's two independent dispatch chains without needing a
// second *logrus.Logger (and the duplicate field/formatter setup that
// would require).
type stdoutHook struct {
	out       io.Writer
	formatter logrus.Formatter
}

func (h *stdoutHook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel,
		logrus.WarnLevel, logrus.InfoLevel,
	}
}

func (h *stdoutHook) Fire(e *logrus.Entry) error {
	line, err := h.formatter.Format(e)
	if err != nil {
		return err
	}
	_, err = h.out.Write(line)
	return err
}

// Setup creates logDir if needed, opens a timestamped trace-level log
// file, and returns a *logrus.Logger that writes every entry to that
// file while mirroring InfoLevel-and-above to stdout.
func Setup(logDir string) (*logrus.Logger, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: creating log dir %s: %w", logDir, err)
	}

	name := time.Now().Format("2006-01-02_15.04") + ".log"
	f, err := os.Create(filepath.Join(logDir, name))
	if err != nil {
		return nil, fmt.Errorf("logging: creating log file: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(f)
	logger.SetLevel(logrus.TraceLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logger.AddHook(&stdoutHook{
		out: os.Stdout,
		formatter: &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		},
	})

	return logger, nil
}
