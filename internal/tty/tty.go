package tty

import (
	"strings"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"

	"seymour-harness/internal/response"
)

// TTY is one line-oriented, classified serial connection to a device
// under test.
type TTY struct {
	device string
	port   Port
	cfg    *Config
	glyphs response.Glyphs
	log    *logrus.Entry

	buf []byte // bytes accumulated across Read calls that didn't form a full line
}

// New wraps an already-open Port as a TTY. Open is the usual entry point
// for real hardware; New exists so tests can hand in a fake Port.
func New(device string, port Port, cfg *Config, glyphs response.Glyphs, log *logrus.Logger) *TTY {
	if cfg == nil {
		cfg = DefaultConfig(device)
	}
	var entry *logrus.Entry
	if log != nil {
		entry = log.WithField("device", device)
	} else {
		entry = logrus.NewEntry(logrus.StandardLogger()).WithField("device", device)
	}
	return &TTY{
		device: device,
		port:   port,
		cfg:    cfg,
		glyphs: glyphs,
		log:    entry,
	}
}

// NewTTY opens the real serial device at path and wraps it.
func NewTTY(device string, glyphs response.Glyphs, log *logrus.Logger) (*TTY, error) {
	cfg := DefaultConfig(device)
	port, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	return New(device, port, cfg, glyphs, log), nil
}

// Close closes the underlying port.
func (t *TTY) Close() error {
	return t.port.Close()
}

// Write renders command to its canonical CRLF-terminated byte sequence
// and writes it to the port. It blocks until all bytes are flushed and
// only fails on an underlying I/O error.
func (t *TTY) Write(command response.Command) error {
	line := t.glyphs.Render(command) + "\r\n"
	t.log.WithField("command", command).Tracef("write %q", line)
	_, err := t.port.Write([]byte(line))
	return err
}

// Read reads bytes until a non-empty line terminator is seen, the
// accumulated buffer ends with expectedSuffix (if supplied), or the
// total deadline elapses. It strips control characters, trims
// whitespace, and classifies the result.
func (t *TTY) Read(expectedSuffix *string) response.Response {
	deadline := time.Now().Add(t.cfg.TotalDeadline)
	chunk := make([]byte, 256)

	for {
		if expectedSuffix != nil && strings.HasSuffix(string(t.buf), *expectedSuffix) {
			line := t.buf
			t.buf = nil
			return t.classify(line)
		}

		if line, rest, ok := cutLine(t.buf); ok {
			t.buf = rest
			if strings.TrimSpace(stripControl(string(line))) != "" {
				return t.classify(line)
			}
			// empty line before the terminator: discard and keep reading
			continue
		}

		if !time.Now().Before(deadline) {
			break
		}

		n, err := t.port.Read(chunk)
		if n > 0 {
			t.buf = append(t.buf, chunk[:n]...)
			continue
		}
		if err != nil {
			// Treat any read error (including timeout) as "no data yet";
			// the outer deadline check above governs when we give up.
			t.log.Tracef("read error (treated as no data): %v", err)
		}
	}

	line := t.buf
	t.buf = nil
	if strings.TrimSpace(stripControl(string(line))) == "" {
		t.log.Trace("read timed out with no usable data")
		return response.Empty
	}
	return t.classify(line)
}

func (t *TTY) classify(raw []byte) response.Response {
	cleaned := strings.TrimSpace(stripControl(string(raw)))
	if cleaned == "" {
		return response.Empty
	}
	r := response.Classify(cleaned, t.glyphs)
	t.log.WithField("response", r).Tracef("classified %q", cleaned)
	return r
}

// cutLine finds the first CR or LF in buf and returns the line before it
// (exclusive of the terminator) and the remainder of buf after any
// contiguous run of CR/LF characters. ok is false if no terminator was
// found yet.
func cutLine(buf []byte) (line, rest []byte, ok bool) {
	idx := -1
	for i, b := range buf {
		if b == '\r' || b == '\n' {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, buf, false
	}
	line = buf[:idx]
	j := idx
	for j < len(buf) && (buf[j] == '\r' || buf[j] == '\n') {
		j++
	}
	return line, buf[j:], true
}

// stripControl removes non-printable control characters (other than the
// whitespace stripped by the subsequent TrimSpace) from s.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
