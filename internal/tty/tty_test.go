package tty

import (
	"io"
	"testing"
	"time"

	"seymour-harness/internal/response"
)

// fakePort is an in-memory Port backed by a scripted sequence of reads and
// a recorder of everything written to it.
type fakePort struct {
	toRead  [][]byte
	written [][]byte
}

func (p *fakePort) Read(b []byte) (int, error) {
	if len(p.toRead) == 0 {
		return 0, nil
	}
	chunk := p.toRead[0]
	p.toRead = p.toRead[1:]
	n := copy(b, chunk)
	return n, nil
}

func (p *fakePort) Write(b []byte) (int, error) {
	cp := make([]byte, len(b))
	copy(cp, b)
	p.written = append(p.written, cp)
	return len(b), nil
}

func (p *fakePort) Close() error { return nil }

var _ Port = (*fakePort)(nil)

func testConfig() *Config {
	return &Config{
		Device:        "/dev/fake",
		Baud:          115200,
		ReadTimeout:   10 * time.Millisecond,
		TotalDeadline: 150 * time.Millisecond,
	}
}

func TestTTY_Write_RendersCanonicalLine(t *testing.T) {
	p := &fakePort{}
	tt := New("/dev/fake", p, testConfig(), response.DefaultGlyphs(), nil)

	if err := tt.Write(response.StartBP); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(p.written) != 1 {
		t.Fatalf("expected 1 write, got %d", len(p.written))
	}
	if got, want := string(p.written[0]), "b\r\n"; got != want {
		t.Errorf("rendered line = %q, want %q", got, want)
	}
}

func TestTTY_Read_ClassifiesLine(t *testing.T) {
	p := &fakePort{toRead: [][]byte{[]byte("BP is on\r\n")}}
	tt := New("/dev/fake", p, testConfig(), response.DefaultGlyphs(), nil)

	if got := tt.Read(nil); got != response.BPOn {
		t.Errorf("Read() = %v, want BPOn", got)
	}
}

func TestTTY_Read_SkipsBlankLines(t *testing.T) {
	p := &fakePort{toRead: [][]byte{[]byte("\r\n\r\nTemp OK\r\n")}}
	tt := New("/dev/fake", p, testConfig(), response.DefaultGlyphs(), nil)

	if got := tt.Read(nil); got != response.TempSuccess {
		t.Errorf("Read() = %v, want TempSuccess", got)
	}
}

func TestTTY_Read_TimesOutToEmpty(t *testing.T) {
	p := &fakePort{}
	tt := New("/dev/fake", p, testConfig(), response.DefaultGlyphs(), nil)

	start := time.Now()
	got := tt.Read(nil)
	elapsed := time.Since(start)

	if got != response.Empty {
		t.Errorf("Read() = %v, want Empty", got)
	}
	if elapsed < testConfig().TotalDeadline {
		t.Errorf("Read returned before the total deadline elapsed: %v", elapsed)
	}
}

func TestTTY_Read_ExpectedSuffix(t *testing.T) {
	p := &fakePort{toRead: [][]byte{[]byte("menu banner with no terminator [")}}
	tt := New("/dev/fake", p, testConfig(), response.DefaultGlyphs(), nil)

	suffix := "["
	if got := tt.Read(&suffix); got != response.Other {
		t.Errorf("Read() = %v, want Other", got)
	}
}

func TestCutLine(t *testing.T) {
	line, rest, ok := cutLine([]byte("abc\r\ndef"))
	if !ok {
		t.Fatal("expected ok")
	}
	if string(line) != "abc" || string(rest) != "def" {
		t.Errorf("cutLine = (%q, %q)", line, rest)
	}

	if _, _, ok := cutLine([]byte("no terminator")); ok {
		t.Error("expected not ok for line with no terminator")
	}
}

var _ io.ReadWriteCloser = (*fakePort)(nil)
