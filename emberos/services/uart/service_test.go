package uart

import (
	"context"
	"io"
	"strings"
	"testing"

	"ember/emberos/kernel"
	"ember/hal"
)

type lineSerial struct {
	r io.Reader
}

func (s *lineSerial) Read(p []byte) (int, error) {
	if s.r == nil {
		return 0, hal.ErrNotImplemented
	}
	return s.r.Read(p)
}

func (s *lineSerial) Write(p []byte) (int, error) { return len(p), nil }

type logLines []string

func (l *logLines) WriteLineString(s string) { *l = append(*l, s) }
func (l *logLines) WriteLineBytes(b []byte)  { *l = append(*l, string(b)) }

func TestReceiveDeliversOnIRQ4(t *testing.T) {
	log := &logLines{}
	sys := kernel.NewSystem(log)

	var got []byte
	s := New(&lineSerial{r: strings.NewReader("ls\r")}, sys, func(getc func() int) {
		for c := getc(); c >= 0; c = getc() {
			got = append(got, byte(c))
		}
	})
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	s.Run(context.Background())

	if string(got) != "ls\r" {
		t.Fatalf("delivered %q, want %q", got, "ls\r")
	}
	// strings.Reader ends with io.EOF, which is logged.
	if len(*log) != 2 || !strings.Contains((*log)[1], io.EOF.Error()) {
		t.Fatalf("log = %q", *log)
	}
}

func TestRunWithoutReceiver(t *testing.T) {
	sys := kernel.NewSystem(nil)
	s := New(&lineSerial{}, sys, func(func() int) { t.Fatal("unexpected interrupt") })
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	s.Run(context.Background())

	if !sys.IOAPIC.Enabled(kernel.IRQCom1) {
		t.Fatal("irq 4 not enabled")
	}
}
