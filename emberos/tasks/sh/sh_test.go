package sh

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"ember/emberos/console"
	"ember/emberos/kernel"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func typeLine(c *console.Console, s string) {
	c.Intr(func() int {
		if s == "" {
			return -1
		}
		ch := s[0]
		s = s[1:]
		return int(ch)
	})
}

func newTestShell(t *testing.T) (*Shell, *console.Console, *bytes.Buffer) {
	t.Helper()
	sys := kernel.NewSystem(nil)
	cons := console.New(console.Config{Serial: &syncBuffer{}})
	s := New(sys, cons)
	out := &bytes.Buffer{}
	s.out = out
	return s, cons, out
}

func TestExecBuiltins(t *testing.T) {
	s, _, out := newTestShell(t)

	tests := []struct {
		line string
		want string
	}{
		{"echo 'a  b' c\n", "a  b c\n"},
		{"nope\n", "sh: nope: command not found\n"},
		{"\n", ""},
		{"kill x\n", "kill: bad pid \"x\"\n"},
		{"help echo\n", "usage: echo [args...]\nPrint arguments.\n"},
		{"? kill\n", "usage: kill <pid>\nKill a process.\n"},
		{"help nope\n", "help: unknown command: nope\n"},
	}
	for _, tt := range tests {
		out.Reset()
		s.exec(tt.line)
		if got := out.String(); got != tt.want {
			t.Fatalf("exec(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}

	out.Reset()
	s.exec("echo 'unterminated\n")
	if !strings.HasPrefix(out.String(), "sh: ") {
		t.Fatalf("parse error output = %q", out.String())
	}
}

func TestHelpListsCommands(t *testing.T) {
	s, _, out := newTestShell(t)
	s.exec("help")

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != len(s.cmds) {
		t.Fatalf("help printed %d lines, want %d: %q", len(lines), len(s.cmds), out.String())
	}
	if want := "echo     Print arguments."; lines[0] != want {
		t.Fatalf("first line = %q, want %q", lines[0], want)
	}
}

func TestHistoryCommand(t *testing.T) {
	s, cons, out := newTestShell(t)
	typeLine(cons, "ls\nhistory\n")

	s.exec("history\n")
	if got, want := out.String(), "   0  ls\n   1  history\n"; got != want {
		t.Fatalf("history = %q, want %q", got, want)
	}

	out.Reset()
	s.exec("history 1")
	if got := out.String(); got != "history\n" {
		t.Fatalf("history 1 = %q", got)
	}

	out.Reset()
	s.exec("history 2")
	if got, want := out.String(), "history: 2: history index not yet used\n"; got != want {
		t.Fatalf("history 2 = %q, want %q", got, want)
	}

	out.Reset()
	s.exec("history 1000")
	if got, want := out.String(), "history: 1000: history index out of range\n"; got != want {
		t.Fatalf("history 1000 = %q, want %q", got, want)
	}
}

func TestRunOverConsole(t *testing.T) {
	sys := kernel.NewSystem(nil)
	serial := &syncBuffer{}
	cons := console.New(console.Config{Serial: serial})
	if err := cons.Init(sys); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	s := New(sys, cons)

	p := sys.Procs.Spawn(context.Background(), "sh", s.Run)
	waitFor(t, serial, "$ ")

	typeLine(cons, "echo hi\n")
	waitFor(t, serial, "$ echo hi\nhi\n$ ")

	if err := sys.Procs.Kill(p.PID); err != nil {
		t.Fatalf("Kill() error = %v", err)
	}
	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("shell did not exit after kill")
	}
}

func TestRunEndsOnEOF(t *testing.T) {
	sys := kernel.NewSystem(nil)
	cons := console.New(console.Config{Serial: &syncBuffer{}})
	if err := cons.Init(sys); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	s := New(sys, cons)

	p := sys.Procs.Spawn(context.Background(), "sh", s.Run)
	typeLine(cons, string(rune(console.EOT)))
	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("shell did not exit at end of input")
	}
}

func waitFor(t *testing.T, b *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if b.String() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("output = %q, want %q", b.String(), want)
}
