package kernel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

type logLines struct {
	mu    sync.Mutex
	lines []string
}

func (l *logLines) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *logLines) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

type echoDevice struct {
	unlocked bool
}

func (d *echoDevice) Read(ctx context.Context, ip sync.Locker, dst []byte) (int, error) {
	ip.Unlock()
	d.unlocked = true
	ip.Lock()
	return copy(dst, "ok"), nil
}

func (d *echoDevice) Write(ip sync.Locker, src []byte) (int, error) {
	return len(src), nil
}

func TestDevswDispatch(t *testing.T) {
	sys := NewSystem(nil)
	dev := &echoDevice{}
	if err := sys.Devsw.Register(Console, dev); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	p := sys.Procs.Spawn(context.Background(), "t", func(*Proc) {})
	ip := &Inode{Major: Console}
	buf := make([]byte, 4)
	n, err := sys.Devsw.Read(p, ip, buf)
	if err != nil || n != 2 || string(buf[:n]) != "ok" {
		t.Fatalf("Read() = %d, %v (%q), want 2, nil (\"ok\")", n, err, buf[:n])
	}
	if !dev.unlocked {
		t.Fatal("device did not receive a locked inode")
	}
	if n, err := sys.Devsw.Write(p, ip, []byte("abc")); err != nil || n != 3 {
		t.Fatalf("Write() = %d, %v, want 3, nil", n, err)
	}
}

func TestDevswNoDevice(t *testing.T) {
	var sw Devsw
	if _, err := sw.Lookup(2); !errors.Is(err, ErrNoDevice) {
		t.Fatalf("Lookup(2) error = %v, want ErrNoDevice", err)
	}
	if err := sw.Register(NDev, &echoDevice{}); !errors.Is(err, ErrNoDevice) {
		t.Fatalf("Register(NDev) error = %v, want ErrNoDevice", err)
	}
}

func TestIOAPICRaise(t *testing.T) {
	log := &logLines{}
	sys := NewSystem(log)

	calls := 0
	if err := sys.IOAPIC.Register(IRQKbd, func() { calls++ }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if ran, err := sys.IOAPIC.Raise(IRQKbd); ran || err != nil {
		t.Fatalf("Raise() on masked line = %v, %v, want false, nil", ran, err)
	}

	if err := sys.IOAPIC.Enable(IRQKbd, 0); err != nil {
		t.Fatalf("Enable() error = %v", err)
	}
	if ran, err := sys.IOAPIC.Raise(IRQKbd); !ran || err != nil {
		t.Fatalf("Raise() = %v, %v, want true, nil", ran, err)
	}
	if calls != 1 {
		t.Fatalf("handler calls = %d, want 1", calls)
	}
	if len(log.lines) != 1 || log.lines[0] != "ioapic: irq 1 -> cpu 0" {
		t.Fatalf("log = %q", log.lines)
	}

	if _, err := sys.IOAPIC.Raise(NIRQ); !errors.Is(err, ErrBadIRQ) {
		t.Fatalf("Raise(NIRQ) error = %v, want ErrBadIRQ", err)
	}
}

func TestProcKillAndDump(t *testing.T) {
	var procs ProcTable
	started := make(chan struct{})
	p := procs.Spawn(context.Background(), "sleeper", func(p *Proc) {
		close(started)
		<-p.Context().Done()
	})
	<-started

	var out strings.Builder
	procs.Dump(func(format string, args ...any) { fmt.Fprintf(&out, format, args...) })
	if got, want := out.String(), "1 run    sleeper\n"; got != want {
		t.Fatalf("Dump() = %q, want %q", got, want)
	}

	if err := procs.Kill(p.PID); err != nil {
		t.Fatalf("Kill() error = %v", err)
	}
	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("process did not exit after Kill")
	}
	if !p.Killed() || p.State() != Zombie {
		t.Fatalf("killed=%v state=%v, want true zombie", p.Killed(), p.State())
	}
	if err := procs.Kill(42); !errors.Is(err, ErrNoProc) {
		t.Fatalf("Kill(42) error = %v, want ErrNoProc", err)
	}
}

func TestPanicStateOnce(t *testing.T) {
	var ps PanicState
	var got []PanicInfo
	ps.SetHandler(func(info PanicInfo) { got = append(got, info) })

	if !ps.Trigger(PanicInfo{Msg: "first"}) {
		t.Fatal("first Trigger() = false, want true")
	}
	if ps.Trigger(PanicInfo{Msg: "second"}) {
		t.Fatal("second Trigger() = true, want false")
	}
	if !ps.Active() {
		t.Fatal("Active() = false after Trigger")
	}
	if len(got) != 1 || got[0].Msg != "first" {
		t.Fatalf("handler saw %+v, want only first", got)
	}
}
