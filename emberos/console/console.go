// Package console implements the console device: a line-editing keyboard and
// serial input path feeding blocking readers, and output mirrored to a CGA
// text screen and a serial line.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"ember/emberos/kernel"
	"ember/hal"
)

// ErrKilled is returned by Read when the reading process is killed while
// waiting for input.
var ErrKilled = errors.New("console: read interrupted by kill")

// Config wires a console to its devices.
type Config struct {
	// Text and Ports are the CGA text memory and CRT controller. Both must
	// be set for screen output.
	Text  hal.TextMemory
	Ports hal.PortIO

	// Serial receives mirrored output. Optional.
	Serial io.Writer

	// Panic is the system-wide panic flag. A private one is used if nil.
	Panic *kernel.PanicState

	// Halt stops the calling goroutine forever. Defaults to blocking.
	Halt func()

	// CPUID names the executing CPU in panic messages.
	CPUID func() int

	// ProcDump runs after an interrupt batch containing ^P, without the
	// console lock held.
	ProcDump func()

	// Logf receives driver diagnostics, such as a failed serial write.
	// Optional.
	Logf func(format string, args ...any)
}

// Console is the console device. The zero value is not usable; use New.
type Console struct {
	mu   sync.Mutex
	cond *sync.Cond

	// locking is cleared by Panic so Printf never waits on mu.
	locking   atomic.Bool
	panicking atomic.Bool

	in   inputBuffer
	pos  uint32 // edit cursor, in [w, e]
	hist History
	out  output

	pstate   *kernel.PanicState
	halt     func()
	cpuid    func() int
	procdump func()
}

// New constructs a console.
func New(cfg Config) *Console {
	c := &Console{
		pstate:   cfg.Panic,
		halt:     cfg.Halt,
		cpuid:    cfg.CPUID,
		procdump: cfg.ProcDump,
	}
	c.cond = sync.NewCond(&c.mu)
	c.locking.Store(true)
	c.out.c = c

	if c.pstate == nil {
		c.pstate = &kernel.PanicState{}
	}
	if c.halt == nil {
		c.halt = func() { select {} }
	}
	if c.cpuid == nil {
		c.cpuid = func() int { return 0 }
	}

	if cfg.Serial != nil {
		c.out.sinks = append(c.out.sinks, &uartSink{w: cfg.Serial, logf: cfg.Logf})
	}
	if cfg.Text != nil && cfg.Ports != nil {
		c.out.sinks = append(c.out.sinks, &cgaSink{mem: cfg.Text, port: cfg.Ports, fatal: c.Panic})
	}
	return c
}

// Init registers the console in the device switch and unmasks the keyboard
// interrupt line.
func (c *Console) Init(sys *kernel.System) error {
	if err := sys.Devsw.Register(kernel.Console, c); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	sys.Logf("console: registered devsw major %d", kernel.Console)
	if err := sys.IOAPIC.Enable(kernel.IRQKbd, 0); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	return nil
}

// Panicked reports whether the system has panicked.
func (c *Console) Panicked() bool { return c.pstate.Active() }

// Intr drains getc until it returns a negative value, feeding every character
// to the line editor in one critical section.
func (c *Console) Intr(getc func() int) {
	dump := false

	c.mu.Lock()
	for ch := getc(); ch >= 0; ch = getc() {
		if c.edit(ch) {
			dump = true
		}
	}
	c.mu.Unlock()

	// The dump prints through Printf, which takes mu.
	if dump && c.procdump != nil {
		c.procdump()
	}
}

// Read copies at most one committed line into dst, blocking while none is
// available. ip is unlocked for the duration of the call.
//
// ^D ends the read without being copied. If bytes were already copied it is
// left in the buffer so the next read returns 0.
func (c *Console) Read(ctx context.Context, ip sync.Locker, dst []byte) (int, error) {
	ip.Unlock()
	defer ip.Lock()

	stop := context.AfterFunc(ctx, func() {
		c.mu.Lock()
		c.cond.Broadcast()
		c.mu.Unlock()
	})
	defer stop()

	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for n < len(dst) {
		for c.in.r == c.in.w {
			if ctx.Err() != nil {
				return 0, ErrKilled
			}
			c.cond.Wait()
		}
		ch := c.in.at(c.in.r)
		c.in.r++
		if ch == EOT {
			if n > 0 {
				c.in.r--
			}
			break
		}
		dst[n] = ch
		n++
		if ch == '\n' {
			break
		}
	}
	return n, nil
}

// Write prints src. ip is unlocked for the duration of the call.
func (c *Console) Write(ip sync.Locker, src []byte) (int, error) {
	ip.Unlock()
	defer ip.Lock()

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range src {
		c.out.putc(int(b))
	}
	return len(src), nil
}

// History returns history entry idx.
func (c *Console) History(idx int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hist.Lookup(idx)
}

// HistoryLen returns the number of recorded lines.
func (c *Console) HistoryLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hist.Len()
}

// SysHistory is the history system call: it copies entry idx into dst,
// NUL-terminated when room allows, and returns 0, -1 if idx was never used
// or -2 if idx is beyond the ring's capacity.
func (c *Console) SysHistory(dst []byte, idx int) int {
	s, err := c.History(idx)
	switch {
	case errors.Is(err, ErrHistoryRange):
		return -2
	case err != nil:
		return -1
	}
	if len(dst) > HistoryLineSize {
		dst = dst[:HistoryLineSize]
	}
	n := copy(dst, s)
	if n < len(dst) {
		dst[n] = 0
	}
	return 0
}

var _ kernel.Device = (*Console)(nil)
