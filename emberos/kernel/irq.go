package kernel

import (
	"errors"
	"fmt"
	"sync"
)

// ErrBadIRQ is returned for an IRQ number outside [0, NIRQ).
var ErrBadIRQ = errors.New("bad irq")

const (
	// NIRQ is the number of interrupt lines the IOAPIC routes.
	NIRQ = 24

	// Interrupt lines of the keyboard and the first serial port.
	IRQKbd  = 1
	IRQCom1 = 4
)

type irqLine struct {
	enabled bool
	cpu     int
	handler func()
}

// IOAPIC routes device interrupt lines to handlers. A raised line is
// delivered only once it is both enabled and has a handler.
type IOAPIC struct {
	mu    sync.Mutex
	lines [NIRQ]irqLine

	logf func(format string, args ...any)
}

// Enable unmasks irq and routes it to cpu.
func (a *IOAPIC) Enable(irq, cpu int) error {
	if irq < 0 || irq >= NIRQ {
		return fmt.Errorf("ioapic: irq %d: %w", irq, ErrBadIRQ)
	}
	a.mu.Lock()
	a.lines[irq].enabled = true
	a.lines[irq].cpu = cpu
	a.mu.Unlock()
	if a.logf != nil {
		a.logf("ioapic: irq %d -> cpu %d", irq, cpu)
	}
	return nil
}

// Register installs the handler for irq.
func (a *IOAPIC) Register(irq int, handler func()) error {
	if irq < 0 || irq >= NIRQ {
		return fmt.Errorf("ioapic: irq %d: %w", irq, ErrBadIRQ)
	}
	a.mu.Lock()
	a.lines[irq].handler = handler
	a.mu.Unlock()
	return nil
}

// Enabled reports whether irq is unmasked.
func (a *IOAPIC) Enabled(irq int) bool {
	if irq < 0 || irq >= NIRQ {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lines[irq].enabled
}

// Raise delivers irq synchronously on the calling goroutine. It reports
// whether a handler ran.
func (a *IOAPIC) Raise(irq int) (bool, error) {
	if irq < 0 || irq >= NIRQ {
		return false, fmt.Errorf("ioapic: irq %d: %w", irq, ErrBadIRQ)
	}
	a.mu.Lock()
	line := a.lines[irq]
	a.mu.Unlock()
	if !line.enabled || line.handler == nil {
		return false, nil
	}
	line.handler()
	return true, nil
}
