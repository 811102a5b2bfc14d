// Package kbd is the keyboard controller: it turns HAL key events into the
// console's raw input codes and raises the keyboard interrupt.
package kbd

import (
	"context"

	"ember/emberos/console"
	"ember/emberos/kernel"
	"ember/hal"
)

const (
	// Ticks are 1ms on host.
	repeatDelayTicks = 350
	repeatRateTicks  = 60
)

// Service owns the keyboard data register (a FIFO) and IRQ 1.
type Service struct {
	in    hal.Input
	sys   *kernel.System
	fifo  kernel.FIFO
	intr  func(getc func() int)
	ticks <-chan uint64

	pending []byte

	heldCode hal.KeyCode
	heldData []byte

	nextRepeatTick uint64
}

// New returns a keyboard controller delivering to intr, the console's
// interrupt entry point. ticks drives key repeat and may be nil.
func New(in hal.Input, sys *kernel.System, intr func(getc func() int), ticks <-chan uint64) *Service {
	return &Service{in: in, sys: sys, intr: intr, ticks: ticks}
}

// Init installs the IRQ 1 handler. The line itself is unmasked by the
// console.
func (s *Service) Init() error {
	return s.sys.IOAPIC.Register(kernel.IRQKbd, s.interrupt)
}

func (s *Service) interrupt() {
	s.intr(s.fifo.Getc)
}

// Run translates key events until ctx is done or the keyboard closes.
func (s *Service) Run(ctx context.Context) {
	if s.in == nil {
		return
	}
	kbd := s.in.Keyboard()
	if kbd == nil {
		return
	}
	events := kbd.Events()
	if events == nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.handleKeyEvent(ev)
			s.flush()
		case tick := <-s.ticks:
			s.handleRepeat(tick)
			s.flush()
		}
	}
}

func (s *Service) handleKeyEvent(ev hal.KeyEvent) {
	if !ev.Press {
		if s.heldData != nil && ev.Code == s.heldCode {
			s.heldData = nil
			s.nextRepeatTick = 0
		}
		return
	}

	data := codesFromKey(ev)
	if len(data) == 0 {
		return
	}
	s.pending = append(s.pending, data...)

	if !repeatableKey(ev) {
		return
	}
	s.heldCode = ev.Code
	s.heldData = append(s.heldData[:0], data...)
	s.nextRepeatTick = s.sys.Ticks() + repeatDelayTicks
}

func (s *Service) handleRepeat(tick uint64) {
	if s.heldData == nil {
		return
	}
	if tick < s.nextRepeatTick {
		return
	}
	s.pending = append(s.pending, s.heldData...)
	s.nextRepeatTick = tick + repeatRateTicks
}

// flush moves pending codes into the data register and raises IRQ 1. Codes
// that do not fit stay pending for the next flush.
func (s *Service) flush() {
	if len(s.pending) == 0 {
		return
	}
	n := 0
	for n < len(s.pending) && s.fifo.TryPut(s.pending[n]) {
		n++
	}
	s.pending = s.pending[n:]

	if _, err := s.sys.IOAPIC.Raise(kernel.IRQKbd); err != nil {
		s.sys.Logf("kbd: %v", err)
	}
}

func repeatableKey(ev hal.KeyEvent) bool {
	switch ev.Code {
	case hal.KeyUp, hal.KeyDown, hal.KeyLeft, hal.KeyRight, hal.KeyBackspace:
		return true
	default:
		return false
	}
}

// codesFromKey maps one key press to console input codes. Only 7-bit
// characters are delivered.
func codesFromKey(ev hal.KeyEvent) []byte {
	if ev.Rune != 0 {
		if ev.Rune >= 0x80 {
			return nil
		}
		return []byte{byte(ev.Rune)}
	}

	switch ev.Code {
	case hal.KeyEnter:
		return []byte{'\n'}
	case hal.KeyEscape:
		return []byte{0x1b}
	case hal.KeyBackspace:
		return []byte{byte(console.Ctrl('H'))}
	case hal.KeyTab:
		return []byte{'\t'}
	case hal.KeyUp:
		return []byte{console.KeyUp}
	case hal.KeyDown:
		return []byte{console.KeyDown}
	case hal.KeyLeft:
		return []byte{console.KeyLeft}
	case hal.KeyRight:
		return []byte{console.KeyRight}
	default:
		return nil
	}
}
