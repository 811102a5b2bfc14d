// Package uart is the COM1 receive path: bytes arriving on the serial line
// are queued in the receive register and delivered to the console on IRQ 4.
package uart

import (
	"context"
	"errors"

	"ember/emberos/kernel"
	"ember/hal"
)

// Service owns the COM1 receive FIFO and IRQ 4.
type Service struct {
	serial hal.Serial
	sys    *kernel.System
	fifo   kernel.FIFO
	intr   func(getc func() int)
}

// New creates a serial receiver delivering to intr.
func New(serial hal.Serial, sys *kernel.System, intr func(getc func() int)) *Service {
	return &Service{serial: serial, sys: sys, intr: intr}
}

// Init installs the IRQ 4 handler and unmasks the line.
func (s *Service) Init() error {
	if err := s.sys.IOAPIC.Register(kernel.IRQCom1, s.interrupt); err != nil {
		return err
	}
	return s.sys.IOAPIC.Enable(kernel.IRQCom1, 0)
}

func (s *Service) interrupt() {
	s.intr(s.fifo.Getc)
}

// Run reads the serial line until it fails or ctx is done. A line without a
// receive side ends Run quietly.
func (s *Service) Run(ctx context.Context) {
	if s.serial == nil {
		return
	}
	buf := make([]byte, 64)
	for ctx.Err() == nil {
		n, err := s.serial.Read(buf)
		if n > 0 {
			s.receive(buf[:n])
		}
		if errors.Is(err, hal.ErrNotImplemented) {
			return
		}
		if err != nil {
			s.sys.Logf("uart: rx: %v", err)
			return
		}
	}
}

func (s *Service) receive(p []byte) {
	for _, b := range p {
		if !s.fifo.TryPut(b) {
			// Overrun: hand over what is queued, then retry once.
			s.raise()
			if !s.fifo.TryPut(b) {
				s.sys.Logf("uart: rx overrun")
				return
			}
		}
	}
	s.raise()
}

func (s *Service) raise() {
	if _, err := s.sys.IOAPIC.Raise(kernel.IRQCom1); err != nil {
		s.sys.Logf("uart: %v", err)
	}
}
