package kernel

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"ember/hal"
)

// System bundles the kernel collaborators a device driver may reach.
type System struct {
	Devsw  Devsw
	IOAPIC IOAPIC
	Procs  ProcTable
	Panic  PanicState

	log   hal.Logger
	ticks atomic.Uint64
}

// NewSystem creates a kernel instance logging to log (which may be nil).
func NewSystem(log hal.Logger) *System {
	s := &System{log: log}
	s.IOAPIC.logf = s.Logf
	return s
}

// Logf writes one formatted line to the kernel log.
func (s *System) Logf(format string, args ...any) {
	if s.log == nil {
		return
	}
	s.log.WriteLineString(fmt.Sprintf(format, args...))
}

// TickTo advances the kernel tick counter to seq. Older sequence numbers are
// ignored.
func (s *System) TickTo(seq uint64) {
	for {
		cur := s.ticks.Load()
		if seq <= cur || s.ticks.CompareAndSwap(cur, seq) {
			return
		}
	}
}

// Ticks returns the current tick count (1ms per tick).
func (s *System) Ticks() uint64 {
	return s.ticks.Load()
}

// Yield yields execution to let other tasks run.
func (s *System) Yield() {
	runtime.Gosched()
}
