package kernel

import (
	"sync"
	"sync/atomic"
)

// PanicInfo describes a kernel panic.
type PanicInfo struct {
	CPU int
	Msg string
	PCs []uintptr
}

// PanicState is the write-once panic flag shared by every execution context.
type PanicState struct {
	active atomic.Bool
	once   sync.Once

	handler atomic.Value // func(PanicInfo)
}

// Active reports whether a panic has been raised.
func (s *PanicState) Active() bool {
	return s.active.Load()
}

// SetHandler installs the panic handler.
//
// The handler is invoked at most once (on the first panic). It must not panic.
func (s *PanicState) SetHandler(fn func(PanicInfo)) {
	s.handler.Store(fn)
}

// Trigger sets the flag and runs the handler. It reports whether this call
// was the first panic.
func (s *PanicState) Trigger(info PanicInfo) bool {
	first := false
	s.once.Do(func() {
		first = true
		s.active.Store(true)
		if v := s.handler.Load(); v != nil {
			if fn, ok := v.(func(PanicInfo)); ok && fn != nil {
				fn(info)
			}
		}
	})
	return first
}
