package app

import (
	"fmt"
	"runtime"

	"ember/emberos/kernel"
	"ember/hal"
)

// installPanicHandler logs kernel panics with symbolized caller frames. The
// console has already printed the panic on screen by the time it runs.
func installPanicHandler(h hal.HAL, k *kernel.System) {
	k.Panic.SetHandler(func(info kernel.PanicInfo) {
		l := h.Logger()
		if l == nil {
			return
		}
		l.WriteLineString(fmt.Sprintf("Ember Panic: cpu=%d panic=%q", info.CPU, info.Msg))
		for _, line := range panicFrames(info.PCs) {
			l.WriteLineString(line)
		}
	})
}

func panicFrames(pcs []uintptr) []string {
	if len(pcs) == 0 {
		return []string{"stack: unavailable"}
	}
	var out []string
	frames := runtime.CallersFrames(pcs)
	for {
		f, more := frames.Next()
		out = append(out, fmt.Sprintf("  %#x %s", f.PC, f.Function))
		out = append(out, fmt.Sprintf("      %s:%d", f.File, f.Line))
		if !more {
			break
		}
	}
	return out
}
