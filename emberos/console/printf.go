package console

import (
	"fmt"
	"runtime"

	"ember/emberos/kernel"
)

const digits = "0123456789abcdef"

// Printf prints to the console. It understands %d, %x, %p, %s and %%; any
// other verb is printed as is to draw attention. Missing arguments print as
// 0 or "(null)".
func (c *Console) Printf(format string, args ...any) {
	if c.locking.Load() {
		c.mu.Lock()
		defer c.mu.Unlock()
	}

	next := func() (any, bool) {
		if len(args) == 0 {
			return nil, false
		}
		v := args[0]
		args = args[1:]
		return v, true
	}

	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '%' {
			c.out.putc(int(ch))
			continue
		}
		i++
		if i == len(format) {
			break
		}
		switch verb := format[i]; verb {
		case 'd':
			v, _ := next()
			c.printint(toInt64(v), 10, true)
		case 'x', 'p':
			v, _ := next()
			c.printint(toInt64(v), 16, false)
		case 's':
			v, _ := next()
			c.puts(toString(v))
		case '%':
			c.out.putc('%')
		default:
			c.out.putc('%')
			c.out.putc(int(verb))
		}
	}
}

func (c *Console) puts(s string) {
	for i := 0; i < len(s); i++ {
		c.out.putc(int(s[i]))
	}
}

func (c *Console) printint(v int64, base uint64, sign bool) {
	var buf [24]byte

	neg := sign && v < 0
	x := uint64(v)
	if neg {
		x = uint64(-v)
	}

	i := 0
	for {
		buf[i] = digits[x%base]
		i++
		if x /= base; x == 0 {
			break
		}
	}
	if neg {
		buf[i] = '-'
		i++
	}
	for i--; i >= 0; i-- {
		c.out.putc(int(buf[i]))
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	case uintptr:
		return int64(n)
	default:
		return 0
	}
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return "(null)"
	case string:
		return s
	case []byte:
		return string(s)
	case error:
		return s.Error()
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

// Panic prints msg and the caller PCs, marks the system panicked and halts
// the calling goroutine. Every other goroutine halts at its next output.
func (c *Console) Panic(msg string) {
	// A fault while printing the first panic must not recurse.
	if !c.panicking.CompareAndSwap(false, true) {
		c.halt()
		return
	}
	c.locking.Store(false)

	cpu := c.cpuid()
	c.Printf("lapicid %d: panic: ", cpu)
	c.puts(msg)
	c.Printf("\n")

	var pcs [10]uintptr
	n := runtime.Callers(2, pcs[:])
	for _, pc := range pcs {
		c.Printf(" %p", pc)
	}

	c.pstate.Trigger(kernel.PanicInfo{CPU: cpu, Msg: msg, PCs: append([]uintptr(nil), pcs[:n]...)})
	c.halt()
}
