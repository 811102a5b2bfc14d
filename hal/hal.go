package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// TextMemory is the memory-mapped character grid of a text-mode adapter.
//
// Each cell holds the character code in the low byte and the colour attribute
// in the high byte. Indexes outside [0, Len()) are invalid; callers check.
type TextMemory interface {
	Len() int
	Load(i int) uint16
	Store(i int, v uint16)
}

// PortIO is port-mapped I/O in the x86 sense.
type PortIO interface {
	Outb(port uint16, v uint8)
	Inb(port uint16) uint8
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyDelete
	KeyHome
	KeyEnd
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display exposes the text-mode adapter and the framebuffer it is presented on.
type Display interface {
	Text() *CGA
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// Serial is a byte-oriented UART. Read may return ErrNotImplemented when the
// receive side is not wired.
type Serial interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// Time provides a base tick stream.
//
// The tick duration is platform-defined; higher-level timers live in the kernel.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the OS and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Serial() Serial
	Time() Time
}
