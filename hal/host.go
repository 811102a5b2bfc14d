//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	// GlyphWidth and GlyphHeight are the pixel size of one text cell.
	GlyphWidth  = 6
	GlyphHeight = 10

	// SerialPaneRows is the height in cells of the serial monitor pane.
	SerialPaneRows = 12

	// FramebufferWidth fits CGAColumns cells.
	FramebufferWidth = CGAColumns * GlyphWidth

	// FramebufferHeight holds the CGA pane plus the serial pane.
	FramebufferHeight = (CGARows + SerialPaneRows) * GlyphHeight
)

type hostHAL struct {
	logger *hostLogger
	cga    *CGA
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	t      *hostTime
	serial *hostSerial
}

// New returns a host HAL implementation logging to stderr.
func New() HAL {
	h, err := newHost(HostConfig{})
	if err != nil {
		// Only a log file can fail to open.
		panic(err)
	}
	return h
}

func newHost(cfg HostConfig) (*hostHAL, error) {
	var w io.Writer = os.Stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
	}

	return &hostHAL{
		logger: &hostLogger{w: w},
		cga:    NewCGA(),
		fb:     newHostFramebuffer(FramebufferWidth, FramebufferHeight),
		kbd:    newHostKeyboard(),
		t:      newHostTime(),
		serial: &hostSerial{r: os.Stdin, w: os.Stdout},
	}, nil
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{cga: h.cga, fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Serial() Serial   { return h.serial }
func (h *hostHAL) Time() Time       { return h.t }

type hostDisplay struct {
	cga *CGA
	fb  *hostFramebuffer
}

func (d hostDisplay) Text() *CGA               { return d.cga }
func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
