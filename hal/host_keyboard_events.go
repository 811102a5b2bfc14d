//go:build !tinygo

package hal

import (
	"bufio"
	"context"
	"io"
)

// quitByte (Ctrl-]) ends a raw headless session, since Ctrl-C no longer
// raises SIGINT once the terminal is raw.
const quitByte = 0x1d

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

// emit drops the event when the consumer is behind. A polled window
// reports the held state again next frame.
func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

// send delivers ev or gives up when ctx is done.
func (k *hostKeyboard) send(ctx context.Context, ev KeyEvent) bool {
	select {
	case k.ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// feed decodes terminal input from r into key events until r fails or ctx
// is done. Every byte is delivered: feed waits for the consumer instead of
// dropping. The quit byte calls quit; end of input does not, so piped
// scripts run until the tick limit.
func (k *hostKeyboard) feed(ctx context.Context, r io.Reader, quit func()) {
	br := bufio.NewReader(r)
	var d termDecoder
	for {
		b, err := br.ReadByte()
		if err != nil {
			return
		}
		if b == quitByte {
			quit()
			return
		}
		ev, ok := d.decode(b)
		if !ok {
			continue
		}
		if ev.Code != KeyUnknown {
			// Terminals repeat keys themselves and never report a release.
			if !k.send(ctx, ev) {
				return
			}
			ev.Press = false
		}
		if !k.send(ctx, ev) {
			return
		}
	}
}

type decodeState uint8

const (
	decodeInput decodeState = iota
	decodeEscape
	decodeCSI
)

// termDecoder turns the byte stream of a VT100-style terminal into key events.
type termDecoder struct {
	state  decodeState
	params []byte
}

func (d *termDecoder) decode(b byte) (KeyEvent, bool) {
	switch d.state {
	case decodeEscape:
		if b == '[' || b == 'O' {
			d.state = decodeCSI
			d.params = d.params[:0]
			return KeyEvent{}, false
		}
		d.state = decodeInput
		return KeyEvent{Code: KeyEscape, Press: true}, true

	case decodeCSI:
		if (b >= '0' && b <= '9') || b == ';' {
			d.params = append(d.params, b)
			return KeyEvent{}, false
		}
		d.state = decodeInput
		switch b {
		case 'A':
			return KeyEvent{Code: KeyUp, Press: true}, true
		case 'B':
			return KeyEvent{Code: KeyDown, Press: true}, true
		case 'C':
			return KeyEvent{Code: KeyRight, Press: true}, true
		case 'D':
			return KeyEvent{Code: KeyLeft, Press: true}, true
		case 'H':
			return KeyEvent{Code: KeyHome, Press: true}, true
		case 'F':
			return KeyEvent{Code: KeyEnd, Press: true}, true
		case '~':
			if string(d.params) == "3" {
				return KeyEvent{Code: KeyDelete, Press: true}, true
			}
		}
		return KeyEvent{}, false
	}

	switch b {
	case 0x1b:
		d.state = decodeEscape
		return KeyEvent{}, false
	case '\r', '\n':
		return KeyEvent{Code: KeyEnter, Press: true}, true
	case 0x7f:
		return KeyEvent{Code: KeyBackspace, Press: true}, true
	case '\t':
		return KeyEvent{Code: KeyTab, Press: true}, true
	default:
		return KeyEvent{Press: true, Rune: rune(b)}, true
	}
}
