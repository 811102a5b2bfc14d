package console

import "io"

// uartSink mirrors output onto a dumb serial terminal, which can only move
// left with '\b' and right by reprinting.
//
// The first failed write is reported through logf and disconnects the
// sink; the screen keeps working without it.
type uartSink struct {
	w    io.Writer
	logf func(format string, args ...any)
	err  error
	buf  []byte
}

func (s *uartSink) write(p ...byte) {
	s.send(p)
}

func (s *uartSink) send(p []byte) {
	if s.err != nil {
		return
	}
	n, err := s.w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err == nil {
		return
	}
	s.err = err
	if s.logf != nil {
		s.logf("console: serial disconnected: %v", err)
	}
}

func (s *uartSink) putc(c int) {
	if c == Backspace {
		s.write('\b', ' ', '\b')
		return
	}
	s.write(byte(c))
}

func (s *uartSink) backward() { s.write('\b') }

func (s *uartSink) forward(c byte) { s.write(c) }

func (s *uartSink) insert(c byte, tail []byte) {
	s.buf = append(s.buf[:0], c)
	s.buf = append(s.buf, tail...)
	s.buf = appendBackspaces(s.buf, len(tail))
	s.send(s.buf)
}

func (s *uartSink) remove(tail []byte) {
	s.buf = append(s.buf[:0], '\b')
	s.buf = append(s.buf, tail...)
	s.buf = append(s.buf, ' ')
	s.buf = appendBackspaces(s.buf, len(tail)+1)
	s.send(s.buf)
}

func appendBackspaces(b []byte, n int) []byte {
	for ; n > 0; n-- {
		b = append(b, '\b')
	}
	return b
}
