//go:build !tinygo

package hal

import (
	"bytes"
	"io"
	"sync"
)

type hostSerial struct {
	mu sync.Mutex
	r  io.Reader
	w  io.Writer

	// crlf expands '\n' to "\r\n" for a terminal in raw mode.
	crlf bool
}

func (s *hostSerial) Read(p []byte) (int, error) {
	if s.r == nil {
		return 0, ErrNotImplemented
	}
	return s.r.Read(p)
}

func (s *hostSerial) Write(p []byte) (int, error) {
	if s.w == nil {
		return 0, ErrNotImplemented
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.crlf || bytes.IndexByte(p, '\n') < 0 {
		return s.w.Write(p)
	}
	if _, err := s.w.Write(bytes.ReplaceAll(p, []byte{'\n'}, []byte{'\r', '\n'})); err != nil {
		return 0, err
	}
	return len(p), nil
}
