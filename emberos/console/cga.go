package console

import "ember/hal"

const (
	// Backspace is the output code that erases the cell left of the cursor.
	Backspace = 0x100

	attr  = 0x0700 // light grey on black
	blank = ' ' | attr

	cols = hal.CGAColumns
	rows = hal.CGARows
)

// cgaSink draws onto the text grid. The hardware cursor register is the only
// record of the output position.
type cgaSink struct {
	mem   hal.TextMemory
	port  hal.PortIO
	fatal func(msg string)
}

func (s *cgaSink) cursor() int {
	s.port.Outb(hal.CRTPort, hal.CRTCursorHigh)
	pos := int(s.port.Inb(hal.CRTPort+1)) << 8
	s.port.Outb(hal.CRTPort, hal.CRTCursorLow)
	pos |= int(s.port.Inb(hal.CRTPort + 1))
	return pos
}

func (s *cgaSink) setCursor(pos int) {
	s.port.Outb(hal.CRTPort, hal.CRTCursorHigh)
	s.port.Outb(hal.CRTPort+1, uint8(pos>>8))
	s.port.Outb(hal.CRTPort, hal.CRTCursorLow)
	s.port.Outb(hal.CRTPort+1, uint8(pos))
}

func (s *cgaSink) load(i int) uint16 {
	if i < 0 || i >= s.mem.Len() {
		s.fatal("cga: cell out of range")
		return blank
	}
	return s.mem.Load(i)
}

func (s *cgaSink) store(i int, v uint16) {
	if i < 0 || i >= s.mem.Len() {
		s.fatal("cga: cell out of range")
		return
	}
	s.mem.Store(i, v)
}

// scroll moves the grid up one row when pos has reached the last row.
func (s *cgaSink) scroll(pos int) int {
	if pos/cols < rows-1 {
		return pos
	}
	for i := 0; i < (rows-2)*cols; i++ {
		s.store(i, s.load(i+cols))
	}
	pos -= cols
	for i := pos; i < (rows-1)*cols; i++ {
		s.store(i, blank)
	}
	return pos
}

func (s *cgaSink) putc(c int) {
	pos := s.cursor()

	switch {
	case c == '\n':
		pos += cols - pos%cols
	case c == Backspace:
		if pos > 0 {
			pos--
		}
	default:
		s.store(pos, uint16(c&0xff)|attr)
		pos++
	}

	if pos < 0 || pos > rows*cols {
		s.fatal("pos under/overflow")
		return
	}
	pos = s.scroll(pos)

	s.setCursor(pos)
	s.store(pos, blank)
}

func (s *cgaSink) backward() {
	if pos := s.cursor(); pos > 0 {
		s.setCursor(pos - 1)
	}
}

func (s *cgaSink) forward(byte) {
	pos := s.cursor() + 1
	if pos > rows*cols {
		s.fatal("pos under/overflow")
		return
	}
	s.setCursor(s.scroll(pos))
}

// insert shifts the len(tail) cells under and after the cursor one cell right,
// tail end first, then draws c at the cursor.
func (s *cgaSink) insert(c byte, tail []byte) {
	pos := s.cursor()
	back := len(tail)
	if end := pos + back + 1; end/cols >= rows-1 {
		pos -= end - s.scroll(end)
	}

	for i := pos + back - 1; i >= pos; i-- {
		s.store(i+1, s.load(i))
	}
	s.store(pos, uint16(c)|attr)
	pos++

	s.setCursor(pos)
	s.store(pos+back, blank)
}

// remove deletes the cell left of the cursor and pulls the len(tail) cells
// after it one cell left.
func (s *cgaSink) remove(tail []byte) {
	pos := s.cursor()
	if pos == 0 {
		return
	}
	pos--
	back := len(tail)
	for i := pos; i < pos+back; i++ {
		s.store(i, s.load(i+1))
	}
	s.store(pos+back, blank)
	s.setCursor(pos)
}
