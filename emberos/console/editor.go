package console

// Raw input codes delivered by the keyboard and serial interrupt paths.
const (
	KeyUp    = 0xe2
	KeyDown  = 0xe3
	KeyLeft  = 0xe4
	KeyRight = 0xe5

	// EOT (^D) ends a read early.
	EOT = 'D' - '@'
)

// Ctrl returns the control code of x, e.g. Ctrl('U') for kill-line.
func Ctrl(x byte) int { return int(x - '@') }

// edit applies one raw input character. It reports whether a process dump
// was requested. c.mu is held.
func (c *Console) edit(ch int) (dump bool) {
	in := &c.in

	switch ch {
	case Ctrl('P'):
		return true

	case Ctrl('U'):
		c.toEnd()
		for in.e != in.w && in.at(in.e-1) != '\n' {
			in.e--
			c.out.putc(Backspace)
		}
		c.pos = in.e

	case Ctrl('H'), 0x7f:
		c.backspace()

	case KeyLeft:
		if c.pos > in.w {
			c.pos--
			c.out.backward()
		}

	case KeyRight:
		if c.pos < in.e {
			c.out.forward(in.at(c.pos))
			c.pos++
		}

	case KeyUp:
		if line, ok := c.hist.Older(); ok {
			c.recall(line)
		}

	case KeyDown:
		if line, ok := c.hist.Newer(); ok {
			c.recall(line)
		}

	default:
		c.insert(ch)
	}
	return false
}

// toEnd moves the cursor to the end of the edit region.
func (c *Console) toEnd() {
	for ; c.pos < c.in.e; c.pos++ {
		c.out.forward(c.in.at(c.pos))
	}
}

func (c *Console) backspace() {
	in := &c.in
	if c.pos == in.w {
		return
	}
	if c.pos == in.e {
		in.e--
		c.pos--
		c.out.putc(Backspace)
		return
	}

	for i := c.pos; i < in.e; i++ {
		in.set(i-1, in.at(i))
	}
	in.e--
	c.pos--
	c.out.remove(in.span(c.pos, in.e))
}

// recall replaces the edit region with line.
func (c *Console) recall(line string) {
	in := &c.in

	c.toEnd()
	for in.e > in.w {
		in.e--
		c.out.remove(nil)
	}

	// Leave room for the terminator.
	for i := 0; i < len(line) && in.e-in.r < InputBufSize-1; i++ {
		in.set(in.e, line[i])
		in.e++
		c.out.putc(int(line[i]))
	}
	c.pos = in.e
}

func (c *Console) insert(ch int) {
	in := &c.in
	if ch == 0 || in.e-in.r >= InputBufSize {
		return
	}
	if ch == '\r' {
		ch = '\n'
	}
	b := byte(ch)

	if b == '\n' || b == EOT || in.e+1-in.r == InputBufSize {
		c.commit(b)
		return
	}

	if c.pos == in.e {
		in.set(in.e, b)
		in.e++
		c.pos++
		c.out.putc(int(b))
		return
	}

	for i := in.e; i > c.pos; i-- {
		in.set(i, in.at(i-1))
	}
	in.set(c.pos, b)
	in.e++
	c.pos++
	c.out.insert(b, in.span(c.pos, in.e))
}

// commit appends b, records the edited line in the history and makes it
// visible to readers.
func (c *Console) commit(b byte) {
	in := &c.in

	c.toEnd()
	in.set(in.e, b)
	in.e++
	c.out.putc(int(b))

	end := in.e
	if b == '\n' || b == EOT {
		end--
	}
	c.hist.Append(in.span(in.w, end))

	in.w = in.e
	c.pos = in.e
	c.cond.Broadcast()
}
