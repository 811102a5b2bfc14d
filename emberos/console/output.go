package console

// sink is one output device of the console.
type sink interface {
	putc(c int)

	// backward and forward move the cursor over c without changing output.
	backward()
	forward(c byte)

	// insert draws c at the cursor, pushing tail one cell right.
	insert(c byte, tail []byte)

	// remove deletes the cell left of the cursor, pulling tail one cell left.
	remove(tail []byte)
}

// output fans every event out to the serial sink, then the display sink.
// Once the system has panicked any output attempt halts the caller.
type output struct {
	c     *Console
	sinks []sink
}

func (o *output) halted() bool {
	if o.c.Panicked() {
		o.c.halt()
		return true
	}
	return false
}

func (o *output) putc(c int) {
	if o.halted() {
		return
	}
	for _, s := range o.sinks {
		s.putc(c)
	}
}

func (o *output) backward() {
	if o.halted() {
		return
	}
	for _, s := range o.sinks {
		s.backward()
	}
}

func (o *output) forward(c byte) {
	if o.halted() {
		return
	}
	for _, s := range o.sinks {
		s.forward(c)
	}
}

func (o *output) insert(c byte, tail []byte) {
	if o.halted() {
		return
	}
	for _, s := range o.sinks {
		s.insert(c, tail)
	}
}

func (o *output) remove(tail []byte) {
	if o.halted() {
		return
	}
	for _, s := range o.sinks {
		s.remove(tail)
	}
}
