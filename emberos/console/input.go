package console

// InputBufSize is the capacity of the input ring.
const InputBufSize = 128

// inputBuffer holds typed bytes. r, w and e grow without bound and are
// reduced modulo InputBufSize only to address buf, so r <= w <= e holds
// across wraparound. [r, w) is committed and [w, e) is being edited.
type inputBuffer struct {
	buf [InputBufSize]byte
	r   uint32
	w   uint32
	e   uint32
}

func (b *inputBuffer) at(i uint32) byte     { return b.buf[i%InputBufSize] }
func (b *inputBuffer) set(i uint32, c byte) { b.buf[i%InputBufSize] = c }

// span copies [from, to) out of the ring.
func (b *inputBuffer) span(from, to uint32) []byte {
	out := make([]byte, 0, to-from)
	for i := from; i != to; i++ {
		out = append(out, b.at(i))
	}
	return out
}
