package kernel

import (
	"runtime"
	"sync/atomic"
)

const fifoSlots = 256

// FIFO is a byte queue standing in for a device data register.
//
// One producer (the device service) and one consumer (the interrupt handler)
// may use it concurrently without locks.
type FIFO struct {
	_     [0]func() // prevent accidental copying.
	head  atomic.Uint32
	tail  atomic.Uint32
	slots [fifoSlots]byte
}

// TryPut enqueues b, returning false if the FIFO is full.
func (f *FIFO) TryPut(b byte) bool {
	head := f.head.Load()
	tail := f.tail.Load()
	if head-tail >= fifoSlots {
		return false
	}
	f.slots[head%fifoSlots] = b
	f.head.Store(head + 1)
	return true
}

// Put enqueues b, yielding until there is room.
func (f *FIFO) Put(b byte) {
	for !f.TryPut(b) {
		runtime.Gosched()
	}
}

// Getc dequeues one byte, or returns -1 if the FIFO is empty.
//
// Its signature matches the character source taken by interrupt entry points.
func (f *FIFO) Getc() int {
	tail := f.tail.Load()
	head := f.head.Load()
	if tail == head {
		return -1
	}
	b := f.slots[tail%fifoSlots]
	f.tail.Store(tail + 1)
	return int(b)
}

// Len reports the number of queued bytes.
func (f *FIFO) Len() int {
	return int(f.head.Load() - f.tail.Load())
}
