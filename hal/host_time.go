//go:build !tinygo

package hal

import "time"

// hostTickDuration is the period of one kernel tick.
const hostTickDuration = time.Millisecond

// hostTime converts wall-clock time elapsed between runner steps into 1ms
// kernel ticks.
type hostTime struct {
	ch  chan uint64
	seq uint64

	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

func (t *hostTime) step(n uint64) {
	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		t.stepN(n)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	ticks := uint64(t.acc / hostTickDuration)
	if ticks == 0 {
		return
	}
	t.acc %= hostTickDuration
	t.stepN(ticks)
}

func (t *hostTime) stepN(n uint64) {
	for ; n > 0; n-- {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
