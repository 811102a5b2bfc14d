package kbd

import (
	"testing"

	"ember/emberos/console"
	"ember/emberos/kernel"
	"ember/hal"
)

type recorder struct {
	got []int
}

func (r *recorder) intr(getc func() int) {
	for c := getc(); c >= 0; c = getc() {
		r.got = append(r.got, c)
	}
}

func newTestService(t *testing.T) (*Service, *recorder) {
	t.Helper()
	sys := kernel.NewSystem(nil)
	rec := &recorder{}
	s := New(nil, sys, rec.intr, nil)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := sys.IOAPIC.Enable(kernel.IRQKbd, 0); err != nil {
		t.Fatalf("Enable() error = %v", err)
	}
	return s, rec
}

func TestKeyTranslation(t *testing.T) {
	s, rec := newTestService(t)

	for _, ev := range []hal.KeyEvent{
		{Press: true, Rune: 'a'},
		{Code: hal.KeyLeft, Press: true},
		{Code: hal.KeyLeft},
		{Code: hal.KeyUp, Press: true},
		{Code: hal.KeyBackspace, Press: true},
		{Code: hal.KeyEnter, Press: true},
		{Press: true, Rune: 0x15},
		{Press: true, Rune: 'é'},
		{Code: hal.KeyHome, Press: true},
	} {
		s.handleKeyEvent(ev)
		s.flush()
	}

	want := []int{'a', console.KeyLeft, console.KeyUp, 0x08, '\n', console.Ctrl('U')}
	if len(rec.got) != len(want) {
		t.Fatalf("codes = %#x, want %#x", rec.got, want)
	}
	for i := range want {
		if rec.got[i] != want[i] {
			t.Fatalf("code %d = %#x, want %#x", i, rec.got[i], want[i])
		}
	}
}

func TestMaskedLineKeepsCodesQueued(t *testing.T) {
	sys := kernel.NewSystem(nil)
	rec := &recorder{}
	s := New(nil, sys, rec.intr, nil)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	s.handleKeyEvent(hal.KeyEvent{Press: true, Rune: 'x'})
	s.flush()
	if len(rec.got) != 0 {
		t.Fatalf("masked irq delivered %v", rec.got)
	}

	if err := sys.IOAPIC.Enable(kernel.IRQKbd, 0); err != nil {
		t.Fatalf("Enable() error = %v", err)
	}
	s.handleKeyEvent(hal.KeyEvent{Press: true, Rune: 'y'})
	s.flush()
	if string(rune(rec.got[0]))+string(rune(rec.got[1])) != "xy" {
		t.Fatalf("codes = %q, want \"xy\"", rec.got)
	}
}

func TestKeyRepeat(t *testing.T) {
	s, rec := newTestService(t)

	s.handleKeyEvent(hal.KeyEvent{Code: hal.KeyRight, Press: true})
	s.flush()

	s.handleRepeat(repeatDelayTicks - 1)
	s.flush()
	if len(rec.got) != 1 {
		t.Fatalf("repeat before delay: %d codes", len(rec.got))
	}

	s.handleRepeat(repeatDelayTicks)
	s.handleRepeat(repeatDelayTicks + repeatRateTicks)
	s.flush()
	if len(rec.got) != 3 {
		t.Fatalf("codes after repeat = %d, want 3", len(rec.got))
	}

	s.handleKeyEvent(hal.KeyEvent{Code: hal.KeyRight})
	s.handleRepeat(repeatDelayTicks * 10)
	s.flush()
	if len(rec.got) != 3 {
		t.Fatalf("repeat after release: %d codes", len(rec.got))
	}
}
