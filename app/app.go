package app

import (
	"context"
	"io"

	"ember/emberos/console"
	"ember/emberos/fonts/cellfont"
	"ember/emberos/kernel"
	"ember/emberos/services/kbd"
	"ember/emberos/services/term"
	"ember/emberos/services/uart"
	"ember/emberos/services/vga"
	"ember/emberos/tasks/sh"
	"ember/hal"
	"ember/internal/buildinfo"
)

type system struct {
	h    hal.HAL
	k    *kernel.System
	cons *console.Console

	fb   hal.Framebuffer
	vga  *vga.Service
	term *term.Service
}

type Config struct {
	// NoInit boots without starting the shell.
	NoInit bool
}

// New initializes and starts the OS with default config and returns the
// per-frame step.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	s, err := newSystem(context.Background(), h, cfg)
	if err != nil {
		return func() error { return err }
	}
	return s.step
}

func newSystem(ctx context.Context, h hal.HAL, cfg Config) (*system, error) {
	k := kernel.NewSystem(h.Logger())
	installPanicHandler(h, k)

	s := &system{h: h, k: k}

	var text *hal.CGA
	if disp := h.Display(); disp != nil {
		text = disp.Text()
		s.fb = disp.Framebuffer()
	}

	var serial io.Writer
	if s.fb != nil {
		s.term = term.New(s.fb, hal.CGARows*cellfont.CellHeight)
		serial = s.term
	}
	if hs := h.Serial(); hs != nil {
		if serial != nil {
			serial = io.MultiWriter(serial, hs)
		} else {
			serial = hs
		}
	}

	ccfg := console.Config{
		Serial: serial,
		Panic:  &k.Panic,
		Logf:   k.Logf,
		ProcDump: func() {
			k.Procs.Dump(s.cons.Printf)
		},
	}
	if text != nil {
		ccfg.Text = text
		ccfg.Ports = text
		if s.fb != nil {
			s.vga = vga.New(text, s.fb)
		}
	}
	s.cons = console.New(ccfg)
	if err := s.cons.Init(k); err != nil {
		return nil, err
	}

	var kbdTicks chan uint64
	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			kbdTicks = make(chan uint64, 16)
			go func() {
				for seq := range ch {
					k.TickTo(seq)
					select {
					case kbdTicks <- seq:
					default:
					}
				}
			}()
		}
	}

	keyboard := kbd.New(h.Input(), k, s.cons.Intr, kbdTicks)
	if err := keyboard.Init(); err != nil {
		return nil, err
	}
	go keyboard.Run(ctx)

	com1 := uart.New(h.Serial(), k, s.cons.Intr)
	if err := com1.Init(); err != nil {
		return nil, err
	}
	go com1.Run(ctx)

	s.cons.Printf("ember %s\n", buildinfo.Short())

	if !cfg.NoInit {
		k.Procs.Spawn(ctx, "init", s.runInit)
	}
	return s, nil
}

// runInit keeps a shell running on the console.
func (s *system) runInit(p *kernel.Proc) {
	for {
		s.cons.Printf("init: starting sh\n")
		shell := sh.New(s.k, s.cons)
		child := s.k.Procs.Spawn(p.Context(), "sh", shell.Run)
		select {
		case <-child.Done():
		case <-p.Context().Done():
			return
		}
	}
}

func (s *system) step() error {
	drew := false
	if s.vga != nil && s.vga.Render(s.k.Ticks()) {
		drew = true
	}
	if s.term != nil && s.term.Render() {
		drew = true
	}
	if drew && s.fb != nil {
		return s.fb.Present()
	}
	return nil
}
