//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"
)

// RunHeadless runs the OS without opening a window. The keyboard is read from
// stdin (raw when stdin is a terminal) and the serial line is written to stdout.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HostConfig) error {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	h, err := newHost(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fd := int(os.Stdin.Fd())
	if !cfg.CookedStdin && term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("raw stdin: %w", err)
		}
		defer term.Restore(fd, oldState)
		h.serial.crlf = true
	}

	// stdin belongs to the keyboard in headless mode. It is read only once
	// the app is consuming key events.
	h.serial.r = nil
	step := newApp(h)
	go h.kbd.feed(ctx, os.Stdin, cancel)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.t.step(1)
			if step != nil {
				for i := 0; i < cfg.StepBudget; i++ {
					if err := step(); err != nil {
						return err
					}
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
