//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"ember/app"
	"ember/hal"
)

func main() {
	var (
		configPath string
		flags      hal.HostConfig
	)
	flag.StringVar(&configPath, "config", "", "TOML file with a [host] table.")
	flag.BoolVar(&flags.Headless, "headless", false, "Run without a window.")
	flag.IntVar(&flags.Hz, "hz", 60, "Steps per second.")
	flag.Uint64Var(&flags.Ticks, "ticks", 0, "Stop after N steps in headless mode (0 = run forever).")
	flag.IntVar(&flags.Scale, "scale", 2, "Window zoom factor.")
	flag.StringVar(&flags.LogFile, "log", "", "Write the kernel log to this file instead of stderr.")
	flag.BoolVar(&flags.CookedStdin, "cooked", false, "Leave the terminal in line mode in headless mode.")
	flag.Parse()

	cfg := flags
	if configPath != "" {
		var err error
		cfg, err = hal.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		// Flags given on the command line win over the file.
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "headless":
				cfg.Headless = flags.Headless
			case "hz":
				cfg.Hz = flags.Hz
			case "ticks":
				cfg.Ticks = flags.Ticks
			case "scale":
				cfg.Scale = flags.Scale
			case "log":
				cfg.LogFile = flags.LogFile
			case "cooked":
				cfg.CookedStdin = flags.CookedStdin
			}
		})
	}

	if cfg.Headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, app.New, cfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(app.New, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
