package hal

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// HostConfig controls the host runner.
type HostConfig struct {
	// Headless runs without a window; the keyboard is read from stdin and
	// the serial line is written to stdout.
	Headless bool `toml:"headless"`

	// Hz is the step rate of the runner.
	Hz int `toml:"hz"`

	// Ticks stops the headless runner after N steps (0 = run forever).
	Ticks uint64 `toml:"ticks"`

	// Scale is the window zoom factor.
	Scale int `toml:"scale"`

	// LogFile receives kernel log lines. Empty means stderr.
	LogFile string `toml:"log_file"`

	// CookedStdin leaves the controlling terminal in line mode in headless
	// runs instead of switching it to raw mode.
	CookedStdin bool `toml:"cooked_stdin"`

	StepBudget int `toml:"-"`
}

type configFile struct {
	Host HostConfig `toml:"host"`
}

// LoadConfig reads a TOML file with a [host] table. Missing keys keep their
// defaults.
func LoadConfig(path string) (HostConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return HostConfig{}, fmt.Errorf("read config: %w", err)
	}

	var f configFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return HostConfig{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := f.Host
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return HostConfig{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// SetDefaults fills zero fields.
func (c *HostConfig) SetDefaults() {
	if c.Hz == 0 {
		c.Hz = 60
	}
	if c.Scale == 0 {
		c.Scale = 2
	}
	if c.StepBudget <= 0 {
		c.StepBudget = 1
	}
}

// Validate reports the first invalid field.
func (c HostConfig) Validate() error {
	if c.Hz < 1 || c.Hz > 1000 {
		return fmt.Errorf("hz must be in [1, 1000], got %d", c.Hz)
	}
	if c.Scale < 1 || c.Scale > 8 {
		return fmt.Errorf("scale must be in [1, 8], got %d", c.Scale)
	}
	return nil
}
