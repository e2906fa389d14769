// Package config loads the optional TOML settings file. Flags in the
// frontend override anything read here.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	// FrameRate is the scheduler tick frequency in frames per second.
	FrameRate int `toml:"frame_rate"`
	// StepBudget is the instruction count per execution burst.
	StepBudget int `toml:"step_budget"`
	// LogFile receives diagnostic output; empty disables file logging.
	LogFile string `toml:"log_file"`
	// Image is a program loaded at startup instead of the builtin one.
	Image string `toml:"image"`
}

func Default() Config {
	return Config{
		FrameRate:  60,
		StepBudget: 50000,
	}
}

// Load reads path and merges it over the defaults. Fields left at zero in
// the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = Default().FrameRate
	}
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = Default().StepBudget
	}
	return cfg, nil
}

// FrameInterval converts the frame rate to the tick period the host
// schedules with.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}
