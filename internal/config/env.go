package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Env holds the environment overrides. They take precedence over the rc file
// and yield to command line flags.
type Env struct {
	Mode       string  `envconfig:"VIBES_MODE"`
	MarkerSize float64 `envconfig:"VIBES_MARKER_SIZE"`
	SaveDir    string  `envconfig:"VIBES_SAVE_DIR"`
	Theme      string  `envconfig:"VIBES_THEME"`
	Sound      *bool   `envconfig:"VIBES_SOUND"`
}

// ApplyEnv reads Env from the process environment and layers it onto c.
func (c *Config) ApplyEnv() error {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	if env.MarkerSize < 0 {
		return fmt.Errorf("VIBES_MARKER_SIZE must be positive, got %v", env.MarkerSize)
	}
	if env.Mode != "" {
		c.Mode = env.Mode
	}
	if env.MarkerSize > 0 {
		c.MarkerSize = env.MarkerSize
	}
	if env.SaveDir != "" {
		c.SaveDir = env.SaveDir
	}
	if env.Theme != "" {
		c.Theme = env.Theme
	}
	if env.Sound != nil {
		c.Notify.Sound = *env.Sound
	}
	return nil
}
