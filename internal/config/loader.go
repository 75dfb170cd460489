package config

import (
	"os"
	"path/filepath"
)

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time if needed
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the rc file, if any, and then applies environment overrides.
func (l *Loader) Load() (*Config, error) {
	cfg := New()
	if path := l.GetConfigPath(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if cfg, err = Parse(f); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	// 1. Variable override path
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	// 2. Local run directory (dev mode)
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".vibesrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	// 3. XDG Config Path
	return l.userPath(true)
}

// SavePath is where "config save" writes: the override path if set, else the
// XDG config file.
func (l *Loader) SavePath() string {
	if l.OverridePath != "" {
		return l.OverridePath
	}
	return l.userPath(false)
}

func (l *Loader) userPath(mustExist bool) string {
	home, _ := os.UserHomeDir()
	for _, name := range []string{"config.rc", "vibes.rc"} {
		p := filepath.Join(home, ".config", "vibes", name)
		if _, err := os.Stat(p); err == nil || !mustExist {
			return p
		}
	}
	return ""
}
