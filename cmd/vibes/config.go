package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/vibes/internal/config"
)

type configCmd struct {
	*root
	fs     *flag.FlagSet
	output string
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "o", "", "file written by save (defaults to the user config file)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *configCmd) Program() string {
	return c.root.program + " config"
}

func (c *configCmd) Template() string {
	return "config.txt"
}

func (c *configCmd) Run(ctx context.Context) error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}

	switch args[0] {
	case "print":
		fmt.Fprint(c.stdout, c.root.config.String())
		return nil
	case "save":
		return c.runSave(ctx)
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

func (c *configCmd) runSave(ctx context.Context) error {
	path := c.output
	if path == "" {
		path = config.NewLoader(version, configPathOverride).SavePath()
	}
	if path == "" {
		return fmt.Errorf("no config path: home directory unknown")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(c.root.config.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	loggerFromContext(ctx).Info("configuration saved", "path", path)
	return nil
}
