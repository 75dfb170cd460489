package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/example/vibes/internal/engine"
	"github.com/example/vibes/internal/modes"
	"github.com/example/vibes/internal/theme"
)

type modesCmd struct {
	*root
	fs   *flag.FlagSet
	file string
}

func parseModesCmd(args []string, r *root) (*modesCmd, error) {
	fs := flag.NewFlagSet("modes", flag.ExitOnError)
	c := &modesCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "YAML presets to add before listing")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *modesCmd) FlagSet() *flag.FlagSet { return c.fs }
func (c *modesCmd) Program() string        { return c.root.program + " modes" }
func (c *modesCmd) Template() string       { return "modes.txt" }

func (c *modesCmd) Run(ctx context.Context) error {
	if c.file != "" {
		if err := c.loadPresets(ctx, c.file); err != nil {
			return err
		}
	}
	commands := modes.Commands()
	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODE\tSIZE\tTHRESHOLD\tGALLERY\tGLYPHS\tCOMMANDS")
	for _, name := range c.registry.Names() {
		cfg, err := c.engineConfig(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%dx%d\t%s\t%t\t%s\t%s\n",
			cfg.Name, cfg.Width, cfg.Height, thresholdLabel(cfg), cfg.GalleryEnabled, glyphLabel(cfg.Glyphs), strings.Join(commands[name], ","))
	}
	var others []string
	for mode := range commands {
		if _, err := c.registry.Get(mode); err != nil {
			others = append(others, mode)
		}
	}
	sort.Strings(others)
	for _, mode := range others {
		fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t%s\n", mode, strings.Join(commands[mode], ","))
	}
	return tw.Flush()
}

func thresholdLabel(cfg engine.Config) string {
	if cfg.ActivityThreshold == nil {
		return "none"
	}
	return fmt.Sprintf("%g", *cfg.ActivityThreshold)
}

func glyphLabel(gs []engine.Glyph) string {
	parts := make([]string, len(gs))
	for i, g := range gs {
		parts[i] = g.Name
	}
	return strings.Join(parts, ",")
}

type selectCmd struct {
	*root
	fs *flag.FlagSet
}

func parseSelectCmd(args []string, r *root) (*selectCmd, error) {
	fs := flag.NewFlagSet("select", flag.ExitOnError)
	c := &selectCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() == 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *selectCmd) FlagSet() *flag.FlagSet { return c.fs }
func (c *selectCmd) Program() string        { return c.root.program + " select" }
func (c *selectCmd) Template() string       { return "select.txt" }

func (c *selectCmd) Run(ctx context.Context) error {
	command := strings.Join(c.fs.Args(), " ")
	if cfg, err := c.registry.Get(strings.TrimSpace(command)); err == nil {
		fmt.Fprintln(c.stdout, cfg.Name)
		return nil
	}
	name, err := modes.Select(command)
	switch {
	case err == nil:
		fmt.Fprintln(c.stdout, name)
		return nil
	case errors.Is(err, modes.ErrUnsupportedMode):
		fmt.Fprintf(c.stdout, "%s (no drawing surface)\n", name)
		return nil
	default:
		return err
	}
}

type themesCmd struct {
	*root
	fs *flag.FlagSet
}

func parseThemesCmd(args []string, r *root) (*themesCmd, error) {
	fs := flag.NewFlagSet("themes", flag.ExitOnError)
	c := &themesCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *themesCmd) FlagSet() *flag.FlagSet { return c.fs }
func (c *themesCmd) Program() string        { return c.root.program + " themes" }
func (c *themesCmd) Template() string       { return "themes.txt" }

func (c *themesCmd) Run(ctx context.Context) error {
	if c.fs.NArg() == 0 {
		for _, name := range theme.Embedded() {
			fmt.Fprintln(c.stdout, name)
		}
		return nil
	}
	t, err := theme.NewLoader().Load(c.fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprint(c.stdout, t.String())
	return nil
}
