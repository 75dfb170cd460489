package main

import (
	"context"
	"flag"

	"github.com/example/vibes/internal/modes"
	"github.com/example/vibes/internal/playground"
	"github.com/example/vibes/internal/theme"
)

type openCmd struct {
	*root
	fs   *flag.FlagSet
	mode string
}

func parseOpenCmd(args []string, r *root) (*openCmd, error) {
	fs := flag.NewFlagSet("open", flag.ExitOnError)
	c := &openCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.mode, "mode", "", "mode name or text command (overrides the global -mode)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *openCmd) FlagSet() *flag.FlagSet { return c.fs }
func (c *openCmd) Program() string        { return c.root.program + " open" }
func (c *openCmd) Template() string       { return "open.txt" }

func (c *openCmd) Run(ctx context.Context) error {
	logger := loggerFromContext(ctx)
	eng, raster, err := c.newEngine(ctx, c.mode)
	if err != nil {
		return err
	}
	name := eng.Config().Name
	retro, err := theme.NewLoader().Load(modes.Retro)
	if err != nil {
		logger.Debug("no retro theme", "err", err)
	}
	sess := playground.New(eng, raster, playground.Options{
		Theme:      c.windowTheme(ctx, name),
		RetroTheme: retro,
		SaveDir:    c.config.SaveDir,
		Announcer:  c.notifier,
		Logger:     logger,
		Version:    version,
	})
	sess.Run()
	logger.Debug("window closed", "mode", name, "gallery", eng.Gallery().Len())
	return nil
}
