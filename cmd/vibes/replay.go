package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/vibes/internal/clipboard"
	"github.com/example/vibes/internal/engine"
	"github.com/example/vibes/internal/script"
)

var writeClipboardFn = clipboard.WritePNG

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

type replayCmd struct {
	*root
	fs         *flag.FlagSet
	mode       string
	scriptFile string
	execs      commandList
	output     string
	galleryDir string
	copy       bool
	stdin      io.Reader
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	c := &replayCmd{root: r, fs: fs, stdin: os.Stdin}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.mode, "mode", "", "mode name or text command (overrides the global -mode)")
	fs.StringVar(&c.scriptFile, "script", "", "script file to replay, - for stdin")
	fs.Var(&c.execs, "e", "script line to run after the script file (may be repeated)")
	fs.StringVar(&c.output, "o", "", "write the final surface to this PNG file")
	fs.StringVar(&c.galleryDir, "gallery", "", "write every gallery entry into this directory")
	fs.BoolVar(&c.copy, "copy", false, "copy the final surface to the clipboard")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() == 1 && c.scriptFile == "" {
		c.scriptFile = fs.Arg(0)
	} else if fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	if c.scriptFile == "" && len(c.execs) == 0 {
		return nil, &UsageError{of: c}
	}
	if c.output == "" && c.galleryDir == "" && !c.copy {
		return nil, errors.New("nothing to do: pass -o, -gallery or -copy")
	}
	return c, nil
}

func (c *replayCmd) FlagSet() *flag.FlagSet { return c.fs }
func (c *replayCmd) Program() string        { return c.root.program + " replay" }
func (c *replayCmd) Template() string       { return "replay.txt" }

func (c *replayCmd) commands() ([]script.Command, error) {
	var cmds []script.Command
	if c.scriptFile != "" {
		var rd io.Reader = c.stdin
		if c.scriptFile != "-" {
			f, err := os.Open(c.scriptFile)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			rd = f
		}
		parsed, err := script.Parse(rd)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.scriptFile, err)
		}
		cmds = parsed
	}
	for _, line := range c.execs {
		cmd, err := script.ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("-e %q: %w", line, err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func (c *replayCmd) Run(ctx context.Context) error {
	logger := loggerFromContext(ctx)
	cmds, err := c.commands()
	if err != nil {
		return err
	}
	eng, raster, err := c.newEngine(ctx, c.mode)
	if err != nil {
		return err
	}

	p := newProgress(logger)
	if err := script.NewRunner(eng, logger).Run(ctx, cmds); err != nil {
		return err
	}
	p.done(fmt.Sprintf("Replayed %d commands in %s (activity %.0f, %s)", len(cmds), eng.Config().Name, eng.Activity(), eng.State()))

	data, err := raster.ExportSnapshot()
	if err != nil {
		return fmt.Errorf("encode surface: %w", err)
	}
	if c.output != "" {
		if err := os.WriteFile(c.output, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", c.output, err)
		}
		logger.Info("saved", "path", c.output)
		c.notifySave(c.output)
	}
	if c.galleryDir != "" {
		if err := dumpGallery(c.galleryDir, eng.Gallery()); err != nil {
			return err
		}
		logger.Info("gallery written", "dir", c.galleryDir, "entries", eng.Gallery().Len())
	}
	if c.copy {
		if err := writeClipboardFn(data); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		c.notifyCopy("drawing")
	}
	return nil
}

func dumpGallery(dir string, g *engine.Gallery) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for i, e := range g.Entries() {
		path := filepath.Join(dir, fmt.Sprintf("%03d-%s.png", i+1, e.ID))
		if err := os.WriteFile(path, e.Data, 0o644); err != nil {
			return fmt.Errorf("write gallery entry: %w", err)
		}
	}
	return nil
}
