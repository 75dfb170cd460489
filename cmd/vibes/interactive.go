package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/vibes/internal/engine"
	"github.com/example/vibes/internal/script"
	"github.com/example/vibes/internal/surface"
)

type interactiveCmd struct {
	*root
	fs    *flag.FlagSet
	mode  string
	execs commandList
	stdin io.Reader

	eng    *engine.Engine
	raster *surface.Raster
	runner *script.Runner
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	c := &interactiveCmd{root: r, fs: fs, stdin: os.Stdin}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.mode, "mode", "", "mode name or text command (overrides the global -mode)")
	fs.Var(&c.execs, "e", "execute a command in immediate mode (may be specified multiple times)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *interactiveCmd) FlagSet() *flag.FlagSet { return c.fs }
func (c *interactiveCmd) Program() string        { return c.root.program + " interactive" }
func (c *interactiveCmd) Template() string       { return "interactive.txt" }

func (c *interactiveCmd) Run(ctx context.Context) error {
	if err := c.switchMode(ctx, c.mode); err != nil {
		return err
	}
	if len(c.execs) > 0 {
		for _, line := range c.execs {
			done, err := c.executeLine(ctx, line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintf(c.stdout, "%s canvas ready. Enter commands (type 'help' or 'exit')\n", c.eng.Config().Name)
	scanner := bufio.NewScanner(c.stdin)
	for {
		fmt.Fprint(c.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := c.executeLine(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintln(c.stderr, err)
		}
		if done {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return scanner.Err()
}

func (c *interactiveCmd) switchMode(ctx context.Context, name string) error {
	eng, raster, err := c.newEngine(ctx, name)
	if err != nil {
		return err
	}
	c.eng, c.raster = eng, raster
	c.runner = script.NewRunner(eng, loggerFromContext(ctx))
	return nil
}

// executeLine runs one command and reports whether the session should end.
func (c *interactiveCmd) executeLine(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprintf(c.stdout, "drawing: %s\nsession: mode <name>, status, save <file>, copy, exit\n", strings.Join(script.Ops(), ", "))
		return false, nil
	case "status":
		fmt.Fprintln(c.stdout, c.status())
		return false, nil
	case "mode":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: mode <name|command>")
		}
		if err := c.switchMode(ctx, strings.Join(fields[1:], " ")); err != nil {
			return false, err
		}
		fmt.Fprintln(c.stdout, c.status())
		return false, nil
	case "save":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: save <file>")
		}
		return false, c.save(ctx, fields[1])
	case "copy":
		data, err := c.raster.ExportSnapshot()
		if err != nil {
			return false, err
		}
		if err := writeClipboardFn(data); err != nil {
			return false, fmt.Errorf("copy to clipboard: %w", err)
		}
		c.notifyCopy("drawing")
		return false, nil
	}
	cmd, err := script.ParseLine(line)
	if err != nil {
		return false, err
	}
	before := c.eng.State()
	if err := c.runner.Exec(cmd); err != nil {
		return false, fmt.Errorf("%s: %w", cmd, err)
	}
	if before != c.eng.State() {
		fmt.Fprintf(c.stdout, "state: %s\n", c.eng.State())
	}
	return false, nil
}

func (c *interactiveCmd) status() string {
	cfg := c.eng.Config()
	threshold := "none"
	if cfg.ActivityThreshold != nil {
		threshold = fmt.Sprintf("%.0f", *cfg.ActivityThreshold)
	}
	return fmt.Sprintf("mode=%s state=%s tool=%s size=%g activity=%.0f/%s gallery=%d",
		cfg.Name, c.eng.State(), c.eng.Tool(), c.eng.MarkerSize(), c.eng.Activity(), threshold, c.eng.Gallery().Len())
}

func (c *interactiveCmd) save(ctx context.Context, path string) error {
	data, err := c.raster.ExportSnapshot()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	loggerFromContext(ctx).Info("saved", "path", path)
	c.notifySave(path)
	return nil
}
