// Package script is a headless pointer input source. A script is a list of
// line commands such as "down 10 20" or "tool marker" that drive an engine
// as if a user were drawing in a window of a declared size.
package script

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/example/vibes/internal/engine"
	"github.com/example/vibes/internal/theme"
)

// Command is one parsed script line.
type Command struct {
	Line int
	Op   string
	Args []string
}

func (c Command) String() string {
	return strings.TrimSpace(c.Op + " " + strings.Join(c.Args, " "))
}

var arity = map[string][2]int{
	"down":    {2, 2},
	"move":    {2, 2},
	"up":      {0, 0},
	"leave":   {0, 0},
	"drag":    {4, 5},
	"tool":    {1, 1},
	"color":   {1, 1},
	"pattern": {1, 1},
	"size":    {1, 1},
	"clear":   {0, 0},
	"reset":   {0, 0},
	"next":    {0, 0},
	"prev":    {0, 0},
	"view":    {1, 2},
}

// Ops lists the recognised operations.
func Ops() []string {
	return []string{"down", "move", "up", "leave", "drag", "tool", "color", "pattern", "size", "clear", "reset", "next", "prev", "view"}
}

// Parse reads a script. Blank lines and lines starting with # are skipped.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cmd, err := ParseLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cmd.Line = line
		cmds = append(cmds, cmd)
	}
	return cmds, scanner.Err()
}

// ParseLine parses a single command.
func ParseLine(text string) (Command, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}
	op := strings.ToLower(fields[0])
	n, ok := arity[op]
	if !ok {
		return Command{}, fmt.Errorf("unknown command %q", fields[0])
	}
	args := fields[1:]
	if len(args) < n[0] || len(args) > n[1] {
		if n[0] == n[1] {
			return Command{}, fmt.Errorf("%s takes %d arguments, got %d", op, n[0], len(args))
		}
		return Command{}, fmt.Errorf("%s takes %d to %d arguments, got %d", op, n[0], n[1], len(args))
	}
	return Command{Op: op, Args: args}, nil
}

// Runner executes commands against an engine.
type Runner struct {
	eng    *engine.Engine
	view   engine.Box
	logger *log.Logger
}

// NewRunner returns a runner whose view initially shows the surface at its
// native size.
func NewRunner(eng *engine.Engine, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	size := eng.NativeSize()
	return &Runner{
		eng:    eng,
		view:   engine.Box{Width: float64(size.X), Height: float64(size.Y)},
		logger: logger,
	}
}

// View returns the current display box.
func (r *Runner) View() engine.Box { return r.view }

// Run executes cmds in order, stopping at the first error or when ctx is
// cancelled. A pending mark is finalised before returning.
func (r *Runner) Run(ctx context.Context, cmds []Command) error {
	defer r.eng.Up()
	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Exec(cmd); err != nil {
			if cmd.Line > 0 {
				return fmt.Errorf("line %d: %s: %w", cmd.Line, cmd, err)
			}
			return fmt.Errorf("%s: %w", cmd, err)
		}
	}
	return nil
}

// Exec executes one command.
func (r *Runner) Exec(cmd Command) error {
	switch cmd.Op {
	case "down", "move":
		p, err := parsePoint(cmd.Args[0], cmd.Args[1])
		if err != nil {
			return err
		}
		if cmd.Op == "down" {
			r.eng.Down(p, r.view)
		} else {
			r.eng.Move(p, r.view)
		}
	case "up":
		r.eng.Up()
	case "leave":
		r.eng.Leave()
	case "drag":
		return r.drag(cmd.Args)
	case "tool":
		t, err := engine.ParseTool(cmd.Args[0])
		if err != nil {
			return err
		}
		return r.eng.SetTool(t)
	case "color":
		return r.color(cmd.Args[0])
	case "pattern":
		return r.eng.SetPattern(cmd.Args[0])
	case "size":
		f, err := parseNumber(cmd.Args[0])
		if err != nil {
			return err
		}
		return r.eng.SetMarkerSize(f)
	case "clear":
		return r.eng.Clear()
	case "reset":
		r.eng.Reset()
	case "next":
		r.eng.Gallery().Navigate(engine.Forward)
	case "prev":
		r.eng.Gallery().Navigate(engine.Backward)
	case "view":
		return r.setView(cmd.Args)
	default:
		return fmt.Errorf("unknown command %q", cmd.Op)
	}
	return nil
}

// drag presses at the first point, moves to the second in equal steps and
// releases.
func (r *Runner) drag(args []string) error {
	from, err := parsePoint(args[0], args[1])
	if err != nil {
		return err
	}
	to, err := parsePoint(args[2], args[3])
	if err != nil {
		return err
	}
	steps := 10
	if len(args) == 5 {
		if steps, err = strconv.Atoi(args[4]); err != nil || steps < 1 {
			return fmt.Errorf("invalid step count %q", args[4])
		}
	}
	r.eng.Down(from, r.view)
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps)
		r.eng.Move(engine.Point{X: from.X + (to.X-from.X)*f, Y: from.Y + (to.Y-from.Y)*f}, r.view)
	}
	r.eng.Up()
	return nil
}

// color accepts a 1-based palette index, a hex colour or a colour name.
func (r *Runner) color(arg string) error {
	if i, err := strconv.Atoi(arg); err == nil {
		return r.eng.SetPaletteColor(i - 1)
	}
	col, err := theme.ParseColor(arg)
	if err != nil {
		return err
	}
	r.eng.SetColor(col)
	return nil
}

// setView declares the displayed size, and optionally origin, of the
// surface: "view 700x500" or "view 700x500 10,20".
func (r *Runner) setView(args []string) error {
	w, h, ok := strings.Cut(strings.ToLower(args[0]), "x")
	if !ok {
		return fmt.Errorf("view size %q must be WxH", args[0])
	}
	size, err := parsePoint(w, h)
	if err != nil {
		return err
	}
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("view size %q must be positive", args[0])
	}
	var origin engine.Point
	if len(args) == 2 {
		x, y, ok := strings.Cut(args[1], ",")
		if !ok {
			return fmt.Errorf("view origin %q must be X,Y", args[1])
		}
		if origin, err = parsePoint(x, y); err != nil {
			return err
		}
	}
	r.view = engine.Box{X: origin.X, Y: origin.Y, Width: size.X, Height: size.Y}
	r.logger.Debug("view", "box", r.view)
	return nil
}

func parsePoint(xs, ys string) (engine.Point, error) {
	x, err := parseNumber(xs)
	if err != nil {
		return engine.Point{}, err
	}
	y, err := parseNumber(ys)
	if err != nil {
		return engine.Point{}, err
	}
	return engine.Point{X: x, Y: y}, nil
}

// parseNumber accepts finite decimal numbers only; NaN and Inf are rejected.
func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}
