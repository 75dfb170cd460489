package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/example/vibes/internal/audio"
	"github.com/example/vibes/internal/config"
	"github.com/example/vibes/internal/engine"
	"github.com/example/vibes/internal/modes"
	"github.com/example/vibes/internal/notify"
	"github.com/example/vibes/internal/surface"
	"github.com/example/vibes/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface {
	Run(ctx context.Context) error
}

type root struct {
	fs       *flag.FlagSet
	program  string
	config   *config.Config
	registry *modes.Registry
	notifier *notify.Notifier
	stdout   io.Writer
	stderr   io.Writer

	verbose       bool
	modeName      string
	themeName     string
	markerSize    float64
	saveDir       string
	presetsFile   string
	spillAlerts   bool
	explodeAlerts bool
	successAlerts bool
	sound         bool
	activeTheme   *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot(stdout, stderr io.Writer) *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	prefs, err := notify.LoadPreferences()
	if err != nil {
		fmt.Fprintf(stderr, "warning: %v\n", err)
	}

	r := &root{
		fs:       flag.NewFlagSet("vibes", flag.ExitOnError),
		program:  "vibes",
		config:   cfg,
		registry: modes.NewRegistry(),
		notifier: notify.New(prefs),
		stdout:   stdout,
		stderr:   stderr,
	}
	r.fs.SetOutput(stderr)
	r.fs.BoolVar(&r.verbose, "v", false, "enable debug logging")
	r.fs.StringVar(&r.modeName, "mode", cfg.Mode, "drawing mode name or text command")
	r.fs.StringVar(&r.themeName, "theme", cfg.Theme, "window theme (defaults to the mode's theme)")
	r.fs.Float64Var(&r.markerSize, "size", cfg.MarkerSize, "marker size shared by the scaled tools (0 keeps the mode default)")
	r.fs.StringVar(&r.saveDir, "save-dir", cfg.SaveDir, "directory for saved drawings")
	r.fs.StringVar(&r.presetsFile, "presets", "", "YAML file with extra mode presets")
	r.fs.BoolVar(&r.spillAlerts, "notify-spill", cfg.Notify.Spill, "show a desktop notification when the coffee spills")
	r.fs.BoolVar(&r.explodeAlerts, "notify-explosion", cfg.Notify.Explosion, "show a desktop notification when a canvas is obliterated")
	r.fs.BoolVar(&r.successAlerts, "notify-success", cfg.Notify.Success, "show a desktop notification when a canvas is wiped")
	r.fs.BoolVar(&r.sound, "sound", cfg.Notify.Sound, "play cue sounds")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(ctx context.Context, args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.markerSize < 0 {
		return fmt.Errorf("-size must not be negative, got %v", r.markerSize)
	}

	level := log.InfoLevel
	if r.verbose {
		level = log.DebugLevel
	}
	logger := newLogger(r.stderr, level)
	ctx = withLogger(ctx, logger)

	// Flags default to the env/rc values, so copying them back gives
	// CLI > env > rc > defaults.
	r.config.Mode = r.modeName
	r.config.Theme = r.themeName
	r.config.MarkerSize = r.markerSize
	r.config.SaveDir = r.saveDir
	r.config.Notify = config.Notify{Spill: r.spillAlerts, Explosion: r.explodeAlerts, Success: r.successAlerts, Sound: r.sound}

	if r.notifier != nil {
		r.notifier.SetLogger(logger)
		r.notifier.Enable(notify.EventSpill, r.spillAlerts)
		r.notifier.Enable(notify.EventExplosion, r.explodeAlerts)
		r.notifier.Enable(notify.EventSuccess, r.successAlerts)
		r.notifier.Enable(notify.EventSave, true)
		r.notifier.Enable(notify.EventCopy, true)
		if r.sound {
			r.notifier.EnableSound(audio.Shared())
		}
		defer func() {
			if err := r.notifier.Close(); err != nil {
				logger.Warn("notifier cleanup", "err", err)
			}
		}()
	}

	if r.presetsFile != "" {
		if err := r.loadPresets(ctx, r.presetsFile); err != nil {
			return err
		}
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "open":
		cmd, err = parseOpenCmd(subArgs, r)
	case "replay":
		cmd, err = parseReplayCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "modes":
		cmd, err = parseModesCmd(subArgs, r)
	case "select":
		cmd, err = parseSelectCmd(subArgs, r)
	case "cue":
		cmd, err = parseCueCmd(subArgs, r)
	case "themes":
		cmd, err = parseThemesCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run(ctx)
}

func (r *root) loadPresets(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open presets: %w", err)
	}
	defer f.Close()
	names, err := r.registry.Load(f)
	if err != nil {
		return fmt.Errorf("load presets %s: %w", path, err)
	}
	loggerFromContext(ctx).Debug("presets loaded", "file", path, "modes", strings.Join(names, ","))
	return nil
}

// engineConfig resolves a mode name or command and layers the rc overrides
// and marker size on top of the preset.
func (r *root) engineConfig(name string) (engine.Config, error) {
	if strings.TrimSpace(name) == "" {
		name = r.config.Mode
	}
	cfg, err := r.registry.Resolve(name)
	if err != nil {
		return engine.Config{}, err
	}
	if err := r.config.Modes[cfg.Name].Apply(&cfg); err != nil {
		return engine.Config{}, fmt.Errorf("mode %s overrides: %w", cfg.Name, err)
	}
	if r.config.MarkerSize > 0 {
		cfg.MarkerSize = r.config.MarkerSize
	}
	return cfg, nil
}

func (r *root) newEngine(ctx context.Context, name string) (*engine.Engine, *surface.Raster, error) {
	cfg, err := r.engineConfig(name)
	if err != nil {
		return nil, nil, err
	}
	raster, err := surface.NewRaster(cfg.Width, cfg.Height, cfg.Background)
	if err != nil {
		return nil, nil, err
	}
	opts := []engine.Option{engine.WithLogger(loggerFromContext(ctx))}
	if r.notifier != nil {
		opts = append(opts, engine.WithCueSink(r.notifier))
	}
	eng, err := engine.New(cfg, raster, opts...)
	if err != nil {
		return nil, nil, err
	}
	return eng, raster, nil
}

// windowTheme picks the explicitly requested theme, else the mode's own.
func (r *root) windowTheme(ctx context.Context, mode string) *theme.Theme {
	if r.activeTheme != nil {
		return r.activeTheme
	}
	loader := theme.NewLoader()
	name := r.config.Theme
	if name == "" {
		r.activeTheme = loader.ForMode(mode)
		return r.activeTheme
	}
	t, err := loader.Load(name)
	if err != nil {
		loggerFromContext(ctx).Warn("theme not found, using default", "theme", name, "err", err)
		t = theme.Default()
	}
	r.activeTheme = t
	return t
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	r := newRoot(os.Stdout, os.Stderr)
	if err := r.Run(ctx, os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}
