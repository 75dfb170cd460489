package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/vibes/internal/audio"
	"github.com/example/vibes/internal/engine"
	"github.com/example/vibes/internal/platform"
)

var playSoundFn = platform.PlaySound

type cueCmd struct {
	*root
	fs     *flag.FlagSet
	output string
	rate   int
	play   bool
	cue    engine.Cue
}

func parseCueCmd(args []string, r *root) (*cueCmd, error) {
	fs := flag.NewFlagSet("cue", flag.ExitOnError)
	c := &cueCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "o", "", "WAV file to write, - for stdout")
	fs.IntVar(&c.rate, "rate", audio.DefaultSampleRate, "sample rate in Hz")
	fs.BoolVar(&c.play, "play", false, "play the cue through the system player")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 || (c.output == "" && !c.play) {
		return nil, &UsageError{of: c}
	}
	cue, err := engine.ParseCue(fs.Arg(0))
	if err != nil {
		return nil, err
	}
	if cue == engine.CueNone {
		return nil, fmt.Errorf("cue %q has no sound", fs.Arg(0))
	}
	c.cue = cue
	return c, nil
}

func (c *cueCmd) FlagSet() *flag.FlagSet { return c.fs }
func (c *cueCmd) Program() string        { return c.root.program + " cue" }
func (c *cueCmd) Template() string       { return "cue.txt" }

func (c *cueCmd) Run(ctx context.Context) error {
	logger := loggerFromContext(ctx)
	synth, err := audio.New(c.rate, 1)
	if err != nil {
		return err
	}
	defer synth.Close()
	samples, err := synth.Render(ctx, c.cue)
	if err != nil {
		return fmt.Errorf("render %s: %w", c.cue, err)
	}
	logger.Debug("rendered cue", "cue", c.cue, "samples", len(samples), "rate", c.rate)

	if c.output == "-" {
		if err := audio.WriteWAV(c.stdout, c.rate, samples); err != nil {
			return err
		}
	}

	path := c.output
	switch {
	case path == "" || path == "-":
		if !c.play {
			return nil
		}
		f, err := os.CreateTemp("", "vibes-cue-*.wav")
		if err != nil {
			return err
		}
		defer os.Remove(f.Name())
		if err := writeWAVFile(f, c.rate, samples); err != nil {
			return err
		}
		path = f.Name()
	default:
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := writeWAVFile(f, c.rate, samples); err != nil {
			return err
		}
		logger.Info("wrote cue", "cue", c.cue, "path", path)
	}
	if c.play {
		return playSoundFn(path)
	}
	return nil
}

func writeWAVFile(f io.WriteCloser, rate int, samples []float32) error {
	if err := audio.WriteWAV(f, rate, samples); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
