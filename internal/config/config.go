package config

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/example/vibes/internal/engine"
	"github.com/example/vibes/internal/theme"
)

// Notify selects which cue targets are active.
type Notify struct {
	Spill     bool
	Explosion bool
	Success   bool
	Sound     bool
}

// Mode holds per-mode overrides from a [mode.<name>] section. Nil fields keep
// the preset's value.
type Mode struct {
	Threshold    *float64
	NoThreshold  bool
	StampSpacing *float64
	StampSize    *float64
	Widths       map[string]engine.WidthRule
	Glyphs       map[string]string
	Palette      []color.RGBA
	Background   *color.RGBA
	Gallery      *bool
}

// Config holds the application configuration.
type Config struct {
	Mode       string
	MarkerSize float64
	SaveDir    string
	Theme      string
	Notify     Notify
	Modes      map[string]*Mode
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Mode: "wiggly",
		Notify: Notify{
			Spill:     true,
			Explosion: true,
			Success:   false,
			Sound:     true,
		},
		Modes: make(map[string]*Mode),
	}
}

// ModeFor returns the overrides for name, creating an empty entry.
func (c *Config) ModeFor(name string) *Mode {
	m, ok := c.Modes[name]
	if !ok {
		m = &Mode{}
		c.Modes[name] = m
	}
	return m
}

// Apply layers the overrides onto an engine configuration.
func (m *Mode) Apply(cfg *engine.Config) error {
	if m == nil {
		return nil
	}
	switch {
	case m.NoThreshold:
		cfg.ActivityThreshold = nil
	case m.Threshold != nil:
		cfg.ActivityThreshold = engine.Threshold(*m.Threshold)
	}
	if m.StampSpacing != nil {
		cfg.StampMinSpacing = *m.StampSpacing
	}
	if m.StampSize != nil {
		cfg.StampSize = *m.StampSize
	}
	if len(m.Widths) > 0 && cfg.StrokeWidths == nil {
		cfg.StrokeWidths = make(map[engine.Tool]engine.WidthRule)
	}
	for name, rule := range m.Widths {
		tool, err := engine.ParseTool(name)
		if err != nil {
			return fmt.Errorf("width.%s: %w", name, err)
		}
		cfg.StrokeWidths[tool] = rule
	}
	for name, text := range m.Glyphs {
		replaced := false
		for i := range cfg.Glyphs {
			if cfg.Glyphs[i].Name == name {
				cfg.Glyphs[i].Text = text
				replaced = true
			}
		}
		if !replaced {
			cfg.Glyphs = append(cfg.Glyphs, engine.Glyph{Name: name, Text: text})
		}
	}
	if len(m.Palette) > 0 {
		cfg.Palette = append([]color.RGBA(nil), m.Palette...)
	}
	if m.Background != nil {
		cfg.Background = *m.Background
	}
	if m.Gallery != nil {
		cfg.GalleryEnabled = *m.Gallery
	}
	return nil
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Mode != "" {
		fmt.Fprintf(&sb, "mode = %s\n", c.Mode)
	}
	if c.MarkerSize > 0 {
		fmt.Fprintf(&sb, "marker_size = %s\n", formatFloat(c.MarkerSize))
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "spill = %v\n", c.Notify.Spill)
	fmt.Fprintf(&sb, "explosion = %v\n", c.Notify.Explosion)
	fmt.Fprintf(&sb, "success = %v\n", c.Notify.Success)
	fmt.Fprintf(&sb, "sound = %v\n", c.Notify.Sound)
	sb.WriteString("\n")

	var names []string
	for name := range c.Modes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m := c.Modes[name]
		fmt.Fprintf(&sb, "[mode.%s]\n", name)
		switch {
		case m.NoThreshold:
			sb.WriteString("threshold = none\n")
		case m.Threshold != nil:
			fmt.Fprintf(&sb, "threshold = %s\n", formatFloat(*m.Threshold))
		}
		if m.StampSpacing != nil {
			fmt.Fprintf(&sb, "stamp_spacing = %s\n", formatFloat(*m.StampSpacing))
		}
		if m.StampSize != nil {
			fmt.Fprintf(&sb, "stamp_size = %s\n", formatFloat(*m.StampSize))
		}
		for _, tool := range sortedKeys(m.Widths) {
			fmt.Fprintf(&sb, "width.%s = %s\n", tool, formatWidth(m.Widths[tool]))
		}
		for _, g := range sortedKeys(m.Glyphs) {
			fmt.Fprintf(&sb, "glyph.%s = %s\n", g, m.Glyphs[g])
		}
		if len(m.Palette) > 0 {
			hexes := make([]string, len(m.Palette))
			for i, c := range m.Palette {
				hexes[i] = theme.Hex(c)
			}
			fmt.Fprintf(&sb, "palette = %s\n", strings.Join(hexes, ", "))
		}
		if m.Background != nil {
			fmt.Fprintf(&sb, "background = %s\n", theme.Hex(*m.Background))
		}
		if m.Gallery != nil {
			fmt.Fprintf(&sb, "gallery = %v\n", *m.Gallery)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// formatWidth writes a fixed width as a plain number and a scaled width as
// x<factor>.
func formatWidth(w engine.WidthRule) string {
	if w.Fixed > 0 {
		return formatFloat(w.Fixed)
	}
	return "x" + formatFloat(w.Scale)
}
