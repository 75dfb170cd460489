package modes

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/example/vibes/internal/engine"
	"github.com/example/vibes/internal/theme"
)

// Registry holds the available drawing mode presets.
type Registry struct {
	presets map[string]engine.Config
}

// NewRegistry returns a registry holding the built-in presets.
func NewRegistry() *Registry {
	r := &Registry{presets: make(map[string]engine.Config)}
	r.Add(CoffeePreset())
	r.Add(WigglyPreset())
	return r
}

// Add registers cfg under its name, replacing any preset of the same name.
func (r *Registry) Add(cfg engine.Config) {
	r.presets[cfg.Name] = cfg.Clone()
}

// Get returns a copy of the named preset.
func (r *Registry) Get(name string) (engine.Config, error) {
	cfg, ok := r.presets[name]
	if !ok {
		return engine.Config{}, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
	return cfg.Clone(), nil
}

// Resolve accepts either a preset name or a text command.
func (r *Registry) Resolve(nameOrCommand string) (engine.Config, error) {
	if cfg, err := r.Get(nameOrCommand); err == nil {
		return cfg, nil
	}
	name, err := Select(nameOrCommand)
	if err != nil {
		return engine.Config{}, err
	}
	return r.Get(name)
}

// Names lists the registered presets in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for n := range r.presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Load reads YAML presets from rd and registers them.
func (r *Registry) Load(rd io.Reader) ([]string, error) {
	presets, err := LoadPresets(rd)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, p := range presets {
		r.Add(p)
		names = append(names, p.Name)
	}
	return names, nil
}

// Preset is the YAML form of a drawing mode.
type Preset struct {
	Name               string                      `yaml:"name"`
	Base               string                      `yaml:"base,omitempty"`
	Width              int                         `yaml:"width,omitempty"`
	Height             int                         `yaml:"height,omitempty"`
	Background         string                      `yaml:"background,omitempty"`
	Palette            []string                    `yaml:"palette,omitempty"`
	Threshold          *float64                    `yaml:"threshold,omitempty"`
	NoThreshold        bool                        `yaml:"no_threshold,omitempty"`
	SegmentUnits       *float64                    `yaml:"segment_units,omitempty"`
	StampUnits         *float64                    `yaml:"stamp_units,omitempty"`
	StampSpacing       *float64                    `yaml:"stamp_spacing,omitempty"`
	StampSize          float64                     `yaml:"stamp_size,omitempty"`
	Widths             map[string]engine.WidthRule `yaml:"widths,omitempty"`
	HighlighterOpacity float64                     `yaml:"highlighter_opacity,omitempty"`
	Glyphs             []engine.Glyph              `yaml:"glyphs,omitempty"`
	MarkerSize         float64                     `yaml:"marker_size,omitempty"`
	Gallery            *bool                       `yaml:"gallery,omitempty"`
	TerminalCue        string                      `yaml:"terminal_cue,omitempty"`
	ResetCue           string                      `yaml:"reset_cue,omitempty"`
}

type presetFile struct {
	Modes []Preset `yaml:"modes"`
}

// LoadPresets decodes a YAML document with a top level "modes" list. Each
// entry starts from its base preset (wiggly when unset) and overrides the
// fields it names. Every result is validated.
func LoadPresets(rd io.Reader) ([]engine.Config, error) {
	var file presetFile
	if err := yaml.NewDecoder(rd).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	builtin := NewRegistry()
	var out []engine.Config
	for i, p := range file.Modes {
		cfg, err := p.config(builtin)
		if err != nil {
			return nil, fmt.Errorf("preset %d (%s): %w", i, p.Name, err)
		}
		out = append(out, cfg)
	}
	return out, nil
}

func (p Preset) config(builtin *Registry) (engine.Config, error) {
	if p.Name == "" {
		return engine.Config{}, fmt.Errorf("%w: preset without a name", engine.ErrInvalidConfig)
	}
	base := p.Base
	if base == "" {
		base = Wiggly
	}
	cfg, err := builtin.Get(base)
	if err != nil {
		return engine.Config{}, err
	}
	cfg.Name = p.Name
	if p.Width > 0 {
		cfg.Width = p.Width
	}
	if p.Height > 0 {
		cfg.Height = p.Height
	}
	if p.Background != "" {
		if cfg.Background, err = theme.ParseColor(p.Background); err != nil {
			return engine.Config{}, err
		}
	}
	if len(p.Palette) > 0 {
		cfg.Palette = cfg.Palette[:0]
		for _, s := range p.Palette {
			c, err := theme.ParseColor(s)
			if err != nil {
				return engine.Config{}, err
			}
			cfg.Palette = append(cfg.Palette, c)
		}
	}
	switch {
	case p.NoThreshold:
		cfg.ActivityThreshold = nil
	case p.Threshold != nil:
		cfg.ActivityThreshold = engine.Threshold(*p.Threshold)
	}
	if p.SegmentUnits != nil {
		cfg.SegmentUnits = *p.SegmentUnits
	}
	if p.StampUnits != nil {
		cfg.StampUnits = *p.StampUnits
	}
	if p.StampSpacing != nil {
		cfg.StampMinSpacing = *p.StampSpacing
	}
	if p.StampSize > 0 {
		cfg.StampSize = p.StampSize
	}
	for name, rule := range p.Widths {
		tool, err := engine.ParseTool(name)
		if err != nil {
			return engine.Config{}, err
		}
		cfg.StrokeWidths[tool] = rule
	}
	if p.HighlighterOpacity > 0 {
		cfg.HighlighterOpacity = p.HighlighterOpacity
	}
	if len(p.Glyphs) > 0 {
		cfg.Glyphs = append([]engine.Glyph(nil), p.Glyphs...)
	}
	if p.MarkerSize > 0 {
		cfg.MarkerSize = p.MarkerSize
	}
	if p.Gallery != nil {
		cfg.GalleryEnabled = *p.Gallery
	}
	if cfg.TerminalCue, err = parseCueOr(p.TerminalCue, cfg.TerminalCue); err != nil {
		return engine.Config{}, err
	}
	if cfg.ResetCue, err = parseCueOr(p.ResetCue, cfg.ResetCue); err != nil {
		return engine.Config{}, err
	}
	check := cfg.Clone()
	if err := check.Validate(); err != nil {
		return engine.Config{}, err
	}
	return cfg, nil
}

func parseCueOr(name string, fallback engine.Cue) (engine.Cue, error) {
	if name == "" {
		return fallback, nil
	}
	return engine.ParseCue(name)
}
