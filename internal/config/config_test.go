package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/vibes/internal/engine"
)

func TestParse(t *testing.T) {
	input := `
mode = coffee
marker_size = 12
save_dir = /tmp/vibes

[notify]
spill = false
explosion = true
success = true
sound = false

[mode.wiggly]
threshold = 500
stamp_spacing = 20
width.eraser = 50
width.marker = x3
glyph.skull = 💀
palette = #000000, tomato
background = #FAFAFA
gallery = false

[mode.coffee]
threshold = none
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Mode != "coffee" {
		t.Errorf("Expected mode 'coffee', got '%s'", cfg.Mode)
	}
	if cfg.MarkerSize != 12 {
		t.Errorf("Expected marker_size 12, got %v", cfg.MarkerSize)
	}
	if cfg.SaveDir != "/tmp/vibes" {
		t.Errorf("Expected save_dir '/tmp/vibes', got '%s'", cfg.SaveDir)
	}
	want := Notify{Spill: false, Explosion: true, Success: true, Sound: false}
	if cfg.Notify != want {
		t.Errorf("Notify = %+v, want %+v", cfg.Notify, want)
	}

	w := cfg.Modes["wiggly"]
	if w == nil {
		t.Fatal("Expected [mode.wiggly] to be loaded")
	}
	if w.Threshold == nil || *w.Threshold != 500 {
		t.Errorf("threshold = %v", w.Threshold)
	}
	if w.Widths["eraser"] != (engine.WidthRule{Fixed: 50}) || w.Widths["marker"] != (engine.WidthRule{Scale: 3}) {
		t.Errorf("widths = %+v", w.Widths)
	}
	if len(w.Palette) != 2 || w.Palette[1] != (color.RGBA{255, 99, 71, 255}) {
		t.Errorf("palette = %+v", w.Palette)
	}
	if !cfg.Modes["coffee"].NoThreshold {
		t.Error("Expected coffee threshold = none")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"marker_size = -1",
		"[notify]\nspill = maybe",
		"[mode.x]\nwidth.crayon = 3",
		"[mode.x]\nthreshold = -5",
		"[mode.x]\npalette = #12",
		"[mode.x]\nwidth.pen = x0",
	}
	for _, input := range tests {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `mode = wiggly
marker_size = 40
save_dir = /home/user/art

[notify]
spill = true
explosion = false
success = true
sound = true

[mode.wiggly]
threshold = 2000
stamp_size = 50
width.eraser = 35
width.highlighter = x8
glyph.kitty = 🎀
palette = #1A2B3C, #FF0055
gallery = true

[mode.coffee]
threshold = none
background = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}
	if generated != cfg2.String() {
		t.Errorf("String() is not stable:\n%s\nvs\n%s", generated, cfg2.String())
	}
	if cfg.Mode != cfg2.Mode || cfg.MarkerSize != cfg2.MarkerSize || cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("root mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	m1, m2 := cfg.Modes["wiggly"], cfg2.Modes["wiggly"]
	if m1 == nil || m2 == nil {
		t.Fatalf("wiggly overrides missing in one config")
	}
	if *m1.Threshold != *m2.Threshold || m1.Widths["highlighter"] != m2.Widths["highlighter"] {
		t.Errorf("mode mismatch: %+v vs %+v", m1, m2)
	}
}

func TestModeApply(t *testing.T) {
	base := engine.Config{
		ActivityThreshold: engine.Threshold(1200),
		StrokeWidths:      map[engine.Tool]engine.WidthRule{engine.ToolPen: {Fixed: 4}},
		Glyphs:            []engine.Glyph{{Name: "heart", Text: "❤️"}},
	}
	spacing := 10.0
	gallery := true
	m := &Mode{
		NoThreshold:  true,
		StampSpacing: &spacing,
		Widths:       map[string]engine.WidthRule{"eraser": {Fixed: 35}},
		Glyphs:       map[string]string{"heart": "♥", "star": "⭐"},
		Gallery:      &gallery,
	}
	if err := m.Apply(&base); err != nil {
		t.Fatal(err)
	}
	if base.ActivityThreshold != nil {
		t.Error("threshold not cleared")
	}
	if base.StampMinSpacing != 10 || !base.GalleryEnabled {
		t.Errorf("scalars not applied: %+v", base)
	}
	if base.StrokeWidths[engine.ToolEraser].Fixed != 35 || base.StrokeWidths[engine.ToolPen].Fixed != 4 {
		t.Errorf("widths = %+v", base.StrokeWidths)
	}
	if len(base.Glyphs) != 2 || base.Glyphs[0].Text != "♥" {
		t.Errorf("glyphs = %+v", base.Glyphs)
	}
	var nilMode *Mode
	if err := nilMode.Apply(&base); err != nil {
		t.Fatal(err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("VIBES_MODE", "coffee")
	t.Setenv("VIBES_MARKER_SIZE", "8")
	t.Setenv("VIBES_SOUND", "false")
	cfg := New()
	cfg.SaveDir = "/from/rc"
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Mode != "coffee" || cfg.MarkerSize != 8 || cfg.Notify.Sound {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.SaveDir != "/from/rc" {
		t.Errorf("unset variable overrode rc value: %q", cfg.SaveDir)
	}
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	t.Setenv("VIBES_MARKER_SIZE", "huge")
	if err := New().ApplyEnv(); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoaderOverridePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.rc")
	if err := os.WriteFile(path, []byte("mode = coffee\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", dir)
	t.Setenv("VIBES_MODE", "")
	l := NewLoader("v1", path)
	if got := l.GetConfigPath(); got != path {
		t.Fatalf("GetConfigPath = %q", got)
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != "coffee" {
		t.Errorf("mode = %q", cfg.Mode)
	}
	if l.SavePath() != path {
		t.Errorf("SavePath = %q", l.SavePath())
	}
}

func TestLoaderDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("VIBES_MODE", "")
	l := NewLoader("v1", "")
	if got := l.GetConfigPath(); got != "" {
		t.Fatalf("GetConfigPath = %q, want empty", got)
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != New().Mode {
		t.Errorf("mode = %q", cfg.Mode)
	}
	if want := filepath.Join(dir, ".config", "vibes", "config.rc"); l.SavePath() != want {
		t.Errorf("SavePath = %q, want %q", l.SavePath(), want)
	}
}
