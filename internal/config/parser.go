package config

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/example/vibes/internal/engine"
	"github.com/example/vibes/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentMode *Mode

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentMode = nil

			if strings.HasPrefix(currentSection, "mode.") {
				currentMode = cfg.ModeFor(strings.TrimPrefix(currentSection, "mode."))
			}
			continue
		}

		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") && len(value) >= 2 {
			value = value[1 : len(value)-1]
		}

		if currentMode != nil {
			if err := setModeField(currentMode, key, value); err != nil {
				return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
			}
		} else if currentSection == "notify" {
			if err := setNotifyField(&cfg.Notify, key, value); err != nil {
				return nil, fmt.Errorf("error in section [notify]: %w", err)
			}
		} else if currentSection == "" {
			if err := setRootField(cfg, key, value); err != nil {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "mode":
		cfg.Mode = value
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	case "marker_size":
		f, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		cfg.MarkerSize = f
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "spill":
		n.Spill = b
	case "explosion":
		n.Explosion = b
	case "success":
		n.Success = b
	case "sound":
		n.Sound = b
	}
	return nil
}

func setModeField(m *Mode, key, value string) error {
	lower := strings.ToLower(key)
	switch {
	case lower == "threshold":
		if strings.EqualFold(value, "none") {
			m.NoThreshold, m.Threshold = true, nil
			return nil
		}
		f, err := parseNonNegative(key, value)
		if err != nil {
			return err
		}
		m.NoThreshold, m.Threshold = false, &f
	case lower == "stamp_spacing":
		f, err := parseNonNegative(key, value)
		if err != nil {
			return err
		}
		m.StampSpacing = &f
	case lower == "stamp_size":
		f, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		m.StampSize = &f
	case strings.HasPrefix(lower, "width."):
		tool := strings.TrimPrefix(lower, "width.")
		if _, err := engine.ParseTool(tool); err != nil {
			return err
		}
		rule, err := parseWidth(key, value)
		if err != nil {
			return err
		}
		if m.Widths == nil {
			m.Widths = make(map[string]engine.WidthRule)
		}
		m.Widths[tool] = rule
	case strings.HasPrefix(lower, "glyph."):
		if value == "" {
			return fmt.Errorf("empty glyph for key %s", key)
		}
		if m.Glyphs == nil {
			m.Glyphs = make(map[string]string)
		}
		m.Glyphs[strings.TrimPrefix(lower, "glyph.")] = value
	case lower == "palette":
		var pal []color.RGBA
		for _, s := range strings.Split(value, ",") {
			col, err := theme.ParseColor(s)
			if err != nil {
				return fmt.Errorf("invalid palette entry %q: %w", s, err)
			}
			pal = append(pal, col)
		}
		m.Palette = pal
	case lower == "background":
		col, err := theme.ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		m.Background = &col
	case lower == "gallery":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for key %s: %w", key, err)
		}
		m.Gallery = &b
	}
	return nil
}

// parseWidth accepts a fixed width ("35") or a multiple of the marker size
// ("x6").
func parseWidth(key, value string) (engine.WidthRule, error) {
	if s, ok := strings.CutPrefix(strings.ToLower(value), "x"); ok {
		f, err := parsePositive(key, s)
		if err != nil {
			return engine.WidthRule{}, err
		}
		return engine.WidthRule{Scale: f}, nil
	}
	f, err := parsePositive(key, value)
	if err != nil {
		return engine.WidthRule{}, err
	}
	return engine.WidthRule{Fixed: f}, nil
}

func parsePositive(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	if f <= 0 {
		return 0, fmt.Errorf("key %s must be positive, got %v", key, f)
	}
	return f, nil
}

func parseNonNegative(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	if f < 0 {
		return 0, fmt.Errorf("key %s must not be negative, got %v", key, f)
	}
	return f, nil
}
