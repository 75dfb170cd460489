package engine

import (
	"fmt"
	"image/color"
	"strings"
)

// Tool identifies a drawing tool.
type Tool int

const (
	ToolPen Tool = iota
	ToolMarker
	ToolHighlighter
	ToolEraser
	ToolPattern
)

var toolNames = [...]string{
	ToolPen:         "pen",
	ToolMarker:      "marker",
	ToolHighlighter: "highlighter",
	ToolEraser:      "eraser",
	ToolPattern:     "pattern",
}

// Tools lists every tool in display order.
func Tools() []Tool {
	return []Tool{ToolPen, ToolMarker, ToolHighlighter, ToolEraser, ToolPattern}
}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("Tool(%d)", int(t))
	}
	return toolNames[t]
}

// Stamps reports whether the tool places glyphs instead of strokes.
func (t Tool) Stamps() bool { return t == ToolPattern }

// ParseTool resolves a tool by name.
func ParseTool(name string) (Tool, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range toolNames {
		if n == name {
			return Tool(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", name)
}

// Style holds the rendering parameters for one mark.
type Style struct {
	Tool      Tool
	Width     float64
	Opacity   float64
	Color     color.RGBA
	Glyph     string
	GlyphSize float64
}

// StyleFor maps the selected tool, colour, marker size and pattern to the
// parameters the stroke renderer and stamp placer need.
func (c *Config) StyleFor(tool Tool, col color.RGBA, markerSize float64, pattern string) Style {
	st := Style{
		Tool:    tool,
		Width:   c.widthFor(tool, markerSize),
		Opacity: 1,
		Color:   col,
	}
	switch tool {
	case ToolHighlighter:
		st.Opacity = c.HighlighterOpacity
	case ToolEraser:
		st.Color = c.Background
	case ToolPattern:
		st.Glyph = c.glyphFor(pattern)
		st.GlyphSize = c.StampSize
	}
	return st
}

func (c *Config) widthFor(tool Tool, markerSize float64) float64 {
	rule, ok := c.StrokeWidths[tool]
	if !ok {
		rule, ok = c.StrokeWidths[ToolPen]
	}
	if !ok {
		rule = DefaultWidth
	}
	return rule.Resolve(markerSize)
}

func (c *Config) glyphFor(pattern string) string {
	for _, g := range c.Glyphs {
		if g.Name == pattern {
			return g.Text
		}
	}
	if len(c.Glyphs) > 0 {
		return c.Glyphs[0].Text
	}
	return DefaultGlyph
}
