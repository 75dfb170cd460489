package playground

import (
	"fmt"
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/vibes/internal/engine"
	"github.com/example/vibes/internal/modes"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

type shortcutList []KeyShortcut

const sizeStep = 4

func (s *Session) register(name string, keys shortcutList, fn func()) {
	s.actions[name] = fn
	for _, sc := range keys {
		s.shortcut[sc] = name
	}
}

func (s *Session) configure() {
	s.actions = map[string]func(){}
	s.shortcut = map[KeyShortcut]string{}

	for _, t := range []struct {
		r    rune
		tool engine.Tool
	}{
		{'p', engine.ToolPen},
		{'m', engine.ToolMarker},
		{'h', engine.ToolHighlighter},
		{'e', engine.ToolEraser},
		{'t', engine.ToolPattern},
	} {
		tool := t.tool
		s.register(tool.String(), shortcutList{{Rune: t.r}}, func() {
			if err := s.eng.SetTool(tool); err != nil {
				s.logger.Error("tool", "err", err)
			}
		})
	}

	palette := s.eng.Config().Palette
	for i := 0; i < len(palette) && i < 9; i++ {
		idx := i
		s.register(fmt.Sprintf("color%d", i+1), shortcutList{{Rune: rune('1' + i)}}, func() {
			if err := s.eng.SetPaletteColor(idx); err != nil {
				s.logger.Error("color", "err", err)
			}
		})
	}

	s.register("smaller", shortcutList{{Rune: '['}}, func() {
		if size := s.eng.MarkerSize() - sizeStep; size > 0 {
			_ = s.eng.SetMarkerSize(size)
		}
	})
	s.register("bigger", shortcutList{{Rune: ']'}}, func() {
		_ = s.eng.SetMarkerSize(s.eng.MarkerSize() + sizeStep)
	})
	s.register("cycle", shortcutList{{Rune: ' '}, {Code: key.CodeSpacebar}}, func() {
		s.setMessage("pattern %s", s.eng.CyclePattern())
	})
	s.register("clear", shortcutList{{Rune: 'c'}}, s.clear)
	s.register("prev", shortcutList{{Code: key.CodeLeftArrow}}, func() { s.showGallery(engine.Backward) })
	s.register("next", shortcutList{{Code: key.CodeRightArrow}}, func() { s.showGallery(engine.Forward) })
	s.register("back", shortcutList{{Code: key.CodeEscape}}, s.leaveGallery)
	s.register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, s.copyShown)
	s.register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, s.saveShown)
	s.register("quit", shortcutList{{Rune: 'q'}}, func() { s.done = true })
}

// Trigger runs a named action. It reports whether the action exists.
func (s *Session) Trigger(action string) bool {
	fn, ok := s.actions[action]
	if ok {
		fn()
	}
	return ok
}

// Key handles a key event and reports whether the frame needs repainting.
func (s *Session) Key(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	if s.konami.Press(konamiName(e)) {
		s.toggleRetro()
		return true
	}
	ks := KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: e.Modifiers}
	if e.Rune <= 0 {
		ks = KeyShortcut{Code: e.Code, Modifiers: e.Modifiers}
	}
	action, ok := s.shortcut[ks]
	if !ok {
		// Some drivers report special keys with both a code and a rune.
		action, ok = s.shortcut[KeyShortcut{Code: e.Code, Modifiers: e.Modifiers}]
	}
	if !ok {
		return false
	}
	s.Trigger(action)
	return true
}

func konamiName(e key.Event) string {
	switch e.Code {
	case key.CodeUpArrow:
		return modes.KeyUp
	case key.CodeDownArrow:
		return modes.KeyDown
	case key.CodeLeftArrow:
		return modes.KeyLeft
	case key.CodeRightArrow:
		return modes.KeyRight
	}
	if e.Rune > 0 {
		return string(unicode.ToLower(e.Rune))
	}
	return e.Code.String()
}
