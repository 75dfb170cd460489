package playground

import (
	"golang.org/x/mobile/event/mouse"

	"github.com/example/vibes/internal/engine"
)

// Mouse handles a pointer event in window coordinates and reports whether the
// frame needs repainting. Dragging outside the displayed surface ends the
// mark as if the pointer had left it.
func (s *Session) Mouse(e mouse.Event) bool {
	p := engine.Point{X: float64(e.X), Y: float64(e.Y)}
	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		s.message = ""
		if s.viewing {
			s.leaveGallery()
			return true
		}
		if !inside(p, s.view) {
			return false
		}
		before := s.eng.State()
		s.eng.Down(p, s.view)
		return s.afterMark(before)
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft || !s.eng.Drawing() {
			return false
		}
		s.eng.Up()
		return true
	case mouse.DirNone:
		if !s.eng.Drawing() {
			return false
		}
		if !inside(p, s.view) {
			s.eng.Leave()
			return true
		}
		before := s.eng.State()
		s.eng.Move(p, s.view)
		return s.afterMark(before)
	}
	return false
}

func (s *Session) afterMark(before engine.State) bool {
	if before == engine.Idle && s.eng.State() == engine.Terminal {
		s.setMessage("drawing disabled, press c to clean up")
	}
	return true
}

func inside(p engine.Point, box engine.Box) bool {
	return !box.Empty() && p.X >= box.X && p.Y >= box.Y && p.X < box.X+box.Width && p.Y < box.Y+box.Height
}
