package engine

// StampPlacer places glyphs along a drag, skipping positions that are not
// farther than the minimum spacing from the last rendered stamp.
type StampPlacer struct {
	surface func() Surface
	ctrl    *Controller
	units   float64
	spacing float64

	active bool
	last   Point
	style  Style
}

// Begin renders the glyph at p and records p as the last placement. The
// first stamp of a mark does not count towards activity.
func (s *StampPlacer) Begin(p Point, st Style) {
	if !s.ctrl.CanDraw() {
		return
	}
	surf := s.surface()
	if surf == nil {
		return
	}
	s.active = true
	s.style = st
	surf.DrawGlyph(st.Glyph, p, st.GlyphSize, st.Color)
	s.last = p
}

// Continue renders at p when it is farther than the spacing from the last
// rendered position. It reports whether the threshold was crossed.
func (s *StampPlacer) Continue(p Point) bool {
	if !s.active || !s.ctrl.CanDraw() {
		return false
	}
	if p.Dist(s.last) <= s.spacing {
		return false
	}
	surf := s.surface()
	if surf == nil {
		return false
	}
	surf.DrawGlyph(s.style.Glyph, p, s.style.GlyphSize, s.style.Color)
	s.last = p
	return s.ctrl.activity.Add(s.units)
}

// End clears the last placement so the next Begin starts a fresh gate.
func (s *StampPlacer) End() {
	s.active = false
	s.last = Point{}
	s.style = Style{}
}

// Active reports whether a stamping gesture is in progress.
func (s *StampPlacer) Active() bool { return s.active }
