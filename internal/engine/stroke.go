package engine

// StrokeRenderer turns a pointer drag into connected round-capped segments
// baked straight into the surface. Style, including opacity, is captured per
// mark at Begin and dropped at End.
type StrokeRenderer struct {
	surface func() Surface
	ctrl    *Controller
	units   float64

	active bool
	last   Point
	style  Style
}

// Begin starts a new path at p. Nothing is drawn until the first Continue.
func (r *StrokeRenderer) Begin(p Point, st Style) {
	if !r.ctrl.CanDraw() {
		return
	}
	r.active = true
	r.last = p
	r.style = st
}

// Continue draws a segment from the previous point to p and feeds the
// activity accumulator. It reports whether the threshold was crossed.
func (r *StrokeRenderer) Continue(p Point) bool {
	if !r.active || !r.ctrl.CanDraw() {
		return false
	}
	s := r.surface()
	if s == nil {
		return false
	}
	s.DrawLine(r.last, p, r.style.Width, r.style.Color, r.style.Opacity)
	r.last = p
	return r.ctrl.activity.Add(r.units)
}

// End finalises the current path.
func (r *StrokeRenderer) End() {
	r.active = false
	r.style = Style{}
}

// Active reports whether a path is in progress.
func (r *StrokeRenderer) Active() bool { return r.active }
