package engine

// Accumulator integrates an activity score and latches once it exceeds the
// threshold. It fires at most once between resets.
type Accumulator struct {
	threshold *float64
	score     float64
	fired     bool
}

// NewAccumulator returns an accumulator for threshold. A nil threshold never
// fires.
func NewAccumulator(threshold *float64) *Accumulator {
	a := &Accumulator{}
	if threshold != nil {
		a.threshold = Threshold(*threshold)
	}
	return a
}

// Add increases the score by units and reports whether this call crossed the
// threshold. Negative units are ignored so the score never decreases.
func (a *Accumulator) Add(units float64) bool {
	if units > 0 {
		a.score += units
	}
	if a.fired || a.threshold == nil || a.score <= *a.threshold {
		return false
	}
	a.fired = true
	return true
}

// Reset zeroes the score and re-arms the latch.
func (a *Accumulator) Reset() {
	a.score = 0
	a.fired = false
}

// Score returns the current activity score.
func (a *Accumulator) Score() float64 { return a.score }

// Fired reports whether the threshold has been crossed in this epoch.
func (a *Accumulator) Fired() bool { return a.fired }
