package audio

import (
	"math"
	"math/rand/v2"

	"github.com/example/vibes/internal/engine"
)

type recipe struct {
	seconds float64
	render  func(dst []float32, rate float64)
}

var recipes = map[engine.Cue]recipe{
	engine.CueSpill:     {seconds: 0.6, render: splash},
	engine.CueExplosion: {seconds: 0.4, render: explosion},
	engine.CueChaos:     {seconds: 0.3, render: chaos},
	engine.CueSuccess:   {seconds: 0.25, render: success},
}

// Duration reports how long the cue's sound lasts in seconds, or 0 when the
// cue is silent.
func Duration(cue engine.Cue) float64 { return recipes[cue].seconds }

// ramp follows an exponential curve from v0 to v1 over d seconds and holds
// v1 afterwards.
func ramp(v0, v1, d, t float64) float64 {
	if t >= d {
		return v1
	}
	return v0 * math.Pow(v1/v0, t/d)
}

type oscillator struct {
	phase float64
}

// next advances by one sample at freq and returns the phase in [0,1).
func (o *oscillator) next(freq, rate float64) float64 {
	p := o.phase
	o.phase += freq / rate
	o.phase -= math.Floor(o.phase)
	return p
}

func sine(p float64) float64     { return math.Sin(2 * math.Pi * p) }
func sawtooth(p float64) float64 { return 2*p - 1 }
func triangle(p float64) float64 { return 1 - 4*math.Abs(p-0.5) }

// splash is a glass clink over lowpassed noise.
func splash(dst []float32, rate float64) {
	var clink oscillator
	rng := rand.New(rand.NewPCG(0x5eed, 0xc0ffee))
	var lp float64
	for i := range dst {
		t := float64(i) / rate
		var v float64
		if t < 0.1 {
			v += 0.3 * ramp(1, 1.0/30, 0.1, t) * sine(clink.next(ramp(2800, 1500, 0.05, t), rate))
		}
		cutoff := ramp(800, 100, 0.5, t)
		a := 1 - math.Exp(-2*math.Pi*cutoff/rate)
		lp += a * ((rng.Float64()*2 - 1) - lp)
		v += ramp(0.6, 0.01, 0.6, t) * lp
		dst[i] = float32(v)
	}
}

// explosion is a falling sawtooth.
func explosion(dst []float32, rate float64) {
	var osc oscillator
	for i := range dst {
		t := float64(i) / rate
		dst[i] = float32(ramp(0.6, 0.01, 0.4, t) * sawtooth(osc.next(ramp(120, 30, 0.4, t), rate)))
	}
}

// chaos layers a falling sine and triangle.
func chaos(dst []float32, rate float64) {
	var a, b oscillator
	for i := range dst {
		t := float64(i) / rate
		v := ramp(0.4, 0.01, 0.3, t) * sine(a.next(ramp(440, 220, 0.3, t), rate))
		v += ramp(0.3, 0.01, 0.3, t) * triangle(b.next(ramp(330, 110, 0.3, t), rate))
		dst[i] = float32(v)
	}
}

// success is two rising blips.
func success(dst []float32, rate float64) {
	var osc oscillator
	for i := range dst {
		t := float64(i) / rate
		freq, start := 660.0, 0.0
		if t >= 0.12 {
			freq, start = 880, 0.12
		}
		dst[i] = float32(ramp(0.4, 0.01, 0.12, t-start) * sine(osc.next(freq, rate)))
	}
}
