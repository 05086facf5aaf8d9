package audio

import (
	"math"
	"math/rand/v2"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// thump is a decaying low sine under low-passed noise, the body of a burst.
type thump struct {
	rate     beep.SampleRate
	pos      int
	total    int
	freq     float64
	decay    float64 // seconds for the envelope to fall by 1/e
	smooth   float64 // one-pole low-pass coefficient for the noise
	noiseMix float64
	prev     float64
	rng      *rand.Rand
}

func (t *thump) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		sec := float64(t.pos) / float64(t.rate)
		env := math.Exp(-sec / t.decay)
		t.prev += (t.rng.Float64()*2 - 1 - t.prev) * t.smooth
		val := env * ((1-t.noiseMix)*math.Sin(2*math.Pi*t.freq*sec) + t.noiseMix*t.prev*3)
		val = clampSample(val)
		samples[i][0] = val
		samples[i][1] = val
		t.pos++
	}
	return len(samples), true
}

func (t *thump) Err() error { return nil }

// whoosh is band-limited noise that swells and fades while its cutoff
// rises, the sound of a comet leaving the tube.
type whoosh struct {
	rate  beep.SampleRate
	pos   int
	total int
	prev  float64
	rng   *rand.Rand
}

func (w *whoosh) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if w.pos >= w.total {
			return i, i > 0
		}
		f := float64(w.pos) / float64(w.total)
		smooth := 0.02 + 0.25*f
		w.prev += (w.rng.Float64()*2 - 1 - w.prev) * smooth
		env := math.Sin(math.Pi * f)
		val := clampSample(env * w.prev * 2.5)
		samples[i][0] = val
		samples[i][1] = val
		w.pos++
	}
	return len(samples), true
}

func (w *whoosh) Err() error { return nil }

// crackle fires short noise clicks at random times.
type crackle struct {
	rate    beep.SampleRate
	pos     int
	total   int
	density float64 // clicks per second
	click   int     // samples left in the current click
	clickN  int
	rng     *rand.Rand
}

func (c *crackle) Stream(samples [][2]float64) (n int, ok bool) {
	p := c.density / float64(c.rate)
	for i := range samples {
		if c.pos >= c.total {
			return i, i > 0
		}
		if c.click == 0 && c.rng.Float64() < p {
			c.click = c.clickN
		}
		var val float64
		if c.click > 0 {
			env := float64(c.click) / float64(c.clickN)
			val = (c.rng.Float64()*2 - 1) * env
			c.click--
		}
		// thin out towards the tail
		val *= 1 - float64(c.pos)/float64(c.total)*0.6
		samples[i][0] = val
		samples[i][1] = val
		c.pos++
	}
	return len(samples), true
}

func (c *crackle) Err() error { return nil }

func clampSample(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

// newVolume wraps s with a linear gain. math.Log2(0) is -Inf, so zero gain
// is made silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
