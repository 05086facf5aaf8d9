package fireworks

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Sky lighting constants. Saturation is in 8-bit channel units per
// SkyLighting step.
const (
	skySaturationStep = 15
	skyFullStarCount  = 500
	skyEaseDivisor    = 10
)

// sky eases the background toward the average color of the visible stars.
// Channels are kept in 8-bit units.
type sky struct {
	r, g, b float64
}

func (k *sky) update(sim *Simulation, speed float64) {
	maxSat := float64(sim.cfg.SkyLighting) * skySaturationStep

	var target colorful.Color
	total := 0
	for _, c := range Palette() {
		n := sim.stars.BucketLen(c)
		if n == 0 {
			continue
		}
		total += n
		p := palette[c]
		target.R += p.R * 255 * float64(n)
		target.G += p.G * 255 * float64(n)
		target.B += p.B * 255 * float64(n)
	}

	intensity := math.Pow(math.Min(1, float64(total)/skyFullStarCount), 0.3)
	maxComponent := math.Max(1, math.Max(target.R, math.Max(target.G, target.B)))
	scale := maxSat * intensity / maxComponent

	k.r += (target.R*scale - k.r) / skyEaseDivisor * speed
	k.g += (target.G*scale - k.g) / skyEaseDivisor * speed
	k.b += (target.B*scale - k.b) / skyEaseDivisor * speed
}

// color returns the current sky as an opaque Color.
func (k *sky) color() Color {
	c := colorful.Color{R: k.r / 255, G: k.g / 255, B: k.b / 255}.Clamped()
	return Color{c.R, c.G, c.B, 1}
}

// SkyColor returns the background color for the next Render.
func (sim *Simulation) SkyColor() Color {
	return sim.sky.color()
}
