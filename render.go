package fireworks

// Layer selects the canvas a stroke is drawn on.
type Layer uint8

const (
	// LayerTrails persists between frames, fading by Frame.TrailFade, and
	// composites with a lighten blend.
	LayerTrails Layer = iota
	// LayerMain is cleared every frame and drawn over the trails.
	LayerMain
)

// Segment is one line from (X0, Y0) to (X1, Y1) in stage pixels.
type Segment struct {
	X0, Y0, X1, Y1 float64
	Width          float64
}

// Frame describes the frame a Surface is about to draw.
type Frame struct {
	Width, Height float64
	// TrailFade is the alpha of the black fill laid over the trails layer
	// before new strokes.
	TrailFade float64
	Sky       Color
	Speed     float64
	Paused    bool
	Quality   Quality
}

// Surface draws frames produced by Render. Calls arrive in the order
// BeginFrame, Flash*, Stroke*, EndFrame. Segment slices are reused after the
// call returns.
type Surface interface {
	BeginFrame(f Frame)
	Flash(x, y, radius float64)
	Stroke(layer Layer, c Color, segs []Segment)
	EndFrame()
}

// Render constants.
const (
	trailFade             = 0.175
	longExposureFade      = 0.0025
	glintLength           = 1.6
	glintWidth            = 1
	sparkWidth            = 1
	sparkWidthHighQuality = 0.75
)

// Render draws the current state on dst in output pixels: stage
// coordinates, stroke widths and flash radii are multiplied by
// Config.ScaleFactor. Flashes are drawn once and cleared.
func (sim *Simulation) Render(dst Surface) {
	k := sim.scale()
	fade := trailFade * sim.lastSpeed
	if sim.cfg.LongExposure {
		fade = longExposureFade
	}
	dst.BeginFrame(Frame{
		Width:     sim.viewW,
		Height:    sim.viewH,
		TrailFade: fade,
		Sky:       sim.sky.color(),
		Speed:     sim.speed,
		Paused:    sim.paused,
		Quality:   sim.cfg.Quality,
	})

	for _, f := range sim.flashes {
		dst.Flash(f.X*k, f.Y*k, f.Radius*k)
	}
	sim.flashes = sim.flashes[:0]

	glints := sim.glintBuf[:0]
	for _, c := range Palette() {
		segs := sim.segBuf[:0]
		for _, id := range sim.stars.buckets[c] {
			s := &sim.stars.slots[id]
			if !s.Visible {
				continue
			}
			segs = append(segs, Segment{s.X * k, s.Y * k, s.PrevX * k, s.PrevY * k, s.Size * k})
			glints = append(glints, Segment{
				s.X * k, s.Y * k,
				(s.X - s.SpeedX*glintLength) * k, (s.Y - s.SpeedY*glintLength) * k,
				glintWidth * k,
			})
		}
		if len(segs) > 0 {
			dst.Stroke(LayerTrails, c.Color(), segs)
		}
		sim.segBuf = segs
	}
	if len(glints) > 0 {
		dst.Stroke(LayerMain, ColorWhite, glints)
	}
	sim.glintBuf = glints

	width := float64(sparkWidth)
	if sim.cfg.Quality == QualityHigh {
		width = sparkWidthHighQuality
	}
	width *= k
	for _, c := range Palette() {
		sparks := sim.sparks.buckets[c]
		if len(sparks) == 0 {
			continue
		}
		segs := sim.segBuf[:0]
		for i := range sparks {
			sp := &sparks[i]
			segs = append(segs, Segment{sp.X * k, sp.Y * k, sp.PrevX * k, sp.PrevY * k, width})
		}
		dst.Stroke(LayerTrails, c.Color(), segs)
		sim.segBuf = segs
	}

	dst.EndFrame()
}

// GradientStop is one color stop of a radial gradient, Offset in [0, 1].
type GradientStop struct {
	Offset float64
	Color  Color
}

// FlashGradient is the radial gradient surfaces fill flash circles with.
var FlashGradient = []GradientStop{
	{0.024, Color{1, 1, 1, 1}},
	{0.125, Color{1, 160.0 / 255, 20.0 / 255, 0.2}},
	{0.32, Color{1, 140.0 / 255, 20.0 / 255, 0.11}},
	{1, Color{1, 120.0 / 255, 20.0 / 255, 0}},
}

// SampleGradient returns the color at offset t, interpolating linearly
// between stops and clamping outside them.
func SampleGradient(stops []GradientStop, t float64) Color {
	if len(stops) == 0 {
		return Color{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		b := stops[i]
		if t > b.Offset {
			continue
		}
		a := stops[i-1]
		f := (t - a.Offset) / (b.Offset - a.Offset)
		return Color{
			a.Color.R + (b.Color.R-a.Color.R)*f,
			a.Color.G + (b.Color.G-a.Color.G)*f,
			a.Color.B + (b.Color.B-a.Color.B)*f,
			a.Color.A + (b.Color.A-a.Color.A)*f,
		}
	}
	return stops[len(stops)-1].Color
}
