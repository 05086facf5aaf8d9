// Package ggrender is a headless fireworks.Surface drawn with gg. It keeps
// the trails and overlay layers as RGBA images and composites them over the
// sky with a lighten blend, so frames can be written out as PNG files.
package ggrender

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/phanxgames/fireworks"
)

// Options configures a Surface.
type Options struct {
	Width, Height int
	// Dir receives captured PNG files. Defaults to "screenshots".
	Dir string
}

// Surface renders frames offscreen.
type Surface struct {
	opts Options

	trails  *gg.Context // persistent, faded every frame
	pending *gg.Context // this frame's trail strokes, lightened into trails
	main    *gg.Context // overlay, cleared every frame
	out     *image.RGBA

	frame  fireworks.Frame
	frames int
}

// New creates a surface of the given size.
func New(opts Options) *Surface {
	if opts.Dir == "" {
		opts.Dir = "screenshots"
	}
	s := &Surface{
		opts:    opts,
		trails:  gg.NewContext(opts.Width, opts.Height),
		pending: gg.NewContext(opts.Width, opts.Height),
		main:    gg.NewContext(opts.Width, opts.Height),
		out:     image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height)),
	}
	s.trails.SetRGB(0, 0, 0)
	s.trails.Clear()
	return s
}

// BeginFrame implements fireworks.Surface.
func (s *Surface) BeginFrame(f fireworks.Frame) {
	s.frame = f
	w, h := float64(s.opts.Width), float64(s.opts.Height)

	s.trails.SetRGBA(0, 0, 0, f.TrailFade)
	s.trails.DrawRectangle(0, 0, w, h)
	s.trails.Fill()

	clearContext(s.pending)
	clearContext(s.main)
}

// Flash implements fireworks.Surface. Flashes are filled with
// fireworks.FlashGradient on the trails layer.
func (s *Surface) Flash(x, y, radius float64) {
	g := gg.NewRadialGradient(x, y, 0, x, y, radius)
	for _, st := range fireworks.FlashGradient {
		r, gr, b, a := st.Color.RGBA8()
		g.AddColorStop(st.Offset, color.NRGBA{r, gr, b, a})
	}
	s.pending.SetFillStyle(g)
	s.pending.DrawRectangle(x-radius, y-radius, radius*2, radius*2)
	s.pending.Fill()
}

// Stroke implements fireworks.Surface.
func (s *Surface) Stroke(layer fireworks.Layer, c fireworks.Color, segs []fireworks.Segment) {
	dc := s.pending
	if layer == fireworks.LayerMain {
		dc = s.main
	}
	dc.SetRGBA(c.R, c.G, c.B, c.A)
	dc.SetLineCapRound()
	width := math.NaN()
	for _, sg := range segs {
		if sg.Width != width {
			if !math.IsNaN(width) {
				dc.Stroke()
			}
			width = sg.Width
			dc.SetLineWidth(width)
		}
		dc.DrawLine(sg.X0, sg.Y0, sg.X1, sg.Y1)
	}
	dc.Stroke()
}

// EndFrame implements fireworks.Surface. It lightens the frame's trail
// strokes into the trails layer and composites the output image.
func (s *Surface) EndFrame() {
	trails := s.trails.Image().(*image.RGBA)
	lighten(trails.Pix, s.pending.Image().(*image.RGBA).Pix)

	sr, sg, sb, _ := s.frame.Sky.RGBA8()
	sky := [4]uint8{sr, sg, sb, 255}
	out := s.out.Pix
	for i := 0; i < len(out); i += 4 {
		copy(out[i:i+4], sky[:])
	}
	lighten(out, trails.Pix)
	lighten(out, s.main.Image().(*image.RGBA).Pix)
	for i := 3; i < len(out); i += 4 {
		out[i] = 255
	}
	s.frames++
}

// Image returns the last composited frame. It is overwritten by the next
// EndFrame.
func (s *Surface) Image() *image.RGBA {
	return s.out
}

// Frames returns the number of frames drawn.
func (s *Surface) Frames() int {
	return s.frames
}

// lighten keeps the brighter of dst and src in every channel.
func lighten(dst, src []uint8) {
	for i := range dst {
		if src[i] > dst[i] {
			dst[i] = src[i]
		}
	}
}

func clearContext(dc *gg.Context) {
	dc.SetRGBA(0, 0, 0, 0)
	dc.Clear()
}

var _ fireworks.Surface = (*Surface)(nil)
