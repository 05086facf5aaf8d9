package ebitenrender

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/fireworks"
)

// blendLighten keeps the brighter of source and destination per channel,
// the way canvas "lighten" compositing does.
var blendLighten = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationMax,
	BlendOperationAlpha:         ebiten.BlendOperationMax,
}

// Surface draws simulation frames into offscreen images: the persistent
// trails layer and the per-frame overlay. Composite puts them on screen.
type Surface struct {
	w, h    int
	trails  *ebiten.Image
	pending *ebiten.Image // this frame's trail strokes, lightened into trails
	main    *ebiten.Image
	sky     fireworks.Color

	flashes *flashCache
	verts   []ebiten.Vertex
	inds    []uint32
	imgOp   ebiten.DrawImageOptions
}

// NewSurface creates a surface of w x h pixels.
func NewSurface(w, h int) *Surface {
	s := &Surface{flashes: newFlashCache()}
	s.Resize(w, h)
	return s
}

// Resize reallocates the layers. Trails are lost.
func (s *Surface) Resize(w, h int) {
	if w == s.w && h == s.h && s.trails != nil {
		return
	}
	s.dispose()
	s.w, s.h = max(w, 1), max(h, 1)
	s.trails = ebiten.NewImage(s.w, s.h)
	s.trails.Fill(color.Black)
	s.pending = ebiten.NewImage(s.w, s.h)
	s.main = ebiten.NewImage(s.w, s.h)
}

// Size returns the layer size in pixels.
func (s *Surface) Size() (w, h int) {
	return s.w, s.h
}

// BeginFrame implements fireworks.Surface.
func (s *Surface) BeginFrame(f fireworks.Frame) {
	s.sky = f.Sky
	fade := color.NRGBA64{A: uint16(fireworks.Clamp(f.TrailFade, 0, 1) * 0xffff)}
	vector.DrawFilledRect(s.trails, 0, 0, float32(s.w), float32(s.h), fade, false)
	s.pending.Clear()
	s.main.Clear()
}

// Flash implements fireworks.Surface.
func (s *Surface) Flash(x, y, radius float64) {
	if radius <= 0 {
		return
	}
	img := s.flashes.get(radius)
	size := float64(img.Bounds().Dx())
	op := &s.imgOp
	op.GeoM.Reset()
	op.GeoM.Scale(radius*2/size, radius*2/size)
	op.GeoM.Translate(x-radius, y-radius)
	op.ColorScale.Reset()
	op.Blend = ebiten.BlendSourceOver
	s.pending.DrawImage(img, op)
}

// Stroke implements fireworks.Surface. All segments go out in one
// DrawTriangles32 call.
func (s *Surface) Stroke(layer fireworks.Layer, c fireworks.Color, segs []fireworks.Segment) {
	s.verts, s.inds = appendSegmentQuads(s.verts[:0], s.inds[:0], segs, c)
	if len(s.inds) == 0 {
		return
	}
	dst := s.pending
	if layer == fireworks.LayerMain {
		dst = s.main
	}
	var triOp ebiten.DrawTrianglesOptions
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	triOp.AntiAlias = true
	dst.DrawTriangles32(s.verts, s.inds, ensureWhitePixel(), &triOp)
}

// EndFrame implements fireworks.Surface.
func (s *Surface) EndFrame() {
	op := &s.imgOp
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.Blend = blendLighten
	s.trails.DrawImage(s.pending, op)
}

// Composite draws the sky, the trails and the overlay onto screen.
func (s *Surface) Composite(screen *ebiten.Image) {
	r, g, b, _ := s.sky.RGBA8()
	screen.Fill(color.RGBA{r, g, b, 255})
	op := &s.imgOp
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.Blend = blendLighten
	screen.DrawImage(s.trails, op)
	screen.DrawImage(s.main, op)
}

// Dispose releases the layers and cached flash textures.
func (s *Surface) Dispose() {
	s.dispose()
	s.flashes.dispose()
}

func (s *Surface) dispose() {
	for _, img := range []*ebiten.Image{s.trails, s.pending, s.main} {
		if img != nil {
			img.Deallocate()
		}
	}
	s.trails, s.pending, s.main = nil, nil, nil
}

// appendSegmentQuads appends two triangles per segment: a quad of the
// segment's width, extended by half the width past both ends so that
// zero-length segments still draw a dot. Colors are premultiplied.
func appendSegmentQuads(verts []ebiten.Vertex, inds []uint32, segs []fireworks.Segment, c fireworks.Color) ([]ebiten.Vertex, []uint32) {
	cr, cg, cb, ca := float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A)
	for _, sg := range segs {
		half := sg.Width / 2
		dx, dy := sg.X1-sg.X0, sg.Y1-sg.Y0
		l := math.Hypot(dx, dy)
		ux, uy := 1.0, 0.0
		if l > 1e-9 {
			ux, uy = dx/l, dy/l
		}
		// along and across the segment
		ax, ay := ux*half, uy*half
		nx, ny := -uy*half, ux*half
		xs := [4]float64{sg.X0 - ax + nx, sg.X0 - ax - nx, sg.X1 + ax + nx, sg.X1 + ax - nx}
		ys := [4]float64{sg.Y0 - ay + ny, sg.Y0 - ay - ny, sg.Y1 + ay + ny, sg.Y1 + ay - ny}

		base := uint32(len(verts))
		for j := 0; j < 4; j++ {
			verts = append(verts, ebiten.Vertex{
				DstX:   float32(xs[j]),
				DstY:   float32(ys[j]),
				SrcX:   0.5,
				SrcY:   0.5,
				ColorR: cr,
				ColorG: cg,
				ColorB: cb,
				ColorA: ca,
			})
		}
		inds = append(inds,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
	}
	return verts, inds
}

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used
// as the source of untextured triangles.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

var _ fireworks.Surface = (*Surface)(nil)
