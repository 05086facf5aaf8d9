package ebitenrender

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/fireworks"
)

// flashCache holds flash textures keyed by quantized radius, so flashes of
// nearly the same size share one texture.
type flashCache struct {
	images map[int]*ebiten.Image
}

func newFlashCache() *flashCache {
	return &flashCache{images: make(map[int]*ebiten.Image)}
}

// flashKey quantizes a radius to the nearest whole pixel, at least 1.
func flashKey(radius float64) int {
	return max(int(math.Ceil(radius)), 1)
}

func (c *flashCache) get(radius float64) *ebiten.Image {
	key := flashKey(radius)
	if img, ok := c.images[key]; ok {
		return img
	}
	size := key * 2
	img := ebiten.NewImage(size, size)
	img.WritePixels(flashPixels(size))
	c.images[key] = img
	return img
}

func (c *flashCache) dispose() {
	for _, img := range c.images {
		img.Deallocate()
	}
	clear(c.images)
}

// flashPixels renders fireworks.FlashGradient into a size x size square as
// premultiplied RGBA.
func flashPixels(size int) []byte {
	pix := make([]byte, size*size*4)
	radius := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - radius
			dy := float64(y) + 0.5 - radius
			t := math.Sqrt(dx*dx+dy*dy) / radius
			c := fireworks.SampleGradient(fireworks.FlashGradient, t)
			off := (y*size + x) * 4
			pix[off+0] = premul(c.R, c.A)
			pix[off+1] = premul(c.G, c.A)
			pix[off+2] = premul(c.B, c.A)
			pix[off+3] = premul(1, c.A)
		}
	}
	return pix
}

func premul(v, a float64) uint8 {
	return uint8(fireworks.Clamp(v*a, 0, 1)*255 + 0.5)
}
