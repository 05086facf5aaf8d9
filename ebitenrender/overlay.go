package ebitenrender

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/fireworks"
)

// fade animates an opacity from 1 to 0. Show restarts it; while held it
// stays at 1.
type fade struct {
	tween    *gween.Tween
	duration float32
	value    float64
	held     bool
}

func newFade(duration float32, fn ease.TweenFunc) *fade {
	return &fade{tween: gween.New(1, 0, duration, fn), duration: duration}
}

// Show sets the opacity to 1 and restarts the fade.
func (f *fade) Show() {
	f.tween.Reset()
	f.value = 1
}

// Hold keeps the opacity at 1 until released.
func (f *fade) Hold(held bool) {
	f.held = held
	if held {
		f.Show()
	}
}

// Update advances the fade by dt seconds.
func (f *fade) Update(dt float32) {
	if f.held || f.value == 0 {
		return
	}
	v, done := f.tween.Update(dt)
	f.value = float64(v)
	if done {
		f.value = 0
	}
}

// Value returns the current opacity.
func (f *fade) Value() float64 {
	return f.value
}

const (
	speedBarHeight   = 6
	speedBarFadeTime = 0.5 // seconds
	speedBarEdge     = 16  // pointer dead zone at either side
	speedBarZone     = 44  // touch zone at the bottom of the screen
	buttonSize       = 50
)

// drawSpeedBar draws the speed bar across the bottom of screen at alpha.
func drawSpeedBar(screen *ebiten.Image, speed, alpha float64) {
	if alpha <= 0 {
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	r, g, b, _ := fireworks.Blue.Color().RGBA8()
	clr := color.NRGBA{r, g, b, uint8(fireworks.Clamp(alpha, 0, 1) * 255)}
	vector.DrawFilledRect(screen, 0, float32(h-speedBarHeight), float32(float64(w)*speed), speedBarHeight, clr, false)
}

// speedFromPointer maps a pointer x to a speed in [0, 1].
func speedFromPointer(x, width float64) float64 {
	return fireworks.Clamp((x-speedBarEdge)/(width-speedBarEdge*2), 0, 1)
}
