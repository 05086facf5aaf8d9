package ebitenrender

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/fireworks"
)

// fpsRefresh is how often the widget text is redrawn, in seconds.
const fpsRefresh = 0.5

// fpsWidget shows frame rates and particle counts in the top-left corner.
type fpsWidget struct {
	img     *ebiten.Image
	elapsed float64
	op      ebiten.DrawImageOptions
}

func newFPSWidget() *fpsWidget {
	// room for four lines of debug text
	return &fpsWidget{img: ebiten.NewImage(140, 64), elapsed: fpsRefresh}
}

func (w *fpsWidget) update(dt float64, sim *fireworks.Simulation) {
	w.elapsed += dt
	if w.elapsed < fpsRefresh {
		return
	}
	w.elapsed = 0

	w.img.Clear()
	w.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(w.img, fpsText(ebiten.ActualFPS(), ebiten.ActualTPS(), sim))
}

func (w *fpsWidget) draw(screen *ebiten.Image) {
	w.op.GeoM.Reset()
	w.op.GeoM.Translate(0, buttonSize)
	screen.DrawImage(w.img, &w.op)
}

func fpsText(fps, tps float64, sim *fireworks.Simulation) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nStars: %d\nSparks: %d",
		fps, tps, sim.Stars().Len(), sim.Sparks().Len())
}
