// Package ebitenrender runs a fireworks show in a window with Ebitengine.
//
// Click to launch the configured shell at the pointer, press or drag along
// the bottom edge to change the simulation speed, and use the top-left and
// top-center buttons (or P and M) to pause and mute. F toggles the frame
// counter and F12 saves a screenshot.
package ebitenrender

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/fireworks"
)

// Options configures the window and the on-screen controls.
type Options struct {
	Title         string
	Width, Height int
	ShowFPS       bool
	// ScreenshotDir receives F12 screenshots. Defaults to "screenshots".
	ScreenshotDir string
	// OnFrame, if set, is called after every simulation update.
	OnFrame func(sim *fireworks.Simulation) error
}

// Game implements ebiten.Game around a Simulation.
type Game struct {
	sim  *fireworks.Simulation
	opts Options
	surf *Surface

	speedBar *fade
	dragging bool
	fps      *fpsWidget
	showFPS  bool
	drawn    uint64 // last simulation frame rendered
	shots    []string
}

// NewGame wraps sim. The simulation is resized to the window on the first
// Layout.
func NewGame(sim *fireworks.Simulation, opts Options) *Game {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = "screenshots"
	}
	return &Game{
		sim:      sim,
		opts:     opts,
		surf:     NewSurface(opts.Width, opts.Height),
		speedBar: newFade(speedBarFadeTime, ease.Linear),
		fps:      newFPSWidget(),
		showFPS:  opts.ShowFPS,
	}
}

// Run opens the window and blocks until it is closed or the simulation
// fails.
func Run(sim *fireworks.Simulation, opts Options) error {
	g := NewGame(sim, opts)
	if opts.Title != "" {
		ebiten.SetWindowTitle(opts.Title)
	}
	ebiten.SetWindowSize(g.opts.Width, g.opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	defer g.surf.Dispose()
	return ebiten.RunGame(g)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	tps := float64(ebiten.TPS())
	dt := 1 / tps

	g.handleInput()

	if err := g.sim.Update(1000*dt, 60*dt); err != nil {
		return err
	}
	if g.opts.OnFrame != nil {
		if err := g.opts.OnFrame(g.sim); err != nil {
			return err
		}
	}
	g.speedBar.Update(float32(dt))
	if g.showFPS {
		g.fps.update(dt, g.sim)
	}
	return nil
}

// Draw implements ebiten.Game. The simulation is rendered once per
// integrated frame; extra draws reuse the layers.
func (g *Game) Draw(screen *ebiten.Image) {
	if f := g.sim.Frame(); f != g.drawn {
		g.drawn = f
		g.sim.Render(g.surf)
	}
	g.surf.Composite(screen)
	drawSpeedBar(screen, g.sim.Speed(), g.speedBar.Value())

	if g.sim.Paused() {
		ebitenutil.DebugPrintAt(screen, "PAUSED", 8, 8)
	}
	if !g.sim.Config().Sound {
		w := screen.Bounds().Dx()
		ebitenutil.DebugPrintAt(screen, "MUTED", w/2-15, 8)
	}
	if g.showFPS {
		g.fps.draw(screen)
	}
	g.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The stage follows the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w, h := g.surf.Size(); w != outsideWidth || h != outsideHeight {
		g.surf.Resize(outsideWidth, outsideHeight)
		g.sim.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// pointerAction is what a press at a given spot does.
type pointerAction uint8

const (
	pointerLaunch pointerAction = iota
	pointerPause
	pointerSound
	pointerSpeed
	pointerNone
)

// classifyPress maps a press at (x, y) on a w x h stage to an action. The
// pause and sound buttons always respond; everything else is ignored while
// paused.
func classifyPress(x, y, w, h float64, paused bool) pointerAction {
	if y < buttonSize {
		switch {
		case x < buttonSize:
			return pointerPause
		case x > w/2-buttonSize/2 && x < w/2+buttonSize/2:
			return pointerSound
		}
	}
	if paused {
		return pointerNone
	}
	if y >= h-speedBarZone {
		return pointerSpeed
	}
	return pointerLaunch
}

// launchTarget converts a stage point to a launch position and burst height.
func launchTarget(x, y, w, h float64) (position, height float64) {
	return x / w, 1 - y/h
}

func (g *Game) handleInput() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyP), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.togglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.toggleSound()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.showFPS = !g.showFPS
	case inpututil.IsKeyJustPressed(ebiten.KeyF12):
		g.Screenshot("manual")
	}

	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	w, h := g.sim.Size()

	if g.dragging {
		g.sim.SetSpeed(speedFromPointer(x, w))
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
			g.dragging = false
			g.speedBar.Hold(false)
		}
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.press(x, y, w, h)
	}
}

func (g *Game) press(x, y, w, h float64) {
	switch classifyPress(x, y, w, h, g.sim.Paused()) {
	case pointerPause:
		g.togglePause()
	case pointerSound:
		g.toggleSound()
	case pointerSpeed:
		g.dragging = true
		g.sim.SetSpeed(speedFromPointer(x, w))
		g.speedBar.Hold(true)
	case pointerLaunch:
		pos, height := launchTarget(x, y, w, h)
		if _, err := g.sim.LaunchConfigured(pos, height); err != nil {
			g.logf("launch: %v", err)
		}
	}
}

func (g *Game) togglePause() {
	g.sim.Pause(!g.sim.Paused())
}

func (g *Game) toggleSound() {
	cfg := g.sim.Config()
	cfg.Sound = !cfg.Sound
	g.sim.SetConfig(cfg)
}

func (g *Game) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[fireworks] "+format+"\n", args...)
}

var _ ebiten.Game = (*Game)(nil)
