package ggrender

import (
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/phanxgames/fireworks"
)

func newTestSim() *fireworks.Simulation {
	cfg := fireworks.DefaultConfig()
	cfg.AutoLaunch = false
	cfg.Sound = false
	cfg.WordShell = false
	cfg.SkyLighting = fireworks.SkyNone
	sim := fireworks.NewSimulation(cfg, 200, 150)
	sim.SetRand(rand.New(rand.NewPCG(1, 2)))
	return sim
}

func brightness(s *Surface, x, y int) int {
	c := s.Image().RGBAAt(x, y)
	return int(c.R) + int(c.G) + int(c.B)
}

func TestStrokeLightensTrails(t *testing.T) {
	s := New(Options{Width: 200, Height: 150})
	s.BeginFrame(fireworks.Frame{Width: 200, Height: 150, TrailFade: 0.175})
	s.Stroke(fireworks.LayerTrails, fireworks.Red.Color(), []fireworks.Segment{{X0: 50, Y0: 50, X1: 60, Y1: 50, Width: 3}})
	s.EndFrame()

	c := s.Image().RGBAAt(55, 50)
	if c.R < 200 || c.G > 40 {
		t.Fatalf("trail pixel = %+v, want red", c)
	}
	if brightness(s, 10, 10) != 0 {
		t.Errorf("background not black")
	}

	before := c.R
	for i := 0; i < 10; i++ {
		s.BeginFrame(fireworks.Frame{Width: 200, Height: 150, TrailFade: 0.175})
		s.EndFrame()
	}
	if after := s.Image().RGBAAt(55, 50).R; after >= before/2 {
		t.Errorf("trail faded from %d to %d over 10 frames", before, after)
	}
}

func TestMainLayerClearedEachFrame(t *testing.T) {
	s := New(Options{Width: 100, Height: 100})
	s.BeginFrame(fireworks.Frame{TrailFade: 1})
	s.Stroke(fireworks.LayerMain, fireworks.ColorWhite, []fireworks.Segment{{X0: 10, Y0: 10, X1: 20, Y1: 10, Width: 2}})
	s.EndFrame()
	if brightness(s, 15, 10) == 0 {
		t.Fatal("glint not drawn")
	}
	s.BeginFrame(fireworks.Frame{TrailFade: 1})
	s.EndFrame()
	if b := brightness(s, 15, 10); b != 0 {
		t.Errorf("glint persisted, brightness %d", b)
	}
}

func TestSkyUnderTrails(t *testing.T) {
	s := New(Options{Width: 20, Height: 20})
	s.BeginFrame(fireworks.Frame{TrailFade: 1, Sky: fireworks.Color{R: 0.2, G: 0, B: 0.1, A: 1}})
	s.EndFrame()
	c := s.Image().RGBAAt(5, 5)
	if c.R != 51 || c.B != 26 || c.A != 255 {
		t.Errorf("sky pixel = %+v", c)
	}
}

func TestFlashBrightensCenter(t *testing.T) {
	s := New(Options{Width: 100, Height: 100})
	s.BeginFrame(fireworks.Frame{TrailFade: 1})
	s.Flash(50, 50, 40)
	s.EndFrame()
	if center, edge := brightness(s, 50, 50), brightness(s, 50, 5); center <= edge {
		t.Errorf("center %d not brighter than edge %d", center, edge)
	}
}

func TestRenderShowAndCapture(t *testing.T) {
	sim := newTestSim()
	s := New(Options{Width: 200, Height: 150, Dir: filepath.Join(t.TempDir(), "shots")})
	cfg, err := fireworks.NewShellConfig("Ring", 1, sim.Env())
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.NewShell(cfg).Burst(100, 60); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		if err := sim.Update(1000.0/60, 1); err != nil {
			t.Fatal(err)
		}
		sim.Render(s)
	}
	if s.Frames() != 10 {
		t.Errorf("frames = %d", s.Frames())
	}
	lit := 0
	img := s.Image()
	for y := 0; y < 150; y++ {
		for x := 0; x < 200; x++ {
			if c := img.RGBAAt(x, y); c.R > 0 || c.G > 0 || c.B > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("nothing drawn")
	}

	path, err := s.Capture("ring burst/1")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "000010_ring_burst_1.png" {
		t.Errorf("path = %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := decoded.Bounds(); b.Dx() != 200 || b.Dy() != 150 {
		t.Errorf("png bounds = %v", b)
	}
}
