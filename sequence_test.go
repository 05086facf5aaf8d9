package fireworks

import "testing"

func autoSim(seed uint64) (*Simulation, *[]ShellEvent) {
	cfg := testConfig()
	cfg.AutoLaunch = true
	sim := NewSimulation(cfg, 1280, 720)
	sim.SetRand(newTestRand(seed))
	var events []ShellEvent
	sim.SetEventSink(EventSinkFunc(func(e ShellEvent) {
		events = append(events, e)
	}))
	return sim, &events
}

func TestFirstSequenceIsCenteredChrysanthemum(t *testing.T) {
	sim, events := autoSim(1)
	d, err := sim.StartSequence()
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "delay", d, firstSequenceDelay)
	if len(*events) != 1 {
		t.Fatalf("%d events, want 1 launch", len(*events))
	}
	e := (*events)[0]
	if e.Type != EventLaunch || e.Shell != ShellChrysanthemum {
		t.Errorf("first event %v %q", e.Type, e.Shell)
	}
	assertNear(t, "x", e.X, 640)
}

func TestFirstSequenceReduced(t *testing.T) {
	sim, events := autoSim(1)
	cfg := sim.Config()
	cfg.Reduced = true
	sim.SetConfig(cfg)
	if _, err := sim.StartSequence(); err != nil {
		t.Fatal(err)
	}
	if len(*events) != 1 || sim.Pending() != 1 {
		t.Fatalf("%d launches, %d pending, want the second shell delayed", len(*events), sim.Pending())
	}
	for i := 0; i < 10; i++ {
		if err := sim.Update(referenceFrame, 1); err != nil {
			t.Fatal(err)
		}
	}
	if len(*events) < 2 {
		t.Errorf("second shell never launched")
	}
}

func TestFinaleRhythm(t *testing.T) {
	sim, _ := autoSim(2)
	if _, err := sim.StartSequence(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < finaleShells; i++ {
		d, err := sim.StartSequence()
		if err != nil {
			t.Fatal(err)
		}
		if d != finaleInterval {
			t.Fatalf("finale shell %d delay %v", i, d)
		}
	}
	d, err := sim.StartSequence()
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "rest", d, finaleRest)
	if d, _ := sim.StartSequence(); d != finaleInterval {
		t.Errorf("finale did not restart, delay %v", d)
	}
}

func TestAutoLaunchTimer(t *testing.T) {
	sim, events := autoSim(3)
	cfg := sim.Config()
	cfg.Finale = false
	sim.SetConfig(cfg)

	var launches []float64
	for i := 0; i < 400 && len(launches) < 2; i++ {
		n := len(*events)
		if err := sim.Update(referenceFrame, 1); err != nil {
			t.Fatal(err)
		}
		for _, e := range (*events)[n:] {
			if e.Type == EventLaunch {
				launches = append(launches, e.Time)
				break
			}
		}
	}
	if len(launches) < 2 {
		t.Fatalf("only %d sequences in 400 frames", len(launches))
	}
	gap := launches[1] - launches[0]
	want := firstSequenceDelay * autoLaunchScale
	if gap < want-1 || gap > want+2*referenceFrame {
		t.Errorf("second sequence after %vms, want about %v", gap, want)
	}
}

func TestAutoLaunchOff(t *testing.T) {
	sim := newTestSim(1)
	for i := 0; i < 300; i++ {
		if err := sim.Update(referenceFrame, 1); err != nil {
			t.Fatal(err)
		}
	}
	if sim.Stars().Len() != 0 {
		t.Errorf("%d stars without auto-launch", sim.Stars().Len())
	}
}

func TestRandomPlacementBounds(t *testing.T) {
	sim := newTestSim(5)
	for i := 0; i < 1000; i++ {
		p := sim.randomPlacement()
		if p.x < 0.08 || p.x > 0.92 {
			t.Fatalf("x = %v", p.x)
		}
		if p.height < 0 || p.height > 0.75 {
			t.Fatalf("height = %v", p.height)
		}
		if p.size < sim.cfg.ShellSize-2.5 || p.size > sim.cfg.ShellSize {
			t.Fatalf("size = %v", p.size)
		}
		x, h := sim.RandomPosition()
		if x < 0.08 || x > 0.92 || h < 0 || h > 0.75 {
			t.Fatalf("RandomPosition = %v, %v", x, h)
		}
	}
}

func TestPlacementAtSizeZero(t *testing.T) {
	sim := newTestSim(5)
	cfg := sim.Config()
	cfg.ShellSize = 0
	sim.SetConfig(cfg)
	for i := 0; i < 100; i++ {
		if p := sim.randomPlacement(); p.size != 0 {
			t.Fatalf("size = %v", p.size)
		}
	}
}

func TestSmallBarrageCooldown(t *testing.T) {
	sim, events := autoSim(6)
	sim.clock = 20000
	d, err := sim.sequenceSmallBarrage()
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "barrage hold", d, 3400+11*120)
	assertNear(t, "barrage time", sim.seq.barrageLast, 20000)
	if len(*events) != 1 {
		t.Errorf("%d immediate launches, want the center shell only", len(*events))
	}
	// five pairs of delayed launches
	if sim.Pending() != 10 {
		t.Errorf("pending = %d, want 10", sim.Pending())
	}
}

func TestPyramidNarrowStage(t *testing.T) {
	sim, events := autoSim(7)
	sim.Resize(640, 480)
	d, err := sim.sequencePyramid()
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "pyramid hold", d, 3400+4*250)
	// the first pair's left shell runs inline
	if got := len(*events) + sim.Pending(); got != 9 {
		t.Errorf("launched %d + pending %d, want 9 shells", len(*events), sim.Pending())
	}
}

func TestHoldForFallingLeaves(t *testing.T) {
	env := NewEnv(DefaultConfig(), newTestRand(1))
	leaves := fallingLeavesShell(3, env)
	ring := ringShell(3, env)
	assertNear(t, "leaves", holdFor(ring, leaves), fallingLeavesHold)
	assertNear(t, "ring", holdFor(ring), ring.StarLife)
}
