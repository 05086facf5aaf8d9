package fireworks

import "math"

// Auto-launch timing, in simulation milliseconds.
const (
	autoLaunchScale    = 1.25
	firstSequenceDelay = 2400
	finaleShells       = 32
	finaleInterval     = 170
	finaleRest         = 6000
	barrageCooldown    = 15000
	fallingLeavesHold  = 4600
	secondShellDelay   = 100
	volleyStep         = 200
)

// wideStageWidth is the stage width above which sequences use their larger
// desktop layouts.
const wideStageWidth = 800

// sequencer launches shells on its own while auto-launch is enabled.
type sequencer struct {
	timer       float64
	first       bool
	finaleCount int
	barrageLast float64
}

func (q *sequencer) reset() {
	*q = sequencer{first: true}
}

func (q *sequencer) update(sim *Simulation, timeStep float64) error {
	if !sim.cfg.AutoLaunch {
		return nil
	}
	q.timer -= timeStep
	if q.timer > 0 {
		return nil
	}
	d, err := sim.StartSequence()
	if err != nil {
		return err
	}
	q.timer = d * autoLaunchScale
	return nil
}

// StartSequence launches the next auto-launch sequence and returns how long
// the show should wait before the following one, in milliseconds.
func (sim *Simulation) StartSequence() (float64, error) {
	q := &sim.seq
	r := sim.rnd

	if q.first {
		q.first = false
		if sim.cfg.Reduced {
			return sim.sequenceTwoShells()
		}
		if _, err := sim.Launch(ShellChrysanthemum, sim.cfg.ShellSize, 0.5, 0.5); err != nil {
			return 0, err
		}
		return firstSequenceDelay, nil
	}

	if sim.cfg.Finale {
		if _, err := sim.sequenceRandomFastShell(); err != nil {
			return 0, err
		}
		if q.finaleCount < finaleShells {
			q.finaleCount++
			return finaleInterval, nil
		}
		q.finaleCount = 0
		return finaleRest, nil
	}

	roll := r.Float64()
	switch {
	case roll < 0.08 && sim.clock-q.barrageLast > barrageCooldown:
		return sim.sequenceSmallBarrage()
	case roll < 0.1:
		return sim.sequencePyramid()
	case roll < 0.6 && !sim.cfg.Reduced:
		return sim.sequenceRandomShell()
	case roll < 0.8:
		return sim.sequenceTwoShells()
	default:
		return sim.sequenceTripleShell()
	}
}

// fitShellPositionH keeps a [0, 1] position away from the stage edges.
func fitShellPositionH(p float64) float64 {
	const edge = 0.08
	return (1-edge*2)*p + edge
}

// fitShellPositionV keeps a [0, 1] height below the top of the stage.
func fitShellPositionV(p float64) float64 {
	return p * 0.75
}

// RandomPosition returns a launch position and height for a shell launched
// without a target.
func (sim *Simulation) RandomPosition() (position, height float64) {
	return fitShellPositionH(sim.rnd.Float64()), fitShellPositionV(sim.rnd.Float64())
}

type shellPlacement struct {
	size, x, height float64
}

// randomPlacement varies the configured size downward; smaller shells burst
// lower and further from the center.
func (sim *Simulation) randomPlacement() shellPlacement {
	r := sim.rnd
	base := sim.cfg.ShellSize
	maxVariance := math.Min(2.5, base)
	variance := r.Float64() * maxVariance
	height := r.Float64()
	if maxVariance != 0 {
		height = 1 - variance/maxVariance
	}
	centerOffset := r.Float64() * (1 - height*0.65) * 0.5
	x := 0.5 + centerOffset
	if r.Float64() < 0.5 {
		x = 0.5 - centerOffset
	}
	return shellPlacement{
		size:   base - variance,
		x:      fitShellPositionH(x),
		height: fitShellPositionV(height),
	}
}

func (sim *Simulation) wide() bool {
	return sim.width > wideStageWidth
}

// launchWith builds a shell from f and launches it.
func (sim *Simulation) launchWith(f ShellFactory, size, x, height float64) (*Shell, error) {
	sh := sim.NewShell(f(size, sim.env))
	if err := sh.Launch(x, height); err != nil {
		return nil, err
	}
	return sh, nil
}

func holdFor(cfgs ...ShellConfig) float64 {
	extra := 0.0
	for _, c := range cfgs {
		if c.FallingLeaves {
			return fallingLeavesHold
		}
		extra = math.Max(extra, c.StarLife)
	}
	return extra
}

func (sim *Simulation) sequenceRandomShell() (float64, error) {
	f, err := LookupShell(sim.cfg.ShellType)
	if err != nil {
		return 0, err
	}
	p := sim.randomPlacement()
	sh, err := sim.launchWith(f, p.size, p.x, p.height)
	if err != nil {
		return 0, err
	}
	return 900 + sim.rnd.Float64()*600 + holdFor(sh.cfg), nil
}

func (sim *Simulation) sequenceRandomFastShell() (float64, error) {
	f, err := FastShell(sim.cfg.ShellType, sim.env)
	if err != nil {
		return 0, err
	}
	p := sim.randomPlacement()
	sh, err := sim.launchWith(f, p.size, p.x, p.height)
	if err != nil {
		return 0, err
	}
	return 900 + sim.rnd.Float64()*600 + sh.cfg.StarLife, nil
}

func (sim *Simulation) sequenceTwoShells() (float64, error) {
	f, err := LookupShell(sim.cfg.ShellType)
	if err != nil {
		return 0, err
	}
	r := sim.rnd
	p1, p2 := sim.randomPlacement(), sim.randomPlacement()
	sh1 := sim.NewShell(f(p1.size, sim.env))
	sh2 := sim.NewShell(f(p2.size, sim.env))
	left := r.Float64()*0.2 - 0.1
	right := r.Float64()*0.2 - 0.1
	if err := sh1.Launch(0.3+left, p1.height); err != nil {
		return 0, err
	}
	sim.after(secondShellDelay, func() error {
		return sh2.Launch(0.7+right, p2.height)
	})
	return 900 + r.Float64()*600 + holdFor(sh1.cfg, sh2.cfg), nil
}

func (sim *Simulation) sequenceTripleShell() (float64, error) {
	f, err := FastShell(sim.cfg.ShellType, sim.env)
	if err != nil {
		return 0, err
	}
	r := sim.rnd
	base := sim.cfg.ShellSize
	small := math.Max(0, base-1.25)
	jitter := func() float64 { return r.Float64()*0.08 - 0.04 }

	if _, err := sim.launchWith(f, base, 0.5+jitter(), 0.7); err != nil {
		return 0, err
	}
	leftDelay := 1000 + r.Float64()*400
	rightDelay := 1000 + r.Float64()*400
	sim.after(leftDelay, func() error {
		_, err := sim.launchWith(f, small, 0.2+jitter(), 0.1)
		return err
	})
	sim.after(rightDelay, func() error {
		_, err := sim.launchWith(f, small, 0.8+jitter(), 0.1)
		return err
	})
	return 4000, nil
}

// volleyFactories resolves the main and special shell factories of the
// pyramid and barrage sequences. A fixed shell type is used for both.
func (sim *Simulation) volleyFactories(special ShellFactory) (mainF, specialF ShellFactory, err error) {
	if sim.cfg.ShellType != ShellRandom {
		f, err := LookupShell(sim.cfg.ShellType)
		return f, f, err
	}
	mainF = chrysanthemumShell
	if sim.rnd.Float64() >= 0.78 {
		mainF = ringShell
	}
	return mainF, special, nil
}

func (sim *Simulation) sequencePyramid() (float64, error) {
	half := 4
	if sim.wide() {
		half = 7
	}
	large := sim.cfg.ShellSize
	small := math.Max(0, large-3)
	mainF, specialF, err := sim.volleyFactories(randomShell)
	if err != nil {
		return 0, err
	}
	r := sim.rnd

	launch := func(x float64, special bool) func() error {
		return func() error {
			if special {
				_, err := sim.launchWith(specialF, large, x, 0.75)
				return err
			}
			height := (1 - x) / 0.5
			if x <= 0.5 {
				height = x / 0.5
			}
			_, err := sim.launchWith(mainF, small, x, height*0.42)
			return err
		}
	}

	delay := 0.0
	for count := 0; count <= half; count++ {
		if count == half {
			sim.after(delay, launch(0.5, true))
		} else {
			offset := float64(count) / float64(half) * 0.5
			delayOffset := r.Float64()*30 + 30
			sim.after(delay, launch(offset, false))
			sim.after(delay+delayOffset, launch(1-offset, false))
		}
		delay += volleyStep
	}
	return 3400 + float64(half)*250, nil
}

func (sim *Simulation) sequenceSmallBarrage() (float64, error) {
	sim.seq.barrageLast = sim.clock
	count, specialIndex := 5, 1
	if sim.wide() {
		count, specialIndex = 11, 3
	}
	size := math.Max(0, sim.cfg.ShellSize-2)
	fast := func(size float64, env *Env) ShellConfig {
		f, _ := LookupShell(RandomFastShellName(env))
		return f(size, env)
	}
	mainF, specialF, err := sim.volleyFactories(fast)
	if err != nil {
		return 0, err
	}
	r := sim.rnd

	launch := func(x float64, special bool) func() error {
		return func() error {
			f := mainF
			if special {
				f = specialF
			}
			height := (math.Cos(x*5*math.Pi+HalfPi) + 1) / 2
			_, err := sim.launchWith(f, size, x, height*0.75)
			return err
		}
	}

	delay := 0.0
	for i := 0; i < count; {
		if i == 0 {
			if err := launch(0.5, false)(); err != nil {
				return 0, err
			}
			i++
		} else {
			offset := float64(i+1) / float64(count) / 2
			delayOffset := r.Float64()*30 + 30
			special := i == specialIndex
			sim.after(delay, launch(0.5+offset, special))
			sim.after(delay+delayOffset, launch(0.5-offset, special))
			i += 2
		}
		delay += volleyStep
	}
	return 3400 + float64(count)*120, nil
}
