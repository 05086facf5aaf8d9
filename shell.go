package fireworks

import (
	"fmt"
	"math"
)

// ShellState tracks a shell through its single use.
type ShellState uint8

const (
	ShellCreated ShellState = iota
	ShellLaunched
	ShellBursting
	ShellDone
)

func (s ShellState) String() string {
	switch s {
	case ShellCreated:
		return "created"
	case ShellLaunched:
		return "launched"
	case ShellBursting:
		return "bursting"
	case ShellDone:
		return "done"
	}
	return "unknown"
}

// Launch geometry, in stage pixels.
const (
	launchHPad        = 60
	launchVPad        = 50
	minBurstHeightPct = 0.45
)

// Comet constants.
const (
	cometSpinMin         = 0.32
	cometSpinMax         = 0.85
	cometSparkFreq       = 32
	cometSparkFreqHigh   = 8
	cometSparkLife       = 320
	cometSparkLifeVar    = 3
	cometGlitterFreq     = 20
	cometGlitterSpeed    = 0.5
	cometGlitterLife     = 500
	cometFadeChance      = 0.4
	horsetailCometSpeed  = 1.2
	horsetailCometLife   = 100
	standardCometLife    = 400
	cometSpeedDistScale  = 0.04
	cometSpeedDistPower  = 0.64
	burstSpeedDivisor    = 96
	burstFlashDivisor    = 4
	burstSoundMinScale   = 0.7
	burstSoundScaleRange = 0.3
	explosionRingVolume  = 0.8
)

// Shell is one firework. It is launched at most once and bursts at most once,
// either at the end of its comet or directly through Burst.
type Shell struct {
	sim   *Simulation
	cfg   ShellConfig
	state ShellState

	launched         bool
	cometVX, cometVY float64
	target           Vec2
}

// NewShell prepares a shell from cfg, filling derived defaults from the
// simulation's environment.
func (sim *Simulation) NewShell(cfg ShellConfig) *Shell {
	return &Shell{sim: sim, cfg: cfg.withDefaults(sim.env)}
}

// Config returns the resolved configuration.
func (sh *Shell) Config() ShellConfig { return sh.cfg }

// State returns the lifecycle state.
func (sh *Shell) State() ShellState { return sh.state }

// Target returns the point the comet was aimed at by Launch.
func (sh *Shell) Target() Vec2 { return sh.target }

// Launch fires the comet from the bottom of the stage. position in [0, 1]
// spans the stage width minus padding; height in [0, 1] picks the burst
// altitude between the lower bound and the top padding.
func (sh *Shell) Launch(position, height float64) error {
	if sh.state != ShellCreated {
		return fmt.Errorf("launch %q: %w", sh.cfg.Name, ErrShellSpent)
	}
	sim := sh.sim
	env := sim.env
	r := env.Rand
	cfg := &sh.cfg

	w, h := sim.width, sim.height
	minHeight := h - h*minBurstHeightPct
	launchX := position*(w-launchHPad*2) + launchHPad
	launchY := h
	burstY := minHeight - height*(minHeight-launchVPad)
	sh.target = Vec2{launchX, burstY}

	launchDistance := launchY - burstY
	v := math.Pow(launchDistance*cometSpeedDistScale, cometSpeedDistPower)

	cometColor := White
	if c, ok := cfg.Color.Single(); ok && c.Valid() {
		cometColor = c
	}
	speed, life := v, v*standardCometLife
	if cfg.Horsetail {
		speed, life = v*horsetailCometSpeed, v*horsetailCometLife
	}

	id := sim.addStar(launchX, launchY, cometColor, math.Pi, speed, life, 0, 0)
	c := sim.stars.Get(id)
	c.Heavy = true
	c.SpinRadius = RandomInRange(r, cometSpinMin, cometSpinMax)
	c.SparkFreq = cometSparkFreq / sim.cfg.Quality.factor()
	if env.high() {
		c.SparkFreq = cometSparkFreqHigh
	}
	c.SparkLife = cometSparkLife
	c.SparkLifeVariation = cometSparkLifeVar
	if cfg.Glitter == GlitterWillow || cfg.FallingLeaves {
		c.SparkFreq = cometGlitterFreq / sim.cfg.Quality.factor()
		c.SparkSpeed = cometGlitterSpeed
		c.SparkLife = cometGlitterLife
	}
	if cometColor == Invisible {
		c.SparkColor = Gold
	}
	if r.Float64() > cometFadeChance && !cfg.Horsetail {
		c.SecondColor = Invisible
		c.TransitionTime = math.Pow(r.Float64(), 1.5)*700 + 500
	}
	c.Death = DeathShellBurst
	c.shell = sim.registerShell(sh)

	sh.state = ShellLaunched
	sh.launched = true
	sim.stats.Launches++
	sim.playSound(SoundLift, 1)
	sim.emit(ShellEvent{Type: EventLaunch, Shell: cfg.Name, X: launchX, Y: launchY})
	return nil
}

// Burst explodes the shell at (x, y). A shell that was never launched can
// burst directly; a second call returns ErrShellSpent.
func (sh *Shell) Burst(x, y float64) error {
	if sh.state == ShellBursting || sh.state == ShellDone {
		return fmt.Errorf("burst %q: %w", sh.cfg.Name, ErrShellSpent)
	}
	if err := sh.cfg.validateColors(); err != nil {
		sh.state = ShellDone
		return fmt.Errorf("burst %q: %w", sh.cfg.Name, err)
	}
	sh.state = ShellBursting
	defer func() { sh.state = ShellDone }()

	sim := sh.sim
	cfg := &sh.cfg
	r := sim.env.Rand

	heart := DeathNone
	if cfg.Heart && r.Float64() < 0.5 {
		heart = DeathHeartCrackle
		if r.Float64() < 0.2 {
			heart = DeathHeartOutline
		}
	}

	b := &burster{
		sh:    sh,
		sim:   sim,
		x:     x,
		y:     y,
		speed: cfg.SpreadSize / burstSpeedDivisor,
		death: cfg.deathEffect(heart),
		group: -1,
	}
	if b.death != DeathNone {
		b.group = sim.newGroup()
	}
	if cfg.Glitter != GlitterNone {
		p := cfg.Glitter.Profile(sim.cfg.Quality)
		p.Color = cfg.GlitterColor
		b.glitter = &p
	}

	switch cfg.Color.Kind {
	case ColorPair, ColorPalette:
		b.split(cfg.Color.Colors)
	default:
		base := NoColor
		if c, ok := cfg.Color.Single(); ok {
			base = c
		}
		switch {
		case cfg.Ring:
			b.ring(base)
		case cfg.Heart:
			b.heart(base)
		default:
			b.sphere(base, cfg.StarCount, 0, TwoPi)
		}
	}

	if !cfg.DisableText && sim.cfg.WordShell && !sim.cfg.Reduced &&
		r.Float64() < 0.1 && r.Float64() < 0.5 {
		b.word()
	}

	if cfg.Pistil {
		if err := sim.NewShell(cfg.pistilConfig()).Burst(x, y); err != nil {
			return fmt.Errorf("burst %q: %w", cfg.Name, err)
		}
	}
	if cfg.Streamers {
		if err := sim.NewShell(cfg.streamerConfig()).Burst(x, y); err != nil {
			return fmt.Errorf("burst %q: %w", cfg.Name, err)
		}
	}

	sim.addFlash(x, y, cfg.SpreadSize/burstFlashDivisor)
	if cfg.ExplosionRing && cfg.MultiRing {
		flashDelay := 0.0
		if cfg.DelayExplosion {
			flashDelay = multiRingFlashDelay
		}
		for layer := 1; layer < cfg.RingLayers; layer++ {
			radius := cfg.SpreadSize / float64(burstFlashDivisor+layer)
			fx, fy := x, y
			sim.after(float64(layer)*flashDelay, func() error {
				sim.addFlash(fx, fy, radius)
				return nil
			})
		}
	}

	switch {
	case sh.launched:
		diff := math.Min(2, sim.cfg.ShellSize-cfg.ShellSize)
		scale := (1-diff/2)*burstSoundScaleRange + burstSoundMinScale
		sim.playSound(SoundBurst, scale)
	case cfg.ExplosionRing:
		sim.playSound(SoundBurst, explosionRingVolume)
	}

	sim.releaseGroup(b.group)
	sim.stats.Bursts++
	sim.emit(ShellEvent{Type: EventBurst, Shell: cfg.Name, X: x, Y: y, Stars: b.count})
	return nil
}

// Multi-ring layer timing, in simulation milliseconds.
const (
	multiRingLayerDelay = 50
	multiRingFlashDelay = 50
)

// burster composes the stars of one burst.
type burster struct {
	sh      *Shell
	sim     *Simulation
	x, y    float64
	speed   float64
	death   DeathEffect
	group   int32
	glitter *SparkProfile
	count   int
	points  []BurstPoint
}

func (b *burster) offset() (float64, float64) {
	cfg := &b.sh.cfg
	if cfg.Horsetail {
		return b.sh.cometVX, b.sh.cometVY
	}
	return 0, -cfg.SpreadSize / 1800
}

func (b *burster) life() float64 {
	cfg := &b.sh.cfg
	return cfg.StarLife + b.sim.env.Rand.Float64()*cfg.StarLife*cfg.StarLifeVariation
}

func (b *burster) color(c ColorID) ColorID {
	if c == NoColor {
		return b.sim.env.RandomColor(ColorOptions{})
	}
	return c
}

// star adds one burst star with the shell's transitions, glitter and death
// effect.
func (b *burster) star(color ColorID, angle, speedMult float64) {
	cfg := &b.sh.cfg
	sim := b.sim
	r := sim.env.Rand

	offX, offY := b.offset()
	id := sim.addStar(b.x, b.y, b.color(color), angle, speedMult*b.speed, b.life(), offX, offY)
	s := sim.stars.Get(id)
	if cfg.SecondColor != NoColor {
		s.TransitionTime = cfg.StarLife * (r.Float64()*0.05 + 0.32)
		s.SecondColor = cfg.SecondColor
	}
	if cfg.Strobe {
		s.TransitionTime = cfg.StarLife * (r.Float64()*0.08 + 0.46)
		s.Strobe = true
		s.StrobeFreq = r.Float64()*20 + 40
		if cfg.StrobeColor != NoColor {
			s.SecondColor = cfg.StrobeColor
		}
	}
	s.Death = b.death
	b.finish(s)
}

// finish applies glitter and group membership shared by every burst star.
func (b *burster) finish(s *Star) {
	if b.glitter != nil {
		applyGlitter(s, b.glitter, b.sim.env.Rand)
	}
	if s.Death != DeathNone {
		b.sim.attach(s, b.group)
	}
	b.count++
}

func applyGlitter(s *Star, p *SparkProfile, r Rand) {
	s.SparkFreq = p.Freq
	s.SparkSpeed = p.Speed
	s.SparkLife = p.Life
	s.SparkLifeVariation = p.LifeVariation
	s.SparkColor = p.Color
	if r != nil {
		s.SparkTimer = r.Float64() * p.Freq
	}
}

// sphere places count stars over [start, start+arc) and applies the pattern
// warp to each angle.
func (b *burster) sphere(color ColorID, count, start, arc float64) {
	cfg := &b.sh.cfg
	r := b.sim.env.Rand
	if cfg.Pattern == PatternLightning {
		const branches = 4
		sub := arc / branches
		for i := 0; i < branches; i++ {
			b.points = AppendBurst(b.points[:0], r, count/branches, start+float64(i)*sub, sub)
			for _, p := range b.points {
				b.star(color, p.Angle, p.RingSize)
			}
		}
		return
	}

	b.points = AppendBurst(b.points[:0], r, count, start, arc)
	spiralStart := 0.0
	if cfg.Pattern == PatternSpiral {
		spiralStart = r.Float64() * TwoPi
	}
	const snowflakeArm = TwoPi / 6
	for _, p := range b.points {
		angle, size := p.Angle, p.RingSize
		switch cfg.Pattern {
		case PatternSpiral:
			angle += TwoPi*(angle/TwoPi) + spiralStart
		case PatternSnowflake:
			angle = math.Round(angle/snowflakeArm) * snowflakeArm
		case PatternGalaxy:
			angle += (r.Float64() - 0.5) * 0.5
			size *= 1.2
		case PatternWhirlpool:
			angle += 1.5 * math.Pi * (angle / TwoPi)
		case PatternRainbowWhirl:
			angle += TwoPi * (angle / TwoPi)
		}
		b.star(color, angle, size)
	}
}

// split spreads a pair or palette either as opposing arcs or as full
// overlapping passes, each color getting an equal share.
func (b *burster) split(colors []ColorID) {
	cfg := &b.sh.cfg
	r := b.sim.env.Rand
	n := float64(len(colors))
	if r.Float64() < 0.5 {
		start := r.Float64() * math.Pi
		arc := TwoPi / n
		for i, c := range colors {
			b.sphere(c, cfg.StarCount, start+float64(i)*arc, arc)
		}
		return
	}
	for _, c := range colors {
		b.sphere(c, cfg.StarCount/n, 0, TwoPi)
	}
}

func (b *burster) heart(color ColorID) {
	cfg := &b.sh.cfg
	n := int(math.Ceil(cfg.StarCount))
	b.points = AppendHeart(b.points[:0], n, 0.015*math.Sqrt(cfg.StarCount))
	for _, p := range b.points {
		b.star(color, p.Angle, p.RingSize)
	}
}

// ring places stars on a squashed, rotated circle. Stars are spaced evenly
// around the ellipse rather than drawn from the hemisphere distribution, so a
// ring of count stars always has exactly ceil(count) of them. Explosion rings
// with several layers add the outer layers after a short delay.
func (b *burster) ring(color ColorID) {
	cfg := &b.sh.cfg
	r := b.sim.env.Rand
	start := r.Float64() * math.Pi
	squash := math.Pow(r.Float64(), 2)*0.85 + 0.15

	if !(cfg.ExplosionRing && cfg.MultiRing) || cfg.RingLayers < 2 {
		b.ringLayer(color, cfg.StarCount, 1, start, squash)
		return
	}

	layers := cfg.RingLayers
	per := cfg.StarCount / float64(layers)
	delay := 0.0
	if cfg.DelayExplosion {
		delay = multiRingLayerDelay
	}
	for layer := 0; layer < layers; layer++ {
		c := color
		if layer > 0 && cfg.SecondaryColor != NoColor {
			c = cfg.SecondaryColor
		}
		size := 0.7 + 0.3*float64(layer)
		if layer == 0 || delay == 0 {
			b.ringLayer(c, per, size, start, squash)
			continue
		}
		// Hold the group open until the delayed layer has added its stars.
		b.sim.holdGroup(b.group)
		b.sim.after(float64(layer)*delay, func() error {
			b.ringLayer(c, per, size, start, squash)
			b.sim.releaseGroup(b.group)
			return nil
		})
	}
}

func (b *burster) ringLayer(color ColorID, count, layerSize, start, squash float64) {
	cfg := &b.sh.cfg
	sim := b.sim
	if count <= 0 {
		return
	}
	step := TwoPi / count
	n := int(math.Ceil(count))
	for i := 0; i < n; i++ {
		a := float64(i) * step
		ivx := math.Sin(a) * b.speed * squash * layerSize
		ivy := math.Cos(a) * b.speed * layerSize
		speed := math.Hypot(ivx, ivy)
		angle := PointAngle(0, 0, ivx, ivy) + start
		id := sim.addStar(b.x, b.y, b.color(color), angle, speed, b.life(), 0, 0)
		s := sim.stars.Get(id)
		if cfg.ExplosionRing {
			s.Death = DeathExplosionRing
		}
		b.finish(s)
	}
}

// Word burst constants.
const (
	wordFontMin      = 60
	wordFontRange    = 70
	wordStarSize     = 2
	wordStarLifeAdd  = 1000
	wordEmberLifeAdd = 2000
)

// word renders a random phrase as a dot matrix of strobing stars or sparks.
func (b *burster) word() {
	sim := b.sim
	env := sim.env
	r := env.Rand
	cfg := &b.sh.cfg

	raster := sim.textRaster()
	if raster == nil {
		return
	}
	words := sim.cfg.Words
	if len(words) == 0 {
		words = DefaultWords
	}
	text := words[randomIndex(r, len(words))]
	size := int(math.Floor(r.Float64()*wordFontRange + wordFontMin))
	m, err := raster.Matrix(text, size)
	if err != nil {
		sim.debugf("word burst %q disabled: %v", text, err)
		return
	}
	if m == nil {
		return
	}

	color := env.RandomColor(ColorOptions{})
	strobed := r.Float64() < 0.5
	strobeColor := color
	if strobed {
		strobeColor = env.RandomColor(ColorOptions{})
	}
	offX, offY := b.offset()
	for _, pt := range m.Points {
		px := b.x + (pt.X - m.Width/2)
		py := b.y + (pt.Y - m.Height/2)
		life := b.life()
		if strobed {
			speed := r.Float64()*0.1 + 0.05
			id := sim.addStar(px, py, color, r.Float64()*TwoPi, speed, life+speed*wordStarLifeAdd, offX, offY)
			s := sim.stars.Get(id)
			s.Size = wordStarSize
			s.Strobe = true
			s.StrobeFreq = r.Float64()*20 + 40
			s.TransitionTime = cfg.StarLife * (r.Float64()*0.08 + 0.46)
			s.SecondColor = strobeColor
		} else {
			sim.sparks.Add(px, py, color, r.Float64()*TwoPi, math.Pow(r.Float64(), 0.15)*1.4, life+wordStarLifeAdd)
		}
		sim.sparks.Add(px+5, py+10, color, r.Float64()*TwoPi, math.Pow(r.Float64(), 0.05)*0.4, life+wordEmberLifeAdd)
	}
}
