package fireworks

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Integrator constants. Drag factors are per reference frame at speed 1.
const (
	gravity        = 0.9 // added to SpeedY per simulated second
	starAirDrag    = 0.98
	heavyAirDrag   = 0.992
	sparkAirDrag   = 0.9
	referenceFrame = 1000.0 / 60
)

// burstGroup lets every star of one burst share a single sound flag.
type burstGroup struct {
	refs   int
	played bool
}

// pendingBurst is a comet that died during the star pass.
type pendingBurst struct {
	shell          int32
	x, y           float64
	speedX, speedY float64
}

// Simulation owns every particle of a show and advances them one frame at a
// time. It is not safe for concurrent use; drive Update and Render from one
// goroutine.
type Simulation struct {
	cfg Config
	rnd Rand
	env *Env

	stars   StarPool
	sparks  SparkPool
	flashes []Flash

	sched    scheduler
	sound    *soundGate
	events   EventSink
	observer Observer

	text       *TextRasterizer
	textFailed bool

	shells     []*Shell
	freeShells []int32
	groups     []burstGroup
	freeGroups []int32

	viewW, viewH  float64 // pixels
	width, height float64 // stage units, pixels / ScaleFactor
	speed         float64
	lastSpeed     float64
	paused        bool
	frame         uint64
	clock         float64

	spawns []SpawnRequest
	reqBuf []SpawnRequest
	bursts []pendingBurst

	sky   sky
	seq   sequencer
	stats FrameStats

	segBuf   []Segment
	glintBuf []Segment

	debug bool
}

// NewSimulation returns an empty show on a width x height stage using cfg.
// The random source is seeded from the clock; use SetRand for repeatable
// runs.
func NewSimulation(cfg Config, width, height float64) *Simulation {
	seed := uint64(time.Now().UnixNano())
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	sim := &Simulation{
		cfg:       cfg,
		rnd:       r,
		env:       NewEnv(cfg, r),
		sound:     newSoundGate(),
		viewW:     width,
		viewH:     height,
		speed:     1,
		lastSpeed: 1,
	}
	sim.fitStage()
	sim.seq.reset()
	return sim
}

// Config returns the current options.
func (sim *Simulation) Config() Config { return sim.cfg }

// SetConfig replaces the options. Shells already in flight keep the
// configuration they were built with.
func (sim *Simulation) SetConfig(cfg Config) {
	sim.cfg = cfg
	sim.env.Quality = cfg.Quality
	sim.env.Reduced = cfg.Reduced
	sim.fitStage()
}

// SetRand replaces the random source used by factories, bursts and the
// integrator.
func (sim *Simulation) SetRand(r Rand) {
	sim.rnd = r
	sim.env.Rand = r
}

// Env returns the factory environment shared with catalog factories.
func (sim *Simulation) Env() *Env { return sim.env }

// SetAudio sets the sound output. nil silences the show.
func (sim *Simulation) SetAudio(a Audio) { sim.sound.out = a }

// SetEventSink sets the receiver of launch and burst notifications.
func (sim *Simulation) SetEventSink(s EventSink) { sim.events = s }

// SetObserver sets the receiver of per-frame statistics.
func (sim *Simulation) SetObserver(o Observer) { sim.observer = o }

// SetTextRasterizer replaces the font used for word bursts.
func (sim *Simulation) SetTextRasterizer(t *TextRasterizer) {
	sim.text = t
	sim.textFailed = t == nil
}

// SetDebugMode enables periodic frame statistics on stderr.
func (sim *Simulation) SetDebugMode(enabled bool) { sim.debug = enabled }

// Resize sets the output size in pixels. The stage used by launches is the
// output size divided by Config.ScaleFactor.
func (sim *Simulation) Resize(width, height float64) {
	sim.viewW, sim.viewH = width, height
	sim.fitStage()
}

// Size returns the output size in pixels.
func (sim *Simulation) Size() (width, height float64) { return sim.viewW, sim.viewH }

// StageSize returns the stage size in simulation units.
func (sim *Simulation) StageSize() (width, height float64) { return sim.width, sim.height }

// scale returns the pixels per stage unit. A non-positive ScaleFactor
// counts as 1.
func (sim *Simulation) scale() float64 {
	if sim.cfg.ScaleFactor > 0 {
		return sim.cfg.ScaleFactor
	}
	return 1
}

func (sim *Simulation) fitStage() {
	k := sim.scale()
	sim.width, sim.height = sim.viewW/k, sim.viewH/k
}

// SetSpeed sets the simulation speed, clamped to [0, 1].
func (sim *Simulation) SetSpeed(s float64) { sim.speed = Clamp(s, 0, 1) }

// Speed returns the simulation speed.
func (sim *Simulation) Speed() float64 { return sim.speed }

// Pause freezes or resumes the show. Paused frames integrate nothing and
// drop sounds.
func (sim *Simulation) Pause(paused bool) { sim.paused = paused }

// Paused reports whether the show is paused.
func (sim *Simulation) Paused() bool { return sim.paused }

// Stars returns the star arena.
func (sim *Simulation) Stars() *StarPool { return &sim.stars }

// Sparks returns the spark pool.
func (sim *Simulation) Sparks() *SparkPool { return &sim.sparks }

// Flashes returns the flashes queued for the next Render.
func (sim *Simulation) Flashes() []Flash { return sim.flashes }

// Frame returns the number of integrated frames.
func (sim *Simulation) Frame() uint64 { return sim.frame }

// Clock returns the simulation time in milliseconds.
func (sim *Simulation) Clock() float64 { return sim.clock }

// Pending returns the number of scheduled events not yet run.
func (sim *Simulation) Pending() int { return sim.sched.pending() }

// Reset removes every particle, scheduled event and shell in flight.
func (sim *Simulation) Reset() {
	sim.stars.Reset()
	sim.sparks.Reset()
	sim.flashes = sim.flashes[:0]
	sim.sched.reset()
	sim.spawns = sim.spawns[:0]
	sim.bursts = sim.bursts[:0]
	clear(sim.shells)
	sim.shells = sim.shells[:0]
	sim.freeShells = sim.freeShells[:0]
	sim.groups = sim.groups[:0]
	sim.freeGroups = sim.freeGroups[:0]
	sim.seq.reset()
}

// Launch builds the named shell at size and launches it.
func (sim *Simulation) Launch(name string, size, position, height float64) (*Shell, error) {
	cfg, err := NewShellConfig(name, size, sim.env)
	if err != nil {
		return nil, err
	}
	sh := sim.NewShell(cfg)
	if err := sh.Launch(position, height); err != nil {
		return nil, err
	}
	return sh, nil
}

// LaunchConfigured launches the shell selected by Config.ShellType at
// Config.ShellSize.
func (sim *Simulation) LaunchConfigured(position, height float64) (*Shell, error) {
	return sim.Launch(sim.cfg.ShellType, sim.cfg.ShellSize, position, height)
}

// Update advances the show by frameTime milliseconds of wall time. lag is
// frameTime relative to a 60 Hz frame and scales movement. An invalid shell
// configuration reaching its burst is returned as an error.
func (sim *Simulation) Update(frameTime, lag float64) error {
	start := time.Now()
	sim.flashes = sim.flashes[:0]
	if sim.paused {
		return nil
	}

	timeStep := frameTime * sim.speed
	speed := sim.speed * lag
	sim.lastSpeed = speed
	sim.frame++
	sim.clock += timeStep

	if err := sim.sched.run(sim.clock); err != nil {
		return err
	}
	if err := sim.seq.update(sim, timeStep); err != nil {
		return err
	}

	gravityAcc := timeStep / 1000 * gravity
	sim.updateStars(timeStep, speed, gravityAcc)
	sim.sparks.update(timeStep, speed, 1-(1-sparkAirDrag)*speed, gravityAcc)
	if err := sim.flush(); err != nil {
		return err
	}

	sim.sky.update(sim, speed)
	sim.observe(time.Since(start))
	return nil
}

// updateStars integrates every star once. Stars that die are recycled at
// once; what they spawn is queued until the pass is over.
func (sim *Simulation) updateStars(timeStep, speed, gravityAcc float64) {
	starDrag := 1 - (1-starAirDrag)*speed
	heavyDrag := 1 - (1-heavyAirDrag)*speed
	r := sim.rnd

	for c := range sim.stars.buckets {
		bucket := ColorID(c)
		ids := sim.stars.buckets[c]
		w := 0
		for _, id := range ids {
			s := &sim.stars.slots[id]
			if s.frame == sim.frame {
				ids[w] = id
				w++
				continue
			}
			s.frame = sim.frame

			s.Life -= timeStep
			if s.Life <= 0 {
				sim.retire(id)
				continue
			}

			burnRate := math.Sqrt(s.Life / s.FullLife)
			s.PrevX, s.PrevY = s.X, s.Y
			s.X += s.SpeedX * speed
			s.Y += s.SpeedY * speed
			if s.Heavy {
				s.SpeedX *= heavyDrag
				s.SpeedY *= heavyDrag
			} else {
				s.SpeedX *= starDrag
				s.SpeedY *= starDrag
			}
			s.SpeedY += gravityAcc

			if s.SpinRadius != 0 {
				s.SpinAngle += s.SpinSpeed * speed
				s.X += math.Sin(s.SpinAngle) * s.SpinRadius * speed
				s.Y += math.Cos(s.SpinAngle) * s.SpinRadius * speed
			}

			if s.SparkFreq > 0 {
				s.SparkTimer -= timeStep
				for s.SparkTimer < 0 {
					s.SparkTimer += s.SparkFreq*0.75 + s.SparkFreq*(1-burnRate)*4
					sim.sparks.Add(s.X, s.Y, s.SparkColor,
						r.Float64()*TwoPi,
						r.Float64()*s.SparkSpeed*burnRate,
						s.SparkLife*0.8+r.Float64()*s.SparkLifeVariation*s.SparkLife)
				}
			}

			moved := false
			if s.Life < s.TransitionTime {
				if s.SecondColor != NoColor && !s.colorChanged {
					s.colorChanged = true
					s.Color = s.SecondColor
					if s.Color == Invisible {
						s.SparkFreq = 0
					}
					moved = s.Color != bucket
				}
				if s.Strobe {
					s.Visible = int(math.Floor(s.Life/s.StrobeFreq))%3 != 0
				}
			}
			if moved {
				sim.stars.buckets[s.Color] = append(sim.stars.buckets[s.Color], id)
				continue
			}
			ids[w] = id
			w++
		}
		sim.stars.buckets[c] = ids[:w]
	}
}

// retire recycles star id and queues its death effect.
func (sim *Simulation) retire(id StarID) {
	s := sim.stars.slots[id]
	switch s.Death {
	case DeathNone:
	case DeathShellBurst:
		sim.bursts = append(sim.bursts, pendingBurst{
			shell: s.shell, x: s.X, y: s.Y, speedX: s.SpeedX, speedY: s.SpeedY,
		})
	default:
		sim.reqBuf = s.Death.Spawns(s, sim.cfg.Quality, sim.rnd, sim.reqBuf[:0])
		onceAllowed := s.group < 0 || !sim.groups[s.group].played
		playedOnce := false
		for _, req := range sim.reqBuf {
			if req.Kind == SpawnSound && req.Once {
				if !onceAllowed {
					continue
				}
				playedOnce = true
			}
			if req.Delay > 0 {
				sim.after(req.Delay, func() error {
					sim.apply(req)
					return nil
				})
				continue
			}
			if req.Kind == SpawnSound {
				sim.apply(req)
				continue
			}
			sim.spawns = append(sim.spawns, req)
		}
		if playedOnce && s.group >= 0 {
			sim.groups[s.group].played = true
		}
	}
	sim.releaseGroup(s.group)
	sim.stars.recycle(id)
}

// flush applies what the frame's deaths produced. Comets burst last.
func (sim *Simulation) flush() error {
	for i := range sim.spawns {
		sim.apply(sim.spawns[i])
	}
	sim.spawns = sim.spawns[:0]

	for i := 0; i < len(sim.bursts); i++ {
		pb := sim.bursts[i]
		sh := sim.releaseShell(pb.shell)
		if sh == nil {
			continue
		}
		sh.cometVX, sh.cometVY = pb.speedX, pb.speedY
		if err := sh.Burst(pb.x, pb.y); err != nil {
			sim.bursts = sim.bursts[:0]
			return err
		}
	}
	sim.bursts = sim.bursts[:0]
	return nil
}

// apply performs one spawn request.
func (sim *Simulation) apply(req SpawnRequest) {
	switch req.Kind {
	case SpawnStar:
		id := sim.addStar(req.X, req.Y, req.Color, req.Angle, req.Speed, req.Life, req.OffX, req.OffY)
		if req.Glitter != nil {
			applyGlitter(sim.stars.Get(id), req.Glitter, nil)
		}
	case SpawnSpark:
		sim.sparks.Add(req.X, req.Y, req.Color, req.Angle, req.Speed, req.Life)
	case SpawnFlash:
		sim.addFlash(req.X, req.Y, req.Radius)
	case SpawnSound:
		sim.playSound(req.Sound, req.Scale)
	}
}

// addStar adds a star that first moves on the next frame.
func (sim *Simulation) addStar(x, y float64, color ColorID, angle, speed, life, offX, offY float64) StarID {
	id := sim.stars.Add(x, y, color, angle, speed, life, offX, offY, sim.rnd)
	sim.stars.slots[id].frame = sim.frame
	return id
}

func (sim *Simulation) addFlash(x, y, radius float64) {
	sim.flashes = append(sim.flashes, Flash{X: x, Y: y, Radius: radius})
}

// after runs fn delay simulation milliseconds from now. A non-positive delay
// runs it immediately.
func (sim *Simulation) after(delay float64, fn func() error) {
	if delay <= 0 {
		if err := fn(); err != nil {
			sim.debugf("immediate event: %v", err)
		}
		return
	}
	sim.sched.at(sim.clock+delay, fn)
}

func (sim *Simulation) playSound(s Sound, scale float64) {
	speed := sim.speed
	if sim.paused {
		speed = 0
	}
	sim.sound.play(s, scale, sim.cfg.Sound, speed)
}

// registerShell stores sh in a free slot so its comet can find it again.
func (sim *Simulation) registerShell(sh *Shell) int32 {
	if n := len(sim.freeShells); n > 0 {
		idx := sim.freeShells[n-1]
		sim.freeShells = sim.freeShells[:n-1]
		sim.shells[idx] = sh
		return idx
	}
	sim.shells = append(sim.shells, sh)
	return int32(len(sim.shells) - 1)
}

func (sim *Simulation) releaseShell(idx int32) *Shell {
	if idx < 0 || int(idx) >= len(sim.shells) {
		return nil
	}
	sh := sim.shells[idx]
	sim.shells[idx] = nil
	sim.freeShells = append(sim.freeShells, idx)
	return sh
}

// newGroup returns a burst group holding one reference for its creator.
func (sim *Simulation) newGroup() int32 {
	g := burstGroup{refs: 1}
	if n := len(sim.freeGroups); n > 0 {
		idx := sim.freeGroups[n-1]
		sim.freeGroups = sim.freeGroups[:n-1]
		sim.groups[idx] = g
		return idx
	}
	sim.groups = append(sim.groups, g)
	return int32(len(sim.groups) - 1)
}

func (sim *Simulation) holdGroup(g int32) {
	if g >= 0 {
		sim.groups[g].refs++
	}
}

func (sim *Simulation) attach(s *Star, g int32) {
	s.group = g
	sim.holdGroup(g)
}

func (sim *Simulation) releaseGroup(g int32) {
	if g < 0 || int(g) >= len(sim.groups) {
		return
	}
	sim.groups[g].refs--
	if sim.groups[g].refs == 0 {
		sim.freeGroups = append(sim.freeGroups, g)
	}
}

func (sim *Simulation) emit(e ShellEvent) {
	e.Frame = sim.frame
	e.Time = sim.clock
	if sim.events != nil {
		sim.events.EmitEvent(e)
	}
}

// textRaster loads the default font on first use. A load failure disables
// word bursts for the life of the simulation.
func (sim *Simulation) textRaster() *TextRasterizer {
	if sim.text != nil || sim.textFailed {
		return sim.text
	}
	t, err := DefaultTextRasterizer()
	if err != nil {
		sim.textFailed = true
		sim.debugf("word bursts disabled: %v", err)
		return nil
	}
	sim.text = t
	return t
}

func (sim *Simulation) String() string {
	return fmt.Sprintf("Simulation(frame=%d stars=%d sparks=%d)", sim.frame, sim.stars.Len(), sim.sparks.Len())
}
