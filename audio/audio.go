// Package audio plays the show's sound effects through the system speaker.
// Every effect is synthesized at start-up; there are no sample files.
package audio

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/phanxgames/fireworks"
)

// Options configures a Player.
type Options struct {
	// SampleRate of the output device. Defaults to 44100.
	SampleRate int
	// Volume is the master gain in [0, 1]. Defaults to 1.
	Volume float64
	// Seed makes the synthesized noise reproducible. Zero picks a random seed.
	Seed uint64
}

// voice is the playback recipe of one sound.
type voice struct {
	volume           float64
	rateMin, rateMax float64
	length           time.Duration
	build            func(rate beep.SampleRate, total int, rng *rand.Rand) beep.Streamer
}

var voices = map[fireworks.Sound]voice{
	fireworks.SoundLift: {
		volume: 1, rateMin: 0.85, rateMax: 0.95, length: 1200 * time.Millisecond,
		build: func(rate beep.SampleRate, total int, rng *rand.Rand) beep.Streamer {
			return &whoosh{rate: rate, total: total, rng: rng}
		},
	},
	fireworks.SoundBurst: {
		volume: 1, rateMin: 0.8, rateMax: 0.9, length: 1600 * time.Millisecond,
		build: func(rate beep.SampleRate, total int, rng *rand.Rand) beep.Streamer {
			return &thump{rate: rate, total: total, freq: 55, decay: 0.35, smooth: 0.08, noiseMix: 0.6, rng: rng}
		},
	},
	fireworks.SoundBurstSmall: {
		volume: 0.25, rateMin: 0.8, rateMax: 1, length: 500 * time.Millisecond,
		build: func(rate beep.SampleRate, total int, rng *rand.Rand) beep.Streamer {
			return &thump{rate: rate, total: total, freq: 90, decay: 0.12, smooth: 0.15, noiseMix: 0.7, rng: rng}
		},
	},
	fireworks.SoundCrackle: {
		volume: 0.2, rateMin: 1, rateMax: 1, length: 1000 * time.Millisecond,
		build: func(rate beep.SampleRate, total int, rng *rand.Rand) beep.Streamer {
			return &crackle{rate: rate, total: total, density: 260, clickN: rate.N(2 * time.Millisecond), rng: rng}
		},
	},
	fireworks.SoundCrackleSmall: {
		volume: 0.3, rateMin: 1, rateMax: 1, length: 400 * time.Millisecond,
		build: func(rate beep.SampleRate, total int, rng *rand.Rand) beep.Streamer {
			return &crackle{rate: rate, total: total, density: 120, clickN: rate.N(2 * time.Millisecond), rng: rng}
		},
	},
}

// resampleQuality is the interpolation quality used for playback rate changes.
const resampleQuality = 3

// Player mixes sound effects into the speaker. It implements
// fireworks.Audio; Play never blocks on the device.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	rng         *rand.Rand
	initialized bool
}

// NewPlayer returns a player that stays silent until Init succeeds.
func NewPlayer(opts Options) *Player {
	if opts.SampleRate <= 0 {
		opts.SampleRate = 44100
	}
	if opts.Volume <= 0 || opts.Volume > 1 {
		opts.Volume = 1
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Player{
		rate:   beep.SampleRate(opts.SampleRate),
		volume: opts.Volume,
		mixer:  &beep.Mixer{},
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Init opens the speaker and starts the mixer. Callers treat a failure as
// non-fatal and run the show without sound.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops every playing sound.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Stream builds the streamer for s at scale. Louder scales play at a lower
// pitch: the playback rate is a random pick in the voice's range times
// (2 - scale).
func (p *Player) Stream(s fireworks.Sound, scale float64) (beep.Streamer, error) {
	v, ok := voices[s]
	if !ok {
		return nil, fmt.Errorf("%w: %v", fireworks.ErrUnknownSound, s)
	}
	scale = fireworks.Clamp(scale, 0, 1)

	p.mu.Lock()
	rng := rand.New(rand.NewPCG(p.rng.Uint64(), p.rng.Uint64()))
	playback := fireworks.RandomInRange(p.rng, v.rateMin, v.rateMax) * (2 - scale)
	p.mu.Unlock()

	src := v.build(p.rate, p.rate.N(v.length), rng)
	var out beep.Streamer = src
	if playback != 1 {
		out = beep.ResampleRatio(resampleQuality, playback, src)
	}
	return newVolume(out, v.volume*scale*p.volume), nil
}

// Play starts s at scale. Sounds requested before Init, or unknown to the
// player, are dropped.
func (p *Player) Play(s fireworks.Sound, scale float64) {
	p.mu.Lock()
	ready := p.initialized
	p.mu.Unlock()
	if !ready {
		return
	}
	st, err := p.Stream(s, scale)
	if err != nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(st)
	speaker.Unlock()
}

var _ fireworks.Audio = (*Player)(nil)
