package fireworks

import (
	"time"

	"golang.org/x/time/rate"
)

// Sound names one of the show's sound effects.
type Sound uint8

const (
	SoundLift Sound = iota
	SoundBurst
	SoundBurstSmall
	SoundCrackle
	SoundCrackleSmall
)

// Sounds lists every Sound in declaration order.
func Sounds() []Sound {
	return []Sound{SoundLift, SoundBurst, SoundBurstSmall, SoundCrackle, SoundCrackleSmall}
}

func (s Sound) String() string {
	switch s {
	case SoundLift:
		return "lift"
	case SoundBurst:
		return "burst"
	case SoundBurstSmall:
		return "burstSmall"
	case SoundCrackle:
		return "crackle"
	case SoundCrackleSmall:
		return "crackleSmall"
	}
	return "unknown"
}

// Audio plays a sound at scale in [0, 1]. Play is fire-and-forget and must
// not block; implementations drop sounds they cannot play.
type Audio interface {
	Play(s Sound, scale float64)
}

const (
	// minSoundSpeed is the simulation speed below which sounds are dropped.
	minSoundSpeed = 0.95
	// burstSmallInterval limits the small burst sound, which can be
	// requested by hundreds of stars in the same frame.
	burstSmallInterval = 20 * time.Millisecond
)

// soundGate sheds sound requests the listener should not hear.
type soundGate struct {
	out     Audio
	limiter *rate.Limiter
	now     func() time.Time
	played  int
	dropped int
}

func newSoundGate() *soundGate {
	return &soundGate{
		limiter: rate.NewLimiter(rate.Every(burstSmallInterval), 1),
		now:     time.Now,
	}
}

// play forwards s to the audio output unless muted, paused, running in slow
// motion or rate limited.
func (g *soundGate) play(s Sound, scale float64, enabled bool, speed float64) {
	if g.out == nil || !enabled || speed < minSoundSpeed {
		g.dropped++
		return
	}
	scale = Clamp(scale, 0, 1)
	if s == SoundBurstSmall && !g.limiter.AllowN(g.now(), 1) {
		g.dropped++
		return
	}
	g.played++
	g.out.Play(s, scale)
}
