package fireworks

import "math"

// DeathEffect is the behavior a star runs when its life runs out.
type DeathEffect uint8

const (
	DeathNone DeathEffect = iota
	DeathShellBurst
	DeathCrackle
	DeathCrossette
	DeathHeartCrackle
	DeathHeartOutline
	DeathFloral
	DeathFallingLeaves
	DeathExplosionRing
	DeathSpiral
	DeathWaterfall
	DeathSnowflake
	DeathGalaxy
	DeathLightning
	DeathWhirlpool
	DeathTimeDelay
)

var deathNames = [...]string{
	DeathNone:          "none",
	DeathShellBurst:    "shell burst",
	DeathCrackle:       "crackle",
	DeathCrossette:     "crossette",
	DeathHeartCrackle:  "heart crackle",
	DeathHeartOutline:  "heart outline",
	DeathFloral:        "floral",
	DeathFallingLeaves: "falling leaves",
	DeathExplosionRing: "explosion ring",
	DeathSpiral:        "spiral",
	DeathWaterfall:     "waterfall",
	DeathSnowflake:     "snowflake",
	DeathGalaxy:        "galaxy",
	DeathLightning:     "lightning",
	DeathWhirlpool:     "whirlpool",
	DeathTimeDelay:     "time delay",
}

func (d DeathEffect) String() string {
	if int(d) < len(deathNames) {
		return deathNames[d]
	}
	return "unknown"
}

// SpawnKind tags a SpawnRequest.
type SpawnKind uint8

const (
	SpawnStar SpawnKind = iota
	SpawnSpark
	SpawnFlash
	SpawnSound
)

// SpawnRequest is one thing a death effect asks the simulation to create.
// Requests with a positive Delay run that many simulation milliseconds later.
type SpawnRequest struct {
	Kind  SpawnKind
	X, Y  float64
	Color ColorID
	Angle float64
	Speed float64
	Life  float64
	OffX  float64
	OffY  float64
	Delay float64

	// Glitter, when set, gives a spawned star this spark profile.
	Glitter *SparkProfile

	Radius float64 // flash

	Sound Sound
	Scale float64
	// Once limits the sound to the first star of a burst that asks for it.
	Once bool
}

// effectFlashRadius is the flash drawn by floral and falling-leaves stars.
const effectFlashRadius = 46

var fallingLeavesGlitter = SparkProfile{Freq: 144, Speed: 0.28, Life: 750, LifeVariation: 3.2, Color: Gold}

// Spawns appends the requests produced when star s dies with effect d. It
// reads only the snapshot, the quality level and r.
func (d DeathEffect) Spawns(s Star, q Quality, r Rand, dst []SpawnRequest) []SpawnRequest {
	high := q == QualityHigh
	pick := func(lo, hi int) int {
		if high {
			return hi
		}
		return lo
	}
	spark := func(c ColorID, angle, speed, life float64) SpawnRequest {
		return SpawnRequest{Kind: SpawnSpark, X: s.X, Y: s.Y, Color: c, Angle: angle, Speed: speed, Life: life}
	}
	sound := func(snd Sound, once bool) SpawnRequest {
		return SpawnRequest{Kind: SpawnSound, Sound: snd, Scale: 1, Once: once}
	}

	switch d {
	case DeathCrossette:
		dst = append(dst, sound(SoundCrackleSmall, true))
		var angles [4]float64
		for _, a := range AppendArc(angles[:0], r, r.Float64()*HalfPi, TwoPi, 4, 0.5) {
			dst = append(dst, SpawnRequest{
				Kind: SpawnStar, X: s.X, Y: s.Y, Color: s.Color,
				Angle: a, Speed: r.Float64()*0.6 + 0.75, Life: 600,
			})
		}

	case DeathCrackle, DeathHeartCrackle:
		dst = append(dst, sound(SoundCrackle, true))
		for _, a := range AppendArc(nil, r, 0, TwoPi, pick(16, 32), 1.8) {
			dst = append(dst, spark(Gold, a, math.Pow(r.Float64(), 0.45)*2.4, 300+r.Float64()*200))
		}

	case DeathHeartOutline:
		dst = append(dst, sound(SoundCrackle, true))
		c := s.Color
		if c == Invisible {
			c = Gold
		}
		for _, p := range AppendHeart(nil, pick(32, 64), 0.8) {
			angle := p.Angle + (r.Float64()-0.5)*0.3
			speed := p.RingSize * 0.15 * (r.Float64()*0.1 + 0.9)
			dst = append(dst, spark(c, angle, speed, 400+r.Float64()*200))
		}
		if high {
			for i := 0; i < 8; i++ {
				dst = append(dst, spark(White, r.Float64()*TwoPi, 0.3+r.Float64()*0.5, 150+r.Float64()*100))
			}
		}

	case DeathFloral:
		count := 12 + 6*q.factor()
		for _, p := range AppendBurst(nil, r, count, 0, TwoPi) {
			dst = append(dst, SpawnRequest{
				Kind: SpawnStar, X: s.X, Y: s.Y, Color: s.Color,
				Angle: p.Angle, Speed: p.RingSize * 2.4, Life: 1000 + r.Float64()*300,
				OffX: s.SpeedX, OffY: s.SpeedY,
			})
		}
		dst = append(dst,
			SpawnRequest{Kind: SpawnFlash, X: s.X, Y: s.Y, Radius: effectFlashRadius},
			sound(SoundBurstSmall, false))

	case DeathFallingLeaves:
		glitter := fallingLeavesGlitter
		glitter.Freq /= q.factor()
		for _, p := range AppendBurst(nil, r, 7, 0, TwoPi) {
			dst = append(dst, SpawnRequest{
				Kind: SpawnStar, X: s.X, Y: s.Y, Color: Invisible,
				Angle: p.Angle, Speed: p.RingSize * 2.4, Life: 2400 + r.Float64()*600,
				OffX: s.SpeedX, OffY: s.SpeedY,
				Glitter: &glitter,
			})
		}
		dst = append(dst,
			SpawnRequest{Kind: SpawnFlash, X: s.X, Y: s.Y, Radius: effectFlashRadius},
			sound(SoundBurstSmall, false))

	case DeathExplosionRing:
		dst = append(dst, sound(SoundBurstSmall, true), sound(SoundCrackle, true))
		for _, p := range AppendBurst(nil, r, float64(pick(12, 24)), 0, TwoPi) {
			dst = append(dst, spark(s.Color, p.Angle, p.RingSize*1.8, 400+r.Float64()*200))
		}

	case DeathSpiral:
		dst = append(dst, sound(SoundBurstSmall, true), sound(SoundCrackle, true))
		n := pick(8, 16)
		for i := 0; i < n; i++ {
			f := float64(i) / float64(n)
			angle := f*TwoPi + 3*math.Pi*f
			dst = append(dst, spark(s.Color, angle, RandomInRange(r, 1.2, 1.8), RandomInRange(r, 500, 700)))
		}

	case DeathWaterfall:
		dst = append(dst, sound(SoundBurstSmall, true))
		for i := 0; i < pick(10, 20); i++ {
			angle := math.Pi + (r.Float64()-0.5)*0.5
			dst = append(dst, spark(s.Color, angle, RandomInRange(r, 0.8, 1.2), RandomInRange(r, 800, 1100)))
		}

	case DeathSnowflake:
		dst = append(dst, sound(SoundBurstSmall, true))
		const arms = 6
		per := pick(2, 4)
		for arm := 0; arm < arms; arm++ {
			base := float64(arm) / arms * TwoPi
			for j := 0; j < per; j++ {
				angle := base + (r.Float64()-0.5)*0.1
				dst = append(dst, spark(White, angle, RandomInRange(r, 0.6, 0.9), RandomInRange(r, 600, 800)))
			}
		}
		dst = append(dst, sound(SoundBurstSmall, false))

	case DeathGalaxy:
		dst = append(dst, sound(SoundBurstSmall, true))
		for i := 0; i < pick(10, 20); i++ {
			c := Purple
			if r.Float64() < 0.7 {
				c = Blue
			}
			dst = append(dst, spark(c, r.Float64()*TwoPi, RandomInRange(r, 0.4, 0.7), RandomInRange(r, 900, 1200)))
		}
		for i := 0; i < 5; i++ {
			dst = append(dst, spark(White, r.Float64()*TwoPi, RandomInRange(r, 0.8, 1.2), RandomInRange(r, 400, 600)))
		}

	case DeathLightning:
		dst = append(dst, sound(SoundBurstSmall, true))
		branches := pick(2, 3)
		for b := 0; b < branches; b++ {
			start := r.Float64() * TwoPi
			length := 3 + r.Float64()*2
			for seg := 0; float64(seg) < length; seg++ {
				angle := start + (r.Float64()-0.5)*0.3
				dst = append(dst, spark(White, angle, 1+float64(seg)*0.2, RandomInRange(r, 300, 450)))
			}
		}
		dst = append(dst,
			SpawnRequest{Kind: SpawnFlash, X: s.X, Y: s.Y, Radius: 30},
			sound(SoundBurstSmall, false))

	case DeathWhirlpool:
		dst = append(dst, sound(SoundBurstSmall, true))
		n := pick(8, 15)
		for i := 0; i < n; i++ {
			angle := float64(i)/float64(n)*TwoPi + 0.1*float64(i)
			dst = append(dst, spark(s.Color, angle, RandomInRange(r, 0.7, 1.1), RandomInRange(r, 700, 900)))
		}

	case DeathTimeDelay:
		dst = append(dst, sound(SoundBurstSmall, true))
		const stages = 3
		const stageDelay = 150
		per := pick(3, 6)
		for stage := 0; stage < stages; stage++ {
			delay := float64(stage * stageDelay)
			for i := 0; i < per; i++ {
				req := spark(s.Color, r.Float64()*TwoPi, RandomInRange(r, 0.6, 0.9), RandomInRange(r, 400, 550))
				req.Delay = delay
				dst = append(dst, req)
			}
			if stage == stages-1 {
				req := sound(SoundBurstSmall, false)
				req.Delay = delay
				dst = append(dst, req)
			}
		}
	}
	return dst
}
