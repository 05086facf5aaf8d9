package fireworks

// Env carries what catalog factories are allowed to read: the quality mode,
// the reduced-cost flag and the shared random source. It also remembers the
// last randomly selected color so pairs never repeat a color.
type Env struct {
	Rand    Rand
	Quality Quality
	Reduced bool

	last ColorID
}

// NewEnv returns an Env for cfg drawing from r.
func NewEnv(cfg Config, r Rand) *Env {
	return &Env{Rand: r, Quality: cfg.Quality, Reduced: cfg.Reduced, last: NoColor}
}

func (e *Env) high() bool { return e.Quality == QualityHigh }
func (e *Env) low() bool  { return e.Quality == QualityLow }

// chance reports true with probability p.
func (e *Env) chance(p float64) bool {
	return e.Rand.Float64() < p
}

// ColorOptions constrains RandomColor.
type ColorOptions struct {
	// NotSame rerolls until the color differs from the previous pick.
	NotSame bool
	// Exclude rerolls until the color differs from Not.
	Exclude bool
	Not     ColorID
	// LimitWhite rerolls a white pick 60% of the time.
	LimitWhite bool
}

const whiteRerollChance = 0.6

func (e *Env) simpleColor() ColorID {
	return ColorID(randomIndex(e.Rand, numColors))
}

// RandomColor draws a palette color.
func (e *Env) RandomColor(opts ColorOptions) ColorID {
	c := e.simpleColor()
	if opts.LimitWhite && c == White && e.chance(whiteRerollChance) {
		c = e.simpleColor()
	}
	switch {
	case opts.NotSame:
		for c == e.last {
			c = e.simpleColor()
		}
	case opts.Exclude:
		for c == opts.Not {
			c = e.simpleColor()
		}
	}
	e.last = c
	return c
}

// WhiteOrGold returns White or Gold with equal probability.
func (e *Env) WhiteOrGold() ColorID {
	if e.chance(0.5) {
		return Gold
	}
	return White
}

// PistilColor picks a pistil color that contrasts with the shell color.
func (e *Env) PistilColor(shell ColorID) ColorID {
	if shell == White || shell == Gold {
		return e.RandomColor(ColorOptions{Exclude: true, Not: shell})
	}
	return e.WhiteOrGold()
}

func (e *Env) goldOrWhite(c ColorID) ColorID {
	if c == Gold {
		return Gold
	}
	return White
}
