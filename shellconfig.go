package fireworks

import (
	"fmt"
	"math"
)

// ColorKind selects how a shell colors its stars.
type ColorKind uint8

const (
	ColorUnset   ColorKind = iota // invalid; a catalog bug
	ColorSingle                   // every star uses Colors[0]
	ColorPair                     // two colors split across the sphere
	ColorPalette                  // three or more colors split across the sphere
	ColorRandom                   // each star draws its own color
)

// ColorRule describes the colors of a shell burst.
type ColorRule struct {
	Kind   ColorKind
	Colors []ColorID
}

// SingleColor returns a rule coloring every star c.
func SingleColor(c ColorID) ColorRule {
	return ColorRule{Kind: ColorSingle, Colors: []ColorID{c}}
}

// PairColor returns a rule splitting the burst between a and b.
func PairColor(a, b ColorID) ColorRule {
	return ColorRule{Kind: ColorPair, Colors: []ColorID{a, b}}
}

// PaletteColor returns a rule splitting the burst across all colors.
func PaletteColor(colors ...ColorID) ColorRule {
	return ColorRule{Kind: ColorPalette, Colors: colors}
}

// RandomColor returns a rule drawing a color per star.
func RandomColor() ColorRule {
	return ColorRule{Kind: ColorRandom}
}

// Single reports the color of a single-color rule.
func (r ColorRule) Single() (ColorID, bool) {
	if r.Kind != ColorSingle || len(r.Colors) != 1 {
		return NoColor, false
	}
	return r.Colors[0], true
}

// Is reports whether r is the single color c.
func (r ColorRule) Is(c ColorID) bool {
	s, ok := r.Single()
	return ok && s == c
}

func (r ColorRule) validate() error {
	switch r.Kind {
	case ColorRandom:
		return nil
	case ColorSingle:
		if len(r.Colors) == 1 && r.Colors[0].Valid() {
			return nil
		}
	case ColorPair:
		if len(r.Colors) == 2 && r.Colors[0].Valid() && r.Colors[1].Valid() {
			return nil
		}
	case ColorPalette:
		if len(r.Colors) < 2 {
			break
		}
		for _, c := range r.Colors {
			if !c.Valid() {
				return fmt.Errorf("%w: palette entry %v", ErrInvalidColor, c)
			}
		}
		return nil
	}
	return fmt.Errorf("%w: kind %d with %d colors", ErrInvalidColor, r.Kind, len(r.Colors))
}

// validateColors checks the color rule and every optional color field.
// Optional fields must be NoColor or a palette color or Invisible.
func (c ShellConfig) validateColors() error {
	if err := c.Color.validate(); err != nil {
		return err
	}
	for _, f := range [...]struct {
		name string
		c    ColorID
	}{
		{"second color", c.SecondColor},
		{"strobe color", c.StrobeColor},
		{"pistil color", c.PistilColor},
		{"secondary color", c.SecondaryColor},
		{"glitter color", c.GlitterColor},
	} {
		if f.c != NoColor && !f.c.Valid() {
			return fmt.Errorf("%w: %s %d", ErrInvalidColor, f.name, uint8(f.c))
		}
	}
	return nil
}

// GlitterTier names a spark-emission profile for burst stars.
type GlitterTier uint8

const (
	GlitterNone GlitterTier = iota
	GlitterLight
	GlitterMedium
	GlitterHeavy
	GlitterThick
	GlitterStreamer
	GlitterWillow
)

// SparkProfile describes how a star sheds sparks.
type SparkProfile struct {
	Freq          float64 // base interval between sparks, ms
	Speed         float64
	Life          float64 // ms
	LifeVariation float64
	Color         ColorID
}

// Profile returns the tier's emission profile at quality q. Frequencies are
// divided by the quality level so better quality sheds more sparks.
func (g GlitterTier) Profile(q Quality) SparkProfile {
	var p SparkProfile
	switch g {
	case GlitterLight:
		p = SparkProfile{Freq: 400, Speed: 0.3, Life: 300, LifeVariation: 2}
	case GlitterMedium:
		p = SparkProfile{Freq: 200, Speed: 0.44, Life: 700, LifeVariation: 2}
	case GlitterHeavy:
		p = SparkProfile{Freq: 80, Speed: 0.8, Life: 1400, LifeVariation: 2}
	case GlitterThick:
		p = SparkProfile{Freq: 16, Speed: 1.5, Life: 1400, LifeVariation: 3}
		if q == QualityHigh {
			p.Speed = 1.65
		}
	case GlitterStreamer:
		p = SparkProfile{Freq: 32, Speed: 1.05, Life: 620, LifeVariation: 2}
	case GlitterWillow:
		p = SparkProfile{Freq: 120, Speed: 0.34, Life: 1400, LifeVariation: 3.8}
	default:
		return SparkProfile{LifeVariation: 0.25, Color: NoColor}
	}
	p.Freq /= q.factor()
	p.Color = NoColor
	return p
}

func (g GlitterTier) String() string {
	switch g {
	case GlitterLight:
		return "light"
	case GlitterMedium:
		return "medium"
	case GlitterHeavy:
		return "heavy"
	case GlitterThick:
		return "thick"
	case GlitterStreamer:
		return "streamer"
	case GlitterWillow:
		return "willow"
	}
	return "none"
}

// Pattern warps the angles of a default burst.
type Pattern uint8

const (
	PatternSphere Pattern = iota
	PatternSpiral
	PatternSnowflake
	PatternGalaxy
	PatternLightning
	PatternWhirlpool
	PatternRainbowWhirl
)

// ShellConfig is the declarative description of one firework. Factories in
// the catalog build it; the zero values of StarLifeVariation, StarDensity,
// StarCount and GlitterColor are filled in by NewShell.
type ShellConfig struct {
	Name              string
	ShellSize         float64
	SpreadSize        float64
	StarLife          float64 // ms
	StarLifeVariation float64
	StarDensity       float64
	StarCount         float64

	Color        ColorRule
	SecondColor  ColorID // NoColor for none
	Glitter      GlitterTier
	GlitterColor ColorID

	Pistil      bool
	PistilColor ColorID
	Streamers   bool

	Ring        bool
	Strobe      bool
	StrobeColor ColorID
	Horsetail   bool
	Heart       bool
	Crackle     bool
	Crossette   bool
	Floral      bool

	FallingLeaves  bool
	ExplosionRing  bool
	MultiRing      bool
	RingLayers     int
	SecondaryColor ColorID
	DelayExplosion bool

	Pattern   Pattern
	Waterfall bool
	TimeDelay bool

	DisableText bool
}

// baseConfig returns a config with every optional color unset.
func baseConfig(name string, size float64) ShellConfig {
	return ShellConfig{
		Name:           name,
		ShellSize:      size,
		SecondColor:    NoColor,
		GlitterColor:   NoColor,
		PistilColor:    NoColor,
		StrobeColor:    NoColor,
		SecondaryColor: NoColor,
	}
}

const (
	defaultStarLifeVariation = 0.125
	minStarCount             = 6
	starCountSpreadUnit      = 54
)

// withDefaults fills derived fields the same way for every shell.
func (c ShellConfig) withDefaults(env *Env) ShellConfig {
	if c.StarLifeVariation == 0 {
		c.StarLifeVariation = defaultStarLifeVariation
	}
	if c.Color.Kind == ColorUnset && len(c.Color.Colors) == 0 {
		c.Color = SingleColor(env.RandomColor(ColorOptions{}))
	}
	if c.GlitterColor == NoColor {
		if s, ok := c.Color.Single(); ok {
			c.GlitterColor = s
		} else {
			c.GlitterColor = White
		}
	}
	if c.Pistil && c.PistilColor == NoColor {
		first := White
		if len(c.Color.Colors) > 0 {
			first = c.Color.Colors[0]
		}
		c.PistilColor = env.PistilColor(first)
	}
	if c.StarCount == 0 {
		density := c.StarDensity
		if density == 0 {
			density = 1
		}
		scaled := c.SpreadSize / starCountSpreadUnit
		c.StarCount = math.Max(minStarCount, scaled*scaled*density)
	}
	return c
}

// deathEffect resolves the star-death behavior of burst stars. At most one
// applies, in the precedence order below.
func (c ShellConfig) deathEffect(heart DeathEffect) DeathEffect {
	switch {
	case c.FallingLeaves:
		return DeathFallingLeaves
	case c.Floral:
		return DeathFloral
	case c.Heart:
		return heart
	case c.Crackle:
		return DeathCrackle
	case c.Crossette:
		return DeathCrossette
	case c.TimeDelay:
		return DeathTimeDelay
	case c.Pattern == PatternWhirlpool:
		return DeathWhirlpool
	case c.Pattern == PatternLightning:
		return DeathLightning
	case c.Pattern == PatternGalaxy:
		return DeathGalaxy
	case c.Pattern == PatternSnowflake:
		return DeathSnowflake
	case c.Waterfall:
		return DeathWaterfall
	case c.Pattern == PatternSpiral:
		return DeathSpiral
	case c.ExplosionRing:
		return DeathExplosionRing
	}
	return DeathNone
}
