package fireworks

import (
	"fmt"
	"math"
	"slices"
)

// ShellFactory builds a shell configuration for a requested size.
type ShellFactory func(size float64, env *Env) ShellConfig

// ShellType is a named catalog entry.
type ShellType struct {
	Name string
	New  ShellFactory
}

// Catalog names.
const (
	ShellRandom        = "Random"
	ShellChrysanthemum = "Chrysanthemum"
)

var catalog []ShellType

func init() {
	catalog = []ShellType{
		{ShellRandom, randomShell},
		{"Crackle", crackleShell},
		{"Crossette", crossetteShell},
		{ShellChrysanthemum, chrysanthemumShell},
		{"Falling Leaves", fallingLeavesShell},
		{"Floral", floralShell},
		{"Ghost", ghostShell},
		{"Horse Tail", horsetailShell},
		{"Palm", palmShell},
		{"Ring", ringShell},
		{"Explosion Ring", explosionRingShell},
		{"Spiral", spiralShell},
		{"Waterfall", waterfallShell},
		{"Rainbow", rainbowShell},
		{"Meteor", meteorShell},
		{"Snowflake", snowflakeShell},
		{"Galaxy", galaxyShell},
		{"Lightning", lightningShell},
		{"Whirlpool", whirlpoolShell},
		{"Firefall", firefallShell},
		{"Time Delay", timeDelayShell},
		{"Rainbow Whirl", rainbowWhirlShell},
		{"Strobe", strobeShell},
		{"Willow", willowShell},
		{"Heart", heartShell},
	}
}

// slowShells render too slowly for fast sequences and reduced-cost mode.
var slowShells = []string{"Falling Leaves", "Floral", "Willow"}

// ShellTypes returns the catalog in menu order, Random first.
func ShellTypes() []ShellType {
	return slices.Clone(catalog)
}

// LookupShell returns the factory registered under name.
func LookupShell(name string) (ShellFactory, error) {
	for _, t := range catalog {
		if t.Name == name {
			return t.New, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownShell, name)
}

// NewShellConfig builds the named shell at size.
func NewShellConfig(name string, size float64, env *Env) (ShellConfig, error) {
	f, err := LookupShell(name)
	if err != nil {
		return ShellConfig{}, err
	}
	return f(size, env), nil
}

// RandomShellName picks Chrysanthemum half of the time and any other entry
// uniformly otherwise. Random itself is never returned.
func RandomShellName(env *Env) string {
	if env.chance(0.5) {
		return ShellChrysanthemum
	}
	return catalog[1+randomIndex(env.Rand, len(catalog)-1)].Name
}

// RandomFastShellName is RandomShellName without the slow entries.
func RandomFastShellName(env *Env) string {
	name := RandomShellName(env)
	for slices.Contains(slowShells, name) {
		name = RandomShellName(env)
	}
	return name
}

// FastShell resolves the factory for a fast sequence. A fixed shellType is
// honored as is; Random picks among the fast entries.
func FastShell(shellType string, env *Env) (ShellFactory, error) {
	if shellType != ShellRandom {
		return LookupShell(shellType)
	}
	return LookupShell(RandomFastShellName(env))
}

func randomShell(size float64, env *Env) ShellConfig {
	name := RandomShellName(env)
	if env.Reduced {
		name = RandomFastShellName(env)
	}
	f, _ := LookupShell(name)
	return f(size, env)
}

// ringCount returns the fixed star count used by ring-like shells.
func ringCount(perRadian, size float64) float64 {
	return perRadian * TwoPi * (size + 1)
}

func chrysanthemumShell(size float64, env *Env) ShellConfig {
	c := baseConfig(ShellChrysanthemum, size)
	glitter := env.chance(0.25)
	single := env.chance(0.72)
	var color ColorID
	if single {
		color = env.RandomColor(ColorOptions{LimitWhite: true})
		c.Color = SingleColor(color)
	} else {
		a := env.RandomColor(ColorOptions{})
		b := env.RandomColor(ColorOptions{NotSame: true})
		c.Color = PairColor(a, b)
		color = NoColor
	}
	c.Pistil = single && env.chance(0.42)
	if c.Pistil {
		c.PistilColor = env.PistilColor(color)
	}
	if single && (env.chance(0.2) || color == White) {
		if c.Pistil {
			c.SecondColor = c.PistilColor
		} else {
			c.SecondColor = env.RandomColor(ColorOptions{Exclude: true, Not: color, LimitWhite: true})
		}
	}
	c.Streamers = !c.Pistil && color != White && env.chance(0.42)

	density := 1.25
	if glitter {
		density = 1.1
	}
	if env.low() {
		density *= 0.8
	}
	if env.high() {
		density = 1.2
	}
	c.StarDensity = density
	c.SpreadSize = 300 + size*100
	c.StarLife = 900 + size*200
	if glitter {
		c.Glitter = GlitterLight
	}
	c.GlitterColor = env.WhiteOrGold()
	return c
}

func ghostShell(size float64, env *Env) ShellConfig {
	c := chrysanthemumShell(size, env)
	c.Name = "Ghost"
	c.StarLife *= 1.5
	c.SecondColor = env.RandomColor(ColorOptions{Exclude: true, Not: White})
	c.Streamers = true
	c.Color = SingleColor(Invisible)
	c.Glitter = GlitterNone
	return c
}

func strobeShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Strobe", size)
	color := env.RandomColor(ColorOptions{LimitWhite: true})
	c.Color = SingleColor(color)
	c.SpreadSize = 280 + size*92
	c.StarLife = 1100 + size*200
	c.StarLifeVariation = 0.4
	c.StarDensity = 1.1
	c.Glitter = GlitterLight
	c.GlitterColor = White
	c.Strobe = true
	if env.chance(0.5) {
		c.StrobeColor = White
	}
	c.Pistil = env.chance(0.5)
	c.PistilColor = env.PistilColor(color)
	return c
}

func palmShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Palm", size)
	c.Color = SingleColor(env.RandomColor(ColorOptions{}))
	thick := env.chance(0.5)
	c.SpreadSize = 250 + size*75
	c.StarLife = 1800 + size*200
	if thick {
		c.StarDensity = 0.15
		c.Glitter = GlitterThick
	} else {
		c.StarDensity = 0.4
		c.Glitter = GlitterHeavy
	}
	return c
}

func ringShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Ring", size)
	color := env.RandomColor(ColorOptions{})
	c.Color = SingleColor(color)
	c.Ring = true
	c.Pistil = env.chance(0.75)
	c.SpreadSize = 300 + size*100
	c.StarLife = 900 + size*200
	c.StarCount = ringCount(2.2, size)
	c.PistilColor = env.PistilColor(color)
	if !c.Pistil {
		c.Glitter = GlitterLight
	}
	c.GlitterColor = env.goldOrWhite(color)
	c.Streamers = env.chance(0.3)
	return c
}

func explosionRingShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Explosion Ring", size)
	color := env.RandomColor(ColorOptions{})
	c.Color = SingleColor(color)
	c.SecondaryColor = env.RandomColor(ColorOptions{NotSame: true})
	c.Ring = true
	c.ExplosionRing = true
	c.MultiRing = env.chance(0.7)
	c.RingLayers = 1
	if c.MultiRing {
		c.RingLayers = 2 + randomIndex(env.Rand, 2)
	}
	c.SpreadSize = 350 + size*120
	c.StarLife = 800 + size*180
	c.StarCount = ringCount(2.5, size)
	c.StarLifeVariation = 0.3
	c.Glitter = GlitterMedium
	c.GlitterColor = env.goldOrWhite(color)
	c.Pistil = env.chance(0.6)
	c.PistilColor = env.PistilColor(color)
	c.Streamers = env.chance(0.4)
	c.DelayExplosion = env.chance(0.5)
	return c
}

func crossetteShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Crossette", size)
	color := env.RandomColor(ColorOptions{LimitWhite: true})
	c.Color = SingleColor(color)
	c.SpreadSize = 300 + size*100
	c.StarLife = 750 + size*160
	c.StarLifeVariation = 0.4
	c.StarDensity = 0.85
	c.Crossette = true
	c.Pistil = env.chance(0.5)
	c.PistilColor = env.PistilColor(color)
	return c
}

func floralShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Floral", size)
	c.SpreadSize = 300 + size*120
	c.StarDensity = 0.12
	c.StarLife = 500 + size*50
	c.StarLifeVariation = 0.5
	switch {
	case env.chance(0.65):
		c.Color = RandomColor()
	case env.chance(0.15):
		c.Color = SingleColor(env.RandomColor(ColorOptions{}))
	default:
		a := env.RandomColor(ColorOptions{})
		c.Color = PairColor(a, env.RandomColor(ColorOptions{NotSame: true}))
	}
	c.Floral = true
	return c
}

func fallingLeavesShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Falling Leaves", size)
	c.Color = SingleColor(Invisible)
	c.SpreadSize = 300 + size*120
	c.StarDensity = 0.12
	c.StarLife = 500 + size*50
	c.StarLifeVariation = 0.5
	c.Glitter = GlitterMedium
	c.GlitterColor = Gold
	c.FallingLeaves = true
	return c
}

func willowShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Willow", size)
	c.SpreadSize = 300 + size*100
	c.StarDensity = 0.6
	c.StarLife = 3000 + size*300
	c.Glitter = GlitterWillow
	c.GlitterColor = Gold
	c.Color = SingleColor(Invisible)
	return c
}

func crackleShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Crackle", size)
	color := Gold
	if !env.chance(0.75) {
		color = env.RandomColor(ColorOptions{})
	}
	c.Color = SingleColor(color)
	c.SpreadSize = 380 + size*75
	c.StarDensity = 1
	if env.low() {
		c.StarDensity = 0.65
	}
	c.StarLife = 600 + size*100
	c.StarLifeVariation = 0.32
	c.Glitter = GlitterLight
	c.GlitterColor = Gold
	c.Crackle = true
	c.Pistil = env.chance(0.65)
	c.PistilColor = env.PistilColor(color)
	return c
}

func horsetailShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Horse Tail", size)
	color := env.RandomColor(ColorOptions{})
	c.Color = SingleColor(color)
	c.Horsetail = true
	c.SpreadSize = 250 + size*38
	c.StarDensity = 0.9
	c.StarLife = 2500 + size*300
	c.Glitter = GlitterMedium
	if env.chance(0.5) {
		c.GlitterColor = env.WhiteOrGold()
	} else {
		c.GlitterColor = color
	}
	c.Strobe = color == White
	return c
}

// heartShell ignores the requested size beyond the config record: hearts
// read poorly when large.
func heartShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Heart", size)
	limited := 0.3 + env.Rand.Float64()*0.2
	color := env.RandomColor(ColorOptions{LimitWhite: true})
	c.Color = SingleColor(color)
	c.SpreadSize = 300 + limited*100
	c.StarLife = 1000 + limited*200
	c.StarDensity = 1.2
	c.Heart = true
	c.Glitter = GlitterLight
	c.GlitterColor = env.WhiteOrGold()
	c.Pistil = env.chance(0.3)
	c.PistilColor = env.PistilColor(color)
	return c
}

func spiralShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Spiral", size)
	color := env.RandomColor(ColorOptions{})
	c.Color = SingleColor(color)
	c.Pattern = PatternSpiral
	c.SpreadSize = 320 + size*110
	c.StarLife = 850 + size*190
	c.StarCount = ringCount(3.0, size)
	c.StarLifeVariation = 0.4
	c.Glitter = GlitterMedium
	c.GlitterColor = env.goldOrWhite(color)
	c.Pistil = env.chance(0.5)
	c.PistilColor = env.PistilColor(color)
	return c
}

func waterfallShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Waterfall", size)
	color := env.RandomColor(ColorOptions{})
	c.Color = SingleColor(color)
	c.Waterfall = true
	c.SpreadSize = 280 + size*90
	c.StarLife = 1200 + size*250
	c.StarDensity = 0.8
	c.StarLifeVariation = 0.6
	c.Glitter = GlitterWillow
	c.GlitterColor = color
	c.Streamers = true
	return c
}

// rainbowColors stands in for a full spectrum with the palette at hand.
var rainbowColors = []ColorID{Red, Gold, Green, Blue, Purple}

func rainbowShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Rainbow", size)
	c.Color = PaletteColor(rainbowColors...)
	c.SpreadSize = 340 + size*120
	c.StarLife = 900 + size*200
	c.StarCount = ringCount(2.8, size)
	c.Glitter = GlitterLight
	c.GlitterColor = White
	return c
}

func meteorShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Meteor", size)
	color := env.RandomColor(ColorOptions{})
	c.Color = SingleColor(color)
	c.SpreadSize = 260 + size*80
	c.StarLife = 1500 + size*300
	c.StarDensity = 0.6
	c.StarLifeVariation = 0.8
	c.Glitter = GlitterHeavy
	c.GlitterColor = color
	return c
}

func snowflakeShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Snowflake", size)
	c.Color = SingleColor(White)
	c.Pattern = PatternSnowflake
	c.SpreadSize = 300 + size*100
	c.StarLife = 1100 + size*220
	c.StarCount = ringCount(2.4, size)
	c.Glitter = GlitterLight
	c.GlitterColor = White
	return c
}

func galaxyShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Galaxy", size)
	c.Color = PaletteColor(Blue, Purple, White)
	c.Pattern = PatternGalaxy
	c.SpreadSize = 400 + size*150
	c.StarLife = 1300 + size*280
	c.StarDensity = 0.7
	c.StarLifeVariation = 0.9
	c.Glitter = GlitterMedium
	c.GlitterColor = White
	return c
}

func lightningShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Lightning", size)
	c.Color = SingleColor(White)
	c.Pattern = PatternLightning
	c.SpreadSize = 280 + size*90
	c.StarLife = 700 + size*150
	c.StarCount = ringCount(1.8, size)
	c.Glitter = GlitterLight
	c.GlitterColor = White
	return c
}

func whirlpoolShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Whirlpool", size)
	color := env.RandomColor(ColorOptions{})
	c.Color = SingleColor(color)
	c.Pattern = PatternWhirlpool
	c.SpreadSize = 350 + size*120
	c.StarLife = 950 + size*200
	c.StarCount = ringCount(2.6, size)
	c.Glitter = GlitterHeavy
	c.GlitterColor = color
	return c
}

func firefallShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Firefall", size)
	color := env.RandomColor(ColorOptions{})
	c.Color = SingleColor(color)
	c.SpreadSize = 320 + size*110
	c.StarLife = 1800 + size*350
	c.StarDensity = 0.5
	c.StarLifeVariation = 1.2
	c.Glitter = GlitterWillow
	c.GlitterColor = color
	return c
}

func timeDelayShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Time Delay", size)
	color := env.RandomColor(ColorOptions{})
	c.Color = SingleColor(color)
	c.TimeDelay = true
	c.SpreadSize = 330 + size*115
	c.StarLife = 1000 + size*210
	c.StarCount = ringCount(2.7, size)
	c.Glitter = GlitterMedium
	c.GlitterColor = color
	return c
}

func rainbowWhirlShell(size float64, env *Env) ShellConfig {
	c := baseConfig("Rainbow Whirl", size)
	c.Color = PaletteColor(rainbowColors...)
	c.Pattern = PatternRainbowWhirl
	c.SpreadSize = 380 + size*130
	c.StarLife = 1100 + size*230
	c.StarCount = ringCount(3.2, size)
	c.Glitter = GlitterLight
	c.GlitterColor = White
	return c
}

// pistilConfig is the inner burst layered over the main one. It never sets
// Pistil or Streamers, which bounds the recursion.
func (c ShellConfig) pistilConfig() ShellConfig {
	p := baseConfig(c.Name+" pistil", c.ShellSize)
	p.SpreadSize = c.SpreadSize * 0.5
	p.StarLife = c.StarLife * 0.6
	p.StarLifeVariation = c.StarLifeVariation
	p.StarDensity = 1.4
	p.Color = SingleColor(c.PistilColor)
	p.Glitter = GlitterLight
	p.DisableText = true
	p.GlitterColor = White
	if c.PistilColor == Gold {
		p.GlitterColor = Gold
	}
	return p
}

// streamerConfig is the white streamer burst. Like pistilConfig it never nests.
func (c ShellConfig) streamerConfig() ShellConfig {
	s := baseConfig(c.Name+" streamers", c.ShellSize)
	s.SpreadSize = c.SpreadSize * 0.9
	s.StarLife = c.StarLife * 0.8
	s.StarLifeVariation = c.StarLifeVariation
	s.StarCount = math.Floor(math.Max(minStarCount, c.SpreadSize/45))
	s.Color = SingleColor(White)
	s.DisableText = true
	s.Glitter = GlitterStreamer
	return s
}
