package fireworks

import (
	"os"
	"strconv"
	"strings"
)

// SkyLighting controls how strongly the star population tints the sky.
type SkyLighting uint8

const (
	SkyNone   SkyLighting = 0
	SkyDim    SkyLighting = 1
	SkyNormal SkyLighting = 2
)

// Config holds the show options read by factories and the frame integrator.
// A Simulation reads it once per frame; change it with SetConfig.
type Config struct {
	Quality Quality
	// Reduced limits fast sequences to quick shells and disables word bursts.
	Reduced bool

	// ShellType is a catalog name or "Random".
	ShellType string
	// ShellSize is the base shell size, 0 (3") to 5 (16").
	ShellSize float64

	SkyLighting SkyLighting
	// ScaleFactor is output pixels per stage unit. The stage shrinks as it
	// grows, so shells look larger.
	ScaleFactor float64

	WordShell    bool
	AutoLaunch   bool
	Finale       bool
	LongExposure bool
	Sound        bool

	// Words is the phrase list for word bursts.
	Words []string
}

// MaxShellSize is the largest selectable shell size.
const MaxShellSize = 5

// DefaultWords is the phrase list used when Config.Words is empty.
var DefaultWords = []string{
	"HAPPY NEW YEAR",
	"CHEERS",
	"GOOD LUCK",
	"JOY",
	"PEACE",
	"LOVE",
	"HOPE",
	"WISHES",
	"2027",
}

// DefaultConfig returns the options of a desktop show.
func DefaultConfig() Config {
	return Config{
		Quality:     QualityNormal,
		ShellType:   ShellRandom,
		ShellSize:   3,
		SkyLighting: SkyNormal,
		ScaleFactor: 1,
		WordShell:   true,
		AutoLaunch:  true,
		Finale:      true,
		Sound:       true,
		Words:       DefaultWords,
	}
}

// ConfigFromEnv returns DefaultConfig with FIREWORKS_* environment overrides.
// Unparseable values are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if q, err := ParseQuality(os.Getenv("FIREWORKS_QUALITY")); err == nil {
		cfg.Quality = q
	}
	cfg.Reduced = getEnvBool("FIREWORKS_REDUCED", cfg.Reduced)
	if v := os.Getenv("FIREWORKS_SHELL"); v != "" {
		if _, err := LookupShell(v); err == nil {
			cfg.ShellType = v
		}
	}
	if s := getEnvFloat("FIREWORKS_SIZE", -1); s >= 0 && s <= MaxShellSize {
		cfg.ShellSize = s
	}
	if sky := getEnvInt("FIREWORKS_SKY", -1); sky >= 0 && sky <= int(SkyNormal) {
		cfg.SkyLighting = SkyLighting(sky)
	}
	if sc := getEnvFloat("FIREWORKS_SCALE", 0); sc > 0 {
		cfg.ScaleFactor = sc
	}
	cfg.WordShell = getEnvBool("FIREWORKS_WORD_SHELL", cfg.WordShell)
	cfg.AutoLaunch = getEnvBool("FIREWORKS_AUTO_LAUNCH", cfg.AutoLaunch)
	cfg.Finale = getEnvBool("FIREWORKS_FINALE", cfg.Finale)
	cfg.LongExposure = getEnvBool("FIREWORKS_LONG_EXPOSURE", cfg.LongExposure)
	cfg.Sound = getEnvBool("FIREWORKS_SOUND", cfg.Sound)
	if v := os.Getenv("FIREWORKS_WORDS"); v != "" {
		var words []string
		for _, w := range strings.Split(v, ",") {
			if w = strings.TrimSpace(w); w != "" {
				words = append(words, w)
			}
		}
		if len(words) > 0 {
			cfg.Words = words
		}
	}

	return cfg
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}
