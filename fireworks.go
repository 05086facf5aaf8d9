package fireworks

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the glint color drawn over every visible star.
var ColorWhite = Color{1, 1, 1, 1}

// RGBA8 returns the color as 8-bit channels. Out-of-range components are clamped.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}

func to8(v float64) uint8 {
	return uint8(Clamp(v, 0, 1)*255 + 0.5)
}

// Vec2 is a 2D vector used for positions and offsets. Y grows downward.
type Vec2 struct {
	X, Y float64
}

// ColorID names one of the palette colors, or the Invisible sentinel.
// Every star lives in the bucket of its ColorID.
type ColorID uint8

const (
	Red ColorID = iota
	Green
	Blue
	Purple
	Gold
	White
	Invisible // stars in this bucket are simulated but never drawn

	// NoColor marks an unset optional color field.
	NoColor ColorID = 0xFF
)

const (
	numColors  = 6             // visible palette entries
	numBuckets = numColors + 1 // palette plus the invisible sentinel
)

var paletteHex = [numColors]string{
	Red:    "#ff0043",
	Green:  "#14fc56",
	Blue:   "#1e7fff",
	Purple: "#e60aff",
	Gold:   "#ffbf36",
	White:  "#ffffff",
}

var colorNames = [numBuckets]string{
	Red:       "red",
	Green:     "green",
	Blue:      "blue",
	Purple:    "purple",
	Gold:      "gold",
	White:     "white",
	Invisible: "invisible",
}

// palette holds the parsed palette, indexed by ColorID.
var palette [numColors]colorful.Color

func init() {
	for i, hex := range paletteHex {
		c, err := colorful.Hex(hex)
		if err != nil {
			panic(fmt.Sprintf("fireworks: bad palette entry %q: %v", hex, err))
		}
		palette[i] = c
	}
}

// Palette returns the visible palette colors in bucket order.
func Palette() []ColorID {
	return []ColorID{Red, Green, Blue, Purple, Gold, White}
}

// Visible reports whether c is a drawable palette color.
func (c ColorID) Visible() bool {
	return c < numColors
}

// Valid reports whether c is a palette color or Invisible.
func (c ColorID) Valid() bool {
	return c < numBuckets
}

// Color returns the RGBA value of c. Invisible and NoColor are transparent.
func (c ColorID) Color() Color {
	if !c.Visible() {
		return Color{}
	}
	p := palette[c]
	return Color{p.R, p.G, p.B, 1}
}

func (c ColorID) String() string {
	if c.Valid() {
		return colorNames[c]
	}
	if c == NoColor {
		return "none"
	}
	return fmt.Sprintf("ColorID(%d)", uint8(c))
}

// ParseColorID resolves a color name ("gold") or palette hex ("#ffbf36").
func ParseColorID(s string) (ColorID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range colorNames {
		if s == name {
			return ColorID(i), nil
		}
	}
	for i, hex := range paletteHex {
		if s == hex {
			return ColorID(i), nil
		}
	}
	return NoColor, fmt.Errorf("fireworks: unknown color %q", s)
}

// Quality selects density multipliers and spark counts. The numeric value is
// used directly as a divisor for glitter frequencies.
type Quality uint8

const (
	QualityLow    Quality = 1
	QualityNormal Quality = 2
	QualityHigh   Quality = 3
)

func (q Quality) factor() float64 {
	if q < QualityLow || q > QualityHigh {
		return float64(QualityNormal)
	}
	return float64(q)
}

func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityNormal:
		return "normal"
	case QualityHigh:
		return "high"
	default:
		return fmt.Sprintf("Quality(%d)", uint8(q))
	}
}

// ParseQuality accepts "low", "normal", "high" or the digits 1 to 3.
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "1":
		return QualityLow, nil
	case "normal", "2":
		return QualityNormal, nil
	case "high", "3":
		return QualityHigh, nil
	}
	return 0, fmt.Errorf("fireworks: unknown quality %q", s)
}
