package fireworks

import "math"

const (
	TwoPi  = math.Pi * 2
	HalfPi = math.Pi / 2
)

// Rand is the uniform [0, 1) source shared by the whole simulation.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

// PointDistance returns the distance between two points.
func PointDistance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// PointAngle returns the launch angle pointing from (x1, y1) to (x2, y2), in
// the convention used by star velocities (0 points down the screen).
func PointAngle(x1, y1, x2, y2 float64) float64 {
	return HalfPi + math.Atan2(y2-y1, x2-x1)
}

// RandomInRange returns a uniform value in [lo, hi).
func RandomInRange(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// randomIndex returns a uniform index in [0, n).
func randomIndex(r Rand, n int) int {
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// velocity splits a launch angle and speed into star velocity components.
func velocity(angle, speed float64) (vx, vy float64) {
	return math.Sin(angle) * speed, math.Cos(angle) * speed
}
