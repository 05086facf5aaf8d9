package fireworks

import "math"

// BurstPoint is one sample of the burst geometry: a launch angle and the
// radial scale of the latitude ring it came from (1 at the equator, toward 0
// at the pole).
type BurstPoint struct {
	Angle    float64
	RingSize float64
}

// maxJitter bounds the per-point jitter as a fraction of the angular step.
const maxJitter = 0.33

// AppendBurst appends samples covering a hemisphere with approximately
// uniform density. The hemisphere is a stack of latitude rings derived from
// count; each ring receives points in proportion to its circumference, and
// only the window [start, start+arc) is populated. The total number of
// appended points is round(count * arc / 2π).
func AppendBurst(dst []BurstPoint, r Rand, count, start, arc float64) []BurstPoint {
	if count <= 0 || arc <= 0 {
		return dst
	}
	if arc > TwoPi {
		arc = TwoPi
	}
	radius := 0.5 * math.Sqrt(count/math.Pi)
	halfCirc := math.Pi * radius
	rings := int(halfCirc) + 1

	// Ring weights follow the ring circumference. The ring at elevation 0
	// always exists even for tiny bursts.
	var weights [64]float64
	w := weights[:0]
	if rings > len(weights) {
		w = make([]float64, 0, rings)
	}
	var total float64
	for i := 0; i < rings; i++ {
		var elevation float64
		if halfCirc > 0 {
			elevation = float64(i) / halfCirc * HalfPi
		}
		size := math.Cos(elevation)
		w = append(w, size)
		total += size
	}

	target := count * arc / TwoPi
	var acc float64
	emitted := 0
	for i, size := range w {
		acc += target * size / total
		n := int(math.Round(acc)) - emitted
		if n <= 0 {
			continue
		}
		emitted += n
		step := arc / float64(n)
		phase := r.Float64() * step * (1 - maxJitter)
		for j := 0; j < n; j++ {
			angle := start + float64(j)*step + phase + r.Float64()*step*maxJitter
			dst = append(dst, BurstPoint{Angle: angle, RingSize: w[i]})
		}
	}
	return dst
}

// AppendArc appends count angles spread evenly across [start, start+arc),
// each nudged forward by up to randomness steps.
func AppendArc(dst []float64, r Rand, start, arc float64, count int, randomness float64) []float64 {
	if count <= 0 {
		return dst
	}
	delta := arc / float64(count)
	for i := 0; i < count; i++ {
		dst = append(dst, start+float64(i)*delta+r.Float64()*delta*randomness)
	}
	return dst
}

// HeartPoint evaluates the parametric heart curve at t.
func HeartPoint(t float64) (x, y float64) {
	s := math.Sin(t)
	x = 16 * s * s * s
	y = 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
	return x, y
}

// AppendHeart appends count samples along the heart curve. Each curve point
// becomes a launch angle and a speed proportional to its distance from the
// origin, times scale. The curve is rotated so the heart stands upright in
// star velocity space.
func AppendHeart(dst []BurstPoint, count int, scale float64) []BurstPoint {
	for i := 0; i < count; i++ {
		t := float64(i) / float64(count) * TwoPi
		x, y := HeartPoint(t)
		rx, ry := -y, x
		dst = append(dst, BurstPoint{
			Angle:    math.Atan2(ry, rx),
			RingSize: math.Hypot(rx, ry) * scale,
		})
	}
	return dst
}
