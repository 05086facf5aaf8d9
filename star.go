package fireworks

import "fmt"

// StarID indexes a slot in a StarPool.
type StarID int32

// Star is a primary particle. Positions are in stage pixels, speeds in
// pixels per reference frame and lives in milliseconds.
type Star struct {
	X, Y           float64
	PrevX, PrevY   float64
	SpeedX, SpeedY float64
	Life, FullLife float64
	Size           float64

	Color          ColorID
	SecondColor    ColorID // NoColor for none
	TransitionTime float64 // life below which the transition fires
	colorChanged   bool

	Visible    bool
	Heavy      bool
	Strobe     bool
	StrobeFreq float64

	SpinAngle, SpinSpeed, SpinRadius float64

	SparkFreq          float64
	SparkSpeed         float64
	SparkTimer         float64
	SparkLife          float64
	SparkLifeVariation float64
	SparkColor         ColorID

	Death DeathEffect

	group int32  // burst group for once-per-burst sounds, -1 for none
	shell int32  // shell slot armed by a comet, -1 for none
	frame uint64 // last frame this star was integrated
	live  bool
}

// Star defaults applied by StarPool.Add.
const (
	defaultStarSize          = 3
	defaultSpinSpeed         = 0.8
	defaultSparkSpeed        = 1
	defaultSparkLife         = 750
	defaultSparkLifeVariance = 0.25
)

// StarPool is an arena of Star records. Free slots are kept on a free list
// and reused before the arena grows. Live stars are listed in exactly one
// color bucket, the bucket of their current Color.
type StarPool struct {
	slots   []Star
	free    []StarID
	buckets [numBuckets][]StarID
	live    int
}

// Add acquires a star at (x, y) launched along angle at speed, with an
// extra velocity offset (offX, offY). The spin phase is drawn from r.
func (p *StarPool) Add(x, y float64, color ColorID, angle, speed, life, offX, offY float64, r Rand) StarID {
	if !color.Valid() {
		panic(fmt.Sprintf("fireworks: star color %v is not a bucket", color))
	}
	var id StarID
	if n := len(p.free); n > 0 {
		id = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		p.slots = append(p.slots, Star{})
		id = StarID(len(p.slots) - 1)
	}
	vx, vy := velocity(angle, speed)
	p.slots[id] = Star{
		X: x, Y: y,
		PrevX: x, PrevY: y,
		SpeedX: vx + offX, SpeedY: vy + offY,
		Life: life, FullLife: life,
		Size:               defaultStarSize,
		Color:              color,
		SecondColor:        NoColor,
		Visible:            true,
		SpinAngle:          r.Float64() * TwoPi,
		SpinSpeed:          defaultSpinSpeed,
		SparkSpeed:         defaultSparkSpeed,
		SparkLife:          defaultSparkLife,
		SparkLifeVariation: defaultSparkLifeVariance,
		SparkColor:         color,
		group:              -1,
		shell:              -1,
		live:               true,
	}
	p.buckets[color] = append(p.buckets[color], id)
	p.live++
	return id
}

// Get returns the star in slot id. The pointer is valid until the next Add.
func (p *StarPool) Get(id StarID) *Star {
	return &p.slots[id]
}

// Len returns the number of live stars.
func (p *StarPool) Len() int {
	return p.live
}

// Cap returns the number of slots in the arena, live or free.
func (p *StarPool) Cap() int {
	return len(p.slots)
}

// BucketLen returns the number of live stars colored c.
func (p *StarPool) BucketLen(c ColorID) int {
	if !c.Valid() {
		return 0
	}
	return len(p.buckets[c])
}

// Bucket returns the ids of live stars colored c. The slice is owned by the
// pool and is only valid until the next Update.
func (p *StarPool) Bucket(c ColorID) []StarID {
	if !c.Valid() {
		return nil
	}
	return p.buckets[c]
}

// Each calls fn for every live star, bucket by bucket.
func (p *StarPool) Each(fn func(id StarID, s *Star)) {
	for c := range p.buckets {
		for _, id := range p.buckets[c] {
			fn(id, &p.slots[id])
		}
	}
}

// recycle returns slot id to the free list. The caller has already removed
// it from its bucket.
func (p *StarPool) recycle(id StarID) {
	s := &p.slots[id]
	s.Death = DeathNone
	s.SecondColor = NoColor
	s.TransitionTime = 0
	s.colorChanged = false
	s.group = -1
	s.shell = -1
	s.live = false
	p.free = append(p.free, id)
	p.live--
}

// Reset recycles every live star without running death effects.
func (p *StarPool) Reset() {
	for c := range p.buckets {
		for _, id := range p.buckets[c] {
			p.recycle(id)
		}
		p.buckets[c] = p.buckets[c][:0]
	}
}

// Spark is a short-lived secondary particle with no transitions.
type Spark struct {
	X, Y           float64
	PrevX, PrevY   float64
	SpeedX, SpeedY float64
	Life           float64
}

// SparkPool stores sparks by value in one slice per color. The spare
// capacity of each slice is the free partition; dead sparks are compacted
// away in place so the backing arrays are reused frame after frame.
type SparkPool struct {
	buckets [numBuckets][]Spark
}

// Add acquires a spark colored c.
func (p *SparkPool) Add(x, y float64, c ColorID, angle, speed, life float64) {
	if !c.Valid() {
		return
	}
	vx, vy := velocity(angle, speed)
	p.buckets[c] = append(p.buckets[c], Spark{
		X: x, Y: y, PrevX: x, PrevY: y,
		SpeedX: vx, SpeedY: vy,
		Life: life,
	})
}

// Len returns the number of live sparks.
func (p *SparkPool) Len() int {
	n := 0
	for c := range p.buckets {
		n += len(p.buckets[c])
	}
	return n
}

// Bucket returns the live sparks colored c.
func (p *SparkPool) Bucket(c ColorID) []Spark {
	if !c.Valid() {
		return nil
	}
	return p.buckets[c]
}

// Reset drops every live spark, keeping the storage.
func (p *SparkPool) Reset() {
	for c := range p.buckets {
		p.buckets[c] = p.buckets[c][:0]
	}
}

// update integrates every spark and compacts out the dead ones.
func (p *SparkPool) update(timeStep, speed, drag, gravity float64) {
	for c := range p.buckets {
		sparks := p.buckets[c]
		w := 0
		for i := range sparks {
			sp := sparks[i]
			sp.Life -= timeStep
			if sp.Life <= 0 {
				continue
			}
			sp.PrevX, sp.PrevY = sp.X, sp.Y
			sp.X += sp.SpeedX * speed
			sp.Y += sp.SpeedY * speed
			sp.SpeedX *= drag
			sp.SpeedY *= drag
			sp.SpeedY += gravity
			sparks[w] = sp
			w++
		}
		p.buckets[c] = sparks[:w]
	}
}

// Flash is a one-frame burst illumination marker.
type Flash struct {
	X, Y, Radius float64
}
