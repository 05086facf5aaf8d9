package fireworks

import "testing"

func TestStarPoolAdd(t *testing.T) {
	var p StarPool
	id := p.Add(10, 20, Red, 0, 2, 100, 0.5, -1, fixedRand(0))
	if p.Len() != 1 || p.BucketLen(Red) != 1 {
		t.Fatalf("len=%d red=%d, want 1 and 1", p.Len(), p.BucketLen(Red))
	}
	s := p.Get(id)
	assertNear(t, "speedX", s.SpeedX, 0.5)
	assertNear(t, "speedY", s.SpeedY, 1)
	assertNear(t, "fullLife", s.FullLife, 100)
	assertNear(t, "prevX", s.PrevX, 10)
	if s.SecondColor != NoColor || !s.Visible || s.SparkColor != Red {
		t.Errorf("defaults: second=%v visible=%v spark=%v", s.SecondColor, s.Visible, s.SparkColor)
	}
	if s.group != -1 || s.shell != -1 {
		t.Errorf("group=%d shell=%d, want -1", s.group, s.shell)
	}
}

func TestStarPoolResetKeepsSlots(t *testing.T) {
	var p StarPool
	for _, c := range []ColorID{Red, Blue, Invisible} {
		p.Add(0, 0, c, 0, 0, 10, 0, 0, fixedRand(0))
	}
	p.Reset()
	if p.Len() != 0 || p.Cap() != 3 {
		t.Fatalf("after reset len=%d cap=%d, want 0 and 3", p.Len(), p.Cap())
	}
	for _, c := range []ColorID{Red, Blue, Invisible} {
		if p.BucketLen(c) != 0 {
			t.Errorf("bucket %v not empty", c)
		}
	}
	for i := 0; i < 3; i++ {
		p.Add(0, 0, Gold, 0, 0, 10, 0, 0, fixedRand(0))
	}
	if p.Cap() != 3 {
		t.Errorf("cap = %d after reuse, want 3", p.Cap())
	}
	if p.BucketLen(Gold) != 3 {
		t.Errorf("gold = %d, want 3", p.BucketLen(Gold))
	}
}

func TestStarPoolAddPanicsOnUnsetColor(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for NoColor")
		}
	}()
	var p StarPool
	p.Add(0, 0, NoColor, 0, 0, 10, 0, 0, fixedRand(0))
}

func TestStarPoolBucketOutOfRange(t *testing.T) {
	var p StarPool
	if p.BucketLen(NoColor) != 0 || p.Bucket(NoColor) != nil {
		t.Error("NoColor bucket should be empty")
	}
}

func TestSparkPoolUpdateCompacts(t *testing.T) {
	var p SparkPool
	p.Add(0, 0, Red, 0, 0, 5)
	p.Add(0, 0, Red, HalfPi, 2, 20)
	p.Add(0, 0, Red, 0, 0, 5)
	p.Add(0, 0, NoColor, 0, 0, 5)
	if p.Len() != 3 {
		t.Fatalf("len = %d, want 3", p.Len())
	}

	p.update(10, 1, 0.5, 0.25)
	sparks := p.Bucket(Red)
	if len(sparks) != 1 {
		t.Fatalf("survivors = %d, want 1", len(sparks))
	}
	sp := sparks[0]
	assertNear(t, "life", sp.Life, 10)
	assertNear(t, "x", sp.X, 2)
	assertNear(t, "prevX", sp.PrevX, 0)
	assertNear(t, "speedX", sp.SpeedX, 1)
	assertNear(t, "speedY", sp.SpeedY, 0.25+velocityY(HalfPi, 2)*0.5)
}

func velocityY(angle, speed float64) float64 {
	_, vy := velocity(angle, speed)
	return vy
}

func TestSparkPoolReset(t *testing.T) {
	var p SparkPool
	p.Add(0, 0, Gold, 0, 1, 100)
	p.Reset()
	if p.Len() != 0 {
		t.Errorf("len = %d after reset", p.Len())
	}
}
