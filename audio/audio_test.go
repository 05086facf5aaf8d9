package audio

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/phanxgames/fireworks"
)

// drain streams s to the end and returns the sample count and peak level.
func drain(t *testing.T, s beep.Streamer, limit int) (n int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for {
		m, ok := s.Stream(buf)
		for i := 0; i < m; i++ {
			for _, v := range buf[i] {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("sample %d is %v", n+i, v)
				}
				peak = math.Max(peak, math.Abs(v))
			}
		}
		n += m
		if !ok {
			return n, peak
		}
		if n > limit {
			t.Fatalf("stream still running after %d samples", n)
		}
	}
}

func TestEverySoundStreamsAndEnds(t *testing.T) {
	p := NewPlayer(Options{SampleRate: 8000, Seed: 1})
	for _, s := range fireworks.Sounds() {
		st, err := p.Stream(s, 1)
		if err != nil {
			t.Fatalf("%v: %v", s, err)
		}
		n, peak := drain(t, st, 8000*4)
		if n == 0 || peak == 0 {
			t.Errorf("%v: %d samples, peak %v", s, n, peak)
		}
		if peak > 1.0001 {
			t.Errorf("%v: peak %v clips", s, peak)
		}
	}
}

func TestUnknownSound(t *testing.T) {
	p := NewPlayer(Options{Seed: 1})
	if _, err := p.Stream(fireworks.Sound(99), 1); !errors.Is(err, fireworks.ErrUnknownSound) {
		t.Errorf("err = %v, want ErrUnknownSound", err)
	}
}

func TestZeroScaleIsSilent(t *testing.T) {
	p := NewPlayer(Options{SampleRate: 8000, Seed: 2})
	st, err := p.Stream(fireworks.SoundBurst, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, peak := drain(t, st, 8000*4); peak != 0 {
		t.Errorf("peak = %v at scale 0", peak)
	}
}

func TestQuieterScalePlaysFaster(t *testing.T) {
	// crackle has a fixed playback rate, so length only depends on scale
	p := NewPlayer(Options{SampleRate: 8000, Seed: 3})
	loud, _ := p.Stream(fireworks.SoundCrackle, 1)
	soft, _ := p.Stream(fireworks.SoundCrackle, 0.5)
	nLoud, _ := drain(t, loud, 8000*4)
	nSoft, _ := drain(t, soft, 8000*4)
	want := beep.SampleRate(8000).N(time.Second)
	if d := nLoud - want; d < -2 || d > 2 {
		t.Errorf("scale 1 played %d samples, want about %d", nLoud, want)
	}
	if nSoft >= nLoud {
		t.Errorf("scale .5 played %d samples, scale 1 played %d", nSoft, nLoud)
	}
}

func TestPlayBeforeInitIsDropped(t *testing.T) {
	p := NewPlayer(Options{Seed: 4})
	p.Play(fireworks.SoundLift, 1)
	if p.mixer.Len() != 0 {
		t.Errorf("mixer has %d streamers before Init", p.mixer.Len())
	}
	p.Close()
}
