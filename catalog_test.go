package fireworks

import (
	"errors"
	"slices"
	"testing"
)

func TestCatalogOrder(t *testing.T) {
	types := ShellTypes()
	if len(types) != 25 {
		t.Fatalf("catalog has %d entries, want 25", len(types))
	}
	if types[0].Name != ShellRandom {
		t.Errorf("first entry %q, want Random", types[0].Name)
	}
	seen := map[string]bool{}
	for _, st := range types {
		if seen[st.Name] {
			t.Errorf("duplicate entry %q", st.Name)
		}
		seen[st.Name] = true
	}
	if !seen[ShellChrysanthemum] {
		t.Error("Chrysanthemum missing")
	}
}

func TestLookupShellUnknown(t *testing.T) {
	_, err := LookupShell("Crysanthemum")
	if !errors.Is(err, ErrUnknownShell) {
		t.Errorf("err = %v, want ErrUnknownShell", err)
	}
}

func TestEveryFactoryProducesValidConfig(t *testing.T) {
	for _, q := range []Quality{QualityLow, QualityNormal, QualityHigh} {
		env := NewEnv(Config{Quality: q}, newTestRand(uint64(q)))
		for _, st := range ShellTypes() {
			for size := 0.0; size <= MaxShellSize; size++ {
				cfg := st.New(size, env).withDefaults(env)
				if err := cfg.validateColors(); err != nil {
					t.Errorf("%s size %v: %v", st.Name, size, err)
				}
				if cfg.SpreadSize <= 0 || cfg.StarLife <= 0 {
					t.Errorf("%s size %v: spread %v life %v", st.Name, size, cfg.SpreadSize, cfg.StarLife)
				}
				if cfg.StarCount < minStarCount {
					t.Errorf("%s size %v: star count %v", st.Name, size, cfg.StarCount)
				}
				if cfg.Pistil && !cfg.PistilColor.Valid() {
					t.Errorf("%s size %v: pistil color unset", st.Name, size)
				}
				if !cfg.GlitterColor.Valid() {
					t.Errorf("%s size %v: glitter color unset", st.Name, size)
				}
			}
		}
	}
}

func TestNestedConfigsDoNotNest(t *testing.T) {
	env := NewEnv(DefaultConfig(), newTestRand(1))
	c := crackleShell(3, env).withDefaults(env)
	c.Pistil, c.Streamers = true, true
	for _, nested := range []ShellConfig{c.pistilConfig(), c.streamerConfig()} {
		if nested.Pistil || nested.Streamers || !nested.DisableText {
			t.Errorf("%s nests further: %+v", nested.Name, nested)
		}
	}
}

func TestRandomShellNames(t *testing.T) {
	env := NewEnv(DefaultConfig(), newTestRand(2))
	chrys := 0
	for i := 0; i < 2000; i++ {
		name := RandomShellName(env)
		if name == ShellRandom {
			t.Fatal("RandomShellName returned Random")
		}
		if name == ShellChrysanthemum {
			chrys++
		}
		if fast := RandomFastShellName(env); slices.Contains(slowShells, fast) {
			t.Fatalf("RandomFastShellName returned slow shell %q", fast)
		}
	}
	if chrys < 900 || chrys > 1200 {
		t.Errorf("Chrysanthemum picked %d of 2000 times", chrys)
	}
}

func TestFastShellHonorsFixedType(t *testing.T) {
	env := NewEnv(DefaultConfig(), newTestRand(3))
	f, err := FastShell("Willow", env)
	if err != nil {
		t.Fatal(err)
	}
	if got := f(1, env).Name; got != "Willow" {
		t.Errorf("fast shell = %q, want Willow", got)
	}
}

func TestEveryShellBurstsAndBurnsOut(t *testing.T) {
	for _, st := range ShellTypes() {
		t.Run(st.Name, func(t *testing.T) {
			sim := newTestSim(99)
			cfg, err := NewShellConfig(st.Name, MaxShellSize, sim.Env())
			if err != nil {
				t.Fatal(err)
			}
			if err := sim.NewShell(cfg).Burst(640, 300); err != nil {
				t.Fatal(err)
			}
			if sim.Stars().Len() == 0 {
				t.Fatal("burst added no stars")
			}
			for i := 0; i < 800; i++ {
				if err := sim.Update(16.67, 1); err != nil {
					t.Fatal(err)
				}
				checkBuckets(t, sim)
			}
			if sim.Stars().Len() != 0 || sim.Pending() != 0 {
				t.Errorf("after 13s: %d stars, %d pending events", sim.Stars().Len(), sim.Pending())
			}
		})
	}
}

func TestGlitterProfiles(t *testing.T) {
	p := GlitterThick.Profile(QualityHigh)
	assertNear(t, "thick high speed", p.Speed, 1.65)
	assertNear(t, "thick high freq", p.Freq, 16.0/3)
	none := GlitterNone.Profile(QualityNormal)
	if none.Freq != 0 {
		t.Errorf("no glitter freq = %v", none.Freq)
	}
	assertNear(t, "no glitter variation", none.LifeVariation, 0.25)
}
