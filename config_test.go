package fireworks

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Quality != QualityNormal || cfg.ShellType != ShellRandom || cfg.ShellSize != 3 {
		t.Errorf("defaults = %+v", cfg)
	}
	if !cfg.AutoLaunch || !cfg.Finale || !cfg.WordShell || !cfg.Sound {
		t.Errorf("toggles = %+v", cfg)
	}
	if len(cfg.Words) == 0 {
		t.Error("no default words")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("FIREWORKS_QUALITY", "high")
	t.Setenv("FIREWORKS_REDUCED", "true")
	t.Setenv("FIREWORKS_SHELL", "Palm")
	t.Setenv("FIREWORKS_SIZE", "1.5")
	t.Setenv("FIREWORKS_SKY", "1")
	t.Setenv("FIREWORKS_SCALE", "2")
	t.Setenv("FIREWORKS_FINALE", "false")
	t.Setenv("FIREWORKS_LONG_EXPOSURE", "1")
	t.Setenv("FIREWORKS_WORDS", "HELLO, WORLD,,  ")

	cfg := ConfigFromEnv()
	if cfg.Quality != QualityHigh || !cfg.Reduced || cfg.ShellType != "Palm" {
		t.Errorf("cfg = %+v", cfg)
	}
	assertNear(t, "size", cfg.ShellSize, 1.5)
	assertNear(t, "scale", cfg.ScaleFactor, 2)
	if cfg.SkyLighting != SkyDim || cfg.Finale || !cfg.LongExposure {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Words) != 2 || cfg.Words[0] != "HELLO" || cfg.Words[1] != "WORLD" {
		t.Errorf("words = %q", cfg.Words)
	}
}

func TestConfigFromEnvIgnoresBadValues(t *testing.T) {
	t.Setenv("FIREWORKS_QUALITY", "ultra")
	t.Setenv("FIREWORKS_SHELL", "Crysanthemum")
	t.Setenv("FIREWORKS_SIZE", "9")
	t.Setenv("FIREWORKS_SKY", "7")
	t.Setenv("FIREWORKS_SOUND", "maybe")

	cfg := ConfigFromEnv()
	def := DefaultConfig()
	if cfg.Quality != def.Quality || cfg.ShellType != def.ShellType ||
		cfg.ShellSize != def.ShellSize || cfg.SkyLighting != def.SkyLighting || cfg.Sound != def.Sound {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestParseQuality(t *testing.T) {
	for in, want := range map[string]Quality{"low": QualityLow, "2": QualityNormal, " HIGH ": QualityHigh} {
		got, err := ParseQuality(in)
		if err != nil || got != want {
			t.Errorf("ParseQuality(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseQuality("4"); err == nil {
		t.Error("expected error")
	}
}

func TestParseColorID(t *testing.T) {
	for in, want := range map[string]ColorID{"gold": Gold, "#1E7FFF": Blue, "invisible": Invisible} {
		got, err := ParseColorID(in)
		if err != nil || got != want {
			t.Errorf("ParseColorID(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseColorID("orange"); err == nil {
		t.Error("expected error for orange")
	}
}

func TestPaletteColors(t *testing.T) {
	r, g, b, a := Gold.Color().RGBA8()
	if r != 0xff || g != 0xbf || b != 0x36 || a != 0xff {
		t.Errorf("gold = %02x%02x%02x%02x", r, g, b, a)
	}
	if Invisible.Color().A != 0 || NoColor.Color().A != 0 {
		t.Error("invisible colors must be transparent")
	}
}
