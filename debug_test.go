package fireworks

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

// captureStderr runs fn with os.Stderr redirected and returns what it wrote.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w
	fn()
	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestDebugMode_FrameStatsLogged(t *testing.T) {
	sim := newTestSim(1)
	sim.SetDebugMode(true)
	if _, err := sim.Launch("Ring", 1, 0.5, 0.5); err != nil {
		t.Fatal(err)
	}
	output := captureStderr(t, func() {
		for i := 0; i < debugLogInterval; i++ {
			if err := sim.Update(referenceFrame, 1); err != nil {
				t.Fatal(err)
			}
		}
	})
	if !strings.Contains(output, "[fireworks] frame: 60") {
		t.Errorf("expected frame stats in stderr, got: %q", output)
	}
	if strings.Count(output, "[fireworks] launches:") != 1 {
		t.Errorf("expected one counter line, got: %q", output)
	}
}

func TestDebugMode_Off(t *testing.T) {
	sim := newTestSim(1)
	output := captureStderr(t, func() {
		for i := 0; i < debugLogInterval; i++ {
			if err := sim.Update(referenceFrame, 1); err != nil {
				t.Fatal(err)
			}
		}
		sim.debugf("should not print")
	})
	if output != "" {
		t.Errorf("unexpected stderr output: %q", output)
	}
}

func TestDebugMode_ImmediateEventWarning(t *testing.T) {
	sim := newTestSim(1)
	sim.SetDebugMode(true)
	output := captureStderr(t, func() {
		sim.after(0, func() error { return errors.New("boom") })
	})
	if !strings.Contains(output, "warning: immediate event: boom") {
		t.Errorf("expected warning in stderr, got: %q", output)
	}
}

func TestStatsBetweenFrames(t *testing.T) {
	sim := newTestSim(1)
	if _, err := sim.Launch("Ring", 1, 0.5, 0.5); err != nil {
		t.Fatal(err)
	}
	st := sim.Stats()
	if st.Launches != 1 || st.Stars != 1 {
		t.Errorf("stats before update = %+v", st)
	}
	if err := sim.Update(referenceFrame, 1); err != nil {
		t.Fatal(err)
	}
	if st := sim.Stats(); st.Launches != 0 {
		t.Errorf("launch counted again after the frame: %+v", st)
	}
}
