package fireworks

import (
	"errors"
	"testing"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "capture", "label": "initial"},
			{"action": "launch", "shell": "Ring", "size": 2, "x": 0.5, "y": 0.6},
			{"action": "wait", "frames": 3},
			{"action": "capture", "label": "after-launch"}
		]
	}`)

	runner, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "capture" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	st := runner.steps[1]
	if st.Action != "launch" || st.Shell != "Ring" || st.Size == nil || *st.Size != 2 || st.X != 0.5 {
		t.Errorf("step 1 mismatch: %+v", st)
	}
	if runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadScript_Invalid(t *testing.T) {
	if _, err := LoadScript([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadScript_Empty(t *testing.T) {
	if _, err := LoadScript([]byte(`{"steps": []}`)); err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadScript_UnknownAction(t *testing.T) {
	if _, err := LoadScript([]byte(`{"steps": [{"action": "click"}]}`)); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestLoadScript_UnknownShell(t *testing.T) {
	_, err := LoadScript([]byte(`{"steps": [{"action": "launch", "shell": "Crysanthemum"}]}`))
	if !errors.Is(err, ErrUnknownShell) {
		t.Errorf("err = %v, want ErrUnknownShell", err)
	}
}

func TestRunnerStep_Launch(t *testing.T) {
	sim := newTestSim(4)
	runner, err := LoadScript([]byte(`{"steps": [{"action": "launch", "shell": "Ring", "x": 0.5, "y": 0.5}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := runner.Step(sim); err != nil {
		t.Fatal(err)
	}
	if sim.Stars().Len() != 1 {
		t.Errorf("expected 1 comet, got %d stars", sim.Stars().Len())
	}
	if !runner.Done() {
		t.Error("runner should be done after its only step")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	sim := newTestSim(4)
	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "pause"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := runner.Step(sim); err != nil {
			t.Fatal(err)
		}
		if sim.Paused() {
			t.Fatalf("paused after %d steps, wait not honored", i+1)
		}
	}
	if err := runner.Step(sim); err != nil {
		t.Fatal(err)
	}
	if !sim.Paused() || !runner.Done() {
		t.Errorf("paused=%v done=%v after wait", sim.Paused(), runner.Done())
	}
}

func TestRunnerStep_WaitMs(t *testing.T) {
	runner, err := LoadScript([]byte(`{"steps": [{"action": "wait", "ms": 40}]}`))
	if err != nil {
		t.Fatal(err)
	}
	sim := newTestSim(1)
	steps := 0
	for !runner.Done() {
		if err := runner.Step(sim); err != nil {
			t.Fatal(err)
		}
		steps++
	}
	// 40ms rounds up to three reference frames.
	if steps != 3 {
		t.Errorf("wait 40ms took %d steps, want 3", steps)
	}
}

func TestRunnerStep_SpeedResumeCapture(t *testing.T) {
	sim := newTestSim(4)
	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "pause"},
		{"action": "speed", "speed": 0.25},
		{"action": "resume"},
		{"action": "capture", "label": "slow"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	var labels []string
	runner.SetCapture(func(label string) error {
		labels = append(labels, label)
		return nil
	})
	for !runner.Done() {
		if err := runner.Step(sim); err != nil {
			t.Fatal(err)
		}
	}
	if sim.Paused() {
		t.Error("still paused")
	}
	assertNear(t, "speed", sim.Speed(), 0.25)
	if len(labels) != 1 || labels[0] != "slow" {
		t.Errorf("captured %v", labels)
	}
}

func TestRunnerCaptureErrorStops(t *testing.T) {
	sim := newTestSim(4)
	runner, err := LoadScript([]byte(`{"steps": [{"action": "capture", "label": "x"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	boom := errors.New("disk full")
	runner.SetCapture(func(string) error { return boom })
	if err := runner.Run(sim, nil, 0); !errors.Is(err, boom) {
		t.Errorf("Run err = %v, want wrapped capture error", err)
	}
}

func TestRunnerRunBurstsAndTail(t *testing.T) {
	sim := newTestSim(8)
	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "burst", "shell": "Crossette", "size": 1, "x": 400, "y": 300},
		{"action": "wait", "ms": 100}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	surf := &recordSurface{}
	if err := runner.Run(sim, surf, 600); err != nil {
		t.Fatal(err)
	}
	if surf.frames == 0 || surf.strokes[LayerTrails] == 0 {
		t.Errorf("rendered %d frames, %d trail strokes", surf.frames, surf.strokes[LayerTrails])
	}
	if sim.Stars().Len() != 0 {
		t.Errorf("%d stars left after tail", sim.Stars().Len())
	}
}
