package fireworks

import (
	"encoding/json"
	"fmt"
	"math"
)

// scriptStep is a single action in a launch script.
type scriptStep struct {
	Action string   `json:"action"`
	Label  string   `json:"label,omitempty"`
	Shell  string   `json:"shell,omitempty"`
	Size   *float64 `json:"size,omitempty"`
	X      float64  `json:"x,omitempty"`
	Y      float64  `json:"y,omitempty"`
	Frames int      `json:"frames,omitempty"`
	Ms     float64  `json:"ms,omitempty"`
	Speed  float64  `json:"speed,omitempty"`
}

// script is the top-level JSON structure of a launch script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// Script actions.
const (
	actionLaunch  = "launch"  // launch Shell at position X, height Y
	actionBurst   = "burst"   // burst Shell in place at stage pixels X, Y
	actionWait    = "wait"    // wait Frames frames or Ms milliseconds
	actionPause   = "pause"   //
	actionResume  = "resume"  //
	actionSpeed   = "speed"   // set simulation speed
	actionCapture = "capture" // hand Label to the capture callback
)

// ScriptRunner plays a launch script against a Simulation, one step per
// frame. Steps that launch shells fail the run on unknown shell names.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	capture   func(label string) error
}

// LoadScript parses a JSON launch script. Every step is checked up front so
// a bad script fails before anything is launched.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse launch script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse launch script: no steps")
	}
	for i, st := range sc.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse launch script: step %d: %w", i, err)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

func (st scriptStep) validate() error {
	switch st.Action {
	case actionLaunch, actionBurst:
		if st.Shell == "" {
			return nil
		}
		_, err := LookupShell(st.Shell)
		return err
	case actionWait, actionPause, actionResume, actionSpeed, actionCapture:
		return nil
	}
	return fmt.Errorf("unknown action %q", st.Action)
}

// SetCapture sets the callback run by capture steps.
func (r *ScriptRunner) SetCapture(fn func(label string) error) {
	r.capture = fn
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame. Call it before Simulation.Update.
func (r *ScriptRunner) Step(sim *Simulation) error {
	if r.done {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		if r.waitCount == 0 && r.cursor >= len(r.steps) {
			r.done = true
		}
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	i := r.cursor
	st := r.steps[i]
	r.cursor++

	if err := r.exec(sim, st); err != nil {
		return fmt.Errorf("launch script step %d (%s): %w", i, st.Action, err)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
	return nil
}

func (r *ScriptRunner) exec(sim *Simulation, st scriptStep) error {
	cfg := sim.Config()
	switch st.Action {
	case actionLaunch, actionBurst:
		name := st.Shell
		if name == "" {
			name = cfg.ShellType
		}
		size := cfg.ShellSize
		if st.Size != nil {
			size = *st.Size
		}
		shellCfg, err := NewShellConfig(name, size, sim.Env())
		if err != nil {
			return err
		}
		sh := sim.NewShell(shellCfg)
		if st.Action == actionBurst {
			return sh.Burst(st.X, st.Y)
		}
		return sh.Launch(st.X, st.Y)
	case actionWait:
		frames := st.Frames
		if st.Ms > 0 {
			frames = int(math.Ceil(st.Ms / referenceFrame))
		}
		if frames > 0 {
			r.waitCount = frames - 1 // this frame counts as one
		}
	case actionPause:
		sim.Pause(true)
	case actionResume:
		sim.Pause(false)
	case actionSpeed:
		sim.SetSpeed(st.Speed)
	case actionCapture:
		if r.capture != nil {
			return r.capture(st.Label)
		}
	}
	return nil
}

// Run plays the whole script at 60 frames per second of simulation time,
// rendering every frame to dst when it is not nil. After the last step it
// keeps running for tail frames so the final shells can finish.
func (r *ScriptRunner) Run(sim *Simulation, dst Surface, tail int) error {
	frame := func() error {
		if err := sim.Update(referenceFrame, 1); err != nil {
			return err
		}
		if dst != nil {
			sim.Render(dst)
		}
		return nil
	}
	for !r.done {
		if err := r.Step(sim); err != nil {
			return err
		}
		if err := frame(); err != nil {
			return err
		}
	}
	for i := 0; i < tail; i++ {
		if err := frame(); err != nil {
			return err
		}
	}
	return nil
}
