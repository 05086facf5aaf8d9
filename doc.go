// Package fireworks is a 2D fireworks show simulation.
//
// A [Simulation] owns every particle of a show: comets rising from the
// ground, the stars they burst into and the sparks stars shed. It advances
// one frame per [Simulation.Update] and describes each frame to a
// [Surface] through [Simulation.Render]. Windowed, headless and terminal
// surfaces live in the ebitenrender, ggrender and termrender packages.
//
// # Quick start
//
//	sim := fireworks.NewSimulation(fireworks.DefaultConfig(), 1280, 720)
//	sim.Launch(fireworks.ShellChrysanthemum, 3, 0.5, 0.5)
//	for !done {
//		if err := sim.Update(16.67, 1); err != nil {
//			log.Fatal(err)
//		}
//		sim.Render(surface)
//	}
//
// With [Config.AutoLaunch] set the simulation runs its own launch
// sequences; otherwise shells are launched with [Simulation.Launch] or
// built from a [ShellConfig] with [Simulation.NewShell].
//
// # Shells
//
// The catalog ([ShellTypes]) holds one factory per shell type. A factory
// turns a size from 0 to [MaxShellSize] into a [ShellConfig]. A shell is
// used once: [Shell.Launch] fires its comet, which bursts the shell when it
// burns out. [Shell.Burst] can also be called directly.
//
// # Particles
//
// Stars live in a [StarPool] arena. Each live star is listed in exactly one
// color bucket so a surface can draw a whole color in one stroke. Sparks
// are plain values in per-color slices. When a star dies its
// [DeathEffect] produces [SpawnRequest] values that the simulation applies
// after the frame's star pass, or later on the simulation clock when they
// carry a delay.
//
// # Collaborators
//
// Sounds go to an [Audio] (see the audio package), launch and burst
// notifications to an [EventSink] and per-frame statistics to an
// [Observer] (see the metrics package). All randomness comes from one
// [Rand]; a seeded *rand.Rand makes a show repeatable.
//
// # Scripts
//
// [LoadScript] parses a JSON launch script for headless runs and tests:
//
//	{"steps": [
//		{"action": "launch", "shell": "Ring", "x": 0.5, "y": 0.6},
//		{"action": "wait", "ms": 2500},
//		{"action": "capture", "label": "ring"}
//	]}
package fireworks
