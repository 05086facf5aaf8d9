package fireworks

import (
	"fmt"
	"os"
	"time"
)

// debugLogInterval is the number of frames between debug stat lines.
const debugLogInterval = 60

// observe completes the frame's stats, hands them to the observer and
// starts counting the next frame.
func (sim *Simulation) observe(d time.Duration) {
	st := &sim.stats
	st.Frame = sim.frame
	st.Duration = d
	st.SimTime = sim.clock
	st.Speed = sim.speed
	st.Stars = sim.stars.Len()
	st.Sparks = sim.sparks.Len()
	st.Pending = sim.sched.pending()
	st.SoundsPlayed = sim.sound.played
	st.SoundsDropped = sim.sound.dropped
	st.SkyColor = sim.sky.color()
	sim.sound.played, sim.sound.dropped = 0, 0

	if sim.observer != nil {
		sim.observer.ObserveFrame(*st)
	}
	if sim.debug && sim.frame%debugLogInterval == 0 {
		sim.debugLog(*st)
	}
	*st = FrameStats{}
}

// Stats returns the counters accumulated since the last integrated frame.
func (sim *Simulation) Stats() FrameStats {
	st := sim.stats
	st.Frame = sim.frame
	st.Stars = sim.stars.Len()
	st.Sparks = sim.sparks.Len()
	st.Pending = sim.sched.pending()
	return st
}

// debugLog prints frame stats to stderr.
func (sim *Simulation) debugLog(st FrameStats) {
	_, _ = fmt.Fprintf(os.Stderr,
		"[fireworks] frame: %d | update: %v | stars: %d (cap %d) | sparks: %d | pending: %d\n",
		st.Frame, st.Duration, st.Stars, sim.stars.Cap(), st.Sparks, st.Pending)
	_, _ = fmt.Fprintf(os.Stderr,
		"[fireworks] launches: %d | bursts: %d | sounds: %d played, %d dropped | speed: %.2f\n",
		st.Launches, st.Bursts, st.SoundsPlayed, st.SoundsDropped, st.Speed)
}

// debugf prints a warning to stderr when debug mode is on.
func (sim *Simulation) debugf(format string, args ...any) {
	if !sim.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[fireworks] warning: "+format+"\n", args...)
}
