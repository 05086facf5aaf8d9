package fireworks

import "time"

// EventType identifies a shell notification.
type EventType uint8

const (
	EventLaunch EventType = iota // a comet left the ground
	EventBurst                   // a shell exploded
)

func (t EventType) String() string {
	switch t {
	case EventLaunch:
		return "launch"
	case EventBurst:
		return "burst"
	}
	return "unknown"
}

// ShellEvent describes a launch or burst.
type ShellEvent struct {
	Type  EventType
	Shell string
	X, Y  float64
	// Stars is the number of burst stars added, zero for launches.
	Stars int
	Frame uint64
	Time  float64 // simulation milliseconds
}

// EventSink receives shell notifications synchronously from Update, Launch
// and Burst. Implementations must not call back into the Simulation.
type EventSink interface {
	EmitEvent(e ShellEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(ShellEvent)

// EmitEvent calls f(e).
func (f EventSinkFunc) EmitEvent(e ShellEvent) { f(e) }

// FrameStats summarizes one integrated frame.
type FrameStats struct {
	Frame    uint64
	Duration time.Duration
	SimTime  float64 // simulation milliseconds
	Speed    float64

	Stars   int
	Sparks  int
	Pending int // scheduled events

	// Counts since the previous frame.
	Launches      int
	Bursts        int
	SoundsPlayed  int
	SoundsDropped int

	SkyColor Color
}

// Observer receives FrameStats after every integrated frame.
type Observer interface {
	ObserveFrame(s FrameStats)
}
