package ecs

import (
	"github.com/phanxgames/fireworks"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// ShellEventType is the Donburi event type for shell launches and bursts.
var ShellEventType = events.NewEventType[fireworks.ShellEvent]()

// Burst holds the burst event an entity was recorded from.
var Burst = donburi.NewComponentType[fireworks.ShellEvent]()

var burstQuery = donburi.NewQuery(filter.Contains(Burst))

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on ShellEventType until ProcessEvents runs.
func NewDonburiSink(world donburi.World) fireworks.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(e fireworks.ShellEvent) {
	ShellEventType.Publish(s.world, e)
}

// RecordBursts subscribes to ShellEventType and creates one entity with the
// Burst component per burst event. Launches are ignored.
func RecordBursts(world donburi.World) {
	ShellEventType.Subscribe(world, recordBurst)
}

func recordBurst(w donburi.World, e fireworks.ShellEvent) {
	if e.Type != fireworks.EventBurst {
		return
	}
	entry := w.Entry(w.Create(Burst))
	*Burst.Get(entry) = e
}

// Bursts returns the recorded bursts, in no particular order.
func Bursts(world donburi.World) []fireworks.ShellEvent {
	out := make([]fireworks.ShellEvent, 0, burstQuery.Count(world))
	burstQuery.Each(world, func(entry *donburi.Entry) {
		out = append(out, *Burst.Get(entry))
	})
	return out
}

// ClearBursts removes every recorded burst entity.
func ClearBursts(world donburi.World) {
	var stale []donburi.Entity
	burstQuery.Each(world, func(entry *donburi.Entry) {
		stale = append(stale, entry.Entity())
	})
	for _, e := range stale {
		world.Remove(e)
	}
}
