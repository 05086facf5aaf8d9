package ecs

import (
	"testing"

	"github.com/phanxgames/fireworks"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiSink(world) == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []fireworks.ShellEvent
	ShellEventType.Subscribe(world, func(w donburi.World, e fireworks.ShellEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(fireworks.ShellEvent{Type: fireworks.EventLaunch, Shell: "Ring", X: 100, Y: 200})
	sink.EmitEvent(fireworks.ShellEvent{Type: fireworks.EventBurst, Shell: "Ring", Stars: 32})

	if len(received) != 0 {
		t.Fatalf("events delivered before processing: %d", len(received))
	}
	ShellEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != fireworks.EventLaunch || e.X != 100 || e.Y != 200 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != fireworks.EventBurst || e.Stars != 32 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	ShellEventType.Subscribe(world, func(w donburi.World, e fireworks.ShellEvent) { count1++ })
	ShellEventType.Subscribe(world, func(w donburi.World, e fireworks.ShellEvent) { count2++ })

	sink.EmitEvent(fireworks.ShellEvent{Type: fireworks.EventBurst})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestRecordBursts(t *testing.T) {
	world := donburi.NewWorld()
	RecordBursts(world)
	sink := NewDonburiSink(world)

	sink.EmitEvent(fireworks.ShellEvent{Type: fireworks.EventLaunch, Shell: "Ring"})
	sink.EmitEvent(fireworks.ShellEvent{Type: fireworks.EventBurst, Shell: "Ring", Stars: 30})
	sink.EmitEvent(fireworks.ShellEvent{Type: fireworks.EventBurst, Shell: "Willow", Stars: 120})
	ShellEventType.ProcessEvents(world)

	bursts := Bursts(world)
	if len(bursts) != 2 {
		t.Fatalf("recorded %d bursts, want 2", len(bursts))
	}
	stars := 0
	for _, b := range bursts {
		stars += b.Stars
	}
	if stars != 150 {
		t.Errorf("total stars = %d, want 150", stars)
	}

	ClearBursts(world)
	if n := len(Bursts(world)); n != 0 {
		t.Errorf("after clear: %d bursts", n)
	}
}

func TestSimulationFeedsWorld(t *testing.T) {
	world := donburi.NewWorld()
	RecordBursts(world)

	cfg := fireworks.DefaultConfig()
	cfg.AutoLaunch = false
	sim := fireworks.NewSimulation(cfg, 1280, 720)
	sim.SetEventSink(NewDonburiSink(world))

	var launches int
	ShellEventType.Subscribe(world, func(w donburi.World, e fireworks.ShellEvent) {
		if e.Type == fireworks.EventLaunch {
			launches++
		}
	})

	if _, err := sim.Launch("Crossette", 2, 0.5, 0.5); err != nil {
		t.Fatalf("launch: %v", err)
	}
	for i := 0; i < 240; i++ {
		if err := sim.Update(1000.0/60, 1); err != nil {
			t.Fatalf("update: %v", err)
		}
		ShellEventType.ProcessEvents(world)
	}

	if launches != 1 {
		t.Errorf("launches = %d, want 1", launches)
	}
	bursts := Bursts(world)
	if len(bursts) != 1 {
		t.Fatalf("bursts = %d, want 1", len(bursts))
	}
	if b := bursts[0]; b.Shell != "Crossette" || b.Stars == 0 {
		t.Errorf("burst = %+v", b)
	}
}
