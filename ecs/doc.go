// Package ecs feeds fireworks shell events into a [Donburi] world.
//
// [NewDonburiSink] publishes every launch and burst to [ShellEventType].
// Subscribe to it in your systems, or call [RecordBursts] to keep each
// burst as an entity carrying the [Burst] component.
//
// Usage:
//
//	world := donburi.NewWorld()
//	ecs.RecordBursts(world)
//	sim.SetEventSink(ecs.NewDonburiSink(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
