// Package ecs bridges interact's lifecycle events into an ECS world.
//
// [NewDonburiStore] publishes every [interact.InteractionEvent] (gesture
// began and ended, coast started and stopped, selection changes) into a
// [Donburi] world as a typed event. Subscribe to [InteractionEventType] in
// your systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	stage.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
