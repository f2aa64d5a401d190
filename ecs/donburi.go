// Package ecs publishes interact's gesture began/ended, coast
// started/stopped and selected/deselected events into a Donburi world.
package ecs

import (
	"github.com/phanxgames/interact"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for interaction events.
// Subscribe to this in your ECS systems to receive gesture, coast and
// selection changes.
var InteractionEventType = events.NewEventType[interact.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) interact.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event interact.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
