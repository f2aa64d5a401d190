package ecs

import (
	"testing"
	"time"

	"github.com/phanxgames/interact"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []interact.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e interact.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(interact.InteractionEvent{
		Type:     interact.EventGestureBegan,
		Gesture:  interact.GestureDrag,
		EntityID: 42,
		Offset:   interact.Vec2{X: 100, Y: 200},
	})

	store.EmitEvent(interact.InteractionEvent{
		Type:     interact.EventCoastStarted,
		Gesture:  interact.GestureDrag,
		Velocity: interact.Vec2{X: 300},
	})

	// Events are queued until processed.
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Type != interact.EventGestureBegan || e0.EntityID != 42 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.Offset.X != 100 || e0.Offset.Y != 200 {
		t.Errorf("event 0 offset: %+v", e0.Offset)
	}

	e1 := received[1]
	if e1.Type != interact.EventCoastStarted || e1.Velocity.X != 300 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	world := donburi.NewWorld()
	var store interact.EntityStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	InteractionEventType.Subscribe(world, func(w donburi.World, e interact.InteractionEvent) {
		count1++
	})
	InteractionEventType.Subscribe(world, func(w donburi.World, e interact.InteractionEvent) {
		count2++
	})

	store.EmitEvent(interact.InteractionEvent{Type: interact.EventSelected})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiStore_FromStage(t *testing.T) {
	world := donburi.NewWorld()
	stage := interact.NewStage(interact.DefaultConfig())
	stage.SetEntityStore(NewDonburiStore(world))
	box := stage.Add("box", interact.Draggable, interact.Vec2{X: 100, Y: 100}, interact.Vec2{X: 80, Y: 80})

	var got []interact.EventType
	InteractionEventType.Subscribe(world, func(w donburi.World, e interact.InteractionEvent) {
		if e.EntityID == box.ID {
			got = append(got, e.Type)
		}
	})

	stage.InjectDrag(100, 100, 160, 100, 4)
	for stage.PendingInjections() > 0 {
		stage.Update(16 * time.Millisecond)
	}
	InteractionEventType.ProcessEvents(world)

	want := []interact.EventType{interact.EventGestureBegan, interact.EventGestureEnded}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("events = %v, want %v", got, want)
	}
}
