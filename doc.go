// Package interact makes 2D elements draggable, throwable, rotatable,
// spinnable and resizable for [Ebitengine] games.
//
// The core type is [Controller]. It owns one element's committed offset,
// angle and size, consumes gesture samples, and reports the transform the
// renderer should draw this frame: committed state plus the live preview of
// any gesture in progress plus the contribution of a running coast or spin.
// A Controller never draws and never reads input itself.
//
// # Quick start
//
// [Stage] is the simplest way in. It hosts elements in z-order, reads
// pointers from an [InputSource], hit tests bodies and handles, recognizes
// drags, taps and two-finger pinches, and feeds the matching controller:
//
//	stage := interact.NewStage(interact.DefaultConfig())
//	stage.SetInput(interact.NewEbitenInput())
//	card := stage.Add("card", interact.Throwable, interact.Vec2{X: 200, Y: 150}, interact.Vec2{X: 120, Y: 80})
//
//	func (g *Game) Update() error { g.stage.Update(time.Second / 60); return nil }
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		var op ebiten.DrawImageOptions
//		op.GeoM = card.GeoM() // maps a 1×1 image over the element
//		screen.DrawImage(pixel, &op)
//	}
//
// Hosts with their own input layer drive a Controller directly through its
// gesture entry points ([Controller.DragChanged], [Controller.ResizeEnded],
// [Controller.MagnifyChanged] and so on) and call [Controller.Update] once
// per frame.
//
// # Capabilities
//
// Each controller is built with a [Capability] set. Gestures outside the set
// are ignored. The presets [Draggable], [Throwable], [Rotatable],
// [Spinnable] and [Resizable] cover the common combinations.
//
// # Coasting
//
// Throwable and spinnable elements keep moving after release. The release
// velocity seeds a [PositionIntegrator] or [AngleIntegrator], which asks its
// [VelocityModel] for the next velocity every tick and stops once the speed
// drops below a threshold. Friction, gravity and spring models are provided;
// any type implementing the interface can be installed with
// [Controller.SetVelocityModel].
//
// # Handles
//
// While an element is selected (tap to toggle), [Controller.HandlePositions]
// describes four corner resize handles and a rotation handle. Corners are
// independent: dragging one moves only its two adjacent edges.
//
// # Configuration
//
// [Config] holds every tuning value. [LoadConfig] reads it from YAML.
//
// # Events
//
// Gesture, coast and selection changes are delivered as [InteractionEvent]
// values to handlers registered with [Stage.On] and to an optional
// [EntityStore]. The ecs subpackage publishes them into a Donburi world.
//
// # Testing
//
// [Stage.InjectTap], [Stage.InjectDrag] and [Stage.InjectPinch] queue
// synthetic pointer frames, and [LoadScript] replays a YAML gesture script,
// so interaction can be exercised headless.
//
// [Ebitengine]: https://ebitengine.org
package interact
