package interact

import "math"

// syntheticPointerEvent represents a single injected pointer event in stage
// coordinates.
type syntheticPointerEvent struct {
	pointer  int
	position Vec2
	pressed  bool
}

// InjectPress queues a mouse press at (x, y). Each injected event is
// consumed by its own Update call.
func (s *Stage) InjectPress(x, y float64) {
	s.injectFrame(syntheticPointerEvent{position: Vec2{x, y}, pressed: true})
}

// InjectMove queues a mouse move at (x, y) with the button held down. Use
// this between InjectPress and InjectRelease to simulate a drag.
func (s *Stage) InjectMove(x, y float64) {
	s.injectFrame(syntheticPointerEvent{position: Vec2{x, y}, pressed: true})
}

// InjectRelease queues a mouse release at (x, y).
func (s *Stage) InjectRelease(x, y float64) {
	s.injectFrame(syntheticPointerEvent{position: Vec2{x, y}})
}

// InjectTap is a convenience that queues a press followed by a release
// at the same position. Consumes two frames.
func (s *Stage) InjectTap(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *Stage) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectPinch queues a two-finger gesture on touch pointers 1 and 2 around
// center. The fingers start fromDist apart at fromAngle and end toDist apart
// at toAngle, interpolated linearly. Both fingers move in the same frame.
// The sequence consumes `frames` frames (minimum 3: press, move, release).
func (s *Stage) InjectPinch(center Vec2, fromDist, toDist, fromAngle, toAngle float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	fingers := func(dist, angle float64, pressed bool) []syntheticPointerEvent {
		sin, cos := math.Sincos(angle)
		half := Vec2{cos * dist / 2, sin * dist / 2}
		return []syntheticPointerEvent{
			{pointer: 1, position: center.Sub(half), pressed: pressed},
			{pointer: 2, position: center.Add(half), pressed: pressed},
		}
	}
	s.injectQueue = append(s.injectQueue, fingers(fromDist, fromAngle, true))
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.injectQueue = append(s.injectQueue,
			fingers(fromDist+(toDist-fromDist)*t, fromAngle+(toAngle-fromAngle)*t, true))
	}
	s.injectQueue = append(s.injectQueue, fingers(toDist, toAngle, false))
}

// InjectPointer queues one frame holding the given pointer states, for
// multi-touch sequences the helpers above do not cover.
func (s *Stage) InjectPointer(in ...PointerInput) {
	frame := make([]syntheticPointerEvent, 0, len(in))
	for _, p := range in {
		frame = append(frame, syntheticPointerEvent{pointer: p.ID, position: p.Position, pressed: p.Pressed})
	}
	s.injectQueue = append(s.injectQueue, frame)
}

// PendingInjections returns the number of queued frames.
func (s *Stage) PendingInjections() int { return len(s.injectQueue) }

func (s *Stage) injectFrame(evt syntheticPointerEvent) {
	s.injectQueue = append(s.injectQueue, []syntheticPointerEvent{evt})
}

// processInjectedInput pops one frame from the inject queue and feeds it
// through processPointer. Returns true if a frame was consumed (polled input
// should be skipped).
func (s *Stage) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	frame := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue[len(s.injectQueue)-1] = nil
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	for _, evt := range frame {
		s.HandlePointer(PointerInput{ID: evt.pointer, Position: evt.position, Pressed: evt.pressed})
	}
	return true
}
