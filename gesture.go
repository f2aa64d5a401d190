package interact

import (
	"math"
	"time"
)

// GestureSample is one discrete update of a continuous pointer gesture.
// Translation is measured from where the gesture started.
type GestureSample struct {
	Translation Vec2
	Time        time.Time
	Location    Vec2
	HasLocation bool
}

// GestureState is the state of one gesture: inactive, or active with a
// payload. Payload returns the zero payload while inactive, so callers can
// read translations and velocities without checking Active first.
type GestureState[P any] struct {
	active  bool
	payload P
}

// Active reports whether the gesture is in progress.
func (s *GestureState[P]) Active() bool { return s.active }

// Payload returns the current payload, or the zero value when inactive.
func (s *GestureState[P]) Payload() P {
	if !s.active {
		var zero P
		return zero
	}
	return s.payload
}

// activate stores p and reports whether this transitioned from inactive.
func (s *GestureState[P]) activate(p P) bool {
	began := !s.active
	s.active = true
	s.payload = p
	return began
}

func (s *GestureState[P]) deactivate() {
	var zero P
	s.active = false
	s.payload = zero
}

// --- Drag / throw ---

// DragPayload is the in-progress state of a body drag.
type DragPayload struct {
	Translation Vec2
	Time        time.Time
	Velocity    Vec2
	Location    Vec2
}

// DragGesture tracks a body drag and the velocity it would be thrown with.
type DragGesture struct {
	VelocityScale float64
	state         GestureState[DragPayload]
}

// Changed applies a sample and reports whether it started the gesture.
func (g *DragGesture) Changed(s GestureSample) bool {
	prev := g.state.Payload()
	v := VelocityFromSamples(prev.Translation, prev.Time, s.Translation, s.Time, g.VelocityScale)
	loc := prev.Location
	if s.HasLocation {
		loc = s.Location
	}
	return g.state.activate(DragPayload{
		Translation: s.Translation,
		Time:        s.Time,
		Velocity:    v,
		Location:    loc,
	})
}

// Ended finishes the gesture. The returned payload carries the final
// translation and the velocity measured by the last Changed sample.
func (g *DragGesture) Ended(s GestureSample) DragPayload {
	p := g.state.Payload()
	p.Translation = s.Translation
	if s.HasLocation {
		p.Location = s.Location
	}
	g.state.deactivate()
	return p
}

// Cancel drops the gesture without committing anything.
func (g *DragGesture) Cancel() { g.state.deactivate() }

// Active reports whether a drag is in progress.
func (g *DragGesture) Active() bool { return g.state.Active() }

// Translation returns the live translation, zero when inactive.
func (g *DragGesture) Translation() Vec2 { return g.state.Payload().Translation }

// Velocity returns the last measured velocity, zero when inactive.
func (g *DragGesture) Velocity() Vec2 { return g.state.Payload().Velocity }

// --- Rotation handle / spin ---

// RotatePayload is the in-progress state of a rotation-handle drag.
type RotatePayload struct {
	Translation     Vec2
	Time            time.Time
	DeltaTheta      float64
	AngularVelocity float64
}

// HandleRotateGesture tracks a drag constrained to the rotation circle.
// Successive deltas are unwrapped against the previous one, so a single
// drag can carry the handle around more than half a turn.
type HandleRotateGesture struct {
	VelocityScale float64
	state         GestureState[RotatePayload]
}

// Changed applies a sample for a handle on a circle of the given radius
// around an element currently at angle, and reports whether it started the
// gesture.
func (g *HandleRotateGesture) Changed(s GestureSample, radius, angle float64) bool {
	prev := g.state.Payload()
	delta := g.delta(s, radius, angle)
	av := AngularVelocityFromSamples(prev.DeltaTheta, prev.Time, delta, s.Time, g.VelocityScale)
	return g.state.activate(RotatePayload{
		Translation:     s.Translation,
		Time:            s.Time,
		DeltaTheta:      delta,
		AngularVelocity: av,
	})
}

// Ended finishes the gesture. DeltaTheta is recomputed from the final
// translation; the angular velocity is the last measured one.
func (g *HandleRotateGesture) Ended(s GestureSample, radius, angle float64) RotatePayload {
	p := g.state.Payload()
	p.DeltaTheta = g.delta(s, radius, angle)
	p.Translation = s.Translation
	g.state.deactivate()
	return p
}

func (g *HandleRotateGesture) delta(s GestureSample, radius, angle float64) float64 {
	d := RadiusConstrainedDeltaTheta(radius, angle, s.Translation)
	if g.state.Active() {
		d = unwrapNear(d, g.state.payload.DeltaTheta)
	}
	return d
}

// Cancel drops the gesture without committing anything.
func (g *HandleRotateGesture) Cancel() { g.state.deactivate() }

// Active reports whether the handle is being dragged.
func (g *HandleRotateGesture) Active() bool { return g.state.Active() }

// DeltaTheta returns the live rotation delta, zero when inactive.
func (g *HandleRotateGesture) DeltaTheta() float64 { return g.state.Payload().DeltaTheta }

// AngularVelocity returns the last measured angular velocity.
func (g *HandleRotateGesture) AngularVelocity() float64 {
	return g.state.Payload().AngularVelocity
}

// --- Magnify ---

// MagnifyGesture tracks a live pinch-scale factor. Inactive reads as 1.
type MagnifyGesture struct {
	MinFactor float64
	state     GestureState[float64]
}

// Changed applies a new factor and reports whether it started the gesture.
func (g *MagnifyGesture) Changed(factor float64) bool {
	return g.state.activate(g.sanitize(factor))
}

// Ended finishes the gesture and returns the factor to commit.
func (g *MagnifyGesture) Ended(factor float64) float64 {
	f := g.sanitize(factor)
	g.state.deactivate()
	return f
}

func (g *MagnifyGesture) sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		if g.state.Active() {
			return g.state.payload
		}
		return 1
	}
	minFactor := g.MinFactor
	if minFactor <= 0 {
		minFactor = minScaleFactor
	}
	if f < minFactor {
		return minFactor
	}
	return f
}

// Active reports whether a pinch is in progress.
func (g *MagnifyGesture) Active() bool { return g.state.Active() }

// Factor returns the live magnification, 1 when inactive.
func (g *MagnifyGesture) Factor() float64 {
	if !g.state.Active() {
		return 1
	}
	return g.state.payload
}

// --- Twist ---

// TwistGesture tracks the live radians of a two-finger rotation.
type TwistGesture struct {
	state GestureState[float64]
}

// Changed applies new radians and reports whether it started the gesture.
func (g *TwistGesture) Changed(radians float64) bool { return g.state.activate(radians) }

// Ended finishes the gesture and returns the radians to commit.
func (g *TwistGesture) Ended(radians float64) float64 {
	g.state.deactivate()
	return radians
}

// Active reports whether a twist is in progress.
func (g *TwistGesture) Active() bool { return g.state.Active() }

// Radians returns the live rotation, zero when inactive.
func (g *TwistGesture) Radians() float64 { return g.state.Payload() }

// --- Resize ---

// ResizeGesture tracks the drag of one corner handle. The translation is
// measured in the element's own (unrotated) frame.
type ResizeGesture struct {
	state GestureState[Vec2]
}

// Changed applies a sample and reports whether it started the gesture.
func (g *ResizeGesture) Changed(s GestureSample) bool { return g.state.activate(s.Translation) }

// Ended finishes the gesture and returns the translation to commit.
func (g *ResizeGesture) Ended(s GestureSample) Vec2 {
	g.state.deactivate()
	return s.Translation
}

// Active reports whether the corner is being dragged.
func (g *ResizeGesture) Active() bool { return g.state.Active() }

// Translation returns the live translation, zero when inactive.
func (g *ResizeGesture) Translation() Vec2 { return g.state.Payload() }
