package interact

import (
	"math"
	"time"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// GeometryQuery reports the laid-out size of an element. When a Controller
// has one, the rotation circle and handle placement follow it instead of the
// committed size.
type GeometryQuery interface {
	BoundingSize() Vec2
}

// GeometryFunc adapts a plain function to GeometryQuery.
type GeometryFunc func() Vec2

// BoundingSize calls f.
func (f GeometryFunc) BoundingSize() Vec2 { return f() }

// Shadow describes the drop shadow the rendering layer should draw.
// Radius is zero when no shadow is wanted.
type Shadow struct {
	Color  Color
	Radius float64
}

// Controller owns the transform state of one interactive element and turns
// gesture samples into offset, angle, and size. Which gestures it reacts to
// is selected by its Capability flags; entry points for disabled gestures
// are no-ops.
//
// A Controller is not safe for concurrent use. Feed samples and call Update
// from the same goroutine that renders.
type Controller struct {
	caps Capability
	cfg  Config
	log  *zap.Logger

	// EntityID is copied into every InteractionEvent this controller emits.
	EntityID uint32
	events   func(InteractionEvent)
	geom     GeometryQuery

	// Committed state.
	offset   Vec2
	angle    float64
	size     Vec2
	selected bool

	drag    DragGesture
	rotate  HandleRotateGesture
	magnify MagnifyGesture
	twist   TwistGesture
	resize  [4]ResizeGesture

	coast *PositionIntegrator
	spin  *AngleIntegrator

	overlay fade
	closed  bool
}

// NewController returns a controller for an element of the given size with
// the default constant-velocity models. An invalid cfg is replaced field by
// field with defaults where the value would break the math.
func NewController(caps Capability, size Vec2, cfg Config) *Controller {
	cfg = sanitizeConfig(cfg)
	c := &Controller{
		caps: caps,
		cfg:  cfg,
		log:  zap.NewNop(),
		size: clampSize(size, cfg.MinSize),
	}
	c.drag.VelocityScale = cfg.VelocityScale
	c.rotate.VelocityScale = cfg.VelocityScale
	c.magnify.MinFactor = cfg.MinMagnification
	c.SetVelocityModel(nil)
	c.SetAngularVelocityModel(nil)
	c.overlay = newFade(0)
	return c
}

func sanitizeConfig(cfg Config) Config {
	def := DefaultConfig()
	if cfg.TickPeriod <= 0 {
		cfg.TickPeriod = def.TickPeriod
	}
	if cfg.MinSize <= 0 {
		cfg.MinSize = def.MinSize
	}
	if cfg.MinMagnification <= 0 {
		cfg.MinMagnification = def.MinMagnification
	}
	if cfg.HandleSize.X <= 0 || cfg.HandleSize.Y <= 0 {
		cfg.HandleSize = def.HandleSize
	}
	return cfg
}

// SetLogger replaces the logger. nil installs a no-op logger.
func (c *Controller) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	c.log = l
}

// SetDebugMode switches between a development logger on stderr and a no-op
// logger.
func (c *Controller) SetDebugMode(enabled bool) {
	if enabled {
		c.log = newDebugLogger()
		return
	}
	c.log = zap.NewNop()
}

// SetEntityStore forwards this controller's events to store. nil disables
// forwarding.
func (c *Controller) SetEntityStore(store EntityStore) {
	if store == nil {
		c.events = nil
		return
	}
	c.events = store.EmitEvent
}

// SetGeometry installs the layout collaborator. nil falls back to the
// committed size.
func (c *Controller) SetGeometry(g GeometryQuery) { c.geom = g }

// SetVelocityModel replaces the coast physics. Any running coast is stopped.
// nil installs the constant-velocity default.
func (c *Controller) SetVelocityModel(m VelocityModel) {
	if c.coast != nil {
		c.coast.Stop()
	}
	c.coast = NewPositionIntegrator(m, &c.offset, c.cfg.TickPeriod)
	c.coast.StopBelow = c.cfg.CoastStopBelow
	c.coast.onStop = func() { c.coastStopped(GestureDrag) }
}

// SetAngularVelocityModel replaces the spin physics. Any running spin is
// stopped. nil installs the constant default.
func (c *Controller) SetAngularVelocityModel(m AngularVelocityModel) {
	if c.spin != nil {
		c.spin.Stop()
	}
	c.spin = NewAngleIntegrator(m, &c.angle, c.cfg.TickPeriod)
	c.spin.StopBelow = c.cfg.SpinStopBelow
	c.spin.onStop = func() { c.coastStopped(GestureRotateHandle) }
}

// Capabilities returns the enabled behaviors.
func (c *Controller) Capabilities() Capability { return c.caps }

// Config returns the configuration in effect.
func (c *Controller) Config() Config { return c.cfg }

// Coast returns the position integrator.
func (c *Controller) Coast() *PositionIntegrator { return c.coast }

// Spin returns the angle integrator.
func (c *Controller) Spin() *AngleIntegrator { return c.spin }

// SetOffset moves the committed offset, stopping any coast.
func (c *Controller) SetOffset(v Vec2) {
	c.coast.Reset()
	c.offset = v
}

// SetAngle sets the committed angle, stopping any spin.
func (c *Controller) SetAngle(a float64) {
	c.spin.Reset()
	c.angle = a
}

// SetSize sets the committed size, clamped to the minimum size.
func (c *Controller) SetSize(v Vec2) { c.size = clampSize(v, c.cfg.MinSize) }

// --- Rendered transform ---

// CurrentOffset returns the committed offset plus the live drag translation
// and the center shift of any live resize preview. The shift grows with the
// live magnification so the anchor corner stays put during a pinch.
func (c *Controller) CurrentOffset() Vec2 {
	o := c.offset.Add(c.drag.Translation())
	left, right, top, bottom := c.previewEdges()
	shift := Vec2{(left + right) / 2, (top + bottom) / 2}.Scale(c.magnify.Factor())
	if !shift.IsZero() {
		o = o.Add(ResizeHandleDelta(shift, c.CurrentAngle()))
	}
	return o
}

// CurrentAngle returns the committed angle plus the live handle delta and
// the live twist.
func (c *Controller) CurrentAngle() float64 {
	return c.angle + c.rotate.DeltaTheta() + c.twist.Radians()
}

// CurrentSize returns the committed size.
func (c *Controller) CurrentSize() Vec2 { return c.size }

// CurrentScale returns the live scale: magnification times the combined
// resize preview. Rendered size is CurrentSize scaled by CurrentScale.
func (c *Controller) CurrentScale() Vec2 {
	m := c.magnify.Factor()
	left, right, top, bottom := c.previewEdges()
	return Vec2{
		X: m * scaleFactor(c.size.X, right-left),
		Y: m * scaleFactor(c.size.Y, bottom-top),
	}
}

// CornerScales returns the per-corner anchored preview scales, in Corners
// order.
func (c *Controller) CornerScales() [4]Vec2 {
	return CornerScaleFactors(c.size, c.resizeTranslations())
}

// Magnification returns the live pinch factor, 1 when no pinch is active.
func (c *Controller) Magnification() float64 { return c.magnify.Factor() }

// Selected reports whether the handle overlay is shown.
func (c *Controller) Selected() bool { return c.selected }

// OverlayAlpha returns the handle overlay opacity, fading toward 1 while
// selected and toward 0 otherwise.
func (c *Controller) OverlayAlpha() float64 { return c.overlay.value }

// Shadow returns the configured shadow while the body is being dragged and
// a zero radius otherwise.
func (c *Controller) Shadow() Shadow {
	if !c.drag.Active() {
		return Shadow{Color: c.cfg.ShadowColor}
	}
	return Shadow{Color: c.cfg.ShadowColor, Radius: c.cfg.ShadowRadius}
}

// Dragging reports whether a body drag is in progress.
func (c *Controller) Dragging() bool { return c.drag.Active() }

// Rotating reports whether the rotation handle is being dragged.
func (c *Controller) Rotating() bool { return c.rotate.Active() }

// Resizing reports whether corner is being dragged.
func (c *Controller) Resizing(corner Corner) bool { return c.resize[corner].Active() }

func (c *Controller) bounds() Vec2 {
	if c.geom != nil {
		if b := c.geom.BoundingSize(); b.X > 0 && b.Y > 0 {
			return b
		}
	}
	return c.size
}

func (c *Controller) resizeTranslations() [4]Vec2 {
	var t [4]Vec2
	for i := range c.resize {
		t[i] = c.resize[i].Translation()
	}
	return t
}

// previewEdges combines the live corner translations into edge
// displacements. Each corner moves the two edges it touches, and both
// extents stay at least MinSize.
func (c *Controller) previewEdges() (left, right, top, bottom float64) {
	t := c.resizeTranslations()
	left = t[TopLeading].X + t[BottomLeading].X
	right = t[TopTrailing].X + t[BottomTrailing].X
	top = t[TopLeading].Y + t[TopTrailing].Y
	bottom = t[BottomLeading].Y + t[BottomTrailing].Y
	left, right = clampEdges(left, right, c.size.X, c.cfg.MinSize)
	top, bottom = clampEdges(top, bottom, c.size.Y, c.cfg.MinSize)
	return left, right, top, bottom
}

// RotationRadius returns the radius of the rotation handle's circle.
func (c *Controller) RotationRadius() float64 {
	return RotationRadius(c.bounds(), c.cfg.RadialOffset)
}

// --- Drag / throw ---

// DragChanged applies a body drag sample. The first sample of a drag stops
// any coast and zeroes the velocity model before it is applied.
func (c *Controller) DragChanged(s GestureSample) {
	if !c.caps.Has(CapDrag) || c.closed {
		return
	}
	s.Translation = c.cfg.YAxis.Normalize(s.Translation)
	if !c.drag.Active() {
		c.coast.Reset()
	}
	if c.drag.Changed(s) {
		c.began(GestureDrag)
	}
}

// DragEnded commits the drag translation and, for throwable elements,
// starts coasting when the release speed exceeds the coast threshold.
func (c *Controller) DragEnded(s GestureSample) {
	if !c.caps.Has(CapDrag) || c.closed || !c.drag.Active() {
		return
	}
	s.Translation = c.cfg.YAxis.Normalize(s.Translation)
	p := c.drag.Ended(s)
	c.offset = c.offset.Add(p.Translation)
	c.ended(GestureDrag, vecField("translation", p.Translation), vecField("velocity", p.Velocity))

	if c.caps.Has(CapThrow) && p.Velocity.Len() > c.cfg.CoastThreshold {
		c.coast.Model().SetVelocity(p.Velocity)
		c.coast.Start()
		c.log.Debug("coast started", zap.Uint32("entity", c.EntityID), vecField("velocity", p.Velocity))
		c.emit(InteractionEvent{Type: EventCoastStarted, Gesture: GestureDrag, Velocity: p.Velocity})
	}
}

// --- Rotation handle / spin ---

// RotateHandleChanged applies a rotation-handle drag sample. The first
// sample stops any spin before it is applied.
func (c *Controller) RotateHandleChanged(s GestureSample) {
	if !c.caps.Has(CapRotate) || c.closed {
		return
	}
	s.Translation = c.cfg.YAxis.Normalize(s.Translation)
	if !c.rotate.Active() {
		c.spin.Reset()
	}
	if c.rotate.Changed(s, c.RotationRadius(), c.angle) {
		c.began(GestureRotateHandle)
	}
}

// RotateHandleEnded commits the rotation and, for spinnable elements, starts
// spinning when the release angular speed exceeds the spin threshold.
func (c *Controller) RotateHandleEnded(s GestureSample) {
	if !c.caps.Has(CapRotate) || c.closed || !c.rotate.Active() {
		return
	}
	s.Translation = c.cfg.YAxis.Normalize(s.Translation)
	p := c.rotate.Ended(s, c.RotationRadius(), c.angle)
	c.angle += p.DeltaTheta
	c.ended(GestureRotateHandle, zap.Float64("delta", p.DeltaTheta), zap.Float64("angular_velocity", p.AngularVelocity))

	if c.caps.Has(CapSpin) && math.Abs(p.AngularVelocity) > c.cfg.SpinThreshold {
		c.spin.Model().SetAngularVelocity(p.AngularVelocity)
		c.spin.Start()
		c.log.Debug("coast started", zap.Uint32("entity", c.EntityID), zap.Float64("angular_velocity", p.AngularVelocity))
		c.emit(InteractionEvent{Type: EventCoastStarted, Gesture: GestureRotateHandle, AngularVelocity: p.AngularVelocity})
	}
}

// --- Magnify ---

// MagnifyChanged applies a live pinch factor.
func (c *Controller) MagnifyChanged(factor float64) {
	if !c.caps.Has(CapMagnify) || c.closed {
		return
	}
	if c.magnify.Changed(factor) {
		c.began(GestureMagnify)
	}
}

// MagnifyEnded multiplies the committed size by factor, clamped to the
// minimum size. The center stays put.
func (c *Controller) MagnifyEnded(factor float64) {
	if !c.caps.Has(CapMagnify) || c.closed || !c.magnify.Active() {
		return
	}
	f := c.magnify.Ended(factor)
	want := c.size.Scale(f)
	c.size = clampSize(want, c.cfg.MinSize)
	debugCheckSize(c.log, "magnify", want, c.size)
	c.ended(GestureMagnify, zap.Float64("factor", f))
}

// --- Twist ---

// TwistChanged applies the live radians of a two-finger rotation. The first
// sample stops any spin.
func (c *Controller) TwistChanged(radians float64) {
	if !c.caps.Has(CapTwist) || c.closed {
		return
	}
	if !c.twist.Active() {
		c.spin.Reset()
	}
	if c.twist.Changed(radians) {
		c.began(GestureTwist)
	}
}

// TwistEnded adds radians to the committed angle.
func (c *Controller) TwistEnded(radians float64) {
	if !c.caps.Has(CapTwist) || c.closed || !c.twist.Active() {
		return
	}
	c.angle += c.twist.Ended(radians)
	c.ended(GestureTwist, zap.Float64("radians", radians))
}

// --- Resize ---

// ResizeChanged applies a corner-handle sample. The translation is in the
// element's own unrotated frame. The first sample on any corner stops a
// coast.
func (c *Controller) ResizeChanged(corner Corner, s GestureSample) {
	if !c.caps.Has(CapResize) || c.closed || corner > BottomTrailing {
		return
	}
	s.Translation = c.cfg.YAxis.Normalize(s.Translation)
	if !c.resize[corner].Active() {
		c.coast.Reset()
	}
	if c.resize[corner].Changed(s) {
		c.began(GestureResize, zap.Stringer("corner", corner))
	}
}

// ResizeEnded commits the corner's own translation. The size grows by the
// translation along the corner's signs and the offset moves by half of it,
// rotated into the parent frame and scaled by any live magnification, so the
// anchor corner keeps its position.
// Other corners still being dragged are unaffected.
func (c *Controller) ResizeEnded(corner Corner, s GestureSample) {
	if !c.caps.Has(CapResize) || c.closed || corner > BottomTrailing || !c.resize[corner].Active() {
		return
	}
	s.Translation = c.cfg.YAxis.Normalize(s.Translation)
	raw := c.resize[corner].Ended(s)
	t := clampCornerTranslation(corner, c.size, raw, c.cfg.MinSize)
	angle := c.CurrentAngle()
	sx, sy := corner.Signs()

	want := Vec2{c.size.X + sx*raw.X, c.size.Y + sy*raw.Y}
	c.size = Vec2{c.size.X + sx*t.X, c.size.Y + sy*t.Y}
	c.offset = c.offset.Add(ResizeHandleDelta(t, angle).Scale(0.5 * c.magnify.Factor()))
	debugCheckSize(c.log, "resize", want, c.size)
	c.ended(GestureResize, zap.Stringer("corner", corner), vecField("size", c.size))
}

// --- Selection ---

// Tap toggles selection and fades the handle overlay accordingly.
func (c *Controller) Tap() {
	if c.closed {
		return
	}
	c.SetSelected(!c.selected)
}

// SetSelected shows or hides the handle overlay.
func (c *Controller) SetSelected(selected bool) {
	if selected == c.selected {
		return
	}
	c.selected = selected
	target := 0.0
	typ := EventDeselected
	if selected {
		target = 1
		typ = EventSelected
	}
	c.overlay.to(target, c.cfg.OverlayFade, ease.InQuad)
	c.log.Debug("selection changed", zap.Uint32("entity", c.EntityID), zap.Bool("selected", selected))
	c.emit(InteractionEvent{Type: typ, Gesture: GestureTap})
}

// --- Lifecycle ---

// Update advances the coast and spin integrators and the overlay fade by dt.
// Call it once per frame.
func (c *Controller) Update(dt time.Duration) {
	if c.closed || dt <= 0 {
		return
	}
	c.coast.Advance(dt)
	c.spin.Advance(dt)
	c.overlay.update(dt)
}

// Close cancels any in-progress gestures and stops both integrators. The
// committed transform is kept; further samples are ignored.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.coast.Stop()
	c.spin.Stop()
	c.drag.Cancel()
	c.rotate.Cancel()
	c.magnify.state.deactivate()
	c.twist.state.deactivate()
	for i := range c.resize {
		c.resize[i].state.deactivate()
	}
	c.closed = true
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool { return c.closed }

func (c *Controller) began(kind GestureKind, fields ...zap.Field) {
	c.log.Debug("gesture began", append([]zap.Field{zap.Uint32("entity", c.EntityID), zap.Stringer("gesture", kind)}, fields...)...)
	c.emit(InteractionEvent{Type: EventGestureBegan, Gesture: kind})
}

func (c *Controller) ended(kind GestureKind, fields ...zap.Field) {
	c.log.Debug("gesture ended", append([]zap.Field{zap.Uint32("entity", c.EntityID), zap.Stringer("gesture", kind)}, fields...)...)
	c.emit(InteractionEvent{Type: EventGestureEnded, Gesture: kind})
}

func (c *Controller) coastStopped(kind GestureKind) {
	c.log.Debug("coast stopped", zap.Uint32("entity", c.EntityID), zap.Stringer("gesture", kind))
	c.emit(InteractionEvent{Type: EventCoastStopped, Gesture: kind})
}

// emit fills in the transform snapshot and forwards e.
func (c *Controller) emit(e InteractionEvent) {
	if c.events == nil {
		return
	}
	e.EntityID = c.EntityID
	e.Offset = c.CurrentOffset()
	e.Angle = c.CurrentAngle()
	e.Size = c.size
	c.events(e)
}

func clampSize(v Vec2, minSize float64) Vec2 {
	if !(v.X >= minSize) {
		v.X = minSize
	}
	if !(v.Y >= minSize) {
		v.Y = minSize
	}
	return v
}
