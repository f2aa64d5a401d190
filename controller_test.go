package interact

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type recordingStore struct {
	events []InteractionEvent
}

func (r *recordingStore) EmitEvent(e InteractionEvent) { r.events = append(r.events, e) }

func (r *recordingStore) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

var t0 = time.Unix(1000, 0)

func at(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

// throw drags c by dx over 100ms and releases it.
func throw(c *Controller, dx float64) {
	c.DragChanged(GestureSample{Time: at(0)})
	c.DragChanged(GestureSample{Translation: Vec2{dx, 0}, Time: at(100)})
	c.DragEnded(GestureSample{Translation: Vec2{dx, 0}, Time: at(100)})
}

func TestDragCommitsTranslation(t *testing.T) {
	c := NewController(Draggable, Vec2{100, 100}, DefaultConfig())
	c.DragChanged(GestureSample{Translation: Vec2{10, 5}, Time: at(0)})
	assertVec(t, "live offset", c.CurrentOffset(), Vec2{10, 5})
	if c.Shadow().Radius != 5 {
		t.Errorf("shadow radius while dragging = %v, want 5", c.Shadow().Radius)
	}
	c.DragEnded(GestureSample{Translation: Vec2{12, 6}, Time: at(16)})
	assertVec(t, "committed offset", c.CurrentOffset(), Vec2{12, 6})
	if c.Shadow().Radius != 0 {
		t.Error("shadow should disappear when the drag ends")
	}
	if c.Coast().Running() {
		t.Error("a draggable element without throw must not coast")
	}
}

func TestThrowScenario(t *testing.T) {
	c := NewController(Throwable, Vec2{100, 100}, DefaultConfig())
	throw(c, 50)

	if !c.Coast().Running() {
		t.Fatal("release with speed above the threshold should start a coast")
	}
	assertNear(t, "release velocity", c.Coast().Model().Velocity().X, -0.5*50/(-0.1))
	assertVec(t, "committed offset", c.CurrentOffset(), Vec2{50, 0})

	prev := c.CurrentOffset().X
	for i := 0; i < 3; i++ {
		c.Coast().Tick()
		x := c.CurrentOffset().X
		if x <= prev {
			t.Fatalf("tick %d: x = %v, want > %v", i, x, prev)
		}
		prev = x
	}
	assertNear(t, "after 3 ticks", prev, 50+250*0.005*3)

	c.Coast().Stop()
	c.Coast().Tick()
	c.Update(time.Second)
	assertNear(t, "after stop", c.CurrentOffset().X, prev)
}

func TestThrowBelowThresholdDoesNotCoast(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CoastThreshold = 300
	c := NewController(Throwable, Vec2{100, 100}, cfg)
	throw(c, 50)
	if c.Coast().Running() {
		t.Error("250/s release must not exceed a 300/s threshold")
	}
}

func TestInterruptCancelsCoast(t *testing.T) {
	store := &recordingStore{}
	c := NewController(Throwable, Vec2{100, 100}, DefaultConfig())
	c.SetEntityStore(store)
	c.Coast().Model().SetVelocity(Vec2{10, 0})
	c.Coast().Start()

	c.DragChanged(GestureSample{Translation: Vec2{1, 1}, Time: at(0)})

	if c.Coast().Running() {
		t.Error("new drag must stop the coast")
	}
	if v := c.Coast().Model().Velocity(); !v.IsZero() {
		t.Errorf("velocity = %v, want zero", v)
	}
	want := []EventType{EventCoastStopped, EventGestureBegan}
	if diff := cmp.Diff(want, store.types()); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestCoastThenUpdateAdvances(t *testing.T) {
	c := NewController(Throwable, Vec2{100, 100}, DefaultConfig())
	throw(c, 50)
	c.Update(50 * time.Millisecond)
	assertNear(t, "x after 10 ticks", c.CurrentOffset().X, 50+250*0.05)
}

func TestResizeScenario(t *testing.T) {
	c := NewController(Resizable, Vec2{100, 100}, DefaultConfig())
	tl := c.CornerPosition(TopLeading)

	c.ResizeChanged(BottomTrailing, GestureSample{Translation: Vec2{10, 10}, Time: at(0)})
	c.ResizeChanged(BottomTrailing, GestureSample{Translation: Vec2{20, 20}, Time: at(16)})
	assertVec(t, "preview scale", c.CurrentScale(), Vec2{1.2, 1.2})
	assertVec(t, "preview anchor", c.CornerPosition(TopLeading), tl)
	assertVec(t, "preview corner scale", c.CornerScales()[BottomTrailing], Vec2{1.2, 1.2})

	c.ResizeEnded(BottomTrailing, GestureSample{Translation: Vec2{20, 20}, Time: at(32)})
	assertVec(t, "size", c.CurrentSize(), Vec2{120, 120})
	assertVec(t, "offset", c.CurrentOffset(), Vec2{10, 10})
	assertVec(t, "scale", c.CurrentScale(), Vec2{1, 1})
	assertVec(t, "anchor after commit", c.CornerPosition(TopLeading), tl)
}

func TestResizeEveryCornerKeepsAnchor(t *testing.T) {
	for _, corner := range Corners {
		t.Run(corner.String(), func(t *testing.T) {
			c := NewController(Resizable, Vec2{80, 60}, DefaultConfig())
			c.SetAngle(0.6)
			anchor := c.CornerPosition(corner.Anchor())
			tr := Vec2{7, -4}

			c.ResizeChanged(corner, GestureSample{Translation: tr, Time: at(0)})
			assertVec(t, "preview anchor", c.CornerPosition(corner.Anchor()), anchor)
			c.ResizeEnded(corner, GestureSample{Translation: tr, Time: at(10)})
			assertVec(t, "committed anchor", c.CornerPosition(corner.Anchor()), anchor)

			sx, sy := corner.Signs()
			assertVec(t, "size", c.CurrentSize(), Vec2{80 + sx*tr.X, 60 + sy*tr.Y})
		})
	}
}

func TestResizeRotatedElement(t *testing.T) {
	c := NewController(Resizable, Vec2{100, 100}, DefaultConfig())
	c.SetAngle(math.Pi / 2)
	c.ResizeChanged(BottomTrailing, GestureSample{Translation: Vec2{20, 0}, Time: at(0)})
	c.ResizeEnded(BottomTrailing, GestureSample{Translation: Vec2{20, 0}, Time: at(10)})
	assertVec(t, "size", c.CurrentSize(), Vec2{120, 100})
	assertVec(t, "offset", c.CurrentOffset(), Vec2{0, 10})
	assertVec(t, "anchor", c.CornerPosition(TopLeading), Vec2{50, -50})
}

func TestResizeOppositeCornersDecoupled(t *testing.T) {
	c := NewController(Resizable, Vec2{100, 100}, DefaultConfig())
	c.ResizeChanged(TopLeading, GestureSample{Translation: Vec2{-10, -10}, Time: at(0)})
	c.ResizeChanged(BottomTrailing, GestureSample{Translation: Vec2{20, 20}, Time: at(0)})
	assertVec(t, "combined preview scale", c.CurrentScale(), Vec2{1.3, 1.3})
	assertVec(t, "combined preview offset", c.CurrentOffset(), Vec2{5, 5})

	c.ResizeEnded(BottomTrailing, GestureSample{Translation: Vec2{20, 20}, Time: at(10)})
	assertVec(t, "size after first commit", c.CurrentSize(), Vec2{120, 120})
	assertVec(t, "preview still continuous", c.CurrentOffset(), Vec2{5, 5})
	assertVec(t, "top-leading still follows its finger", c.CornerPosition(TopLeading), Vec2{-60, -60})

	c.ResizeEnded(TopLeading, GestureSample{Translation: Vec2{-10, -10}, Time: at(20)})
	assertVec(t, "final size", c.CurrentSize(), Vec2{130, 130})
	assertVec(t, "final offset", c.CurrentOffset(), Vec2{5, 5})
	assertVec(t, "bottom-trailing", c.CornerPosition(BottomTrailing), Vec2{70, 70})
}

func TestResizeAdjacentCornersAddUp(t *testing.T) {
	// Both top corners move the top edge, and each commits its own
	// translation, so their vertical drags add.
	c := NewController(Resizable, Vec2{100, 100}, DefaultConfig())
	c.ResizeChanged(TopLeading, GestureSample{Translation: Vec2{0, -10}, Time: at(0)})
	c.ResizeChanged(TopTrailing, GestureSample{Translation: Vec2{0, -10}, Time: at(0)})
	previewHeight := c.CurrentSize().Y * c.CurrentScale().Y

	c.ResizeEnded(TopLeading, GestureSample{Translation: Vec2{0, -10}, Time: at(10)})
	c.ResizeEnded(TopTrailing, GestureSample{Translation: Vec2{0, -10}, Time: at(10)})
	assertNear(t, "preview height", previewHeight, 120)
	assertVec(t, "size", c.CurrentSize(), Vec2{100, 120})
	assertVec(t, "offset", c.CurrentOffset(), Vec2{0, -10})
}

func TestResizeClampsToMinSize(t *testing.T) {
	c := NewController(Resizable, Vec2{100, 100}, DefaultConfig())
	tl := c.CornerPosition(TopLeading)
	c.ResizeChanged(BottomTrailing, GestureSample{Translation: Vec2{-150, -150}, Time: at(0)})
	s := c.CurrentScale()
	if s.X <= 0 || s.Y <= 0 {
		t.Fatalf("preview scale %v collapsed", s)
	}
	assertVec(t, "preview anchor", c.CornerPosition(TopLeading), tl)

	c.ResizeEnded(BottomTrailing, GestureSample{Translation: Vec2{-150, -150}, Time: at(10)})
	assertVec(t, "size", c.CurrentSize(), Vec2{1, 1})
	assertVec(t, "anchor", c.CornerPosition(TopLeading), tl)
}

func TestResizeStopsCoast(t *testing.T) {
	c := NewController(Throwable|Resizable, Vec2{100, 100}, DefaultConfig())
	throw(c, 50)
	c.ResizeChanged(TopTrailing, GestureSample{Translation: Vec2{1, 1}, Time: at(200)})
	if c.Coast().Running() {
		t.Error("resize should interrupt the coast")
	}
}

func TestRotateHandle(t *testing.T) {
	c := NewController(Rotatable, Vec2{100, 100}, DefaultConfig())
	r := c.RotationRadius()
	assertNear(t, "radius", r, 100)

	c.RotateHandleChanged(GestureSample{Translation: handleTranslation(r, 0, 0.5), Time: at(0)})
	assertNear(t, "live angle", c.CurrentAngle(), 0.5)
	c.RotateHandleEnded(GestureSample{Translation: handleTranslation(r, 0, 0.5), Time: at(10)})
	assertNear(t, "committed angle", c.CurrentAngle(), 0.5)
	if c.Spin().Running() {
		t.Error("rotatable without spin must not spin")
	}
}

func TestRotationAccumulatesPastFullTurn(t *testing.T) {
	c := NewController(Rotatable, Vec2{100, 100}, DefaultConfig())
	r := c.RotationRadius()
	for i := 0; i < 5; i++ {
		base := c.CurrentAngle()
		c.RotateHandleChanged(GestureSample{Translation: handleTranslation(r, base, 1.5), Time: at(i * 10)})
		c.RotateHandleEnded(GestureSample{Translation: handleTranslation(r, base, 1.5), Time: at(i*10 + 5)})
	}
	assertNear(t, "angle", c.CurrentAngle(), 7.5)
}

func TestSpinStartsAndTwistInterrupts(t *testing.T) {
	c := NewController(Spinnable|CapTwist, Vec2{100, 100}, DefaultConfig())
	r := c.RotationRadius()
	c.RotateHandleChanged(GestureSample{Translation: handleTranslation(r, 0, 0.1), Time: at(0)})
	c.RotateHandleChanged(GestureSample{Translation: handleTranslation(r, 0, 0.3), Time: at(100)})
	c.RotateHandleEnded(GestureSample{Translation: handleTranslation(r, 0, 0.3), Time: at(100)})

	if !c.Spin().Running() {
		t.Fatal("spin should start")
	}
	assertNear(t, "angular velocity", c.Spin().Model().AngularVelocity(), 0.5*0.2/0.1)
	before := c.CurrentAngle()
	c.Spin().Tick()
	if c.CurrentAngle() <= before {
		t.Error("spin should keep turning the element")
	}

	c.TwistChanged(0.2)
	if c.Spin().Running() || c.Spin().Model().AngularVelocity() != 0 {
		t.Error("twist must stop the spin and zero its velocity")
	}
	angle := c.CurrentAngle()
	c.TwistEnded(0.25)
	assertNear(t, "twist commit", c.CurrentAngle(), angle-0.2+0.25)
}

func TestMagnify(t *testing.T) {
	c := NewController(Draggable, Vec2{100, 50}, DefaultConfig())
	c.MagnifyChanged(2)
	assertVec(t, "live scale", c.CurrentScale(), Vec2{2, 2})
	assertVec(t, "size unchanged while live", c.CurrentSize(), Vec2{100, 50})
	c.MagnifyEnded(2)
	assertVec(t, "size", c.CurrentSize(), Vec2{200, 100})
	assertVec(t, "scale", c.CurrentScale(), Vec2{1, 1})
	if c.Magnification() != 1 {
		t.Error("magnification should read 1 after commit")
	}
}

func TestMagnifyClampsToMinSize(t *testing.T) {
	c := NewController(Draggable, Vec2{100, 50}, DefaultConfig())
	c.MagnifyChanged(0.5)
	c.MagnifyEnded(1e-9)
	assertVec(t, "size", c.CurrentSize(), Vec2{1, 1})
}

func TestSimultaneousDragRotateMagnify(t *testing.T) {
	c := NewController(Draggable|Rotatable, Vec2{100, 100}, DefaultConfig())
	c.DragChanged(GestureSample{Translation: Vec2{30, 0}, Time: at(0)})
	c.TwistChanged(0.4)
	c.MagnifyChanged(1.5)
	assertVec(t, "offset", c.CurrentOffset(), Vec2{30, 0})
	assertNear(t, "angle", c.CurrentAngle(), 0.4)
	assertVec(t, "scale", c.CurrentScale(), Vec2{1.5, 1.5})
}

func TestResizeKeepsAnchorWhileMagnified(t *testing.T) {
	c := NewController(Draggable|Resizable, Vec2{100, 100}, DefaultConfig())
	c.MagnifyChanged(2)
	assertVec(t, "magnified top-leading", c.CornerPosition(TopLeading), Vec2{-100, -100})

	c.ResizeChanged(BottomTrailing, GestureSample{Translation: Vec2{20, 20}, Time: at(0)})
	assertVec(t, "preview top-leading", c.CornerPosition(TopLeading), Vec2{-100, -100})

	c.ResizeEnded(BottomTrailing, GestureSample{Translation: Vec2{20, 20}, Time: at(16)})
	assertVec(t, "committed top-leading", c.CornerPosition(TopLeading), Vec2{-100, -100})

	c.MagnifyEnded(2)
	assertVec(t, "size", c.CurrentSize(), Vec2{240, 240})
	assertVec(t, "top-leading after pinch", c.CornerPosition(TopLeading), Vec2{-100, -100})
}

func TestCapabilitiesGateGestures(t *testing.T) {
	c := NewController(Rotatable, Vec2{100, 100}, DefaultConfig())
	c.DragChanged(GestureSample{Translation: Vec2{10, 0}, Time: at(0)})
	c.DragEnded(GestureSample{Translation: Vec2{10, 0}, Time: at(10)})
	c.ResizeChanged(BottomTrailing, GestureSample{Translation: Vec2{10, 0}, Time: at(0)})
	c.MagnifyChanged(3)
	if !c.CurrentOffset().IsZero() || c.CurrentSize() != (Vec2{100, 100}) || c.CurrentScale() != (Vec2{1, 1}) {
		t.Error("disabled gestures must not change the transform")
	}
}

func TestYUpConvention(t *testing.T) {
	cfg := DefaultConfig()
	cfg.YAxis = YUp
	c := NewController(Draggable|Resizable, Vec2{100, 100}, cfg)
	c.DragChanged(GestureSample{Translation: Vec2{0, 10}, Time: at(0)})
	c.DragEnded(GestureSample{Translation: Vec2{0, 10}, Time: at(10)})
	assertVec(t, "offset", c.CurrentOffset(), Vec2{0, -10})

	// Dragging the top-trailing corner up grows the element.
	c.ResizeChanged(TopTrailing, GestureSample{Translation: Vec2{0, 20}, Time: at(20)})
	c.ResizeEnded(TopTrailing, GestureSample{Translation: Vec2{0, 20}, Time: at(30)})
	assertVec(t, "size", c.CurrentSize(), Vec2{100, 120})
}

func TestTapTogglesSelectionAndFades(t *testing.T) {
	store := &recordingStore{}
	c := NewController(Resizable, Vec2{100, 100}, DefaultConfig())
	c.SetEntityStore(store)

	c.Tap()
	if !c.Selected() {
		t.Fatal("tap should select")
	}
	c.Update(100 * time.Millisecond)
	if a := c.OverlayAlpha(); a <= 0 || a >= 1 {
		t.Errorf("alpha mid-fade = %v", a)
	}
	c.Update(200 * time.Millisecond)
	assertNear(t, "alpha after fade-in", c.OverlayAlpha(), 1)

	c.Tap()
	if c.Selected() {
		t.Fatal("second tap should deselect")
	}
	c.Update(time.Second)
	assertNear(t, "alpha after fade-out", c.OverlayAlpha(), 0)

	want := []EventType{EventSelected, EventDeselected}
	if diff := cmp.Diff(want, store.types()); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestEventsCarryTransform(t *testing.T) {
	store := &recordingStore{}
	c := NewController(Throwable, Vec2{100, 100}, DefaultConfig())
	c.EntityID = 7
	c.SetEntityStore(store)
	throw(c, 50)

	want := []EventType{EventGestureBegan, EventGestureEnded, EventCoastStarted}
	if diff := cmp.Diff(want, store.types()); diff != "" {
		t.Fatalf("events (-want +got):\n%s", diff)
	}
	last := store.events[2]
	if last.EntityID != 7 || last.Gesture != GestureDrag {
		t.Errorf("event = %+v", last)
	}
	assertVec(t, "event offset", last.Offset, Vec2{50, 0})
	assertVec(t, "event velocity", last.Velocity, Vec2{250, 0})
}

func TestGeometryQueryDrivesRadius(t *testing.T) {
	c := NewController(Rotatable, Vec2{100, 100}, DefaultConfig())
	c.SetGeometry(GeometryFunc(func() Vec2 { return Vec2{100, 200} }))
	assertNear(t, "radius", c.RotationRadius(), 150)
	c.SetGeometry(GeometryFunc(func() Vec2 { return Vec2{} }))
	assertNear(t, "degenerate layout falls back", c.RotationRadius(), 100)
}

func TestCustomVelocityModel(t *testing.T) {
	c := NewController(Throwable, Vec2{100, 100}, DefaultConfig())
	c.SetVelocityModel(NewFrictionVelocity(20, DefaultTickPeriod))
	throw(c, 50)
	c.Update(time.Second)
	v := c.Coast().Model().Velocity().Len()
	if v >= 250*math.Exp(-19) {
		t.Errorf("friction model left speed at %v", v)
	}
}

func TestCloseStopsEverything(t *testing.T) {
	c := NewController(Throwable|Spinnable, Vec2{100, 100}, DefaultConfig())
	throw(c, 50)
	c.Spin().Model().SetAngularVelocity(1)
	c.Spin().Start()
	c.DragChanged(GestureSample{Translation: Vec2{5, 0}, Time: at(500)})

	c.Close()
	if c.Coast().Running() || c.Spin().Running() || c.Dragging() {
		t.Error("Close must stop integrators and cancel gestures")
	}
	off := c.CurrentOffset()
	c.DragChanged(GestureSample{Translation: Vec2{99, 0}, Time: at(600)})
	c.Update(time.Second)
	if c.CurrentOffset() != off {
		t.Error("closed controller must ignore input and updates")
	}
	c.Close()
}

func TestNewControllerSanitizesConfig(t *testing.T) {
	c := NewController(Draggable, Vec2{-5, 0}, Config{})
	if c.Config().TickPeriod != DefaultTickPeriod || c.Config().MinSize != 1 {
		t.Errorf("config = %+v", c.Config())
	}
	assertVec(t, "size", c.CurrentSize(), Vec2{1, 1})
}
