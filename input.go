package interact

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// --- Constants ---

const (
	maxPointers    = 10 // pointer 0 = mouse, 1-9 = touch
	eventTypeCount = int(EventDeselected) + 1
)

// --- Input sources ---

// PointerInput is the state of one pointer for one frame, in stage
// coordinates.
type PointerInput struct {
	ID       int
	Position Vec2
	Pressed  bool
}

// InputSource is polled once per Stage.Update for the current pointer
// states. A pointer that disappears must be reported once with
// Pressed=false so the stage can end its gesture.
type InputSource interface {
	AppendPointers(buf []PointerInput) []PointerInput
}

// EbitenInput reads the mouse as pointer 0 and touches as pointers 1-9.
type EbitenInput struct {
	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool
	touchLast [maxPointers]Vec2
	touchIDs  []ebiten.TouchID
}

// NewEbitenInput returns an input source backed by ebiten's global input
// state. Poll it only from the game's Update.
func NewEbitenInput() *EbitenInput { return &EbitenInput{} }

// AppendPointers implements InputSource.
func (in *EbitenInput) AppendPointers(buf []PointerInput) []PointerInput {
	mx, my := ebiten.CursorPosition()
	buf = append(buf, PointerInput{
		ID:       0,
		Position: Vec2{float64(mx), float64(my)},
		Pressed:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	})

	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	var activeSlots [maxPointers]bool
	for _, tid := range in.touchIDs {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		in.touchLast[slot] = Vec2{float64(tx), float64(ty)}
		buf = append(buf, PointerInput{ID: slot, Position: in.touchLast[slot], Pressed: true})
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !activeSlots[i] {
			buf = append(buf, PointerInput{ID: i, Position: in.touchLast[i]})
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}
	return buf
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (in *EbitenInput) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// --- Per-pointer state ---

// grabKind is what a pointer picked up when it was pressed.
type grabKind uint8

const (
	grabNone      grabKind = iota
	grabBody               // drives the body drag
	grabSecondary          // second pointer on a dragged body; only pinches
	grabCorner             // a resize handle
	grabRotation           // the rotation handle
)

type pointerState struct {
	down     bool
	start    Vec2
	last     Vec2
	target   *Element
	grab     grabKind
	corner   Corner
	angle    float64 // element angle at press, for resize translations
	deadZone float64
	dragging bool
	pinched  bool
}

// --- Pinch state ---

type pinchState struct {
	active       bool
	target       *Element
	pointer0     int
	pointer1     int
	initialDist  float64
	initialAngle float64
	scale        float64
	rotation     float64
}

// --- Handler registry ---

type eventHandler struct {
	id uint32
	fn func(InteractionEvent)
}

type handlerRegistry struct {
	byType [eventTypeCount][]eventHandler
	nextID uint32
}

// CallbackHandle allows removing a registered stage-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil || int(h.event) >= eventTypeCount {
		return
	}
	s := h.reg.byType[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			h.reg.byType[h.event] = s[:len(s)-1]
			return
		}
	}
}

// On registers a stage-level callback for events of type typ from any
// element. Stage handlers run before the ECS bridge.
func (s *Stage) On(typ EventType, fn func(InteractionEvent)) CallbackHandle {
	if int(typ) >= eventTypeCount {
		return CallbackHandle{}
	}
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.byType[typ] = append(s.handlers.byType[typ], eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: typ}
}

// --- Hit testing ---

// hitTest finds what a press at p grabs. Handles of selected elements win
// over every body; among bodies the topmost element wins.
func (s *Stage) hitTest(p Vec2) (*Element, grabKind, Corner) {
	for i := len(s.elements) - 1; i >= 0; i-- {
		e := s.elements[i]
		if h, ok := e.Controller.HitHandle(p.Sub(e.Origin)); ok {
			if h.Kind == HandleRotation {
				return e, grabRotation, 0
			}
			return e, grabCorner, h.Corner
		}
	}
	for i := len(s.elements) - 1; i >= 0; i-- {
		e := s.elements[i]
		if e.Contains(p) {
			return e, grabBody, 0
		}
	}
	return nil, grabNone, 0
}

// ElementAt returns the topmost element whose body contains p, or nil.
func (s *Stage) ElementAt(p Vec2) *Element {
	for i := len(s.elements) - 1; i >= 0; i-- {
		if s.elements[i].Contains(p) {
			return s.elements[i]
		}
	}
	return nil
}

// --- Input processing ---

// processInput is called from Stage.Update to handle one frame of input.
func (s *Stage) processInput() {
	if s.runner != nil {
		s.runner.step(s)
	}
	if !s.processInjectedInput() && s.input != nil {
		s.inputBuf = s.input.AppendPointers(s.inputBuf[:0])
		for _, in := range s.inputBuf {
			s.HandlePointer(in)
		}
	}
	s.detectPinch()
}

// HandlePointer feeds one pointer state through the stage. Update calls it
// for polled and injected input; hosts with their own event loop may call it
// directly, followed by Update.
func (s *Stage) HandlePointer(in PointerInput) {
	if in.ID < 0 || in.ID >= maxPointers {
		return
	}
	s.processPointer(in.ID, in.Position, in.Pressed)
}

// processPointer runs the pointer state machine for a single pointer.
func (s *Stage) processPointer(id int, p Vec2, pressed bool) {
	ps := &s.pointers[id]
	switch {
	case pressed && !ps.down:
		s.press(ps, p)
	case !pressed && ps.down:
		s.release(ps, p)
		*ps = pointerState{last: p}
	case pressed && ps.down:
		if p != ps.last {
			s.move(ps, p)
		}
		ps.last = p
	default:
		ps.last = p
	}
}

func (s *Stage) press(ps *pointerState, p Vec2) {
	target, grab, corner := s.hitTest(p)
	*ps = pointerState{down: true, start: p, last: p, target: target, grab: grab, corner: corner}
	if target == nil {
		return
	}
	c := target.Controller
	ps.angle = c.CurrentAngle()
	ps.deadZone = c.cfg.HandleMinDistance
	switch grab {
	case grabBody:
		ps.deadZone = c.cfg.DragMinDistance
		if s.holding(ps, target, grabBody, 0) {
			ps.grab = grabSecondary
		}
	case grabCorner:
		if s.holding(ps, target, grabCorner, corner) {
			ps.grab = grabNone
		}
	case grabRotation:
		if s.holding(ps, target, grabRotation, 0) {
			ps.grab = grabNone
		}
	}
	s.log.Debug("pointer down",
		zap.String("element", target.Name),
		zap.Uint8("grab", uint8(ps.grab)),
		vecField("at", p))
}

// holding reports whether a pointer other than self already holds the same
// part of e.
func (s *Stage) holding(self *pointerState, e *Element, grab grabKind, corner Corner) bool {
	for i := range s.pointers {
		o := &s.pointers[i]
		if o == self || !o.down || o.target != e || o.grab != grab {
			continue
		}
		if grab != grabCorner || o.corner == corner {
			return true
		}
	}
	return false
}

func (s *Stage) move(ps *pointerState, p Vec2) {
	if ps.target == nil || ps.grab == grabNone || ps.grab == grabSecondary {
		return
	}
	if !ps.dragging {
		if p.Sub(ps.start).Len() <= ps.deadZone {
			return
		}
		ps.dragging = true
	}
	s.sample(ps, p, false)
}

func (s *Stage) release(ps *pointerState, p Vec2) {
	if ps.target == nil {
		return
	}
	// A release can be the first frame past the dead zone.
	if !ps.dragging && ps.grab != grabNone && ps.grab != grabSecondary && p.Sub(ps.start).Len() > ps.deadZone {
		ps.dragging = true
	}
	if ps.dragging {
		if p != ps.last {
			s.sample(ps, p, false)
		}
		s.sample(ps, p, true)
		return
	}
	if ps.grab == grabBody && !ps.pinched && ps.target.Contains(p) {
		s.log.Debug("tap", zap.String("element", ps.target.Name))
		ps.target.Controller.Tap()
	}
}

// sample turns the pointer's travel since press into a gesture sample for
// whatever it grabbed.
func (s *Stage) sample(ps *pointerState, p Vec2, end bool) {
	c := ps.target.Controller
	t := p.Sub(ps.start)
	smp := GestureSample{Time: s.now, Location: p.Sub(ps.target.Origin), HasLocation: true}
	switch ps.grab {
	case grabBody:
		smp.Translation = c.cfg.YAxis.FromYDown(t)
		if end {
			c.DragEnded(smp)
		} else {
			c.DragChanged(smp)
		}
	case grabRotation:
		smp.Translation = c.cfg.YAxis.FromYDown(t)
		if end {
			c.RotateHandleEnded(smp)
		} else {
			c.RotateHandleChanged(smp)
		}
	case grabCorner:
		smp.Translation = c.cfg.YAxis.FromYDown(t.Rotate(-ps.angle))
		if end {
			c.ResizeEnded(ps.corner, smp)
		} else {
			c.ResizeChanged(ps.corner, smp)
		}
	}
}

// --- Pinch detection ---

// detectPinch turns exactly two touch pointers resting on the same element's
// body into simultaneous magnify and twist gestures. The body drag of the
// first pointer keeps running.
func (s *Stage) detectPinch() {
	var ids [2]int
	count := 0
	for i := 1; i < maxPointers; i++ {
		ps := &s.pointers[i]
		if !ps.down || ps.target == nil || (ps.grab != grabBody && ps.grab != grabSecondary) {
			continue
		}
		if count < 2 {
			ids[count] = i
		}
		count++
	}

	if count == 2 && s.pointers[ids[0]].target == s.pointers[ids[1]].target {
		ps0 := &s.pointers[ids[0]]
		ps1 := &s.pointers[ids[1]]
		d := ps1.last.Sub(ps0.last)
		dist := d.Len()
		angle := atan2(d)

		if !s.pinch.active || s.pinch.target != ps0.target ||
			s.pinch.pointer0 != ids[0] || s.pinch.pointer1 != ids[1] {
			s.endPinch()
			s.pinch = pinchState{
				active:       true,
				target:       ps0.target,
				pointer0:     ids[0],
				pointer1:     ids[1],
				initialDist:  dist,
				initialAngle: angle,
				scale:        1,
			}
			ps0.pinched = true
			ps1.pinched = true
			return
		}

		scale := 1.0
		if s.pinch.initialDist > 0 {
			scale = dist / s.pinch.initialDist
		}
		rotation := unwrapNear(wrapAngle(angle-s.pinch.initialAngle), s.pinch.rotation)
		s.pinch.scale = scale
		s.pinch.rotation = rotation

		c := s.pinch.target.Controller
		c.MagnifyChanged(scale)
		c.TwistChanged(rotation)
		return
	}
	s.endPinch()
}

func (s *Stage) endPinch() {
	if !s.pinch.active {
		return
	}
	c := s.pinch.target.Controller
	c.MagnifyEnded(s.pinch.scale)
	c.TwistEnded(s.pinch.rotation)
	s.pinch = pinchState{}
}
