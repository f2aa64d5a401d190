package interact

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Stage or a Controller, interaction events are forwarded to it.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries one lifecycle change of an element together with
// a snapshot of its rendered transform.
type InteractionEvent struct {
	Type     EventType
	Gesture  GestureKind
	EntityID uint32
	Offset   Vec2
	Angle    float64
	Size     Vec2
	// Coast fields (valid for EventCoastStarted)
	Velocity        Vec2
	AngularVelocity float64
}

// Element is one interactive element on a Stage. Origin is the layout
// position of its center; the controller's offset is added on top.
type Element struct {
	Name       string
	ID         uint32
	Origin     Vec2
	Controller *Controller
}

// Center returns the rendered center in stage coordinates.
func (e *Element) Center() Vec2 { return e.Origin.Add(e.Controller.CurrentOffset()) }

// Contains reports whether the stage point p falls on the rendered element.
func (e *Element) Contains(p Vec2) bool { return e.Controller.Contains(p.Sub(e.Origin)) }

// GeoM returns the draw matrix for a 1×1 image stretched over the element.
func (e *Element) GeoM() ebiten.GeoM { return e.Controller.GeoM(e.Origin) }

// Stage hosts interactive elements in z-order, routes pointers to them by
// hit testing, and drives their controllers once per frame. It plays the
// role of the layout and input collaborator for an Ebitengine game.
type Stage struct {
	cfg   Config
	log   *zap.Logger
	store EntityStore

	elements []*Element
	nextID   uint32

	// Input state
	input       InputSource
	inputBuf    []PointerInput
	handlers    handlerRegistry
	pointers    [maxPointers]pointerState
	pinch       pinchState
	injectQueue [][]syntheticPointerEvent
	runner      *ScriptRunner

	now time.Time
}

// NewStage returns an empty stage whose elements use cfg.
func NewStage(cfg Config) *Stage {
	return &Stage{
		cfg: sanitizeConfig(cfg),
		log: zap.NewNop(),
		now: time.Now(),
	}
}

// SetLogger sets the logger of the stage and every element on it.
func (s *Stage) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.log = l
	for _, e := range s.elements {
		e.Controller.SetLogger(l)
	}
}

// SetEntityStore sets the optional ECS bridge.
func (s *Stage) SetEntityStore(store EntityStore) { s.store = store }

// SetInput installs the polled input source. nil disables polling; injected
// events still work.
func (s *Stage) SetInput(src InputSource) { s.input = src }

// SetScriptRunner attaches a gesture script. Its step runs at the start of
// every Update.
func (s *Stage) SetScriptRunner(r *ScriptRunner) { s.runner = r }

// Now returns the stage clock used to timestamp gesture samples.
func (s *Stage) Now() time.Time { return s.now }

// SetNow resets the stage clock.
func (s *Stage) SetNow(t time.Time) { s.now = t }

// Add creates an element with the given capabilities, centered on origin.
// The new element is on top.
func (s *Stage) Add(name string, caps Capability, origin, size Vec2) *Element {
	c := NewController(caps, size, s.cfg)
	return s.AddController(name, origin, c)
}

// AddController places an existing controller on the stage. The controller's
// EntityID, logger and event sink are taken over by the stage.
func (s *Stage) AddController(name string, origin Vec2, c *Controller) *Element {
	s.nextID++
	e := &Element{Name: name, ID: s.nextID, Origin: origin, Controller: c}
	c.EntityID = e.ID
	c.SetLogger(s.log)
	c.events = s.dispatch
	s.elements = append(s.elements, e)
	s.log.Debug("element added", zap.String("name", name), zap.Uint32("entity", e.ID))
	return e
}

// Remove takes e off the stage and closes its controller, stopping any
// coast or spin. Pointers holding e are released without committing.
func (s *Stage) Remove(e *Element) {
	for i, el := range s.elements {
		if el != e {
			continue
		}
		copy(s.elements[i:], s.elements[i+1:])
		s.elements[len(s.elements)-1] = nil
		s.elements = s.elements[:len(s.elements)-1]
		for p := range s.pointers {
			if s.pointers[p].target == e {
				s.pointers[p] = pointerState{}
			}
		}
		if s.pinch.target == e {
			s.pinch = pinchState{}
		}
		e.Controller.Close()
		s.log.Debug("element removed", zap.String("name", e.Name), zap.Uint32("entity", e.ID))
		return
	}
}

// Elements returns the elements bottom to top. The slice must not be
// modified.
func (s *Stage) Elements() []*Element { return s.elements }

// Find returns the first element with the given name, or nil.
func (s *Stage) Find(name string) *Element {
	for _, e := range s.elements {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// BringToFront moves e to the top of the z-order.
func (s *Stage) BringToFront(e *Element) {
	for i, el := range s.elements {
		if el == e {
			copy(s.elements[i:], s.elements[i+1:])
			s.elements[len(s.elements)-1] = e
			return
		}
	}
}

// Update advances the clock by dt, applies one frame of input, then advances
// every controller's integrators and fades.
func (s *Stage) Update(dt time.Duration) {
	if dt > 0 {
		s.now = s.now.Add(dt)
	}
	s.processInput()
	for _, e := range s.elements {
		e.Controller.Update(dt)
	}
}

// Close stops every controller on the stage.
func (s *Stage) Close() {
	for _, e := range s.elements {
		e.Controller.Close()
	}
}

// dispatch forwards a controller event to scene-level handlers, then to the
// ECS bridge.
func (s *Stage) dispatch(e InteractionEvent) {
	for _, h := range s.handlers.byType[e.Type] {
		h.fn(e)
	}
	if s.store != nil {
		s.store.EmitEvent(e)
	}
}
