package interact

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorGray is the default drag shadow color.
var ColorGray = Color{0.5, 0.5, 0.5, 1}

// RGBA converts the color to a premultiplied color.RGBA for drawing.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for offsets, sizes, translations, and velocities
// throughout the API. The coordinate system has its origin at the top-left,
// with Y increasing downward, unless a Config selects YUp.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Rotate rotates v by angle radians (clockwise on a Y-down screen).
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{cos*v.X - sin*v.Y, sin*v.X + cos*v.Y}
}

// Rect is an axis-aligned rectangle with its origin at the top-left.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Corner identifies one of the four resize handles.
type Corner uint8

const (
	TopLeading     Corner = iota // anchored at BottomTrailing
	BottomLeading                // anchored at TopTrailing
	TopTrailing                  // anchored at BottomLeading
	BottomTrailing               // anchored at TopLeading
)

// Corners lists the four corners in handle order.
var Corners = [4]Corner{TopLeading, BottomLeading, TopTrailing, BottomTrailing}

// Anchor returns the corner that stays fixed while c is dragged.
func (c Corner) Anchor() Corner {
	switch c {
	case TopLeading:
		return BottomTrailing
	case BottomLeading:
		return TopTrailing
	case TopTrailing:
		return BottomLeading
	default:
		return TopLeading
	}
}

// Signs returns the direction each axis of the size grows when the corner
// moves by a positive translation: -1 for leading/top edges, +1 for
// trailing/bottom edges.
func (c Corner) Signs() (sx, sy float64) {
	switch c {
	case TopLeading:
		return -1, -1
	case BottomLeading:
		return -1, 1
	case TopTrailing:
		return 1, -1
	default:
		return 1, 1
	}
}

// Local returns the corner's center-relative position for an element of the
// given size.
func (c Corner) Local(size Vec2) Vec2 {
	sx, sy := c.Signs()
	return Vec2{sx * size.X / 2, sy * size.Y / 2}
}

func (c Corner) String() string {
	switch c {
	case TopLeading:
		return "top-leading"
	case BottomLeading:
		return "bottom-leading"
	case TopTrailing:
		return "top-trailing"
	case BottomTrailing:
		return "bottom-trailing"
	default:
		return "unknown"
	}
}

// HandleKind distinguishes resize handles from the rotation handle.
type HandleKind uint8

const (
	HandleResize   HandleKind = iota // one of the four corner handles
	HandleRotation                   // radial handle above the element
)

// GestureKind identifies one independent gesture stream.
type GestureKind uint8

const (
	GestureDrag         GestureKind = iota // main-body drag (and throw)
	GestureRotateHandle                    // drag constrained to the rotation handle circle (and spin)
	GestureMagnify                         // two-finger pinch scale
	GestureTwist                           // two-finger rotation
	GestureResize                          // corner handle drag
	GestureTap                             // press and release without movement
)

func (k GestureKind) String() string {
	switch k {
	case GestureDrag:
		return "drag"
	case GestureRotateHandle:
		return "rotate-handle"
	case GestureMagnify:
		return "magnify"
	case GestureTwist:
		return "twist"
	case GestureResize:
		return "resize"
	case GestureTap:
		return "tap"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of interaction event forwarded to an EntityStore.
type EventType uint8

const (
	EventGestureBegan EventType = iota // first sample of a gesture was applied
	EventGestureEnded                  // gesture committed into the transform
	EventCoastStarted                  // a throw or spin integrator started
	EventCoastStopped                  // a running integrator was stopped or reset
	EventSelected                      // selection toggled on
	EventDeselected                    // selection toggled off
)

// Capability is a bitmask of the behaviors a Controller enables.
// Values can be combined with bitwise OR (e.g. Draggable | Resizable).
type Capability uint16

const (
	CapDrag    Capability = 1 << iota // body drag moves the offset
	CapThrow                          // body drag release starts a coast
	CapRotate                         // rotation handle turns the element
	CapSpin                           // rotation handle release starts a spin
	CapResize                         // corner handles resize the element
	CapMagnify                        // pinch scales the size
	CapTwist                          // two-finger rotation turns the element
)

// Presets matching the stock behaviors. Combine them freely.
const (
	Draggable = CapDrag | CapMagnify | CapTwist
	Throwable = CapDrag | CapThrow
	Rotatable = CapRotate
	Spinnable = CapRotate | CapSpin
	Resizable = CapResize
)

// Has reports whether every bit in o is set.
func (c Capability) Has(o Capability) bool { return c&o == o }
