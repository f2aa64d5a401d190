package interact

import (
	"math"
	"time"
)

// YAxis selects the coordinate convention of incoming pointer translations.
// Gesture math always runs Y-down; the convention is resolved once when a
// sample enters a Controller.
type YAxis uint8

const (
	YDown YAxis = iota // screen coordinates, Y grows downward (default)
	YUp                // Y grows upward; vertical components are negated
)

// Normalize converts a translation expressed in this convention to Y-down.
func (a YAxis) Normalize(v Vec2) Vec2 {
	if a == YUp {
		return Vec2{v.X, -v.Y}
	}
	return v
}

// FromYDown converts a Y-down translation into this convention. The flip is
// its own inverse, so this is Normalize run the other way.
func (a YAxis) FromYDown(v Vec2) Vec2 { return a.Normalize(v) }

// atan2 returns the direction of v in radians, clockwise from +X on a
// Y-down screen.
func atan2(v Vec2) float64 { return math.Atan2(v.Y, v.X) }

// VelocityFromSamples estimates velocity between two translation samples of
// the same gesture:
//
//	-scale * (newTranslation - prevTranslation) / (prevTime - newTime)
//
// A zero prevTime marks the first sample of a gesture and yields the zero
// vector, as does a zero or negative elapsed time.
func VelocityFromSamples(prevTranslation Vec2, prevTime time.Time, newTranslation Vec2, newTime time.Time, scale float64) Vec2 {
	dt, ok := sampleInterval(prevTime, newTime)
	if !ok {
		return Vec2{}
	}
	return Vec2{
		X: -scale * (newTranslation.X - prevTranslation.X) / dt,
		Y: -scale * (newTranslation.Y - prevTranslation.Y) / dt,
	}
}

// AngularVelocityFromSamples is the scalar counterpart of VelocityFromSamples
// for rotation deltas.
func AngularVelocityFromSamples(prevDelta float64, prevTime time.Time, newDelta float64, newTime time.Time, scale float64) float64 {
	dt, ok := sampleInterval(prevTime, newTime)
	if !ok {
		return 0
	}
	return -scale * (newDelta - prevDelta) / dt
}

// sampleInterval returns prevTime - newTime in seconds. ok is false when
// there is no previous sample or when time did not advance.
func sampleInterval(prevTime, newTime time.Time) (float64, bool) {
	if prevTime.IsZero() {
		return 0, false
	}
	dt := prevTime.Sub(newTime).Seconds()
	if dt >= 0 {
		return 0, false
	}
	return dt, true
}

// RadiusConstrainedDeltaTheta converts a handle drag into a rotation delta.
// The current angle is projected onto a circle of the given radius to find
// the handle's last position; the raw translation is added to approximate
// the new position, which is not re-projected onto the circle. The result
// is the difference between the new position's angle and currentAngle,
// wrapped to (-π, π].
func RadiusConstrainedDeltaTheta(radius, currentAngle float64, translation Vec2) float64 {
	sin, cos := math.Sincos(currentAngle)
	lastX := radius * sin
	lastY := -radius * cos

	newX := lastX + translation.X
	newY := lastY + translation.Y
	if newX == 0 && newY == 0 {
		return 0
	}
	newAngle := math.Atan2(newY, newX) + math.Pi/2
	return wrapAngle(newAngle - currentAngle)
}

// wrapAngle maps a into (-π, π].
func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// unwrapNear returns a + 2πk for the integer k that brings it closest to ref.
func unwrapNear(a, ref float64) float64 {
	return a + 2*math.Pi*math.Round((ref-a)/(2*math.Pi))
}

// RotationRadius is the radius of the circle the rotation handle travels on:
// half the element height plus the radial offset.
func RotationRadius(bounds Vec2, radialOffset float64) float64 {
	return bounds.Y/2 + radialOffset
}

// RotationHandleOffset returns the rotation handle's position relative to
// the element center. The handle sits on the rotation circle at angle and
// is pulled inward as the magnification shrinks the element.
func RotationHandleOffset(radius, angle, magnification float64, bounds Vec2) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: sin * (radius - (1-magnification)*bounds.X/2),
		Y: -cos * (radius - (1-magnification)*bounds.Y/2),
	}
}

// ResizeHandleDelta rotates a corner-drag translation measured in the
// element's frame by angle, giving the displacement in its parent's frame.
func ResizeHandleDelta(translation Vec2, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: cos*translation.X - sin*translation.Y,
		Y: cos*translation.Y + sin*translation.X,
	}
}

// CornerScaleFactors returns, for each corner in Corners order, the scale
// that previews that corner's drag with the opposite corner held fixed.
// A zero or negative extent yields a factor of 1 on that axis, and no factor
// is allowed to reach zero.
func CornerScaleFactors(size Vec2, corners [4]Vec2) [4]Vec2 {
	var out [4]Vec2
	for i, c := range Corners {
		sx, sy := c.Signs()
		out[i] = Vec2{
			X: scaleFactor(size.X, sx*corners[i].X),
			Y: scaleFactor(size.Y, sy*corners[i].Y),
		}
	}
	return out
}

// minScaleFactor keeps previews from collapsing or inverting the element.
const minScaleFactor = 1e-3

func scaleFactor(extent, growth float64) float64 {
	if extent <= 0 {
		return 1
	}
	f := (extent + growth) / extent
	if f < minScaleFactor {
		return minScaleFactor
	}
	return f
}

// clampCornerTranslation limits a corner translation so that committing it
// leaves both extents at least minSize.
func clampCornerTranslation(c Corner, size, t Vec2, minSize float64) Vec2 {
	sx, sy := c.Signs()
	if size.X+sx*t.X < minSize {
		t.X = (minSize - size.X) * sx
	}
	if size.Y+sy*t.Y < minSize {
		t.Y = (minSize - size.Y) * sy
	}
	return t
}

// clampEdges limits the displacements of the low and high edges of one axis
// so the resulting extent stays at least minSize. The moving edges give back
// the excess; when both move they share it.
func clampEdges(lo, hi, extent, minSize float64) (float64, float64) {
	excess := minSize - (extent + hi - lo)
	if excess <= 0 {
		return lo, hi
	}
	switch {
	case lo != 0 && hi != 0:
		return lo - excess/2, hi + excess/2
	case lo != 0:
		return lo - excess, hi
	default:
		return lo, hi + excess
	}
}
