package interact

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// composeTransform builds the matrix that places an element's
// center-relative local points in its parent's frame. Returns
// [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Scale(sx, sy) -> Rotate(angle) -> Translate(offset)
func composeTransform(offset Vec2, angle float64, scale Vec2) [6]float64 {
	sin, cos := math.Sincos(angle)
	return [6]float64{
		cos * scale.X,
		sin * scale.X,
		-sin * scale.Y,
		cos * scale.Y,
		offset.X,
		offset.Y,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, p Vec2) Vec2 {
	return Vec2{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}

// --- Controller coordinate conversion ---

// renderTransform is the element's rendered matrix relative to its layout
// position: live scale, then live angle, then live offset.
func (c *Controller) renderTransform() [6]float64 {
	return composeTransform(c.CurrentOffset(), c.CurrentAngle(), c.CurrentScale().mulVec(c.size))
}

// ToLocal converts a point relative to the element's layout position into
// its center-relative local space, normalized so that the element spans
// [-0.5, 0.5] on both axes.
func (c *Controller) ToLocal(p Vec2) Vec2 {
	return transformPoint(invertAffine(c.renderTransform()), p)
}

// FromLocal is the inverse of ToLocal.
func (c *Controller) FromLocal(p Vec2) Vec2 {
	return transformPoint(c.renderTransform(), p)
}

// CornerPosition returns where corner currently renders, relative to the
// element's layout position.
func (c *Controller) CornerPosition(corner Corner) Vec2 {
	return c.FromLocal(corner.Local(Vec2{1, 1}))
}

// Contains reports whether p, relative to the element's layout position,
// falls inside the rendered element.
func (c *Controller) Contains(p Vec2) bool {
	l := c.ToLocal(p)
	return l.X >= -0.5 && l.X <= 0.5 && l.Y >= -0.5 && l.Y <= 0.5
}

// GeoM returns the matrix that draws a 1×1 image (such as a white pixel)
// as this element, centered on origin.
func (c *Controller) GeoM(origin Vec2) ebiten.GeoM {
	place := [6]float64{1, 0, 0, 1, origin.X, origin.Y}
	center := [6]float64{1, 0, 0, 1, -0.5, -0.5}
	m := multiplyAffine(place, multiplyAffine(c.renderTransform(), center))
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

func (v Vec2) mulVec(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }
