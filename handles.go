package interact

// HandleDescriptor places one handle of the selection overlay.
//
// Position follows the convention of each kind. A corner's Position is
// relative to the rendered element center in the element's own unrotated
// frame, so a renderer that draws handles inside the element's transform
// gets rotation for free. The rotation handle's Position is relative to the
// rendered center in the parent frame, because it already carries the angle.
//
// World is the handle center relative to the element's layout position in
// the parent frame, the same frame as CurrentOffset. Hit testing uses it.
type HandleDescriptor struct {
	Kind     HandleKind
	Corner   Corner // valid for HandleResize
	Position Vec2
	World    Vec2
	Size     Vec2
	Active   bool
	Visible  bool
}

// Rect returns the handle's unrotated hit rectangle around World.
func (h HandleDescriptor) Rect() Rect {
	return Rect{X: h.World.X - h.Size.X/2, Y: h.World.Y - h.Size.Y/2, Width: h.Size.X, Height: h.Size.Y}
}

// HandlePositions returns the corner handles in Corners order followed by
// the rotation handle. Handles of disabled capabilities are omitted.
// Descriptors are derived from the current state on every call.
func (c *Controller) HandlePositions() []HandleDescriptor {
	return c.AppendHandles(make([]HandleDescriptor, 0, 5))
}

// AppendHandles appends the handle descriptors to buf, for callers that
// reuse a buffer every frame.
func (c *Controller) AppendHandles(buf []HandleDescriptor) []HandleDescriptor {
	offset := c.CurrentOffset()
	angle := c.CurrentAngle()
	scale := c.CurrentScale()
	rendered := c.size.mulVec(scale)

	if c.caps.Has(CapResize) {
		for _, corner := range Corners {
			local := corner.Local(rendered)
			buf = append(buf, HandleDescriptor{
				Kind:     HandleResize,
				Corner:   corner,
				Position: local,
				World:    offset.Add(local.Rotate(angle)),
				Size:     c.cfg.HandleSize,
				Active:   c.resize[corner].Active(),
				Visible:  c.selected,
			})
		}
	}
	if c.caps.Has(CapRotate) {
		pos := c.rotationHandle(angle, scale)
		buf = append(buf, HandleDescriptor{
			Kind:     HandleRotation,
			Position: pos,
			World:    offset.Add(pos),
			Size:     c.cfg.HandleSize,
			Active:   c.rotate.Active(),
			Visible:  c.selected,
		})
	}
	return buf
}

// rotationHandle sits on the rotation circle of the preview-resized bounds
// and is pulled inward by the magnification.
func (c *Controller) rotationHandle(angle float64, scale Vec2) Vec2 {
	m := c.magnify.Factor()
	bounds := c.bounds()
	if m > 0 {
		bounds = bounds.mulVec(Vec2{scale.X / m, scale.Y / m})
	}
	radius := RotationRadius(bounds, c.cfg.RadialOffset)
	return RotationHandleOffset(radius, angle, m, bounds)
}

// HitHandle returns the topmost visible handle containing p, given relative
// to the element's layout position. The rotation handle wins over corners.
// Handles are only hit-testable while the element is selected.
func (c *Controller) HitHandle(p Vec2) (HandleDescriptor, bool) {
	if !c.selected {
		return HandleDescriptor{}, false
	}
	var buf [5]HandleDescriptor
	handles := c.AppendHandles(buf[:0])
	angle := c.CurrentAngle()
	for i := len(handles) - 1; i >= 0; i-- {
		h := handles[i]
		// Handles are drawn aligned with the element.
		local := p.Sub(h.World).Rotate(-angle)
		r := Rect{X: -h.Size.X / 2, Y: -h.Size.Y / 2, Width: h.Size.X, Height: h.Size.Y}
		if r.Contains(local.X, local.Y) {
			return h, true
		}
	}
	return HandleDescriptor{}, false
}
