package interact

import (
	"math"
	"testing"
)

// --- Rect.Contains ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside right", 111, 40, false},
		{"outside above", 50, 19, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

// --- Vec2 ---

func TestVec2Rotate(t *testing.T) {
	got := Vec2{1, 0}.Rotate(math.Pi / 2)
	assertNear(t, "x", got.X, 0)
	assertNear(t, "y", got.Y, 1)

	got = Vec2{3, 4}.Rotate(0)
	assertNear(t, "x", got.X, 3)
	assertNear(t, "y", got.Y, 4)
}

func TestVec2Arithmetic(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 5}
	if got := a.Add(b); got != (Vec2{4, 7}) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != (Vec2{2, 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vec2{2, 4}) {
		t.Errorf("Scale = %v", got)
	}
	assertNear(t, "Len", Vec2{3, 4}.Len(), 5)
	if !(Vec2{}).IsZero() {
		t.Error("zero vector should report IsZero")
	}
}

// --- Corner ---

func TestCornerAnchorIsOpposite(t *testing.T) {
	for _, c := range Corners {
		a := c.Anchor()
		if a.Anchor() != c {
			t.Errorf("%v: anchor of anchor = %v", c, a.Anchor())
		}
		local := c.Local(Vec2{100, 50})
		anchor := a.Local(Vec2{100, 50})
		if local.Add(anchor) != (Vec2{}) {
			t.Errorf("%v and %v are not opposite: %v, %v", c, a, local, anchor)
		}
	}
}

func TestCornerLocal(t *testing.T) {
	size := Vec2{100, 60}
	want := map[Corner]Vec2{
		TopLeading:     {-50, -30},
		BottomLeading:  {-50, 30},
		TopTrailing:    {50, -30},
		BottomTrailing: {50, 30},
	}
	for c, w := range want {
		if got := c.Local(size); got != w {
			t.Errorf("%v.Local = %v, want %v", c, got, w)
		}
	}
}

func TestCapabilityPresets(t *testing.T) {
	if !Throwable.Has(CapDrag) {
		t.Error("Throwable should include drag")
	}
	if !Spinnable.Has(CapRotate | CapSpin) {
		t.Error("Spinnable should include rotate and spin")
	}
	if Draggable.Has(CapThrow) {
		t.Error("Draggable should not coast")
	}
	combo := Draggable | Rotatable | Resizable
	if !combo.Has(CapResize | CapRotate | CapDrag) {
		t.Error("combined capabilities lost bits")
	}
}

func TestColorRGBA(t *testing.T) {
	c := Color{1, 0.5, 0, 1}.RGBA()
	if c.R != 255 || c.G != 127 || c.B != 0 || c.A != 255 {
		t.Errorf("RGBA = %+v", c)
	}
	half := Color{1, 1, 1, 0.5}.RGBA()
	if half.R != 127 || half.A != 127 {
		t.Errorf("premultiplied RGBA = %+v", half)
	}
}
