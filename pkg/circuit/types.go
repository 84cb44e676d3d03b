package circuit

import "math"

// Type is the value of an element's "type" discriminator.
type Type string

const (
	TypePlatedHole   Type = "pcb_plated_hole"
	TypeUnplatedHole Type = "pcb_hole"
	TypeVia          Type = "pcb_via"
)

// Point is a position in board units (millimeters).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Element is one record of a circuit description.
type Element interface {
	Type() Type
}

// Hole is implemented by every element that the drill converter considers.
type Hole interface {
	Element
	Position() Point
	HoleDiameter() (float64, bool)
}

// PlatedHole is a plated through hole. Offsets and rotation are only defined
// on this variant.
type PlatedHole struct {
	ID             string
	X              float64
	Y              float64
	Shape          *string  // generic tag, may mix pad and hole geometry
	HoleShape      *string  // explicit hole tag, preferred over Shape
	PadShape       *string
	Diameter       *float64 // round holes
	Width          *float64 // slotted holes
	Height         *float64 // slotted holes
	CCWRotation    *float64 // degrees, rotated shapes only
	OffsetX        *float64 // drill offset from the pad center
	OffsetY        *float64
	OuterDiameter  *float64
	PCBComponentID string
	PCBPortID      string
	Layers         []string
}

// UnplatedHole is a mechanical, non-plated hole.
type UnplatedHole struct {
	ID       string
	X        float64
	Y        float64
	Shape    *string
	Diameter *float64
}

// Via is a plated hole that connects copper layers.
type Via struct {
	ID            string
	X             float64
	Y             float64
	Diameter      *float64
	OuterDiameter *float64
	FromLayer     string
	ToLayer       string
}

// Other is any element whose type is not drilled. The raw record is kept.
type Other struct {
	Kind Type
	Raw  []byte
}

func (*PlatedHole) Type() Type   { return TypePlatedHole }
func (*UnplatedHole) Type() Type { return TypeUnplatedHole }
func (*Via) Type() Type          { return TypeVia }
func (o *Other) Type() Type      { return o.Kind }

func (h *PlatedHole) Position() Point   { return Point{X: h.X, Y: h.Y} }
func (h *UnplatedHole) Position() Point { return Point{X: h.X, Y: h.Y} }
func (v *Via) Position() Point          { return Point{X: v.X, Y: v.Y} }

// HoleDiameter returns the explicit hole diameter, if present. A NaN
// diameter is reported as present so callers can reject it.
func (h *PlatedHole) HoleDiameter() (float64, bool) { return present(h.Diameter) }

// HoleDiameter returns the hole diameter, if present.
func (h *UnplatedHole) HoleDiameter() (float64, bool) { return present(h.Diameter) }

// HoleDiameter returns the drill diameter of the via, if present.
func (v *Via) HoleDiameter() (float64, bool) { return present(v.Diameter) }

// HoleSize returns the slot width and height when both are present.
func (h *PlatedHole) HoleSize() (width, height float64, ok bool) {
	w, wok := number(h.Width)
	ht, hok := number(h.Height)
	if !wok || !hok {
		return 0, 0, false
	}
	return w, ht, true
}

// Rotation returns the counter-clockwise hole rotation in degrees, if present.
func (h *PlatedHole) Rotation() (float64, bool) { return number(h.CCWRotation) }

// Offset returns the drill offset from the pad center. Both components must
// be present; otherwise the offset is zero.
func (h *PlatedHole) Offset() (dx, dy float64) {
	x, xok := number(h.OffsetX)
	y, yok := number(h.OffsetY)
	if !xok || !yok {
		return 0, 0
	}
	return x, y
}

// ShapeTag returns the tag describing the hole geometry. An explicit
// hole_shape wins over the generic shape field, which may also describe the pad.
func (h *PlatedHole) ShapeTag() (string, bool) {
	if h.HoleShape != nil {
		return *h.HoleShape, true
	}
	if h.Shape != nil {
		return *h.Shape, true
	}
	return "", false
}

// IsPlatedClass reports whether e belongs to the plated class of holes
// (plated holes and vias).
func IsPlatedClass(e Element) bool {
	switch e.(type) {
	case *PlatedHole, *Via:
		return true
	}
	return false
}

func present(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func number(p *float64) (float64, bool) {
	if p == nil || math.IsNaN(*p) {
		return 0, false
	}
	return *p, true
}

// Float returns a pointer to v. It is a convenience for building elements.
func Float(v float64) *float64 { return &v }

// String returns a pointer to s. It is a convenience for building elements.
func String(s string) *string { return &s }
