package drill

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/matzehuels/pcbdrill/pkg/circuit"
)

// Slot is the routing path of a slotted (pill) hole.
type Slot struct {
	Start circuit.Point
	End   circuit.Point
}

// Geometry is the resolved drill geometry of one hole. It is derived on
// demand and never stored on the element.
type Geometry struct {
	Center   circuit.Point
	Diameter float64
	Slot     *Slot
}

// ResolveOffset returns the drill offset of e. Only plated holes carry an
// offset, and only when both components are present.
func ResolveOffset(e circuit.Element) (dx, dy float64) {
	h, ok := e.(*circuit.PlatedHole)
	if !ok {
		return 0, 0
	}
	return h.Offset()
}

// ResolveShapeTag returns the hole shape tag of a plated hole.
func ResolveShapeTag(e circuit.Element) (string, bool) {
	h, ok := e.(*circuit.PlatedHole)
	if !ok {
		return "", false
	}
	return h.ShapeTag()
}

func resolveShape(e circuit.Element) circuit.ShapeClass {
	tag, ok := ResolveShapeTag(e)
	if !ok {
		return circuit.ShapeUnknown
	}
	return circuit.ClassifyShape(tag)
}

// ResolveToolDiameter returns the drill bit diameter for e.
//
// An explicit hole_diameter always wins. A plated pill without one is routed
// with a bit the size of its narrow axis. Diameters that are not positive and
// finite are treated as missing.
func ResolveToolDiameter(e circuit.Element) (float64, bool) {
	h, ok := e.(circuit.Hole)
	if !ok {
		return 0, false
	}
	if d, ok := h.HoleDiameter(); ok {
		return validDiameter(d)
	}
	ph, ok := e.(*circuit.PlatedHole)
	if !ok || !resolveShape(e).IsPill() {
		return 0, false
	}
	w, ht, ok := ph.HoleSize()
	if !ok {
		return 0, false
	}
	return validDiameter(math.Min(w, ht))
}

func validDiameter(d float64) (float64, bool) {
	if d <= 0 || math.IsInf(d, 0) || math.IsNaN(d) {
		return 0, false
	}
	return d, true
}

// ResolveCenter returns the drill center of e: its position plus any offset.
func ResolveCenter(e circuit.Element) (circuit.Point, bool) {
	h, ok := e.(circuit.Hole)
	if !ok {
		return circuit.Point{}, false
	}
	dx, dy := ResolveOffset(e)
	p := h.Position()
	return circuit.Point{X: p.X + dx, Y: p.Y + dy}, true
}

// ResolveSlotEndpoints returns the routing path for a pill hole centered at
// center. It reports false for non-pill shapes, missing width or height, and
// pills whose axes are equal.
//
// Before rotation the long axis points along +x when width >= height and
// along +y otherwise. Rotated pills then turn by hole_ccw_rotation degrees
// counter-clockwise.
func ResolveSlotEndpoints(e circuit.Element, center circuit.Point) (Slot, bool) {
	shape := resolveShape(e)
	if !shape.IsPill() {
		return Slot{}, false
	}
	h, ok := e.(*circuit.PlatedHole)
	if !ok {
		return Slot{}, false
	}
	w, ht, ok := h.HoleSize()
	if !ok {
		return Slot{}, false
	}

	halfSlot := (math.Max(w, ht) - math.Min(w, ht)) / 2
	if !(halfSlot > 0) {
		return Slot{}, false
	}

	var rotation float64
	if shape.IsRotated() {
		if deg, ok := h.Rotation(); ok {
			rotation = sdf.DtoR(deg)
		}
	}
	base := 0.0
	if w < ht {
		base = math.Pi / 2
	}
	angle := base + rotation

	axis := v2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}.MulScalar(halfSlot)
	c := v2.Vec{X: center.X, Y: center.Y}
	start, end := c.Sub(axis), c.Add(axis)
	return Slot{
		Start: circuit.Point{X: start.X, Y: start.Y},
		End:   circuit.Point{X: end.X, Y: end.Y},
	}, true
}

// Resolve derives the complete drill geometry of e. It reports false when e
// is not a hole or has no usable diameter.
func Resolve(e circuit.Element) (Geometry, bool) {
	d, ok := ResolveToolDiameter(e)
	if !ok {
		return Geometry{}, false
	}
	center, ok := ResolveCenter(e)
	if !ok {
		return Geometry{}, false
	}
	g := Geometry{Center: center, Diameter: d}
	if slot, ok := ResolveSlotEndpoints(e, center); ok {
		g.Slot = &slot
	}
	return g, true
}
