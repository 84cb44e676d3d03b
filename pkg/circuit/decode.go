package circuit

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/matzehuels/pcbdrill/pkg/errors"
)

// Decode parses a circuit JSON document (an array of element objects).
//
// Decoding is lenient per field: a field of the wrong JSON type is treated as
// absent. Decode returns an INVALID_INPUT error only when the document is not
// an array or an entry is not an object.
func Decode(data []byte) ([]Element, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "circuit json must be an array of elements")
	}

	elems := make([]Element, 0, len(raws))
	for i, raw := range raws {
		var fields record
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "element %d is not an object", i)
		}
		elems = append(elems, fields.element(raw))
	}
	return elems, nil
}

// record is one undecoded element object.
type record map[string]json.RawMessage

func (r record) element(raw json.RawMessage) Element {
	typ, _ := r.str("type")
	switch Type(typ) {
	case TypePlatedHole:
		return &PlatedHole{
			ID:             r.text("pcb_plated_hole_id"),
			X:              r.coord("x"),
			Y:              r.coord("y"),
			Shape:          r.strPtr("shape"),
			HoleShape:      r.strPtr("hole_shape"),
			PadShape:       r.strPtr("pad_shape"),
			Diameter:       r.num("hole_diameter"),
			Width:          r.num("hole_width"),
			Height:         r.num("hole_height"),
			CCWRotation:    r.num("hole_ccw_rotation"),
			OffsetX:        r.num("hole_offset_x"),
			OffsetY:        r.num("hole_offset_y"),
			OuterDiameter:  r.num("outer_diameter"),
			PCBComponentID: r.text("pcb_component_id"),
			PCBPortID:      r.text("pcb_port_id"),
			Layers:         r.strs("layers"),
		}
	case TypeUnplatedHole:
		return &UnplatedHole{
			ID:       r.text("pcb_hole_id"),
			X:        r.coord("x"),
			Y:        r.coord("y"),
			Shape:    r.strPtr("hole_shape"),
			Diameter: r.num("hole_diameter"),
		}
	case TypeVia:
		return &Via{
			ID:            r.text("pcb_via_id"),
			X:             r.coord("x"),
			Y:             r.coord("y"),
			Diameter:      r.num("hole_diameter"),
			OuterDiameter: r.num("outer_diameter"),
			FromLayer:     r.text("from_layer"),
			ToLayer:       r.text("to_layer"),
		}
	default:
		return &Other{Kind: Type(typ), Raw: bytes.Clone(raw)}
	}
}

func (r record) num(key string) *float64 {
	v, ok := r[key]
	if !ok || isNull(v) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(v, &f); err != nil || math.IsNaN(f) {
		return nil
	}
	return &f
}

func (r record) coord(key string) float64 {
	if p := r.num(key); p != nil {
		return *p
	}
	return 0
}

func (r record) str(key string) (string, bool) {
	v, ok := r[key]
	if !ok || isNull(v) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, true
}

func (r record) strPtr(key string) *string {
	if s, ok := r.str(key); ok {
		return &s
	}
	return nil
}

func (r record) text(key string) string {
	s, _ := r.str(key)
	return s
}

func (r record) strs(key string) []string {
	v, ok := r[key]
	if !ok || isNull(v) {
		return nil
	}
	var out []string
	if err := json.Unmarshal(v, &out); err != nil {
		return nil
	}
	return out
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
