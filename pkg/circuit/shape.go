package circuit

import "strings"

// ShapeClass is the drilling category of a hole shape tag.
type ShapeClass int

const (
	// ShapeUnknown covers missing or unrecognized tags. Such holes are
	// drilled as plain circles when a diameter is available.
	ShapeUnknown ShapeClass = iota
	// ShapeCircle is a round hole drilled with a single plunge.
	ShapeCircle
	// ShapePill is a stadium-shaped slot routed along its long axis.
	ShapePill
	// ShapeRotatedPill is a pill whose long axis is rotated counter-clockwise
	// by hole_ccw_rotation degrees.
	ShapeRotatedPill
)

var shapeNames = map[ShapeClass]string{
	ShapeUnknown:     "unknown",
	ShapeCircle:      "circle",
	ShapePill:        "pill",
	ShapeRotatedPill: "rotated_pill",
}

func (c ShapeClass) String() string {
	if s, ok := shapeNames[c]; ok {
		return s
	}
	return "unknown"
}

// IsPill reports whether holes of this class are routed as slots.
func (c ShapeClass) IsPill() bool {
	return c == ShapePill || c == ShapeRotatedPill
}

// IsRotated reports whether hole_ccw_rotation applies to this class.
func (c ShapeClass) IsRotated() bool {
	return c == ShapeRotatedPill
}

// knownShapes lists the tags emitted by circuit JSON producers, including the
// pad-qualified aliases carried in the generic "shape" field.
var knownShapes = map[string]ShapeClass{
	"circle":                          ShapeCircle,
	"circular_hole_with_rect_pad":     ShapeCircle,
	"circle_hole_with_rect_pad":       ShapeCircle,
	"oval":                            ShapeCircle,
	"rect":                            ShapeUnknown,
	"pill":                            ShapePill,
	"pill_hole_with_rect_pad":         ShapePill,
	"rotated_pill":                    ShapeRotatedPill,
	"rotated_pill_hole_with_rect_pad": ShapeRotatedPill,
}

// ClassifyShape maps a hole shape tag to its drilling category.
//
// Tags not present in the known table are classified by substring: any tag
// containing "pill" is a pill, and a pill tag that also contains "rotated" is
// a rotated pill. Everything else is [ShapeUnknown]. The function is total.
func ClassifyShape(tag string) ShapeClass {
	if c, ok := knownShapes[tag]; ok {
		return c
	}
	if !strings.Contains(tag, "pill") {
		return ShapeUnknown
	}
	if strings.Contains(tag, "rotated") {
		return ShapeRotatedPill
	}
	return ShapePill
}
