// Package circuit models the flat circuit-board description consumed by the
// drill converter.
//
// A board is a JSON array of loosely-typed elements discriminated by their
// "type" field. Only the hole-bearing variants are modeled in detail:
//
//   - [PlatedHole] ("pcb_plated_hole"): copper-plated through hole, possibly
//     slotted (pill shaped), rotated, or offset from its pad
//   - [UnplatedHole] ("pcb_hole"): mechanical hole with a plain diameter
//   - [Via] ("pcb_via"): small plated hole joining copper layers
//
// Every other element type decodes to [Other] so that callers can pass a
// complete board through unchanged.
//
// # Optional Fields
//
// Circuit JSON is produced by many tools and is frequently partial. Every
// optional numeric field is therefore stored as a pointer and read through a
// total accessor that reports presence:
//
//	if d, ok := hole.HoleDiameter(); ok {
//	    // use d
//	}
//
// [Decode] never fails on a mistyped field: a string where a number is
// expected decodes as "absent". Only a document that is not an array of
// objects is rejected.
//
// # Shapes
//
// Hole shape tags ("circle", "pill", "rotated_pill_hole_with_rect_pad", ...)
// are mapped to a closed set of categories by [ClassifyShape].
package circuit
