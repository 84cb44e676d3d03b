// Package drill converts circuit elements into an Excellon drill program.
//
// Conversion has two parts:
//
//   - Geometry resolution ([Resolve] and the Resolve* helpers): pure
//     functions deriving a hole's drill center (including any manufacturing
//     offset), its tool diameter, and for slotted holes the two endpoints of
//     the routing path.
//   - Assembly ([Assemble], [Convert]): one pass over the element list that
//     assigns tool numbers to distinct diameters, followed by emission of the
//     header, tool definitions, per-tool drill and route commands, and the
//     program end.
//
// # Tolerance for Partial Input
//
// Nothing in this package returns an error. Elements whose diameter cannot be
// derived are left out of the program; pill holes whose slot cannot be
// derived are drilled as plain circles.
//
// # Tool Numbering
//
// Tools are numbered from [DefaultToolBase] (10) in the order their diameter
// is first seen. Diameters are matched exactly, so 0.3 and 0.30000000000000004
// are different tools.
//
// # Coordinates
//
// Offsets are applied before the optional Y flip, so a flipped coordinate is
// (y + offsetY) * -1. Slot rotation is counter-clockwise in board coordinates
// and is not affected by the flip.
//
// # Concurrency
//
// All state lives inside a single call; concurrent conversions are safe.
package drill
