// Package io reads circuit JSON files and writes drill artifacts.
//
// # Input Format
//
// Input is a circuit JSON document: a flat array of element objects, each
// discriminated by "type". Only hole-bearing elements matter for drilling:
//
//	[
//	  {"type": "source_component", "name": "R1"},
//	  {"type": "pcb_plated_hole", "x": -10, "y": 10, "shape": "circle", "hole_diameter": 2.5},
//	  {"type": "pcb_via", "x": -4.28, "y": -14.23, "hole_diameter": 0.3},
//	  {"type": "pcb_hole", "x": 0, "y": 0, "hole_diameter": 3.2}
//	]
//
// See package circuit for the recognized fields and decoding rules.
//
// # Output Formats
//
//   - Excellon text ([WriteExcellon], [ExportExcellon]), conventionally with a
//     .drl extension
//   - JSON command list ([WriteCommandsJSON]) for tooling that renders or
//     inspects the program itself
//
// Import errors carry codes from package errors: FILE_NOT_FOUND when the
// file does not exist, INVALID_INPUT when the document is not an element
// array.
package io
