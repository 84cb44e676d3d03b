// Package excellon defines the Excellon drill command vocabulary and renders
// command programs as drill-file text.
//
// A [Program] is an ordered, immutable list of [Command] values. Each command
// has a stable [Kind] (its "command_code") and typed parameters. Programs are
// built with a [Builder] and serialized either as Excellon text with
// [Stringify]/[Write] or as JSON with [MarshalProgram].
//
// # Text Format
//
// [Write] emits one line per command. Coordinates carry four decimal places
// ("X-10.0000Y10.0000"), tool definitions six ("T10C2.500000"), and tool
// numbers are zero-padded to two digits. Numbers are kept at full precision
// inside the program; rounding happens only here.
//
//	M48
//	; DRILL file {pcbdrill} date 2025-01-01T00:00:00Z
//	FMAT,2
//	METRIC
//	T10C0.300000
//	%
//	G90
//	G05
//	T10
//	X1.0000Y2.0000
//	M30
package excellon
