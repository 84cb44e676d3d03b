// Package pkg provides the libraries behind pcbdrill, a converter from
// circuit JSON boards to Excellon drill files.
//
// # Overview
//
// The pkg directory is organized by concern:
//
//  1. [circuit] - Circuit element model and JSON decoding
//  2. [drill] - Geometry resolution and drill program assembly
//  3. [excellon] - Command vocabulary, text and JSON serialization
//  4. [pipeline] - Orchestration (decode → assemble → render) with caching
//  5. [cache], [config], [errors], [observability], [buildinfo], [io] - Infrastructure
//
// # Architecture
//
//	circuit JSON
//	     ↓
//	[circuit] package (decode elements)
//	     ↓
//	[drill] package (resolve geometry, number tools, emit commands)
//	     ↓
//	[excellon] package (serialize)
//	     ↓
//	.drl / JSON command list
//
// # Quick Start
//
//	elems, _ := io.ImportCircuit("board.json")
//	prog := drill.Convert(elems, drill.DefaultOptions())
//	fmt.Print(excellon.Stringify(prog))
//
// The core packages (circuit, drill, excellon) are pure: they perform no I/O
// and never log. Everything stateful lives in pipeline and below.
package pkg
