package drill

import (
	"fmt"
	"time"

	"github.com/matzehuels/pcbdrill/pkg/circuit"
	"github.com/matzehuels/pcbdrill/pkg/excellon"
)

// DefaultGenerator is written to the TF.GenerationSoftware attribute.
const DefaultGenerator = "pcbdrill"

// timestampLayout matches ISO-8601 with milliseconds, e.g. 2025-01-02T03:04:05.000Z.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Options controls a conversion.
type Options struct {
	// IncludePlated keeps plated holes and vias in the drilling body. When
	// false only unplated holes are drilled; tool definitions are unaffected.
	IncludePlated bool

	// FlipY multiplies every emitted Y coordinate by -1.
	FlipY bool

	// Generator names the generating software in the header. Defaults to
	// DefaultGenerator.
	Generator string

	// Now supplies the header timestamp. Defaults to time.Now; tests freeze it.
	Now func() time.Time

	// ToolBase is the first tool number. Zero selects DefaultToolBase, so
	// numbering cannot start at T00, which Excellon readers treat as
	// "no tool".
	ToolBase int
}

// DefaultOptions returns options for a plated drill file without Y flip.
func DefaultOptions() Options {
	return Options{IncludePlated: true}
}

func (o Options) withDefaults() Options {
	if o.Generator == "" {
		o.Generator = DefaultGenerator
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.ToolBase == 0 {
		o.ToolBase = DefaultToolBase
	}
	return o
}

// ToolUsage summarizes how one tool is used in a program.
type ToolUsage struct {
	Tool
	Holes    int `json:"holes"`    // plain drill hits emitted
	Slots    int `json:"slots"`    // routed slots emitted
	Excluded int `json:"excluded"` // elements filtered out by IncludePlated
}

// Result is the outcome of [Assemble].
type Result struct {
	Program excellon.Program
	Tools   []ToolUsage
	Skipped int // hole elements without a resolvable diameter
}

// Convert returns the drill program for elements. It is shorthand for
// Assemble(elements, opts).Program.
func Convert(elements []circuit.Element, opts Options) excellon.Program {
	return Assemble(elements, opts).Program
}

type placement struct {
	elem circuit.Element
	geom Geometry
}

// Assemble builds the drill program for elements.
//
// The program consists of the header, one aperture/tool definition pair per
// distinct diameter in first-seen order, then for each tool in ascending
// order a tool selection followed by the drill hits of the elements using
// it, in input order, and finally M30. The input slice is not modified.
func Assemble(elements []circuit.Element, opts Options) Result {
	opts = opts.withDefaults()
	b := excellon.NewBuilder()

	writeHeader(b, opts)

	tools := NewToolTable(opts.ToolBase)
	var groups [][]placement
	skipped := 0
	for _, e := range elements {
		if _, ok := e.(circuit.Hole); !ok {
			continue
		}
		g, ok := Resolve(e)
		if !ok {
			skipped++
			continue
		}
		n, added := tools.Assign(g.Diameter)
		if added {
			b.Add(
				excellon.ApertureFunction{Plated: true},
				excellon.DefineTool{Tool: n, Diameter: g.Diameter},
			)
			groups = append(groups, nil)
		}
		i := n - tools.Base()
		groups[i] = append(groups[i], placement{elem: e, geom: g})
	}

	b.Add(excellon.EndHeader{}, excellon.AbsoluteMode{}, excellon.DrillMode{})

	yMul := 1.0
	if opts.FlipY {
		yMul = -1
	}

	usage := make([]ToolUsage, tools.Len())
	for i, tool := range tools.Tools() {
		u := &usage[i]
		u.Tool = tool
		b.Add(excellon.UseTool{Tool: tool.Number})
		for _, p := range groups[i] {
			if !opts.IncludePlated && circuit.IsPlatedClass(p.elem) {
				u.Excluded++
				continue
			}
			if s := p.geom.Slot; s != nil {
				b.Add(
					excellon.RapidMode{},
					excellon.DrillAt{X: s.Start.X, Y: s.Start.Y * yMul},
					excellon.RouteStart{},
					excellon.LinearMode{},
					excellon.DrillAt{X: s.End.X, Y: s.End.Y * yMul},
					excellon.RouteEnd{},
					excellon.DrillMode{},
				)
				u.Slots++
				continue
			}
			b.Add(excellon.DrillAt{X: p.geom.Center.X, Y: p.geom.Center.Y * yMul})
			u.Holes++
		}
	}

	b.Add(excellon.ProgramEnd{})

	return Result{Program: b.Build(), Tools: usage, Skipped: skipped}
}

func writeHeader(b *excellon.Builder, opts Options) {
	date := opts.Now().UTC().Format(timestampLayout)
	b.Add(
		excellon.StartHeader{},
		excellon.HeaderComment{Text: fmt.Sprintf("DRILL file {%s} date %s", opts.Generator, date)},
		excellon.HeaderComment{Text: "FORMAT={-:-/ absolute / metric / decimal}"},
		excellon.HeaderAttribute{Name: "TF.CreationDate", Value: date},
		excellon.HeaderAttribute{Name: "TF.GenerationSoftware", Value: opts.Generator},
		excellon.HeaderAttribute{Name: "TF.FileFunction", Value: "Plated,1,2,PTH"},
		excellon.FormatSelect{Version: 2},
		excellon.UnitFormat{Unit: excellon.UnitMetric, Zeros: excellon.ZerosUnspecified},
	)
}
