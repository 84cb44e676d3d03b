package drill

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/pcbdrill/pkg/circuit"
	"github.com/matzehuels/pcbdrill/pkg/excellon"
)

var frozen = time.Date(2025, 3, 14, 15, 9, 26, 535000000, time.UTC)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Now = func() time.Time { return frozen }
	return opts
}

func kinds(p excellon.Program) []excellon.Kind {
	out := make([]excellon.Kind, p.Len())
	for i := range out {
		out[i] = p.At(i).Kind()
	}
	return out
}

func drillHits(p excellon.Program) []excellon.DrillAt {
	var out []excellon.DrillAt
	for _, c := range p.Commands() {
		if d, ok := c.(excellon.DrillAt); ok {
			out = append(out, d)
		}
	}
	return out
}

func toolDefs(p excellon.Program) []excellon.DefineTool {
	var out []excellon.DefineTool
	for _, c := range p.Commands() {
		if d, ok := c.(excellon.DefineTool); ok {
			out = append(out, d)
		}
	}
	return out
}

var headerKinds = []excellon.Kind{
	excellon.KindStartHeader,
	excellon.KindHeaderComment,
	excellon.KindHeaderComment,
	excellon.KindHeaderAttribute,
	excellon.KindHeaderAttribute,
	excellon.KindHeaderAttribute,
	excellon.KindFormat,
	excellon.KindUnitFormat,
}

func TestAssembleEmpty(t *testing.T) {
	res := Assemble(nil, testOptions())

	want := append(append([]excellon.Kind{}, headerKinds...),
		excellon.KindEndHeader,
		excellon.KindAbsoluteMode,
		excellon.KindDrillMode,
		excellon.KindProgramEnd,
	)
	if got := kinds(res.Program); !reflect.DeepEqual(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}
	if len(res.Tools) != 0 || res.Skipped != 0 {
		t.Errorf("Tools = %v, Skipped = %d, want none", res.Tools, res.Skipped)
	}
}

func TestAssembleHeader(t *testing.T) {
	opts := testOptions()
	opts.Generator = "tscircuit"
	p := Convert(nil, opts)

	date := "2025-03-14T15:09:26.535Z"
	want := []excellon.Command{
		excellon.StartHeader{},
		excellon.HeaderComment{Text: "DRILL file {tscircuit} date " + date},
		excellon.HeaderComment{Text: "FORMAT={-:-/ absolute / metric / decimal}"},
		excellon.HeaderAttribute{Name: "TF.CreationDate", Value: date},
		excellon.HeaderAttribute{Name: "TF.GenerationSoftware", Value: "tscircuit"},
		excellon.HeaderAttribute{Name: "TF.FileFunction", Value: "Plated,1,2,PTH"},
		excellon.FormatSelect{Version: 2},
		excellon.UnitFormat{Unit: excellon.UnitMetric},
	}
	for i, w := range want {
		if got := p.At(i); got != w {
			t.Errorf("command %d = %#v, want %#v", i, got, w)
		}
	}
}

func TestAssembleAxialResistor(t *testing.T) {
	elems := []circuit.Element{
		&circuit.Other{Kind: "source_component"},
		&circuit.PlatedHole{X: -10, Y: 10, Diameter: circuit.Float(2.5), Shape: circuit.String("circle")},
		&circuit.PlatedHole{X: 0.3103934649070921, Y: -10.745920624907164, Diameter: circuit.Float(1), Shape: circuit.String("circle")},
		&circuit.Via{X: -4.281249780862737, Y: -14.233181814231745, Diameter: circuit.Float(0.3)},
	}

	out := excellon.Stringify(Convert(elems, testOptions()))
	for _, want := range []string{"X-10.0000Y10.0000", "T10C2.500000", "T11C1.000000", "T12C0.300000", "G90", "G05", "X-4.2812Y-14.2332"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAssembleToolNumbering(t *testing.T) {
	elems := []circuit.Element{
		&circuit.Via{X: 0, Y: 0, Diameter: circuit.Float(0.3)},
		&circuit.UnplatedHole{X: 1, Y: 0, Diameter: circuit.Float(3.2)},
		&circuit.Via{X: 2, Y: 0, Diameter: circuit.Float(0.3)},
		&circuit.PlatedHole{X: 3, Y: 0, Diameter: circuit.Float(1)},
		&circuit.UnplatedHole{X: 4, Y: 0, Diameter: circuit.Float(3.2)},
	}

	res := Assemble(elems, testOptions())

	wantDefs := []excellon.DefineTool{
		{Tool: 10, Diameter: 0.3},
		{Tool: 11, Diameter: 3.2},
		{Tool: 12, Diameter: 1},
	}
	if got := toolDefs(res.Program); !reflect.DeepEqual(got, wantDefs) {
		t.Errorf("tool defs = %v, want %v", got, wantDefs)
	}

	// Hits are grouped by tool, in input order within each tool.
	wantHits := []excellon.DrillAt{
		{X: 0, Y: 0}, {X: 2, Y: 0},
		{X: 1, Y: 0}, {X: 4, Y: 0},
		{X: 3, Y: 0},
	}
	if got := drillHits(res.Program); !reflect.DeepEqual(got, wantHits) {
		t.Errorf("hits = %v, want %v", got, wantHits)
	}

	wantUsage := []ToolUsage{
		{Tool: Tool{Number: 10, Diameter: 0.3}, Holes: 2},
		{Tool: Tool{Number: 11, Diameter: 3.2}, Holes: 2},
		{Tool: Tool{Number: 12, Diameter: 1}, Holes: 1},
	}
	if !reflect.DeepEqual(res.Tools, wantUsage) {
		t.Errorf("Tools = %+v, want %+v", res.Tools, wantUsage)
	}
}

func TestAssembleBodyOrder(t *testing.T) {
	elems := []circuit.Element{
		&circuit.Via{X: 1, Y: 1, Diameter: circuit.Float(0.3)},
		&circuit.UnplatedHole{X: 2, Y: 2, Diameter: circuit.Float(1)},
	}
	p := Convert(elems, testOptions())

	body := kinds(p)[len(headerKinds):]
	want := []excellon.Kind{
		excellon.KindApertureFunction, excellon.KindDefineTool,
		excellon.KindApertureFunction, excellon.KindDefineTool,
		excellon.KindEndHeader, excellon.KindAbsoluteMode, excellon.KindDrillMode,
		excellon.KindUseTool, excellon.KindDrillAt,
		excellon.KindUseTool, excellon.KindDrillAt,
		excellon.KindProgramEnd,
	}
	if !reflect.DeepEqual(body, want) {
		t.Errorf("body = %v, want %v", body, want)
	}
}

func TestAssembleOffsetCircle(t *testing.T) {
	elems := []circuit.Element{&circuit.PlatedHole{
		X: 10, Y: 10,
		Shape:     circuit.String("circular_hole_with_rect_pad"),
		HoleShape: circuit.String("circle"),
		PadShape:  circuit.String("rect"),
		Diameter:  circuit.Float(0.8),
		OffsetX:   circuit.Float(0.5),
		OffsetY:   circuit.Float(-0.25),
	}}

	out := excellon.Stringify(Convert(elems, testOptions()))
	if !strings.Contains(out, "X10.5000Y9.7500") {
		t.Errorf("output missing offset hit:\n%s", out)
	}
}

func TestAssembleOffsetPill(t *testing.T) {
	elems := []circuit.Element{&circuit.PlatedHole{
		X: 1, Y: 2,
		Shape:     circuit.String("pill_hole_with_rect_pad"),
		HoleShape: circuit.String("pill"),
		Width:     circuit.Float(2.4),
		Height:    circuit.Float(0.6),
		OffsetX:   circuit.Float(-0.3),
		OffsetY:   circuit.Float(0.2),
	}}

	res := Assemble(elems, testOptions())
	out := excellon.Stringify(res.Program)
	for _, want := range []string{"T10C0.600000", "X-0.2000Y2.2000", "X1.6000Y2.2000"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if res.Tools[0].Slots != 1 || res.Tools[0].Holes != 0 {
		t.Errorf("usage = %+v, want one slot", res.Tools[0])
	}
}

func TestAssembleRotatedOffsetPill(t *testing.T) {
	elems := []circuit.Element{&circuit.PlatedHole{
		X: 5, Y: 5,
		Shape:       circuit.String("rotated_pill_hole_with_rect_pad"),
		HoleShape:   circuit.String("rotated_pill"),
		Width:       circuit.Float(1.4),
		Height:      circuit.Float(0.6),
		CCWRotation: circuit.Float(90),
		OffsetX:     circuit.Float(0.1),
		OffsetY:     circuit.Float(0.2),
	}}

	out := excellon.Stringify(Convert(elems, testOptions()))
	for _, want := range []string{"X5.1000Y4.8000", "X5.1000Y5.6000"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAssembleSlotSequence(t *testing.T) {
	p := Convert([]circuit.Element{pill(1, 2, 2.4, 0.6)}, testOptions())

	seq := kinds(p)
	i := indexOf(seq, excellon.KindUseTool)
	if i < 0 {
		t.Fatal("no use_tool command")
	}
	want := []excellon.Kind{
		excellon.KindUseTool,
		excellon.KindRapidMode,
		excellon.KindDrillAt,
		excellon.KindRouteStart,
		excellon.KindLinearMode,
		excellon.KindDrillAt,
		excellon.KindRouteEnd,
		excellon.KindDrillMode,
		excellon.KindProgramEnd,
	}
	if got := seq[i:]; !reflect.DeepEqual(got, want) {
		t.Errorf("slot sequence = %v, want %v", got, want)
	}

	hits := drillHits(p)
	if !near(hits[0].X, 0.1) || !near(hits[1].X, 1.9) || hits[0].Y != 2 || hits[1].Y != 2 {
		t.Errorf("slot hits = %v, want (0.1, 2) -> (1.9, 2)", hits)
	}
}

func indexOf(s []excellon.Kind, k excellon.Kind) int {
	for i, v := range s {
		if v == k {
			return i
		}
	}
	return -1
}

func TestAssembleFlipY(t *testing.T) {
	elems := []circuit.Element{
		&circuit.PlatedHole{X: 1, Y: 2, Diameter: circuit.Float(1), OffsetX: circuit.Float(0.25), OffsetY: circuit.Float(0.5)},
		&circuit.UnplatedHole{X: -3, Y: -4, Diameter: circuit.Float(2)},
		pill(0, 1, 0.6, 1.6),
	}
	opts := testOptions()
	opts.FlipY = true

	hits := drillHits(Convert(elems, opts))
	want := []excellon.DrillAt{
		{X: 1.25, Y: -2.5}, // (y + offsetY) * -1
		{X: -3, Y: 4},
	}
	if !reflect.DeepEqual(hits[:2], want) {
		t.Errorf("hits = %v, want %v", hits[:2], want)
	}
	// vertical slot from y=0.5 to y=1.5, flipped
	if !near(hits[2].Y, -0.5) || !near(hits[3].Y, -1.5) || !near(hits[2].X, 0) || !near(hits[3].X, 0) {
		t.Errorf("slot hits = %v, want (0, -0.5) -> (0, -1.5)", hits[2:])
	}
}

func TestAssembleExcludePlated(t *testing.T) {
	elems := []circuit.Element{
		&circuit.PlatedHole{X: 1, Y: 1, Diameter: circuit.Float(1)},
		&circuit.Via{X: 2, Y: 2, Diameter: circuit.Float(0.3)},
		&circuit.UnplatedHole{X: 3, Y: 3, Diameter: circuit.Float(1)},
	}
	opts := testOptions()
	opts.IncludePlated = false

	res := Assemble(elems, opts)

	if got := len(toolDefs(res.Program)); got != 2 {
		t.Errorf("tool defs = %d, want 2 (definitions ignore the filter)", got)
	}
	if got := res.Program.Count(excellon.KindUseTool); got != 2 {
		t.Errorf("use_tool = %d, want 2", got)
	}
	hits := drillHits(res.Program)
	if want := []excellon.DrillAt{{X: 3, Y: 3}}; !reflect.DeepEqual(hits, want) {
		t.Errorf("hits = %v, want %v", hits, want)
	}
	if res.Tools[0].Excluded != 1 || res.Tools[1].Excluded != 1 {
		t.Errorf("usage = %+v, want one exclusion per tool", res.Tools)
	}
}

func TestAssembleSkipsUnresolvable(t *testing.T) {
	elems := []circuit.Element{
		&circuit.Via{X: 0, Y: 0},
		&circuit.PlatedHole{X: 0, Y: 0, HoleShape: circuit.String("pill"), Width: circuit.Float(1)},
		&circuit.UnplatedHole{X: 0, Y: 0, Diameter: circuit.Float(0)},
		&circuit.Other{Kind: "pcb_trace"},
		&circuit.UnplatedHole{X: 5, Y: 5, Diameter: circuit.Float(1)},
	}

	res := Assemble(elems, testOptions())
	if res.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", res.Skipped)
	}
	if got := len(toolDefs(res.Program)); got != 1 {
		t.Errorf("tool defs = %d, want 1", got)
	}
	if got := len(drillHits(res.Program)); got != 1 {
		t.Errorf("hits = %d, want 1", got)
	}
}

func TestAssembleDegeneratePill(t *testing.T) {
	res := Assemble([]circuit.Element{pill(3, 4, 1, 1)}, testOptions())
	if got := res.Program.Count(excellon.KindRouteStart); got != 0 {
		t.Errorf("route starts = %d, want 0", got)
	}
	if hits := drillHits(res.Program); len(hits) != 1 || hits[0] != (excellon.DrillAt{X: 3, Y: 4}) {
		t.Errorf("hits = %v, want single hit at (3, 4)", hits)
	}
}

func TestAssembleIdempotent(t *testing.T) {
	elems := []circuit.Element{
		pill(1, 2, 2.4, 0.6),
		&circuit.Via{X: 2, Y: 2, Diameter: circuit.Float(0.3)},
	}
	a := Convert(elems, testOptions())
	b := Convert(elems, testOptions())
	if !reflect.DeepEqual(a, b) {
		t.Error("identical input with a frozen clock must give identical programs")
	}
}

func TestAssembleCustomToolBase(t *testing.T) {
	opts := testOptions()
	opts.ToolBase = 1
	p := Convert([]circuit.Element{&circuit.Via{Diameter: circuit.Float(0.3)}}, opts)
	if defs := toolDefs(p); len(defs) != 1 || defs[0].Tool != 1 {
		t.Errorf("tool defs = %v, want tool 1", defs)
	}
}

func TestAssembleZeroToolBaseUsesDefault(t *testing.T) {
	opts := testOptions()
	opts.ToolBase = 0
	p := Convert([]circuit.Element{&circuit.Via{Diameter: circuit.Float(0.3)}}, opts)
	if defs := toolDefs(p); len(defs) != 1 || defs[0].Tool != DefaultToolBase {
		t.Errorf("tool defs = %v, want tool %d", defs, DefaultToolBase)
	}
}

func TestAssembleDoesNotMutateInput(t *testing.T) {
	h := &circuit.PlatedHole{X: 1, Y: 2, Diameter: circuit.Float(1), OffsetX: circuit.Float(1), OffsetY: circuit.Float(1)}
	elems := []circuit.Element{h}
	opts := testOptions()
	opts.FlipY = true
	Convert(elems, opts)

	if h.X != 1 || h.Y != 2 || *h.OffsetX != 1 || *h.OffsetY != 1 {
		t.Errorf("element mutated: %+v", h)
	}
}
