package drill

import (
	"math"
	"testing"

	"github.com/matzehuels/pcbdrill/pkg/circuit"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func nearPoint(a, b circuit.Point) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func pill(x, y, w, h float64) *circuit.PlatedHole {
	return &circuit.PlatedHole{
		X: x, Y: y,
		HoleShape: circuit.String("pill"),
		Width:     circuit.Float(w),
		Height:    circuit.Float(h),
	}
}

func TestResolveOffset(t *testing.T) {
	tests := []struct {
		name   string
		elem   circuit.Element
		dx, dy float64
	}{
		{"plated with offset", &circuit.PlatedHole{OffsetX: circuit.Float(0.5), OffsetY: circuit.Float(-0.25)}, 0.5, -0.25},
		{"plated partial offset", &circuit.PlatedHole{OffsetX: circuit.Float(0.5)}, 0, 0},
		{"via", &circuit.Via{}, 0, 0},
		{"unplated", &circuit.UnplatedHole{}, 0, 0},
		{"other", &circuit.Other{Kind: "pcb_trace"}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy := ResolveOffset(tt.elem)
			if dx != tt.dx || dy != tt.dy {
				t.Errorf("ResolveOffset() = (%v, %v), want (%v, %v)", dx, dy, tt.dx, tt.dy)
			}
		})
	}
}

func TestResolveShapeTag(t *testing.T) {
	h := &circuit.PlatedHole{Shape: circuit.String("pill_hole_with_rect_pad"), HoleShape: circuit.String("pill")}
	if tag, ok := ResolveShapeTag(h); !ok || tag != "pill" {
		t.Errorf("ResolveShapeTag() = %q, %v, want pill, true", tag, ok)
	}
	h = &circuit.PlatedHole{Shape: circuit.String("pill_hole_with_rect_pad")}
	if tag, ok := ResolveShapeTag(h); !ok || tag != "pill_hole_with_rect_pad" {
		t.Errorf("ResolveShapeTag() = %q, %v, want generic shape", tag, ok)
	}
	if _, ok := ResolveShapeTag(&circuit.UnplatedHole{Shape: circuit.String("circle")}); ok {
		t.Error("ResolveShapeTag() should be undefined for unplated holes")
	}
}

func TestResolveToolDiameter(t *testing.T) {
	tests := []struct {
		name   string
		elem   circuit.Element
		want   float64
		wantOK bool
	}{
		{"plated circle", &circuit.PlatedHole{Diameter: circuit.Float(1)}, 1, true},
		{"via", &circuit.Via{Diameter: circuit.Float(0.3)}, 0.3, true},
		{"unplated", &circuit.UnplatedHole{Diameter: circuit.Float(3.2)}, 3.2, true},
		{"pill minor axis", pill(0, 0, 2.4, 0.6), 0.6, true},
		{"tall pill minor axis", pill(0, 0, 0.6, 2.4), 0.6, true},
		{"diameter wins over pill", &circuit.PlatedHole{
			HoleShape: circuit.String("pill"), Diameter: circuit.Float(0.9),
			Width: circuit.Float(2), Height: circuit.Float(1),
		}, 0.9, true},
		{"pill via generic shape", &circuit.PlatedHole{
			Shape: circuit.String("pill_hole_with_rect_pad"),
			Width: circuit.Float(2), Height: circuit.Float(1),
		}, 1, true},
		{"pill missing height", &circuit.PlatedHole{HoleShape: circuit.String("pill"), Width: circuit.Float(2)}, 0, false},
		{"circle without diameter", &circuit.PlatedHole{HoleShape: circuit.String("circle"), Width: circuit.Float(2), Height: circuit.Float(1)}, 0, false},
		{"via without diameter", &circuit.Via{}, 0, false},
		{"zero diameter", &circuit.UnplatedHole{Diameter: circuit.Float(0)}, 0, false},
		{"negative diameter", &circuit.Via{Diameter: circuit.Float(-1)}, 0, false},
		{"zero diameter does not fall back to pill", &circuit.PlatedHole{
			HoleShape: circuit.String("pill"), Diameter: circuit.Float(0),
			Width: circuit.Float(2), Height: circuit.Float(1),
		}, 0, false},
		{"nan diameter does not fall back to pill", &circuit.PlatedHole{
			HoleShape: circuit.String("pill"), Diameter: circuit.Float(math.NaN()),
			Width: circuit.Float(2), Height: circuit.Float(1),
		}, 0, false},
		{"nan via diameter", &circuit.Via{Diameter: circuit.Float(math.NaN())}, 0, false},
		{"other", &circuit.Other{Kind: "pcb_smtpad"}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveToolDiameter(tt.elem)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ResolveToolDiameter() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolveCenter(t *testing.T) {
	h := &circuit.PlatedHole{X: 10, Y: 10, OffsetX: circuit.Float(0.5), OffsetY: circuit.Float(-0.25)}
	c, ok := ResolveCenter(h)
	if !ok || !nearPoint(c, circuit.Point{X: 10.5, Y: 9.75}) {
		t.Errorf("ResolveCenter() = %v, %v, want (10.5, 9.75)", c, ok)
	}

	v := &circuit.Via{X: -4, Y: 3}
	if c, _ := ResolveCenter(v); c != (circuit.Point{X: -4, Y: 3}) {
		t.Errorf("ResolveCenter(via) = %v, want (-4, 3)", c)
	}

	if _, ok := ResolveCenter(&circuit.Other{}); ok {
		t.Error("ResolveCenter(other) should report false")
	}
}

func TestResolveSlotEndpoints(t *testing.T) {
	tests := []struct {
		name      string
		elem      *circuit.PlatedHole
		wantOK    bool
		wantStart circuit.Point
		wantEnd   circuit.Point
	}{
		{
			name:      "horizontal pill",
			elem:      pill(1, 2, 2.4, 0.6),
			wantOK:    true,
			wantStart: circuit.Point{X: 0.1, Y: 2},
			wantEnd:   circuit.Point{X: 1.9, Y: 2},
		},
		{
			name:      "vertical pill",
			elem:      pill(1, 2, 0.6, 2.4),
			wantOK:    true,
			wantStart: circuit.Point{X: 1, Y: 1.1},
			wantEnd:   circuit.Point{X: 1, Y: 2.9},
		},
		{
			name: "rotated pill 90",
			elem: &circuit.PlatedHole{
				X: 1, Y: 2,
				HoleShape:   circuit.String("rotated_pill"),
				Width:       circuit.Float(2.4),
				Height:      circuit.Float(0.6),
				CCWRotation: circuit.Float(90),
			},
			wantOK:    true,
			wantStart: circuit.Point{X: 1, Y: 1.1},
			wantEnd:   circuit.Point{X: 1, Y: 2.9},
		},
		{
			name: "rotation ignored without rotated tag",
			elem: &circuit.PlatedHole{
				X: 1, Y: 2,
				HoleShape:   circuit.String("pill"),
				Width:       circuit.Float(2.4),
				Height:      circuit.Float(0.6),
				CCWRotation: circuit.Float(90),
			},
			wantOK:    true,
			wantStart: circuit.Point{X: 0.1, Y: 2},
			wantEnd:   circuit.Point{X: 1.9, Y: 2},
		},
		{
			name: "rotated pill without rotation",
			elem: &circuit.PlatedHole{
				X: 0, Y: 0,
				HoleShape: circuit.String("rotated_pill"),
				Width:     circuit.Float(2),
				Height:    circuit.Float(1),
			},
			wantOK:    true,
			wantStart: circuit.Point{X: -0.5, Y: 0},
			wantEnd:   circuit.Point{X: 0.5, Y: 0},
		},
		{
			name:   "degenerate pill",
			elem:   pill(0, 0, 1, 1),
			wantOK: false,
		},
		{
			name:   "circle",
			elem:   &circuit.PlatedHole{HoleShape: circuit.String("circle"), Width: circuit.Float(2), Height: circuit.Float(1)},
			wantOK: false,
		},
		{
			name:   "pill missing width",
			elem:   &circuit.PlatedHole{HoleShape: circuit.String("pill"), Height: circuit.Float(1)},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, ok := ResolveSlotEndpoints(tt.elem, tt.elem.Position())
			if ok != tt.wantOK {
				t.Fatalf("ResolveSlotEndpoints() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !nearPoint(slot.Start, tt.wantStart) || !nearPoint(slot.End, tt.wantEnd) {
				t.Errorf("ResolveSlotEndpoints() = %v -> %v, want %v -> %v", slot.Start, slot.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestResolveSlotEndpointsNotPlated(t *testing.T) {
	if _, ok := ResolveSlotEndpoints(&circuit.UnplatedHole{Shape: circuit.String("pill")}, circuit.Point{}); ok {
		t.Error("unplated holes never have slots")
	}
}

func TestResolveSlotCenteredOnCenter(t *testing.T) {
	h := &circuit.PlatedHole{
		X: 5, Y: 5,
		HoleShape:   circuit.String("rotated_pill"),
		Width:       circuit.Float(3),
		Height:      circuit.Float(1),
		CCWRotation: circuit.Float(37),
	}
	slot, ok := ResolveSlotEndpoints(h, h.Position())
	if !ok {
		t.Fatal("expected slot")
	}
	mid := circuit.Point{X: (slot.Start.X + slot.End.X) / 2, Y: (slot.Start.Y + slot.End.Y) / 2}
	if !nearPoint(mid, h.Position()) {
		t.Errorf("slot midpoint = %v, want %v", mid, h.Position())
	}
	length := math.Hypot(slot.End.X-slot.Start.X, slot.End.Y-slot.Start.Y)
	if !near(length, 2) {
		t.Errorf("slot length = %v, want 2 (major - minor)", length)
	}
}

func TestResolve(t *testing.T) {
	h := &circuit.PlatedHole{
		X: 1, Y: 2,
		HoleShape: circuit.String("pill"),
		Width:     circuit.Float(2.4),
		Height:    circuit.Float(0.6),
		OffsetX:   circuit.Float(-0.3),
		OffsetY:   circuit.Float(0.2),
	}
	g, ok := Resolve(h)
	if !ok {
		t.Fatal("Resolve() ok = false")
	}
	if g.Diameter != 0.6 {
		t.Errorf("Diameter = %v, want 0.6", g.Diameter)
	}
	if !nearPoint(g.Center, circuit.Point{X: 0.7, Y: 2.2}) {
		t.Errorf("Center = %v, want (0.7, 2.2)", g.Center)
	}
	if g.Slot == nil {
		t.Fatal("Slot = nil, want slot")
	}
	if !nearPoint(g.Slot.Start, circuit.Point{X: -0.2, Y: 2.2}) || !nearPoint(g.Slot.End, circuit.Point{X: 1.6, Y: 2.2}) {
		t.Errorf("Slot = %v, want (-0.2, 2.2) -> (1.6, 2.2)", *g.Slot)
	}

	if _, ok := Resolve(&circuit.Via{}); ok {
		t.Error("Resolve() of via without diameter should report false")
	}
}
