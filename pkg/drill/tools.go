package drill

// DefaultToolBase is the first tool number assigned.
const DefaultToolBase = 10

// Tool is one entry of a [ToolTable].
type Tool struct {
	Number   int     `json:"number"`
	Diameter float64 `json:"diameter"`
}

// ToolTable maps distinct diameters to sequential tool numbers in order of
// first assignment. It is owned by a single conversion and not safe for
// concurrent use.
type ToolTable struct {
	base      int
	numbers   map[float64]int
	diameters []float64
}

// NewToolTable returns an empty table numbering tools from base.
func NewToolTable(base int) *ToolTable {
	return &ToolTable{base: base, numbers: make(map[float64]int)}
}

// Assign returns the tool number for d, allocating the next number if d has
// not been seen. added reports whether a new tool was allocated.
func (t *ToolTable) Assign(d float64) (tool int, added bool) {
	if n, ok := t.numbers[d]; ok {
		return n, false
	}
	n := t.base + len(t.diameters)
	t.numbers[d] = n
	t.diameters = append(t.diameters, d)
	return n, true
}

// Lookup returns the tool number for d.
func (t *ToolTable) Lookup(d float64) (int, bool) {
	n, ok := t.numbers[d]
	return n, ok
}

// Len returns the number of tools.
func (t *ToolTable) Len() int { return len(t.diameters) }

// Base returns the first tool number.
func (t *ToolTable) Base() int { return t.base }

// Tools returns all tools in ascending tool-number order.
func (t *ToolTable) Tools() []Tool {
	out := make([]Tool, len(t.diameters))
	for i, d := range t.diameters {
		out[i] = Tool{Number: t.base + i, Diameter: d}
	}
	return out
}
