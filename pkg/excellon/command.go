package excellon

// Kind identifies a command. The values are the stable "command_code" names
// understood by serializers; do not rename them.
type Kind string

const (
	KindStartHeader      Kind = "M48"
	KindHeaderComment    Kind = "header_comment"
	KindHeaderAttribute  Kind = "header_attribute"
	KindFormat           Kind = "FMAT"
	KindUnitFormat       Kind = "unit_format"
	KindApertureFunction Kind = "aper_function_header"
	KindDefineTool       Kind = "define_tool"
	KindEndHeader        Kind = "percent_sign"
	KindAbsoluteMode     Kind = "G90"
	KindDrillMode        Kind = "G05"
	KindUseTool          Kind = "use_tool"
	KindRapidMode        Kind = "G00"
	KindDrillAt          Kind = "drill_at"
	KindRouteStart       Kind = "M15"
	KindLinearMode       Kind = "G01"
	KindRouteEnd         Kind = "M16"
	KindProgramEnd       Kind = "M30"
)

// Command is one drill program instruction.
type Command interface {
	Kind() Kind
}

// Unit is the measurement system declared in the header.
type Unit string

const (
	UnitMetric Unit = "METRIC"
	UnitInch   Unit = "INCH"
)

// ZeroMode selects which zeros are kept in coordinates without a decimal
// point. ZerosUnspecified omits the field, which is correct for the decimal
// coordinates this package writes.
type ZeroMode string

const (
	ZerosUnspecified ZeroMode = ""
	ZerosLeading     ZeroMode = "LZ"
	ZerosTrailing    ZeroMode = "TZ"
)

// StartHeader opens the header section (M48).
type StartHeader struct{}

// HeaderComment is a free-text comment line in the header.
type HeaderComment struct {
	Text string
}

// HeaderAttribute is a file attribute such as TF.CreationDate.
type HeaderAttribute struct {
	Name  string
	Value string
}

// FormatSelect selects the Excellon format version (FMAT).
type FormatSelect struct {
	Version int
}

// UnitFormat declares units and zero handling.
type UnitFormat struct {
	Unit  Unit
	Zeros ZeroMode
}

// ApertureFunction precedes a tool definition and describes the hole class.
type ApertureFunction struct {
	Plated bool
}

// DefineTool assigns a diameter to a tool number.
type DefineTool struct {
	Tool     int
	Diameter float64
}

// EndHeader closes the header (%).
type EndHeader struct{}

// AbsoluteMode selects absolute coordinates (G90).
type AbsoluteMode struct{}

// DrillMode selects drill mode (G05).
type DrillMode struct{}

// UseTool selects the active tool.
type UseTool struct {
	Tool int
}

// RapidMode selects rapid positioning (G00).
type RapidMode struct{}

// DrillAt drills, or moves to, a coordinate.
type DrillAt struct {
	X float64
	Y float64
}

// RouteStart lowers the tool for routing (M15).
type RouteStart struct{}

// LinearMode selects linear interpolation (G01).
type LinearMode struct{}

// RouteEnd retracts the tool after routing (M16).
type RouteEnd struct{}

// ProgramEnd ends the program (M30).
type ProgramEnd struct{}

func (StartHeader) Kind() Kind      { return KindStartHeader }
func (HeaderComment) Kind() Kind    { return KindHeaderComment }
func (HeaderAttribute) Kind() Kind  { return KindHeaderAttribute }
func (FormatSelect) Kind() Kind     { return KindFormat }
func (UnitFormat) Kind() Kind       { return KindUnitFormat }
func (ApertureFunction) Kind() Kind { return KindApertureFunction }
func (DefineTool) Kind() Kind       { return KindDefineTool }
func (EndHeader) Kind() Kind        { return KindEndHeader }
func (AbsoluteMode) Kind() Kind     { return KindAbsoluteMode }
func (DrillMode) Kind() Kind        { return KindDrillMode }
func (UseTool) Kind() Kind          { return KindUseTool }
func (RapidMode) Kind() Kind        { return KindRapidMode }
func (DrillAt) Kind() Kind          { return KindDrillAt }
func (RouteStart) Kind() Kind       { return KindRouteStart }
func (LinearMode) Kind() Kind       { return KindLinearMode }
func (RouteEnd) Kind() Kind         { return KindRouteEnd }
func (ProgramEnd) Kind() Kind       { return KindProgramEnd }
