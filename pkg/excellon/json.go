package excellon

import (
	"encoding/json"
	"fmt"
)

// jsonCommand is the wire form of a command. Field names are shared with
// other drill tooling and must stay stable.
type jsonCommand struct {
	Code           Kind     `json:"command_code"`
	Text           string   `json:"text,omitempty"`
	AttributeName  string   `json:"attribute_name,omitempty"`
	AttributeValue string   `json:"attribute_value,omitempty"`
	Format         int      `json:"format,omitempty"`
	Unit           Unit     `json:"unit,omitempty"`
	LZ             *string  `json:"lz,omitempty"`
	IsPlated       *bool    `json:"is_plated,omitempty"`
	ToolNumber     *int     `json:"tool_number,omitempty"`
	Diameter       *float64 `json:"diameter,omitempty"`
	X              *float64 `json:"x,omitempty"`
	Y              *float64 `json:"y,omitempty"`
}

// MarshalProgram encodes p as a JSON array of command objects.
func MarshalProgram(p Program) ([]byte, error) {
	out := make([]jsonCommand, len(p.cmds))
	for i, c := range p.cmds {
		jc, err := toJSON(c)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
		out[i] = jc
	}
	return json.MarshalIndent(out, "", "  ")
}

// UnmarshalProgram decodes a JSON array produced by [MarshalProgram].
func UnmarshalProgram(data []byte) (Program, error) {
	var in []jsonCommand
	if err := json.Unmarshal(data, &in); err != nil {
		return Program{}, fmt.Errorf("decode: %w", err)
	}
	b := NewBuilder()
	for i, jc := range in {
		c, err := fromJSON(jc)
		if err != nil {
			return Program{}, fmt.Errorf("command %d: %w", i, err)
		}
		b.Add(c)
	}
	return b.Build(), nil
}

// MarshalJSON implements json.Marshaler.
func (p Program) MarshalJSON() ([]byte, error) {
	return MarshalProgram(p)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Program) UnmarshalJSON(data []byte) error {
	decoded, err := UnmarshalProgram(data)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

func toJSON(c Command) (jsonCommand, error) {
	jc := jsonCommand{Code: c.Kind()}
	switch c := c.(type) {
	case HeaderComment:
		jc.Text = c.Text
	case HeaderAttribute:
		jc.AttributeName = c.Name
		jc.AttributeValue = c.Value
	case FormatSelect:
		jc.Format = c.Version
	case UnitFormat:
		jc.Unit = c.Unit
		if c.Zeros != ZerosUnspecified {
			lz := string(c.Zeros)
			jc.LZ = &lz
		}
	case ApertureFunction:
		jc.IsPlated = &c.Plated
	case DefineTool:
		jc.ToolNumber = &c.Tool
		jc.Diameter = &c.Diameter
	case UseTool:
		jc.ToolNumber = &c.Tool
	case DrillAt:
		jc.X = &c.X
		jc.Y = &c.Y
	case StartHeader, EndHeader, AbsoluteMode, DrillMode, RapidMode,
		RouteStart, LinearMode, RouteEnd, ProgramEnd:
	default:
		return jsonCommand{}, fmt.Errorf("unsupported command %T", c)
	}
	return jc, nil
}

func fromJSON(jc jsonCommand) (Command, error) {
	switch jc.Code {
	case KindStartHeader:
		return StartHeader{}, nil
	case KindHeaderComment:
		return HeaderComment{Text: jc.Text}, nil
	case KindHeaderAttribute:
		return HeaderAttribute{Name: jc.AttributeName, Value: jc.AttributeValue}, nil
	case KindFormat:
		return FormatSelect{Version: jc.Format}, nil
	case KindUnitFormat:
		u := UnitFormat{Unit: jc.Unit}
		if jc.LZ != nil {
			u.Zeros = ZeroMode(*jc.LZ)
		}
		return u, nil
	case KindApertureFunction:
		return ApertureFunction{Plated: deref(jc.IsPlated)}, nil
	case KindDefineTool:
		return DefineTool{Tool: deref(jc.ToolNumber), Diameter: deref(jc.Diameter)}, nil
	case KindEndHeader:
		return EndHeader{}, nil
	case KindAbsoluteMode:
		return AbsoluteMode{}, nil
	case KindDrillMode:
		return DrillMode{}, nil
	case KindUseTool:
		return UseTool{Tool: deref(jc.ToolNumber)}, nil
	case KindRapidMode:
		return RapidMode{}, nil
	case KindDrillAt:
		return DrillAt{X: deref(jc.X), Y: deref(jc.Y)}, nil
	case KindRouteStart:
		return RouteStart{}, nil
	case KindLinearMode:
		return LinearMode{}, nil
	case KindRouteEnd:
		return RouteEnd{}, nil
	case KindProgramEnd:
		return ProgramEnd{}, nil
	default:
		return nil, fmt.Errorf("unknown command_code %q", jc.Code)
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
