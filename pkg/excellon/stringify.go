package excellon

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Write renders p as Excellon text, one command per line.
func Write(w io.Writer, p Program) error {
	bw := bufio.NewWriter(w)
	for i, c := range p.cmds {
		line, err := formatCommand(c)
		if err != nil {
			return fmt.Errorf("command %d: %w", i, err)
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Stringify renders p as Excellon text. It panics only if p contains a
// command type unknown to this package.
func Stringify(p Program) string {
	var sb strings.Builder
	if err := Write(&sb, p); err != nil {
		panic(err)
	}
	return sb.String()
}

func formatCommand(c Command) (string, error) {
	switch c := c.(type) {
	case StartHeader:
		return "M48", nil
	case HeaderComment:
		return "; " + c.Text, nil
	case HeaderAttribute:
		return fmt.Sprintf("; #@! %s,%s", c.Name, c.Value), nil
	case FormatSelect:
		return fmt.Sprintf("FMAT,%d", c.Version), nil
	case UnitFormat:
		if c.Zeros == ZerosUnspecified {
			return string(c.Unit), nil
		}
		return fmt.Sprintf("%s,%s", c.Unit, c.Zeros), nil
	case ApertureFunction:
		if c.Plated {
			return "; #@! TA.AperFunction,Plated,PTH,ComponentDrill", nil
		}
		return "; #@! TA.AperFunction,NonPlated,NPTH,ComponentDrill", nil
	case DefineTool:
		return fmt.Sprintf("T%02dC%.6f", c.Tool, positiveZero(c.Diameter)), nil
	case EndHeader:
		return "%", nil
	case UseTool:
		return fmt.Sprintf("T%02d", c.Tool), nil
	case DrillAt:
		return fmt.Sprintf("X%.4fY%.4f", positiveZero(c.X), positiveZero(c.Y)), nil
	case AbsoluteMode, DrillMode, RapidMode, RouteStart, LinearMode, RouteEnd, ProgramEnd:
		return string(c.Kind()), nil
	default:
		return "", fmt.Errorf("unsupported command %T", c)
	}
}

// positiveZero maps -0 to 0 so a flipped origin prints as "0.0000".
func positiveZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
