package pipeline

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/pcbdrill/pkg/excellon"
	pcbio "github.com/matzehuels/pcbdrill/pkg/io"
)

// Render serializes p into every format in formats.
func Render(p excellon.Program, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := RenderFormat(p, format)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat serializes p into a single format.
func RenderFormat(p excellon.Program, format string) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case FormatDrill:
		err = pcbio.WriteExcellon(p, &buf)
	case FormatJSON:
		err = pcbio.WriteCommandsJSON(p, &buf)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
