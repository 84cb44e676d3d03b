package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/pcbdrill/pkg/circuit"
	"github.com/matzehuels/pcbdrill/pkg/errors"
	"github.com/matzehuels/pcbdrill/pkg/excellon"
)

func TestReadCircuit(t *testing.T) {
	r := strings.NewReader(`[{"type": "pcb_via", "x": 1, "y": 2, "hole_diameter": 0.3}]`)
	elems, err := ReadCircuit(r)
	if err != nil {
		t.Fatalf("ReadCircuit error: %v", err)
	}
	if len(elems) != 1 || elems[0].Type() != circuit.TypeVia {
		t.Errorf("elems = %v, want one via", elems)
	}
}

func TestReadCircuitInvalid(t *testing.T) {
	_, err := ReadCircuit(strings.NewReader(`{"nodes": []}`))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestImportCircuit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.json")
	if err := os.WriteFile(path, []byte(`[{"type": "pcb_hole", "x": 0, "y": 0, "hole_diameter": 3.2}]`), 0644); err != nil {
		t.Fatal(err)
	}

	elems, err := ImportCircuit(path)
	if err != nil {
		t.Fatalf("ImportCircuit error: %v", err)
	}
	if len(elems) != 1 {
		t.Errorf("len = %d, want 1", len(elems))
	}
}

func TestImportCircuitMissing(t *testing.T) {
	_, err := ImportCircuit(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestExportExcellon(t *testing.T) {
	p := excellon.NewProgram(excellon.StartHeader{}, excellon.ProgramEnd{})
	path := filepath.Join(t.TempDir(), "board.drl")

	if err := ExportExcellon(p, path); err != nil {
		t.Fatalf("ExportExcellon error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "M48\nM30\n" {
		t.Errorf("file = %q, want %q", data, "M48\nM30\n")
	}
}

func TestExportExcellonError(t *testing.T) {
	p := excellon.NewProgram(excellon.StartHeader{}, excellon.ProgramEnd{})
	path := filepath.Join(t.TempDir(), "missing", "board.drl")

	if err := ExportExcellon(p, path); err == nil {
		t.Error("ExportExcellon into a missing directory should fail")
	}
}

func TestWriteCommandsJSON(t *testing.T) {
	p := excellon.NewProgram(excellon.UseTool{Tool: 10})
	var buf bytes.Buffer
	if err := WriteCommandsJSON(p, &buf); err != nil {
		t.Fatalf("WriteCommandsJSON error: %v", err)
	}
	var out []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if out[0]["command_code"] != "use_tool" {
		t.Errorf("out = %v", out)
	}
}

func TestWriteFileCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "board.drl")
	if err := WriteFile(path, []byte("M30\n")); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestDerivePath(t *testing.T) {
	tests := []struct {
		input, ext, want string
	}{
		{"board.json", ExtExcellon, "board.drl"},
		{"dir/board.json", ExtExcellon, "dir/board.drl"},
		{"board.json", ExtJSON, "board.commands.json"},
		{"board", ExtExcellon, "board.drl"},
	}

	for _, tt := range tests {
		if got := DerivePath(tt.input, tt.ext); got != tt.want {
			t.Errorf("DerivePath(%q, %q) = %q, want %q", tt.input, tt.ext, got, tt.want)
		}
	}
}
