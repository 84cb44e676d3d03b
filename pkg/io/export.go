package io

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/pcbdrill/pkg/excellon"
)

// Extensions used for derived output paths.
const (
	ExtExcellon = ".drl"
	ExtJSON     = ".json"
)

// WriteExcellon renders p as Excellon text to w.
func WriteExcellon(p excellon.Program, w io.Writer) error {
	if err := excellon.Write(w, p); err != nil {
		return fmt.Errorf("write excellon: %w", err)
	}
	return nil
}

// ExportExcellon writes p as Excellon text to the file at path.
func ExportExcellon(p excellon.Program, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return WriteExcellon(p, f)
}

// WriteCommandsJSON writes p as an indented JSON command list to w.
func WriteCommandsJSON(p excellon.Program, w io.Writer) error {
	data, err := excellon.MarshalProgram(p)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// WriteFile writes data to path, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// DerivePath replaces the extension of input with ext. When input already
// ends in ext (a JSON command export of a .json board), the format name is
// inserted: board.json -> board.commands.json.
func DerivePath(input, ext string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if strings.EqualFold(filepath.Ext(input), ext) {
		return base + ".commands" + ext
	}
	return base + ext
}
