package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxGeneratorLength bounds the generator name written into drill headers.
const maxGeneratorLength = 64

// ValidateGenerator validates the generator name written into the drill
// header. The name lands inside header comment and attribute lines, so it
// must be a single printable line.
//
// Validation rules:
//   - Not empty
//   - Maximum length of 64 characters
//   - No control characters (newlines would split the header line)
//   - No braces or commas, which delimit header fields
func ValidateGenerator(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "generator cannot be empty")
	}

	if len(name) > maxGeneratorLength {
		return New(ErrCodeInvalidInput, "generator too long (max %d characters)", maxGeneratorLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "generator contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "{},") {
		return New(ErrCodeInvalidInput, "generator cannot contain braces or commas")
	}

	return nil
}

// ValidatePath validates a local input or output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must not name a directory (no trailing separator)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}

// ValidateInputFile validates the path of a circuit JSON input file.
// In addition to [ValidatePath], the file must have a .json extension so
// that derived output names (board.json -> board.drl) are well defined.
func ValidateInputFile(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return New(ErrCodeInvalidPath, "input %q must be a .json circuit file", path)
	}
	return nil
}
