package io

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/pcbdrill/pkg/circuit"
	"github.com/matzehuels/pcbdrill/pkg/errors"
)

// ReadCircuit decodes a circuit JSON document from r.
//
// Individual elements are decoded leniently (see [circuit.Decode]); an error
// is returned only when r cannot be read or the document is not an array of
// objects. ReadCircuit does not close r.
func ReadCircuit(r io.Reader) ([]circuit.Element, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return circuit.Decode(data)
}

// ImportCircuit reads the circuit JSON file at path.
func ImportCircuit(path string) ([]circuit.Element, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	elems, err := circuit.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return elems, nil
}

// ReadFile returns the raw contents of the file at path. A missing file is
// reported with code FILE_NOT_FOUND.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "no such file: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
