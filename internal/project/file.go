package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Parse parses descriptor content. Anything that is not a JSON object with
// well-formed folders is rejected.
func Parse(data []byte) (*Descriptor, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, fmt.Errorf("parsing project descriptor: not a JSON object")
	}
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing project descriptor: %w", err)
	}
	return &d, nil
}

// Load reads the descriptor at path. A missing file yields (nil, nil).
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the configured project file
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading project file %s: %w", path, err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Marshal renders d as tab-indented JSON with a trailing newline.
func Marshal(d *Descriptor) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("marshaling project descriptor: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes d to path via a temporary file in the same directory, so an
// interrupted write never leaves a truncated descriptor behind.
func Save(path string, d *Descriptor) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil { //nolint:gosec // project dir needs to be readable
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("writing project file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing project file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing project file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil { //nolint:gosec // project file needs to be readable
		return fmt.Errorf("writing project file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing project file: %w", err)
	}
	return nil
}
