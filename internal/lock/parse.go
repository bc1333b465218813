package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a .sources.lock.yaml file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the sources lock path
	if err != nil {
		return nil, fmt.Errorf("reading sources lock: %w", err)
	}
	lf, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lf, nil
}

// Parse parses and validates .sources.lock.yaml content.
func Parse(data []byte) (*File, error) {
	var lf File
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parsing sources lock YAML: %w", err)
	}
	if err := validate(&lf); err != nil {
		return nil, err
	}
	return &lf, nil
}

// Save validates the record and writes it next to the extracted sources.
func Save(path string, lf *File) error {
	if err := validate(lf); err != nil {
		return err
	}
	data, err := yaml.Marshal(lf)
	if err != nil {
		return fmt.Errorf("marshaling sources lock: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // lock file needs to be readable
		return fmt.Errorf("writing sources lock: %w", err)
	}
	return nil
}

func validate(lf *File) error {
	if lf.Version != 1 {
		return fmt.Errorf("unsupported sources lock version: %d (expected 1)", lf.Version)
	}
	for i, a := range lf.Archives {
		if a.Name == "" || a.Dir == "" {
			return fmt.Errorf("sources lock: archives[%d]: name and dir are required", i)
		}
		// dir is a single entry directly below the external sources directory.
		if a.Dir != filepath.Base(a.Dir) || a.Dir == "." || a.Dir == ".." || strings.ContainsAny(a.Dir, `/\`) {
			return fmt.Errorf("sources lock: archives[%d]: dir must be a plain directory name: %s", i, a.Dir)
		}
	}
	return nil
}
