package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the build definition file looked up in the root directory.
const FileName = "build.yaml"

// Validate checks the build definition for errors.
func Validate(b *Build) error { return validate(b) }

// Save validates and writes a build definition to disk.
func Save(path string, b *Build) error {
	if err := validate(b); err != nil {
		return err
	}
	data, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshaling build definition: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // build definition needs to be readable
		return fmt.Errorf("writing build definition: %w", err)
	}
	return nil
}

// Load reads and validates a build.yaml file.
func Load(path string) (*Build, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the build definition path
	if err != nil {
		return nil, fmt.Errorf("reading build definition: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates build.yaml content.
func Parse(data []byte) (*Build, error) {
	var b Build
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing build definition YAML: %w", err)
	}
	if err := validate(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func validate(b *Build) error {
	if b.Version != 1 {
		return fmt.Errorf("unsupported build definition version: %d (expected 1)", b.Version)
	}
	if b.Name == "" {
		return fmt.Errorf("build: name is required")
	}
	if strings.ContainsAny(b.ScalaVersion, "/\\ ") {
		return fmt.Errorf("build: invalid scala_version %q", b.ScalaVersion)
	}

	seen := make(map[string]bool, len(b.Modules))
	for i, m := range b.Modules {
		if err := validateModule(i, m, seen); err != nil {
			return err
		}
		seen[m.ID] = true
	}

	for i, r := range b.Repositories {
		if strings.TrimSpace(r) == "" {
			return fmt.Errorf("build: repositories[%d] is empty", i)
		}
	}
	return nil
}

func validateModule(i int, m Module, seen map[string]bool) error {
	if m.ID == "" {
		return fmt.Errorf("build: modules[%d].id is required", i)
	}
	if seen[m.ID] {
		return fmt.Errorf("build: duplicate module id %q", m.ID)
	}
	if m.Path != "" {
		if err := validatePath(m.Path, m.ID); err != nil {
			return err
		}
	}
	for j, d := range m.Dependencies {
		label := fmt.Sprintf("modules[%d] (%s).dependencies[%d]", i, m.ID, j)
		if d.Org == "" || d.Name == "" || d.Revision == "" {
			return fmt.Errorf("build: %s: org, name and revision are required", label)
		}
	}
	return nil
}

// validatePath ensures a path is relative and does not escape the build root.
func validatePath(p, label string) error {
	if filepath.IsAbs(p) {
		return fmt.Errorf("build: %s: absolute path is not allowed: %s", label, p)
	}
	cleaned := filepath.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("build: %s: path must not escape the build root (contains ..): %s", label, p)
	}
	return nil
}
