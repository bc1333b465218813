// Package config resolves the project generation settings for one run.
//
// Settings start from defaults computed from the build root and name, then
// the build definition, the environment, and command flags are layered on
// top in that order. Derived values are computed once, after all layers.
package config

import (
	"path/filepath"

	"github.com/rathboma/sbt-sublime/internal/manifest"
	"github.com/rathboma/sbt-sublime/internal/project"
)

const (
	// DefaultExternalSourceDirName is the leaf directory for extracted sources.
	DefaultExternalSourceDirName = "external-sources"
	// DefaultExternalSourceDirParent is relative to the build root.
	DefaultExternalSourceDirParent = "target"
)

// Settings are the resolved values used by a generation run.
type Settings struct {
	ExternalSourceDirName   string `json:"external_source_directory_name"`
	ExternalSourceDirParent string `json:"external_source_directory_parent"`
	ExternalSourceDir       string `json:"external_source_directory"`
	Transitive              bool   `json:"transitive"`
	ProjectName             string `json:"project_name"`
	ProjectDir              string `json:"project_dir"`
	ProjectFile             string `json:"project_file"`
}

// Layer holds optional overrides; nil fields leave the value below untouched.
type Layer struct {
	ExternalSourceDirName   *string
	ExternalSourceDirParent *string
	ExternalSourceDir       *string
	Transitive              *bool
	ProjectName             *string
	ProjectDir              *string
}

// Resolve computes the settings for the build rooted at root named name.
// Relative paths in any layer are taken relative to root.
func Resolve(root, name string, layers ...Layer) Settings {
	s := Settings{
		ExternalSourceDirName:   DefaultExternalSourceDirName,
		ExternalSourceDirParent: filepath.Join(root, DefaultExternalSourceDirParent),
		ProjectName:             name,
		ProjectDir:              root,
	}

	var explicitDir string
	for _, l := range layers {
		if l.ExternalSourceDirName != nil {
			s.ExternalSourceDirName = *l.ExternalSourceDirName
		}
		if l.ExternalSourceDirParent != nil {
			s.ExternalSourceDirParent = abs(root, *l.ExternalSourceDirParent)
		}
		if l.ExternalSourceDir != nil {
			explicitDir = abs(root, *l.ExternalSourceDir)
		}
		if l.Transitive != nil {
			s.Transitive = *l.Transitive
		}
		if l.ProjectName != nil {
			s.ProjectName = *l.ProjectName
		}
		if l.ProjectDir != nil {
			s.ProjectDir = abs(root, *l.ProjectDir)
		}
	}

	s.ExternalSourceDir = filepath.Join(s.ExternalSourceDirParent, s.ExternalSourceDirName)
	if explicitDir != "" {
		s.ExternalSourceDir = explicitDir
	}
	s.ProjectFile = filepath.Join(s.ProjectDir, s.ProjectName+project.Suffix)
	return s
}

// FromManifest turns the build's sublime block into a layer. Empty strings
// mean "not set".
func FromManifest(m manifest.Sublime) Layer {
	return Layer{
		ExternalSourceDirName:   nonEmpty(m.ExternalSourceDirName),
		ExternalSourceDirParent: nonEmpty(m.ExternalSourceDirParent),
		ExternalSourceDir:       nonEmpty(m.ExternalSourceDir),
		Transitive:              m.Transitive,
		ProjectName:             nonEmpty(m.ProjectName),
		ProjectDir:              nonEmpty(m.ProjectDir),
	}
}

func abs(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
