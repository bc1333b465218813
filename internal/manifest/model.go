package manifest

import (
	"github.com/rathboma/sbt-sublime/internal/artifact"
)

// Build represents the top-level build.yaml definition.
type Build struct {
	Version      int      `yaml:"version"`
	Name         string   `yaml:"name"`
	ScalaVersion string   `yaml:"scala_version,omitempty"`
	Repositories []string `yaml:"repositories,omitempty"`
	Modules      []Module `yaml:"modules"`
	Sublime      Sublime  `yaml:"sublime,omitempty"`
}

// Module is one sub-project of the build with its own declared dependencies.
type Module struct {
	ID           string       `yaml:"id"`
	Path         string       `yaml:"path,omitempty"`
	Dependencies []Dependency `yaml:"dependencies,omitempty"`
}

// Dependency is a declared library dependency of a module.
type Dependency struct {
	Org      string `yaml:"org"`
	Name     string `yaml:"name"`
	Revision string `yaml:"revision"`
	Cross    bool   `yaml:"cross,omitempty"`
}

// Sublime holds the optional project generation settings stored in the build.
// Empty values fall through to computed defaults.
type Sublime struct {
	ExternalSourceDirName   string `yaml:"external_source_directory_name,omitempty"`
	ExternalSourceDirParent string `yaml:"external_source_directory_parent,omitempty"`
	ExternalSourceDir       string `yaml:"external_source_directory,omitempty"`
	Transitive              *bool  `yaml:"transitive,omitempty"`
	ProjectName             string `yaml:"project_name,omitempty"`
	ProjectDir              string `yaml:"project_dir,omitempty"`
}

// CrossSuffix returns the suffix appended to cross-built artifact names,
// e.g. "_2.13". Empty when the build has no scala_version.
func (b *Build) CrossSuffix() string {
	if b.ScalaVersion == "" {
		return ""
	}
	return "_" + b.ScalaVersion
}

// Coordinate converts the dependency into a module coordinate.
func (d Dependency) Coordinate(crossSuffix string) artifact.Coordinate {
	c := artifact.Coordinate{Org: d.Org, Name: d.Name, Revision: d.Revision}
	if d.Cross {
		c.CrossSuffix = crossSuffix
	}
	return c
}

// Coordinates returns the module's declared coordinates.
func (m Module) Coordinates(crossSuffix string) []artifact.Coordinate {
	out := make([]artifact.Coordinate, 0, len(m.Dependencies))
	for _, d := range m.Dependencies {
		out = append(out, d.Coordinate(crossSuffix))
	}
	return out
}

// Coordinates returns every declared coordinate across all modules, de-duplicated.
func (b *Build) Coordinates() []artifact.Coordinate {
	var all []artifact.Coordinate
	for _, m := range b.Modules {
		all = append(all, m.Coordinates(b.CrossSuffix())...)
	}
	return artifact.UniqueCoordinates(all)
}

// Module returns the module with the given id.
func (b *Build) Module(id string) (*Module, bool) {
	for i := range b.Modules {
		if b.Modules[i].ID == id {
			return &b.Modules[i], true
		}
	}
	return nil, false
}

// DependencyFrom builds a Dependency from a parsed coordinate.
func DependencyFrom(c artifact.Coordinate) Dependency {
	return Dependency{Org: c.Org, Name: c.Name, Revision: c.Revision, Cross: c.CrossSuffix != ""}
}
