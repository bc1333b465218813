package artifact

import (
	"fmt"
	"strings"
)

// Coordinate identifies a declared library dependency.
type Coordinate struct {
	Org         string
	Name        string
	Revision    string
	CrossSuffix string
}

// ArtifactName returns the published artifact name, including the
// cross-build suffix when there is one.
func (c Coordinate) ArtifactName() string {
	return c.Name + c.CrossSuffix
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%s:%s:%s", c.Org, c.ArtifactName(), c.Revision)
}

// ParseCoordinate parses "org:name:rev" or the cross-built form
// "org::name:rev". crossSuffix is applied only to the cross-built form.
func ParseCoordinate(s, crossSuffix string) (Coordinate, error) {
	cross := strings.Contains(s, "::")
	parts := strings.Split(strings.Replace(s, "::", ":", 1), ":")
	if len(parts) != 3 {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q (expected org:name:rev or org::name:rev)", s)
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return Coordinate{}, fmt.Errorf("invalid coordinate %q: empty component", s)
		}
	}
	c := Coordinate{Org: parts[0], Name: parts[1], Revision: parts[2]}
	if cross {
		c.CrossSuffix = crossSuffix
	}
	return c, nil
}

// UniqueCoordinates drops repeated coordinates, keeping first occurrences in order.
func UniqueCoordinates(cs []Coordinate) []Coordinate {
	seen := make(map[Coordinate]bool, len(cs))
	out := make([]Coordinate, 0, len(cs))
	for _, c := range cs {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Type is the classifier family of an artifact.
type Type string

const (
	TypeBinary  Type = "binary"
	TypeSources Type = "sources"
	TypeJavadoc Type = "javadoc"
)

// TypeForClassifier maps a Maven classifier to its artifact type.
func TypeForClassifier(classifier string) Type {
	switch classifier {
	case "sources":
		return TypeSources
	case "javadoc":
		return TypeJavadoc
	default:
		return TypeBinary
	}
}

// Descriptor describes one classified artifact of a module.
type Descriptor struct {
	Name       string `json:"name" yaml:"name"`
	Type       Type   `json:"type" yaml:"type"`
	Extension  string `json:"extension" yaml:"extension"`
	Classifier string `json:"classifier,omitempty" yaml:"classifier,omitempty"`
}

// Resolved pairs a descriptor with the file the resolver fetched for it.
type Resolved struct {
	Descriptor Descriptor `json:"artifact"`
	Path       string     `json:"path"`
}

func (r Resolved) String() string {
	return fmt.Sprintf("%s (%s) %s", r.Descriptor.Name, r.Descriptor.Type, r.Path)
}

// UniqueResolved drops entries sharing both descriptor and path.
func UniqueResolved(rs []Resolved) []Resolved {
	seen := make(map[Resolved]bool, len(rs))
	out := make([]Resolved, 0, len(rs))
	for _, r := range rs {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
