package resolve

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/rathboma/sbt-sublime/internal/artifact"
)

type pomProject struct {
	Dependencies []pomDependency `xml:"dependencies>dependency"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
	Optional   string `xml:"optional"`
}

// readPomDeps returns the runtime-relevant dependencies listed in a POM.
// Entries whose version is missing or still a property reference are
// returned in skipped; version resolution is the build tool's job.
func readPomDeps(path string) (deps []artifact.Coordinate, skipped []string, err error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the repository layout
	if err != nil {
		return nil, nil, err
	}
	var p pomProject
	if err := xml.Unmarshal(data, &p); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for _, d := range p.Dependencies {
		switch strings.TrimSpace(d.Scope) {
		case "", "compile", "runtime":
		default:
			continue
		}
		if strings.TrimSpace(d.Optional) == "true" {
			continue
		}
		version := strings.TrimSpace(d.Version)
		if version == "" || strings.Contains(version, "${") {
			skipped = append(skipped, d.GroupID+":"+d.ArtifactID)
			continue
		}
		deps = append(deps, artifact.Coordinate{
			Org:      strings.TrimSpace(d.GroupID),
			Name:     strings.TrimSpace(d.ArtifactID),
			Revision: version,
		})
	}
	return deps, skipped, nil
}
