// Package filter narrows resolved artifacts down to the source archives of
// declared dependencies.
package filter

import (
	"strings"

	"github.com/rathboma/sbt-sublime/internal/artifact"
)

// Sources returns the sources-classified artifacts to extract, preserving
// input order. Unless transitive is set, an artifact is kept only when some
// declared coordinate's name is a literal prefix of the artifact name. The
// prefix match lets cross-built names such as "cats-core_2.13" match the
// declared "cats-core"; it also admits unrelated names sharing the prefix.
func Sources(declared []artifact.Coordinate, resolved []artifact.Resolved, transitive bool) []artifact.Resolved {
	var out []artifact.Resolved
	for _, r := range resolved {
		if r.Descriptor.Type != artifact.TypeSources {
			continue
		}
		if !transitive && !Declared(r.Descriptor.Name, declared) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Declared reports whether name starts with the name of any declared coordinate.
func Declared(name string, declared []artifact.Coordinate) bool {
	for _, c := range declared {
		if strings.HasPrefix(name, c.Name) {
			return true
		}
	}
	return false
}
