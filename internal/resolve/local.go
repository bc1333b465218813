package resolve

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rathboma/sbt-sublime/internal/artifact"
	"github.com/rathboma/sbt-sublime/internal/manifest"
	"github.com/rs/zerolog"
)

// DefaultRepository is used when the build lists no repositories.
const DefaultRepository = "~/.m2/repository"

// pomCacheSize bounds the parsed POMs kept across modules of one build.
const pomCacheSize = 1024

// LocalRepository resolves artifacts from Maven-layout directories on disk.
type LocalRepository struct {
	Roots []string
	Log   zerolog.Logger

	poms *lru.Cache[string, pomDeps]
}

type pomDeps struct {
	deps    []artifact.Coordinate
	skipped []string
}

// NewLocalRepository expands "~" in each root and returns a resolver over them.
func NewLocalRepository(roots []string, log zerolog.Logger) (*LocalRepository, error) {
	if len(roots) == 0 {
		roots = []string{DefaultRepository}
	}
	expanded := make([]string, 0, len(roots))
	for _, r := range roots {
		p, err := ExpandHome(r)
		if err != nil {
			return nil, err
		}
		expanded = append(expanded, p)
	}
	cache, err := lru.New[string, pomDeps](pomCacheSize)
	if err != nil {
		return nil, err
	}
	return &LocalRepository{Roots: expanded, Log: log, poms: cache}, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", p, err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}

// Resolve walks the declared coordinates and their POM dependencies,
// returning every jar found for them.
func (r *LocalRepository) Resolve(ctx context.Context, mod manifest.Module, deps []artifact.Coordinate) ([]artifact.Resolved, error) {
	declared := make(map[string]bool, len(deps))
	for _, d := range deps {
		declared[d.String()] = true
	}

	var out []artifact.Resolved
	visited := make(map[string]bool)
	queue := append([]artifact.Coordinate(nil), deps...)
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c := queue[0]
		queue = queue[1:]
		key := c.String()
		if visited[key] {
			continue
		}
		visited[key] = true

		dir, ok := r.Locate(c)
		if !ok {
			if declared[key] {
				return nil, fmt.Errorf("module %s: %s: %w", mod.ID, key, ErrNotFound)
			}
			r.Log.Debug().Str("module", mod.ID).Str("dependency", key).Msg("transitive dependency not in any repository")
			continue
		}

		arts, err := classify(dir, c)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", mod.ID, err)
		}
		out = append(out, arts...)

		next, skipped, err := r.pom(filepath.Join(dir, baseName(c)+".pom"))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", mod.ID, err)
		}
		for _, s := range skipped {
			r.Log.Debug().Str("dependency", key).Str("skipped", s).Msg("unresolved version in POM")
		}
		queue = append(queue, next...)
	}
	return out, nil
}

// pom reads a POM's dependencies, reusing earlier parses when the
// repository was built by NewLocalRepository.
func (r *LocalRepository) pom(path string) ([]artifact.Coordinate, []string, error) {
	if r.poms != nil {
		if p, ok := r.poms.Get(path); ok {
			return p.deps, p.skipped, nil
		}
	}
	deps, skipped, err := readPomDeps(path)
	if err != nil {
		return nil, nil, err
	}
	if r.poms != nil {
		r.poms.Add(path, pomDeps{deps: deps, skipped: skipped})
	}
	return deps, skipped, nil
}

// Locate returns the first repository directory holding c's revision.
func (r *LocalRepository) Locate(c artifact.Coordinate) (string, bool) {
	rel := filepath.Join(filepath.FromSlash(strings.ReplaceAll(c.Org, ".", "/")), c.ArtifactName(), c.Revision)
	for _, root := range r.Roots {
		dir := filepath.Join(root, rel)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, true
		}
	}
	return "", false
}

// SourcesPath returns the path of c's sources jar when it is present locally.
func (r *LocalRepository) SourcesPath(c artifact.Coordinate) (string, bool) {
	dir, ok := r.Locate(c)
	if !ok {
		return "", false
	}
	p := filepath.Join(dir, baseName(c)+"-sources.jar")
	if _, err := os.Stat(p); err != nil {
		return "", false
	}
	return p, true
}

func baseName(c artifact.Coordinate) string {
	return c.ArtifactName() + "-" + c.Revision
}

// classify turns the jars named <artifact>-<rev>[-<classifier>].jar in dir
// into resolved artifacts. Checksums, POMs and other files are ignored.
func classify(dir string, c artifact.Coordinate) ([]artifact.Resolved, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	prefix := baseName(c)
	var out []artifact.Resolved
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		rest := strings.TrimPrefix(e.Name(), prefix)
		ext := filepath.Ext(rest)
		if ext != ".jar" {
			continue
		}
		classifier := strings.TrimSuffix(rest, ext)
		if classifier != "" {
			if !strings.HasPrefix(classifier, "-") {
				continue
			}
			classifier = classifier[1:]
		}
		out = append(out, artifact.Resolved{
			Descriptor: artifact.Descriptor{
				Name:       c.ArtifactName(),
				Type:       artifact.TypeForClassifier(classifier),
				Extension:  strings.TrimPrefix(ext, "."),
				Classifier: classifier,
			},
			Path: filepath.Join(dir, e.Name()),
		})
	}
	return out, nil
}
