// Package generate runs the project generation pipeline: collect resolved
// artifacts across modules, select declared source archives, extract them,
// and merge the external sources folder into the project descriptor.
package generate

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rathboma/sbt-sublime/internal/artifact"
	"github.com/rathboma/sbt-sublime/internal/config"
	"github.com/rathboma/sbt-sublime/internal/extract"
	"github.com/rathboma/sbt-sublime/internal/filter"
	"github.com/rathboma/sbt-sublime/internal/lock"
	"github.com/rathboma/sbt-sublime/internal/manifest"
	"github.com/rathboma/sbt-sublime/internal/project"
	"github.com/rathboma/sbt-sublime/internal/resolve"
	"github.com/rs/zerolog"
)

// ExternalFolderName is the display name of the external sources folder.
const ExternalFolderName = "External Libraries"

// Plan is the input of one generation run.
type Plan struct {
	Root        string
	Modules     []manifest.Module
	Declared    []artifact.Coordinate
	CrossSuffix string
	Settings    config.Settings
}

// PlanFor builds a plan covering every module of b.
func PlanFor(root string, b *manifest.Build, s config.Settings) Plan {
	return Plan{
		Root:        root,
		Modules:     b.Modules,
		Declared:    b.Coordinates(),
		CrossSuffix: b.CrossSuffix(),
		Settings:    s,
	}
}

// Result describes a completed run.
type Result struct {
	Settings   config.Settings     `json:"settings"`
	Resolved   int                 `json:"resolved"`
	Selected   []artifact.Resolved `json:"selected"`
	Extraction *extract.Result     `json:"-"`
	Descriptor *project.Descriptor `json:"-"`
	Written    bool                `json:"written"`
	Warnings   []string            `json:"warnings,omitempty"`
}

// Generator runs plans. Resolver is required; Extract defaults to
// extract.Extract.
type Generator struct {
	Resolver    resolve.Resolver
	Extract     func(dir string, jars []artifact.Resolved) (*extract.Result, error)
	Log         zerolog.Logger
	ToolVersion string
	Now         func() time.Time
}

// Run executes the pipeline. The project file is parsed before anything on
// disk changes and written only after extraction succeeded, so a failed run
// leaves it exactly as found.
func (g *Generator) Run(ctx context.Context, plan Plan) (*Result, error) {
	s := plan.Settings
	g.Log.Info().
		Str("dir", s.ExternalSourceDir).
		Bool("transitive", s.Transitive).
		Str("project_file", s.ProjectFile).
		Msg("generating project")

	if err := s.CheckExternalDir(plan.Root); err != nil {
		return nil, err
	}

	existing, err := project.Load(s.ProjectFile)
	if err != nil {
		return nil, err
	}

	resolved, err := resolve.Collect(ctx, g.Resolver, plan.Modules, plan.CrossSuffix, g.Log)
	if err != nil {
		return nil, err
	}
	selected := filter.Sources(plan.Declared, resolved, s.Transitive)
	for _, a := range selected {
		g.Log.Info().Str("archive", a.Path).Msg("selected source archive")
	}

	res := &Result{Settings: s, Resolved: len(resolved), Selected: selected}

	unpack := g.Extract
	if unpack == nil {
		unpack = extract.Extract
	}
	ex, err := unpack(s.ExternalSourceDir, selected)
	if err != nil {
		return nil, fmt.Errorf("extracting sources into %s: %w", s.ExternalSourceDir, err)
	}
	res.Extraction = ex
	for _, c := range ex.Collisions {
		g.warn(res, "%s overwrote %d file(s) from %s in %s", filepath.Base(c.Archive), c.Replaced, c.Previous, c.Dir)
	}
	for _, f := range ex.ReadOnlyFailures {
		g.warn(res, "could not mark %s read-only: %v", f.Path, f.Err)
	}

	root := project.Folder{Path: plan.Root}
	external := project.Folder{Path: s.ExternalSourceDir, Name: ExternalFolderName}
	merged, changed := project.Merge(existing, root, external)
	res.Descriptor = merged
	if changed {
		if err := project.Save(s.ProjectFile, merged); err != nil {
			return nil, err
		}
		res.Written = true
		g.Log.Info().Str("project_file", s.ProjectFile).Msg("wrote project file")
	} else {
		g.Log.Info().Str("project_file", s.ProjectFile).Msg("project file already lists external sources")
	}

	lockPath := lock.Path(s.ExternalSourceDir)
	if err := lock.Save(lockPath, g.Lock(plan, res)); err != nil {
		g.warn(res, "%v", err)
	} else if err := extract.MarkFileReadOnly(lockPath); err != nil {
		g.warn(res, "could not mark %s read-only: %v", lockPath, err)
	}
	return res, nil
}

// Lock builds the extraction record for a completed run.
func (g *Generator) Lock(plan Plan, res *Result) *lock.File {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	lf := &lock.File{
		Version:     1,
		Project:     plan.Settings.ProjectName,
		GeneratedAt: now().Format(time.RFC3339),
		ToolVersion: g.ToolVersion,
		Transitive:  plan.Settings.Transitive,
		Archives:    []lock.Archive{},
	}
	if res.Extraction == nil {
		return lf
	}
	for _, a := range res.Extraction.Archives {
		lf.Archives = append(lf.Archives, lock.Archive{
			Name: a.Artifact.Descriptor.Name,
			Path: a.Artifact.Path,
			Dir:  filepath.Base(a.Dir),
		})
	}
	return lf
}

func (g *Generator) warn(res *Result, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	res.Warnings = append(res.Warnings, msg)
	g.Log.Warn().Msg(msg)
}
