package main

import (
	"encoding/json"
	"path/filepath"

	"github.com/rathboma/sbt-sublime/internal/config"
	"github.com/rathboma/sbt-sublime/internal/manifest"
	"github.com/rathboma/sbt-sublime/internal/resolve"
	"github.com/rathboma/sbt-sublime/internal/ui"
	"github.com/rathboma/sbt-sublime/internal/workspace"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which declared dependencies have sources available and extracted",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
	cmd.Flags().StringSlice("repository", nil, "Additional local repository roots to resolve from")
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type dependencyStatus struct {
	Module     string `json:"module"`
	Dependency string `json:"dependency"`
	Artifact   string `json:"artifact"`
	Resolved   bool   `json:"resolved"`
	Sources    string `json:"sources,omitempty"`
	Extracted  bool   `json:"extracted"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	repos, _ := cmd.Flags().GetStringSlice("repository")
	asJSON, _ := cmd.Flags().GetBool("json")

	ctx, err := workspace.Load(root)
	if err != nil {
		return err
	}
	settings, err := ctx.Settings(config.Layer{})
	if err != nil {
		return err
	}
	lf, err := workspace.LoadLock(settings)
	if err != nil {
		return err
	}
	resolver, err := resolve.NewLocalRepository(ctx.Repositories(repos), newLogger(cmd))
	if err != nil {
		return err
	}

	cross := ctx.Manifest.CrossSuffix()
	statuses := make([]dependencyStatus, 0)
	for _, m := range ctx.Manifest.Modules {
		for _, d := range m.Dependencies {
			statuses = append(statuses, collectStatus(resolver, m, d, cross, lf.Extracted))
		}
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	tbl := ui.NewTable(out, "MODULE", "DEPENDENCY", "ARTIFACT", "SOURCES", "EXTRACTED")
	for _, s := range statuses {
		sources := "missing"
		switch {
		case !s.Resolved:
			sources = "not resolved"
		case s.Sources != "":
			sources = filepath.Base(s.Sources)
		}
		tbl.Row(s.Module, s.Dependency, s.Artifact, sources, s.Extracted)
	}
	return tbl.Flush()
}

func collectStatus(r *resolve.LocalRepository, m manifest.Module, d manifest.Dependency, cross string, extracted func(string) bool) dependencyStatus {
	c := d.Coordinate(cross)
	s := dependencyStatus{
		Module:     m.ID,
		Dependency: c.String(),
		Artifact:   c.ArtifactName(),
	}
	if _, ok := r.Locate(c); !ok {
		return s
	}
	s.Resolved = true
	if p, ok := r.SourcesPath(c); ok {
		s.Sources = p
	}
	s.Extracted = extracted(c.ArtifactName())
	return s
}
