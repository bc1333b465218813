package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/rathboma/sbt-sublime/internal/config"
	"github.com/rathboma/sbt-sublime/internal/generate"
	"github.com/rathboma/sbt-sublime/internal/resolve"
	"github.com/rathboma/sbt-sublime/internal/ui"
	"github.com/rathboma/sbt-sublime/internal/workspace"
	"github.com/spf13/cobra"
)

func newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gen-sublime",
		Aliases: []string{"generate"},
		Short:   "Extract dependency sources and write the Sublime Text project file",
		Args:    cobra.NoArgs,
		RunE:    runGen,
	}
	cmd.Flags().Bool("transitive", false, "Include sources of transitive dependencies")
	cmd.Flags().String("external-source-directory-name", "", "Name of the extracted sources directory")
	cmd.Flags().String("external-source-directory-parent", "", "Parent of the extracted sources directory")
	cmd.Flags().String("external-source-directory", "", "Extracted sources directory (overrides name and parent)")
	cmd.Flags().String("project-name", "", "Project file name without the .sublime-project suffix")
	cmd.Flags().String("project-dir", "", "Directory the project file is written to")
	cmd.Flags().StringSlice("repository", nil, "Additional local repository roots to resolve from")
	cmd.Flags().Bool("json", false, "Output the result as JSON")
	return cmd
}

func runGen(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	repos, _ := cmd.Flags().GetStringSlice("repository")
	asJSON, _ := cmd.Flags().GetBool("json")

	ctx, err := workspace.Load(root)
	if err != nil {
		return err
	}
	settings, err := ctx.Settings(flagLayer(cmd))
	if err != nil {
		return err
	}

	log := newLogger(cmd)
	resolver, err := resolve.NewLocalRepository(ctx.Repositories(repos), log)
	if err != nil {
		return err
	}

	g := &generate.Generator{Resolver: resolver, Log: log, ToolVersion: version}
	res, err := g.Run(cmd.Context(), generate.PlanFor(ctx.Root, ctx.Manifest, settings))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	progress := ui.NewProgress(out, len(res.Extraction.Archives))
	for _, a := range res.Extraction.Archives {
		progress.Done(fmt.Sprintf("%s → %s (%d files)", filepath.Base(a.Artifact.Path), filepath.Base(a.Dir), a.Files))
	}
	for _, w := range res.Warnings {
		progress.Warn("%s", w)
	}
	if res.Written {
		progress.Log("Project file written: %s", settings.ProjectFile)
	} else {
		progress.Log("Project file unchanged: %s", settings.ProjectFile)
	}
	if n := progress.Warnings(); n > 0 {
		progress.Log("Completed with %d warning(s)", n)
	}
	return nil
}

// flagLayer returns the configuration overrides given on the command line.
// Only flags the user actually set take part, so defaults never mask the
// build definition or the environment.
func flagLayer(cmd *cobra.Command) config.Layer {
	var l config.Layer
	flags := cmd.Flags()
	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	l.ExternalSourceDirName = str("external-source-directory-name")
	l.ExternalSourceDirParent = str("external-source-directory-parent")
	l.ExternalSourceDir = str("external-source-directory")
	l.ProjectName = str("project-name")
	l.ProjectDir = str("project-dir")
	if flags.Changed("transitive") {
		v, _ := flags.GetBool("transitive")
		l.Transitive = &v
	}
	return l
}
