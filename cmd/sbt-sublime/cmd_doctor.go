package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rathboma/sbt-sublime/internal/config"
	"github.com/rathboma/sbt-sublime/internal/project"
	"github.com/rathboma/sbt-sublime/internal/resolve"
	"github.com/rathboma/sbt-sublime/internal/workspace"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the build for common issues",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
	cmd.Flags().StringSlice("repository", nil, "Additional local repository roots to check")
	return cmd
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	repos, _ := cmd.Flags().GetStringSlice("repository")
	out := cmd.OutOrStdout()
	ok := true

	_, _ = fmt.Fprint(out, "Checking build definition... ")
	ctx, err := workspace.Load(root)
	if err != nil {
		_, _ = fmt.Fprintln(out, "ERROR")
		_, _ = fmt.Fprintf(out, "  %v\n", err)
		_, _ = fmt.Fprintln(out, "\nSome checks failed. See above for details.")
		return fmt.Errorf("doctor checks failed")
	}
	_, _ = fmt.Fprintf(out, "%s (%d modules, %d dependencies)\n", ctx.Manifest.Name, len(ctx.Manifest.Modules), len(ctx.Manifest.Coordinates()))

	_, _ = fmt.Fprint(out, "Checking configuration... ")
	settings, err := ctx.Settings(config.Layer{})
	if err != nil {
		_, _ = fmt.Fprintln(out, "ERROR")
		_, _ = fmt.Fprintf(out, "  %v\n", err)
		ok = false
	} else {
		_, _ = fmt.Fprintln(out, "OK")
		if !checkProjectFile(out, settings.ProjectFile) {
			ok = false
		}
		if !checkExternalParent(out, filepath.Dir(settings.ExternalSourceDir)) {
			ok = false
		}
	}

	if !checkRepositories(out, ctx.Repositories(repos)) {
		ok = false
	}

	if ok {
		_, _ = fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	_, _ = fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}

// checkRepositories verifies that every repository root is a directory.
// At least one must exist for resolution to find anything.
func checkRepositories(out io.Writer, roots []string) bool {
	if len(roots) == 0 {
		roots = []string{resolve.DefaultRepository}
	}
	found := 0
	for _, r := range roots {
		_, _ = fmt.Fprintf(out, "  Checking repository %s... ", r)
		p, err := resolve.ExpandHome(r)
		if err != nil {
			_, _ = fmt.Fprintf(out, "ERROR (%v)\n", err)
			continue
		}
		info, err := os.Stat(p)
		switch {
		case err != nil:
			_, _ = fmt.Fprintln(out, "NOT FOUND")
		case !info.IsDir():
			_, _ = fmt.Fprintln(out, "NOT A DIRECTORY")
		default:
			_, _ = fmt.Fprintln(out, "OK")
			found++
		}
	}
	if found == 0 {
		_, _ = fmt.Fprintln(out, "  No usable repository; dependencies cannot be resolved")
		return false
	}
	return true
}

// checkProjectFile verifies an existing project file can be merged into.
func checkProjectFile(out io.Writer, path string) bool {
	_, _ = fmt.Fprintf(out, "Checking project file %s... ", path)
	d, err := project.Load(path)
	switch {
	case err != nil:
		_, _ = fmt.Fprintln(out, "INVALID")
		_, _ = fmt.Fprintf(out, "  %v\n", err)
		return false
	case d == nil:
		_, _ = fmt.Fprintln(out, "not present (will be created)")
	default:
		_, _ = fmt.Fprintf(out, "OK (%d folders)\n", len(d.Folders))
	}
	return true
}

// checkExternalParent verifies the external sources directory can be created.
func checkExternalParent(out io.Writer, parent string) bool {
	_, _ = fmt.Fprintf(out, "Checking external sources parent %s... ", parent)
	info, err := os.Stat(parent)
	switch {
	case os.IsNotExist(err):
		_, _ = fmt.Fprintln(out, "not present (will be created)")
	case err != nil:
		_, _ = fmt.Fprintf(out, "ERROR (%v)\n", err)
		return false
	case !info.IsDir():
		_, _ = fmt.Fprintln(out, "NOT A DIRECTORY")
		return false
	default:
		_, _ = fmt.Fprintln(out, "OK")
	}
	return true
}
