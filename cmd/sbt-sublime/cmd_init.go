package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rathboma/sbt-sublime/internal/manifest"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Create a new build definition interactively or from a file",
		Args:  cobra.ExactArgs(1),
		RunE:  runInit,
	}
	cmd.Flags().String("from", "", "Import the build definition from a local file")
	cmd.Flags().Bool("force", false, "Overwrite an existing build definition")
	cmd.Flags().String("scala-version", "", "Scala binary version used for cross-built dependencies (e.g. 2.13)")
	cmd.Flags().String("module", "root", "ID of the initial module")
	cmd.Flags().StringSlice("dependency", nil, "Dependencies of the initial module (org:name:rev or org::name:rev)")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	name := args[0]
	root, _ := cmd.Flags().GetString("root")
	from, _ := cmd.Flags().GetString("from")
	force, _ := cmd.Flags().GetBool("force")
	scalaVersion, _ := cmd.Flags().GetString("scala-version")
	moduleID, _ := cmd.Flags().GetString("module")
	depArgs, _ := cmd.Flags().GetStringSlice("dependency")

	if filepath.IsAbs(name) || strings.Contains(filepath.Clean(name), "..") {
		return fmt.Errorf("invalid build name %q: must be a simple directory name (no absolute paths or ..)", name)
	}

	dir := filepath.Join(root, name)
	manifestPath := filepath.Join(dir, manifest.FileName)

	if _, err := os.Stat(manifestPath); err == nil && !force {
		return fmt.Errorf("build definition %s already exists (use --force to overwrite)", manifestPath)
	}

	// Build the definition before creating the directory so errors leave nothing behind.
	var data []byte
	switch {
	case from != "":
		src, err := os.ReadFile(from) //nolint:gosec // user-provided --from path
		if err != nil {
			return fmt.Errorf("reading --from source: %w", err)
		}
		if _, err := manifest.Parse(src); err != nil {
			return fmt.Errorf("invalid build definition from %s: %w", from, err)
		}
		data = src
	default:
		if err := moduleIDValidator(moduleID); err != nil {
			return err
		}
		deps, err := parseDependencies(depArgs)
		if err != nil {
			return err
		}
		if len(deps) == 0 {
			if !stdinIsTerminal() {
				return fmt.Errorf("interactive init requires a TTY; use --from or --dependency")
			}
			deps, err = interactiveAddDependencies(nil)
			if err != nil {
				return fmt.Errorf("interactive setup: %w", err)
			}
		}
		data, err = buildDefinition(name, scalaVersion, []manifest.Module{{ID: moduleID, Dependencies: deps}})
		if err != nil {
			return fmt.Errorf("building build definition: %w", err)
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil { //nolint:gosec // build dir needs to be world-readable
		return fmt.Errorf("creating build directory: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil { //nolint:gosec // build definition needs to be readable
		return fmt.Errorf("writing build definition: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Build %q created at %s\n", name, dir)
	return nil
}
