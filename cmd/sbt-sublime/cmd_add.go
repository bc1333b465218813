package main

import (
	"encoding/json"
	"fmt"

	"github.com/rathboma/sbt-sublime/internal/manifest"
	"github.com/rathboma/sbt-sublime/internal/workspace"
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [org:name:rev ...]",
		Short: "Add library dependencies to a module",
		RunE:  runAdd,
	}
	cmd.Flags().String("module", "", "Module to add to (default: the first module)")
	cmd.Flags().Bool("json", false, "Output added dependencies as JSON")
	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	root, _ := cmd.Flags().GetString("root")
	moduleID, _ := cmd.Flags().GetString("module")
	asJSON, _ := cmd.Flags().GetBool("json")

	ctx, err := workspace.Load(root)
	if err != nil {
		return err
	}

	mod, err := targetModule(ctx.Manifest, moduleID)
	if err != nil {
		return err
	}

	existing := make(map[string]bool, len(mod.Dependencies))
	for _, d := range mod.Dependencies {
		existing[dependencyKey(d)] = true
	}

	var deps []manifest.Dependency
	if len(args) == 0 {
		if !stdinIsTerminal() {
			return fmt.Errorf("no dependencies provided and stdin is not a TTY; provide coordinates as arguments")
		}
		deps, err = interactiveAddDependencies(existing)
		if err != nil {
			return fmt.Errorf("interactive add: %w", err)
		}
	} else {
		deps, err = parseDependencies(args)
		if err != nil {
			return err
		}
	}

	if len(deps) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No dependencies added.")
		return nil
	}

	if err := findConflicts(existing, mod.ID, deps); err != nil {
		return err
	}
	mod.Dependencies = append(mod.Dependencies, deps...)
	if err := manifest.Save(ctx.ManifestPath, ctx.Manifest); err != nil {
		return err
	}

	return outputResults(cmd, ctx.Manifest, mod.ID, deps, asJSON)
}

// targetModule picks the module dependencies are added to. An empty id means
// the first module; a build without modules gets a "root" module.
func targetModule(b *manifest.Build, id string) (*manifest.Module, error) {
	if id == "" {
		if len(b.Modules) == 0 {
			b.Modules = append(b.Modules, manifest.Module{ID: "root"})
		}
		return &b.Modules[0], nil
	}
	m, ok := b.Module(id)
	if !ok {
		return nil, fmt.Errorf("module %q not found in build", id)
	}
	return m, nil
}

// findConflicts rejects dependencies the module already declares.
func findConflicts(existing map[string]bool, moduleID string, deps []manifest.Dependency) error {
	for _, d := range deps {
		if existing[dependencyKey(d)] {
			return fmt.Errorf("dependency %s already declared in module %q", dependencyKey(d), moduleID)
		}
	}
	return nil
}

type addedDependency struct {
	Module     string `json:"module"`
	Org        string `json:"org"`
	Name       string `json:"name"`
	Revision   string `json:"revision"`
	Cross      bool   `json:"cross,omitempty"`
	Coordinate string `json:"coordinate"`
}

// outputResults prints added dependencies in text or JSON format.
func outputResults(cmd *cobra.Command, b *manifest.Build, moduleID string, deps []manifest.Dependency, asJSON bool) error {
	out := cmd.OutOrStdout()
	added := make([]addedDependency, 0, len(deps))
	for _, d := range deps {
		added = append(added, addedDependency{
			Module:     moduleID,
			Org:        d.Org,
			Name:       d.Name,
			Revision:   d.Revision,
			Cross:      d.Cross,
			Coordinate: d.Coordinate(b.CrossSuffix()).String(),
		})
	}
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(added)
	}
	for _, a := range added {
		_, _ = fmt.Fprintf(out, "Added %s to %s\n", a.Coordinate, a.Module)
	}
	return nil
}
