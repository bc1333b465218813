package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rathboma/sbt-sublime/internal/config"
	"github.com/rathboma/sbt-sublime/internal/workspace"
	"github.com/spf13/cobra"
)

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the extracted sources directory (destructive, requires --force)",
		Args:  cobra.NoArgs,
		RunE:  runClean,
	}
	cmd.Flags().Bool("force", false, "Required to confirm destructive operation")
	return cmd
}

func runClean(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	force, _ := cmd.Flags().GetBool("force")

	if !force {
		return fmt.Errorf("clean is destructive; pass --force to confirm")
	}

	ctx, err := workspace.Load(root)
	if err != nil {
		return err
	}
	settings, err := ctx.Settings(config.Layer{})
	if err != nil {
		return err
	}
	dir := settings.ExternalSourceDir

	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Nothing to clean: %s does not exist\n", dir)
		return nil
	}
	if err := checkCleanTarget(settings, ctx.Root); err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing external sources: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "External sources removed: %s\n", dir)
	return nil
}

// checkCleanTarget refuses directories whose removal would take the build or
// project with it, and directories this tool did not populate.
func checkCleanTarget(s config.Settings, root string) error {
	if err := s.CheckExternalDir(root); err != nil {
		return fmt.Errorf("refusing to clean: %w", err)
	}
	if _, err := os.Stat(workspace.LockPath(s)); err != nil {
		return fmt.Errorf("refusing to clean %s: no sources lock found (not generated by sbt-sublime)", s.ExternalSourceDir)
	}
	return nil
}
