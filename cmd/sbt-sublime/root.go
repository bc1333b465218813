package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sbt-sublime",
		Short:         "Generate Sublime Text projects with browsable dependency sources",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("root", ".", "Build root directory (contains build.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newGenCmd(),
		newInitCmd(),
		newAddCmd(),
		newStatusCmd(),
		newCleanCmd(),
		newDoctorCmd(),
	)

	return cmd
}
