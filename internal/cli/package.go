package cli

import (
	"github.com/spf13/cobra"
)

func newPackageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "package [component...]",
		Short: "Build bundles and stage them into the distributable output",
		RunE:  runPackage,
	}

	cmd.Flags().BoolVar(&buildForce, "force", false, "Rebuild even if the artifact is up to date")
	cmd.Flags().BoolVar(&buildNoProgress, "no-progress", false, "Disable interactive progress output")
	cmd.Flags().IntVar(&buildConcurrency, "concurrency", 1, "Components to package concurrently")

	return cmd
}

func runPackage(cmd *cobra.Command, args []string) error {
	proj, err := loadProject()
	if err != nil {
		return err
	}
	units, err := proj.units(args)
	if err != nil {
		return err
	}
	return executeUnits(cmd, proj, units, proj.Paths.DistDir)
}
