package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cleanDist bool

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove staging trees, packaged artifacts and logs",
		RunE:  runClean,
	}

	cmd.Flags().BoolVar(&cleanDist, "dist", false, "Also remove the distributable output tree")

	return cmd
}

func runClean(cmd *cobra.Command, _ []string) error {
	proj, err := loadProject()
	if err != nil {
		return err
	}

	targets := []string{proj.Paths.StagingDir, proj.Paths.PackagesDir, proj.Paths.LogsDir}
	if cleanDist {
		targets = append(targets, proj.Paths.DistDir)
	}

	for _, dir := range targets {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("remove %s: %w", dir, err)
		}
		cmd.Printf("removed %s\n", dir)
	}
	return nil
}
