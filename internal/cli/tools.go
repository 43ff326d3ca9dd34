package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"appforge/internal/tools"
)

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Manage deployment tools",
	}

	cmd.AddCommand(newToolsListCmd())
	cmd.AddCommand(newToolsEnsureCmd())

	return cmd
}

// toolStatus reports one cache entry for `tools list`.
type toolStatus struct {
	Tool    string `json:"tool"`
	Present bool   `json:"present"`
	Path    string `json:"path,omitempty"`
}

func newToolsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show which deployment tools are cached",
		RunE:  runToolsList,
	}
}

func runToolsList(cmd *cobra.Command, _ []string) error {
	proj, err := loadProject()
	if err != nil {
		return err
	}

	statuses := make([]toolStatus, 0, 3)
	for _, name := range []string{tools.Linuxdeploy, tools.QtPluginName, tools.GtkPluginName} {
		st := toolStatus{Tool: name, Present: proj.Cache.Present(name)}
		if st.Present {
			st.Path = proj.Cache.EntryPoint(name)
		}
		statuses = append(statuses, st)
	}

	if outputJSON {
		data, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("%-28s %-8s %s\n", "Tool", "Cached", "Path")
	for _, st := range statuses {
		cached := "no"
		path := "(missing)"
		if st.Present {
			cached = "yes"
			path = st.Path
		}
		cmd.Printf("%-28s %-8s %s\n", st.Tool, cached, path)
	}
	return nil
}

func newToolsEnsureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ensure",
		Short: "Download and prepare all deployment tools",
		RunE:  runToolsEnsure,
	}
}

func runToolsEnsure(cmd *cobra.Command, _ []string) error {
	proj, err := loadProject()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	set := proj.Config.ToolSet()
	if _, err := proj.Cache.EnsureAppImage(ctx, set.Linuxdeploy); err != nil {
		return err
	}
	if _, err := proj.Cache.EnsureAppImage(ctx, set.QtPlugin); err != nil {
		return err
	}
	path, err := proj.Cache.EnsureScript(ctx, set.GtkPlugin)
	if err != nil {
		return err
	}
	if set.GtkPatchFind != "" {
		if err := tools.PatchFile(path, set.GtkPatchFind, set.GtkPatchReplace); err != nil {
			return err
		}
	}

	return runToolsList(cmd, nil)
}
