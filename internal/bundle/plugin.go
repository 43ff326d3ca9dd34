package bundle

import (
	"context"
	"fmt"

	"appforge/internal/tools"
)

// ToolSet holds the deployment tool downloads the pipeline may need. URLs
// come from configuration; names are fixed cache entries.
type ToolSet struct {
	Linuxdeploy tools.Tool
	QtPlugin    tools.Tool
	GtkPlugin   tools.Tool

	// Literal patch applied to the GTK plugin script after download; it
	// corrects a library-name reference that does not resolve on current
	// distributions.
	GtkPatchFind    string
	GtkPatchReplace string
}

// Plugin is one member of the closed set of toolkit deployment plugins. Each
// variant knows how to make itself available and which flags to hand the
// deployment tool. Adding a toolkit means adding a variant, not a branch.
type Plugin interface {
	Name() string
	Ensure(ctx context.Context, cache *tools.Cache, set ToolSet) error
	Flags() []string
}

// ParsePlugin resolves a configured plugin name. Unknown values are rejected;
// a component that genuinely needs no plugin says so with "none".
func ParsePlugin(name string) (Plugin, error) {
	switch name {
	case "qt":
		return qtPlugin{}, nil
	case "gtk":
		return gtkPlugin{}, nil
	case "none":
		return nonePlugin{}, nil
	default:
		return nil, &ConfigurationError{Reason: fmt.Sprintf("unknown plugin %q (want qt, gtk or none)", name)}
	}
}

type qtPlugin struct{}

func (qtPlugin) Name() string { return "qt" }

func (qtPlugin) Ensure(ctx context.Context, cache *tools.Cache, set ToolSet) error {
	_, err := cache.EnsureAppImage(ctx, set.QtPlugin)
	return err
}

func (qtPlugin) Flags() []string { return []string{"--plugin", "qt"} }

type gtkPlugin struct{}

func (gtkPlugin) Name() string { return "gtk" }

func (gtkPlugin) Ensure(ctx context.Context, cache *tools.Cache, set ToolSet) error {
	path, err := cache.EnsureScript(ctx, set.GtkPlugin)
	if err != nil {
		return err
	}
	if set.GtkPatchFind == "" {
		return nil
	}
	return tools.PatchFile(path, set.GtkPatchFind, set.GtkPatchReplace)
}

func (gtkPlugin) Flags() []string { return []string{"--plugin", "gtk"} }

type nonePlugin struct{}

func (nonePlugin) Name() string { return "none" }

func (nonePlugin) Ensure(context.Context, *tools.Cache, ToolSet) error { return nil }

func (nonePlugin) Flags() []string { return nil }
