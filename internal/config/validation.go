package config

import (
	"fmt"
	"path/filepath"

	"appforge/internal/bundle"
	"appforge/internal/environ"
	"appforge/internal/paths"
	"appforge/internal/tools"
)

// Validate checks the configuration before any pipeline work starts. All
// failures surface as bundle.ConfigurationError.
func (c Config) Validate() error {
	if c.Install.Program == "" {
		return &bundle.ConfigurationError{Reason: "install program is required"}
	}

	seen := make(map[string]bool, len(c.Components))
	for _, cc := range c.Components {
		if seen[cc.Name] {
			return &bundle.ConfigurationError{Reason: fmt.Sprintf("duplicate component %q", cc.Name)}
		}
		seen[cc.Name] = true
		if _, err := cc.Component(); err != nil {
			return err
		}
	}
	return nil
}

// Component converts the YAML form into the pipeline's component type,
// resolving the plugin variant and unflattening the env assignments.
func (cc ComponentConfig) Component() (bundle.Component, error) {
	plugin, err := bundle.ParsePlugin(cc.Plugin)
	if err != nil {
		return bundle.Component{}, err
	}

	extra, err := environ.ParseAssignments(cc.Env)
	if err != nil {
		return bundle.Component{}, &bundle.ConfigurationError{
			Reason: fmt.Sprintf("component %s: %v", cc.Name, err),
		}
	}

	c := bundle.Component{
		Name:        cc.Name,
		DisplayName: cc.DisplayName,
		Executable:  cc.Executable,
		Plugin:      plugin,
		ExtraEnv:    extra,
	}
	if err := c.Validate(); err != nil {
		return bundle.Component{}, err
	}
	return c, nil
}

// Lookup returns the configuration entry for a named component.
func (c Config) Lookup(name string) (ComponentConfig, error) {
	for _, cc := range c.Components {
		if cc.Name == name {
			return cc, nil
		}
	}
	return ComponentConfig{}, &bundle.ConfigurationError{Reason: fmt.Sprintf("unknown component %q", name)}
}

// ToolSet builds the deployment tool downloads from configured URLs.
func (c Config) ToolSet() bundle.ToolSet {
	return bundle.ToolSet{
		Linuxdeploy:     tools.Tool{Name: tools.Linuxdeploy, URL: c.Tools.LinuxdeployURL},
		QtPlugin:        tools.Tool{Name: tools.QtPluginName, URL: c.Tools.QtPluginURL},
		GtkPlugin:       tools.Tool{Name: tools.GtkPluginName, URL: c.Tools.GtkPluginURL},
		GtkPatchFind:    c.Tools.GtkPatch.Find,
		GtkPatchReplace: c.Tools.GtkPatch.Replace,
	}
}

// InstallCommand builds the install invocation template.
func (c Config) InstallCommand() bundle.InstallCommand {
	return bundle.InstallCommand{Program: c.Install.Program, Args: c.Install.Args}
}

// ApplyTo overrides project paths with configured output locations.
func (c Config) ApplyTo(pp paths.ProjectPaths) paths.ProjectPaths {
	if c.OutputDir != "" {
		pp.PackagesDir = pp.ResolveUnder(c.OutputDir)
	}
	if c.DistDir != "" {
		pp.DistDir = pp.ResolveUnder(c.DistDir)
	}
	return pp
}

// Dependency returns the path of the built executable the component's bundle
// depends on; the bundle is rebuilt whenever the executable is newer.
func (cc ComponentConfig) Dependency(pp paths.ProjectPaths) string {
	if cc.BinaryPath != "" {
		return pp.ResolveUnder(cc.BinaryPath)
	}
	return pp.ResolveUnder(filepath.Join("build", "bin", cc.Executable))
}
