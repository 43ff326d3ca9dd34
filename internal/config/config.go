package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures the packaging configuration for a project.
type Config struct {
	Version    int               `yaml:"version"`
	Install    InstallConfig     `yaml:"install"`
	OutputDir  string            `yaml:"output_dir"`
	DistDir    string            `yaml:"dist_dir"`
	Tools      ToolsConfig       `yaml:"tools"`
	Components []ComponentConfig `yaml:"components"`
}

// InstallConfig is the external install procedure run for each component.
// Args may use the {component} and {prefix} placeholders.
type InstallConfig struct {
	Program string   `yaml:"program"`
	Args    []string `yaml:"args"`
}

// ToolsConfig overrides where deployment tools are downloaded from.
type ToolsConfig struct {
	LinuxdeployURL string      `yaml:"linuxdeploy_url"`
	QtPluginURL    string      `yaml:"qt_plugin_url"`
	GtkPluginURL   string      `yaml:"gtk_plugin_url"`
	GtkPatch       PatchConfig `yaml:"gtk_patch"`
}

// PatchConfig is a literal find/replace applied to the GTK plugin script.
type PatchConfig struct {
	Find    string `yaml:"find"`
	Replace string `yaml:"replace"`
}

// ComponentConfig describes one installable component.
type ComponentConfig struct {
	Name        string   `yaml:"name"`
	DisplayName string   `yaml:"display_name"`
	Executable  string   `yaml:"executable"`
	Plugin      string   `yaml:"plugin"`
	Env         []string `yaml:"env"`
	BinaryPath  string   `yaml:"binary_path"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version: 1,
		Install: InstallConfig{
			Program: "cmake",
			Args:    []string{"--install", "build", "--component", "{component}", "--prefix", "{prefix}"},
		},
		Tools: ToolsConfig{
			LinuxdeployURL: "https://github.com/linuxdeploy/linuxdeploy/releases/download/continuous/linuxdeploy-x86_64.AppImage",
			QtPluginURL:    "https://github.com/linuxdeploy/linuxdeploy-plugin-qt/releases/download/continuous/linuxdeploy-plugin-qt-x86_64.AppImage",
			GtkPluginURL:   "https://raw.githubusercontent.com/linuxdeploy/linuxdeploy-plugin-gtk/master/linuxdeploy-plugin-gtk.sh",
			GtkPatch: PatchConfig{
				Find:    "librsvg-2.so.2",
				Replace: "librsvg-2.so",
			},
		},
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise returns
// the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults ensures nested fields fall back to sensible defaults when the
// YAML omits them.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.Install.Program == "" {
		c.Install = defaults.Install
	}
	if c.Tools.LinuxdeployURL == "" {
		c.Tools.LinuxdeployURL = defaults.Tools.LinuxdeployURL
	}
	if c.Tools.QtPluginURL == "" {
		c.Tools.QtPluginURL = defaults.Tools.QtPluginURL
	}
	if c.Tools.GtkPluginURL == "" {
		c.Tools.GtkPluginURL = defaults.Tools.GtkPluginURL
	}
	if c.Tools.GtkPatch.Find == "" {
		c.Tools.GtkPatch = defaults.Tools.GtkPatch
	}
	for i := range c.Components {
		if c.Components[i].Plugin == "" {
			c.Components[i].Plugin = "qt"
		}
	}
}
