package bundle

import (
	"strings"

	"appforge/internal/environ"
)

// ArtifactSuffix is appended to the sanitized display name by the deployment
// tool; the pipeline must predict the name exactly to find the output.
const ArtifactSuffix = "-x86_64.AppImage"

// Component describes one installable application component.
type Component struct {
	Name        string
	DisplayName string
	Executable  string
	Plugin      Plugin
	ExtraEnv    []environ.Var
}

// SanitizedName replaces every space in the display name with an underscore
// and changes nothing else. linuxdeploy derives the output file name the same
// way, so the two must stay in lockstep.
func (c Component) SanitizedName() string {
	return strings.ReplaceAll(c.DisplayName, " ", "_")
}

// ArtifactName is the file name of the bundle this component produces.
func (c Component) ArtifactName() string {
	return c.SanitizedName() + ArtifactSuffix
}

// Validate checks the required inputs.
func (c Component) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &ConfigurationError{Reason: "component name is required"}
	}
	if strings.TrimSpace(c.DisplayName) == "" {
		return &ConfigurationError{Reason: "component " + c.Name + ": display name is required"}
	}
	if strings.TrimSpace(c.Executable) == "" {
		return &ConfigurationError{Reason: "component " + c.Name + ": executable name is required"}
	}
	if c.Plugin == nil {
		return &ConfigurationError{Reason: "component " + c.Name + ": plugin is required"}
	}
	return nil
}
