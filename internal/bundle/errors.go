package bundle

import "fmt"

// Stage names the steps of the assembly pipeline, in execution order.
type Stage string

const (
	StageClean           Stage = "Clean"
	StageInstalled       Stage = "Installed"
	StageMetadataWritten Stage = "MetadataWritten"
	StageToolsReady      Stage = "ToolsReady"
	StageDeployed        Stage = "Deployed"
	StageDone            Stage = "Done"
)

// ConfigurationError reports missing or invalid pipeline input.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Reason
}

// InstallError reports a nonzero exit from the external install procedure.
type InstallError struct {
	ExitCode int
	Err      error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("install failed with exit code %d: %v", e.ExitCode, e.Err)
}

func (e *InstallError) Unwrap() error { return e.Err }

// DeployError reports a failed deployment tool run or a missing artifact.
type DeployError struct {
	ExitCode int
	Err      error
}

func (e *DeployError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("deploy failed with exit code %d: %v", e.ExitCode, e.Err)
	}
	return fmt.Sprintf("deploy failed: %v", e.Err)
}

func (e *DeployError) Unwrap() error { return e.Err }

// StageError attributes a pipeline failure to the stage it occurred in. The
// whole run for the component is abandoned; nothing is retried.
type StageError struct {
	Component string
	Stage     Stage
	Err       error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: stage %s: %v", e.Component, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
