package bundle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"appforge/internal/environ"
	"appforge/internal/paths"
	"appforge/internal/tools"
)

// InstallCommand is the external install procedure invoked at stage
// Installed. Args may contain the {component} and {prefix} placeholders.
type InstallCommand struct {
	Program string
	Args    []string
}

func (ic InstallCommand) expand(component, prefix string) []string {
	args := make([]string, len(ic.Args))
	for i, arg := range ic.Args {
		arg = strings.ReplaceAll(arg, "{component}", component)
		arg = strings.ReplaceAll(arg, "{prefix}", prefix)
		args[i] = arg
	}
	return args
}

// Result captures the outcome of one assembly run.
type Result struct {
	Component string
	Artifact  string
	Skipped   bool
	Err       error
}

// ProgressReporter receives notifications as a component moves through the
// pipeline stages.
type ProgressReporter interface {
	Stage(c Component, stage Stage)
	Complete(res Result)
}

// Assembler drives the staged bundling pipeline for one component at a time.
// Stages run strictly in order; the first failure aborts the run and is
// attributed to its stage. A failed run never cleans up after itself — stage
// Clean resets the staging tree on the next run.
type Assembler struct {
	Paths   paths.ProjectPaths
	Cache   *tools.Cache
	Runner  Runner
	Tools   ToolSet
	Install InstallCommand
	Log     *zap.SugaredLogger

	Reporter ProgressReporter
}

// Assemble produces the component's bundle and returns the artifact path.
func (a *Assembler) Assemble(ctx context.Context, c Component) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	if a.Runner == nil {
		a.Runner = CmdRunner{}
	}
	if err := a.Paths.EnsureBuildDirs(); err != nil {
		return "", err
	}

	appDir := a.Paths.AppDir(c.Name)

	logFile, err := os.Create(filepath.Join(a.Paths.LogsDir, c.Name+".log"))
	if err != nil {
		return "", fmt.Errorf("open component log: %w", err)
	}
	defer logFile.Close()

	a.report(c, StageClean)
	if err := os.RemoveAll(appDir); err != nil {
		return "", a.fail(c, StageClean, err)
	}

	a.report(c, StageInstalled)
	if err := a.install(ctx, c, appDir, logFile); err != nil {
		return "", a.fail(c, StageInstalled, err)
	}

	a.report(c, StageMetadataWritten)
	if err := writeMetadata(appDir, c); err != nil {
		return "", a.fail(c, StageMetadataWritten, err)
	}

	a.report(c, StageToolsReady)
	deployTool, err := a.ensureTools(ctx, c)
	if err != nil {
		return "", a.fail(c, StageToolsReady, err)
	}

	a.report(c, StageDeployed)
	artifact, err := a.deploy(ctx, c, deployTool, appDir, logFile)
	if err != nil {
		return "", a.fail(c, StageDeployed, err)
	}

	a.report(c, StageDone)
	a.logf("component %s bundled: %s", c.Name, artifact)
	return artifact, nil
}

func (a *Assembler) install(ctx context.Context, c Component, appDir string, logFile *os.File) error {
	prefix := filepath.Join(appDir, "usr")
	if err := os.MkdirAll(prefix, 0o755); err != nil {
		return err
	}

	args := a.Install.expand(c.Name, prefix)
	a.logf("installing component %s into %s", c.Name, prefix)
	if err := a.Runner.Run(ctx, a.Install.Program, args, RunOptions{
		Dir:    a.Paths.Root,
		Stderr: logFile,
	}); err != nil {
		return &InstallError{ExitCode: exitCode(err), Err: err}
	}
	return nil
}

func (a *Assembler) ensureTools(ctx context.Context, c Component) (string, error) {
	deployTool, err := a.Cache.EnsureAppImage(ctx, a.Tools.Linuxdeploy)
	if err != nil {
		return "", err
	}
	if err := c.Plugin.Ensure(ctx, a.Cache, a.Tools); err != nil {
		return "", err
	}
	return deployTool, nil
}

func (a *Assembler) deploy(ctx context.Context, c Component, deployTool, appDir string, logFile *os.File) (string, error) {
	args := append([]string{"--appdir", appDir, "--output", "appimage"}, c.Plugin.Flags()...)

	// The cache root leads PATH so linuxdeploy finds its plugins there
	// before any system copies.
	env := environ.Compose(a.Cache.Root, c.ExtraEnv)

	a.logf("deploying component %s with plugin %s", c.Name, c.Plugin.Name())
	if err := a.Runner.Run(ctx, deployTool, args, RunOptions{
		Dir:    a.Paths.PackagesDir,
		Env:    env,
		Stderr: logFile,
	}); err != nil {
		return "", &DeployError{ExitCode: exitCode(err), Err: err}
	}

	artifact := a.Paths.Artifact(c.ArtifactName())
	exists, err := paths.FileExists(artifact)
	if err != nil {
		return "", &DeployError{ExitCode: -1, Err: err}
	}
	if !exists {
		return "", &DeployError{ExitCode: -1, Err: fmt.Errorf("expected artifact %s was not produced", artifact)}
	}
	return artifact, nil
}

func (a *Assembler) report(c Component, stage Stage) {
	if a.Reporter != nil {
		a.Reporter.Stage(c, stage)
	}
}

func (a *Assembler) fail(c Component, stage Stage, err error) error {
	stageErr := &StageError{Component: c.Name, Stage: stage, Err: err}
	if a.Log != nil {
		a.Log.Errorw("assembly failed", "component", c.Name, "stage", string(stage), "error", err)
	}
	return stageErr
}

func (a *Assembler) logf(format string, args ...any) {
	if a.Log != nil {
		a.Log.Infof(format, args...)
	}
}
