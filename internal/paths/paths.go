package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProjectPaths captures canonical locations for an appforge project.
type ProjectPaths struct {
	Root        string
	ConfigFile  string
	BuildDir    string
	StagingDir  string
	PackagesDir string
	DistDir     string
	LogsDir     string
}

// Resolve determines the project root using the optional --project flag or
// the current working directory when the flag is empty.
func Resolve(projectFlag string) (ProjectPaths, error) {
	var (
		root string
		err  error
	)

	if projectFlag != "" {
		root, err = filepath.Abs(projectFlag)
	} else {
		root, err = os.Getwd()
	}
	if err != nil {
		return ProjectPaths{}, fmt.Errorf("resolve project root: %w", err)
	}

	return newProjectPaths(root), nil
}

func newProjectPaths(root string) ProjectPaths {
	buildDir := filepath.Join(root, "build")
	return ProjectPaths{
		Root:        root,
		ConfigFile:  filepath.Join(root, "appforge.yaml"),
		BuildDir:    buildDir,
		StagingDir:  filepath.Join(buildDir, "staging"),
		PackagesDir: filepath.Join(buildDir, "packages"),
		DistDir:     filepath.Join(root, "dist"),
		LogsDir:     filepath.Join(buildDir, "logs"),
	}
}

// AppDir returns the staging tree for a component. Each component owns its
// own tree; stage Clean resets it wholesale at the start of every run.
func (p ProjectPaths) AppDir(component string) string {
	return filepath.Join(p.StagingDir, component)
}

// Artifact returns the build-output path of a component's bundle file.
func (p ProjectPaths) Artifact(artifactName string) string {
	return filepath.Join(p.PackagesDir, artifactName)
}

// ResolveUnder interprets value relative to the project root unless absolute.
func (p ProjectPaths) ResolveUnder(value string) string {
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(p.Root, value)
}

// EnsureBuildDirs creates the build hierarchy used by the pipeline.
func (p ProjectPaths) EnsureBuildDirs() error {
	dirs := []string{p.BuildDir, p.StagingDir, p.PackagesDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
