package dist

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Stage copies the unit's artifact into a component-scoped group inside the
// distributable output tree, so independently packaged components never
// interfere. Returns the staged path.
func (u Unit) Stage(distDir string) (string, error) {
	group := filepath.Join(distDir, u.Component.Name)
	if err := os.MkdirAll(group, 0o755); err != nil {
		return "", fmt.Errorf("prepare dist group: %w", err)
	}

	dest := filepath.Join(group, filepath.Base(u.Artifact))
	if err := copyFile(u.Artifact, dest); err != nil {
		return "", fmt.Errorf("stage artifact for %s: %w", u.Component.Name, err)
	}
	return dest, nil
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return err
	}

	dest, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(dest, source); err != nil {
		dest.Close()
		return err
	}
	return dest.Close()
}
