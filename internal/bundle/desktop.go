package bundle

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeMetadata writes the application descriptor and an empty icon
// placeholder into the component's AppDir. Presence is all the deployment
// tool requires; contents are never validated downstream.
func writeMetadata(appDir string, c Component) error {
	desktopDir := filepath.Join(appDir, "usr", "share", "applications")
	if err := os.MkdirAll(desktopDir, 0o755); err != nil {
		return fmt.Errorf("prepare applications dir: %w", err)
	}

	entry := fmt.Sprintf(
		"[Desktop Entry]\nType=Application\nName=%s\nExec=%s\nIcon=%s\nCategories=Utility;\n",
		c.DisplayName, c.Executable, c.Executable,
	)
	desktopPath := filepath.Join(desktopDir, c.Executable+".desktop")
	if err := os.WriteFile(desktopPath, []byte(entry), 0o644); err != nil {
		return fmt.Errorf("write desktop entry: %w", err)
	}

	iconDir := filepath.Join(appDir, "usr", "share", "icons", "hicolor", "256x256", "apps")
	if err := os.MkdirAll(iconDir, 0o755); err != nil {
		return fmt.Errorf("prepare icon dir: %w", err)
	}
	iconPath := filepath.Join(iconDir, c.Executable+".png")
	if err := os.WriteFile(iconPath, nil, 0o644); err != nil {
		return fmt.Errorf("write icon placeholder: %w", err)
	}
	return nil
}
