//go:build linux

package login

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// desktopPath is the XDG autostart entry.
func desktopPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "autostart", "promptline.desktop"), nil
}

func Enabled() bool {
	path, err := desktopPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Enable writes an autostart entry running the current executable with args.
func Enable(args []string) error {
	path, err := desktopPath()
	if err != nil {
		return err
	}
	cmd, err := command(args)
	if err != nil {
		return err
	}
	if env := carriedEnv(); len(env) > 0 {
		prefix := []string{"env"}
		for _, e := range env {
			prefix = append(prefix, quote(e.Key+"="+e.Value))
		}
		cmd = strings.Join(prefix, " ") + " " + cmd
	}
	entry := fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=promptline
Comment=Global hotkey text capture
Exec=%s
X-GNOME-Autostart-enabled=true
NoDisplay=true
`, cmd)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create autostart dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(entry), 0644); err != nil {
		return fmt.Errorf("write autostart entry: %w", err)
	}
	return nil
}

func Disable() error {
	path, err := desktopPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove autostart entry: %w", err)
	}
	return nil
}
