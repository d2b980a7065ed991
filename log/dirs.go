package log

import (
	"os"
	"path/filepath"
	"runtime"
)

// getDefaultDir is the per-OS log location used when neither --logpath nor
// PROMPTLINE_LOG_PATH is set.
func getDefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch runtime.GOOS {
	case "windows":
		local := os.Getenv("LOCALAPPDATA")
		if local == "" {
			local = filepath.Join(home, "AppData", "Local")
		}
		return filepath.Join(local, "promptline", "logs"), nil
	case "darwin":
		return filepath.Join(home, "Library", "Logs", "promptline"), nil
	}
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "promptline", "logs"), nil
}
