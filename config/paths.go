package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "promptline"

// Dir is the directory holding config.toml. PROMPTLINE_CONFIG_DIR wins
// over the OS default.
func Dir() (string, error) {
	if d := os.Getenv("PROMPTLINE_CONFIG_DIR"); d != "" {
		return d, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// DataDir holds history, the draft and the instance lock.
func DataDir() (string, error) {
	if d := os.Getenv("PROMPTLINE_DATA_DIR"); d != "" {
		return d, nil
	}
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
		return filepath.Join(local, appName), nil
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appName), nil
	}

	xdgData := os.Getenv("XDG_DATA_HOME")
	if xdgData == "" {
		xdgData = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(xdgData, appName), nil
}
