// Package foreground identifies the process owning the focused window.
package foreground

import (
	"strings"
	"time"
)

// helperTimeout bounds the external helper commands used on Unix desktops.
const helperTimeout = 250 * time.Millisecond

// Capture returns the executable base name of the foreground process, or
// ("", false) when it cannot be determined. It never fails loudly: no
// window, no permission and no platform support are all just "none".
func Capture() (string, bool) {
	name := capture()
	if name == "" {
		return "", false
	}
	return name, true
}

// processName reduces a full executable path to its base name. Both
// separators are accepted regardless of host OS.
func processName(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if i := strings.LastIndexAny(path, `\/`); i >= 0 {
		path = path[i+1:]
	}
	return path
}
