//go:build linux

package foreground

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// X11 only; Wayland compositors do not expose the focused client to
// other processes, so this returns nothing there.
func capture() string {
	ctx, cancel := context.WithTimeout(context.Background(), helperTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "xdotool", "getactivewindow", "getwindowpid").Output()
	if err != nil {
		return ""
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil || pid <= 0 {
		return ""
	}
	return procName(pid)
}

func procName(pid int) string {
	base := filepath.Join("/proc", strconv.Itoa(pid))
	if exe, err := os.Readlink(filepath.Join(base, "exe")); err == nil {
		return processName(strings.TrimSuffix(exe, " (deleted)"))
	}
	comm, err := os.ReadFile(filepath.Join(base, "comm"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(comm))
}
