//go:build darwin

package foreground

import (
	"context"
	"os/exec"
	"strings"
)

const frontmostScript = `tell application "System Events" to get unix id of first process whose frontmost is true`

func capture() string {
	ctx, cancel := context.WithTimeout(context.Background(), helperTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "osascript", "-e", frontmostScript).Output()
	if err != nil {
		return ""
	}
	pid := strings.TrimSpace(string(out))
	if pid == "" {
		return ""
	}

	out, err = exec.CommandContext(ctx, "ps", "-p", pid, "-o", "comm=").Output()
	if err != nil {
		return ""
	}
	return processName(string(out))
}
