package log

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"
)

const crashFileName = "crash_log.txt"

// InitCrashLog routes fatal runtime errors to crash_log.txt in the log dir.
// Called before any cgo code runs; failures are silent since there is
// nowhere better to report them yet.
func InitCrashLog() {
	if dir == "" {
		d, err := ResolveDir("")
		if err != nil {
			return
		}
		dir = d
	}
	if err := EnsureDir(); err != nil {
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, crashFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	fmt.Fprintf(f, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
	debug.SetCrashOutput(f, debug.CrashOptions{})
}
