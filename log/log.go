package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const logFileName = "promptline_log.txt"

var (
	diagLog  zerolog.Logger
	diagFile *os.File
	logMu    sync.Mutex
	logReady bool
	pid      int
	session  string
	dir      string
)

func ResolveDir(flagPath string) (string, error) {
	// Priority 1: --logpath flag
	if flagPath != "" {
		return absolute(flagPath)
	}

	// Priority 2: PROMPTLINE_LOG_PATH environment variable
	if envPath := os.Getenv("PROMPTLINE_LOG_PATH"); envPath != "" {
		return absolute(envPath)
	}

	// Priority 3: Default OS-specific location
	return getDefaultDir()
}

func absolute(p string) (string, error) {
	if filepath.IsAbs(p) {
		return p, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, p), nil
}

func SetDir(d string) {
	dir = d
}

func Dir() string {
	return dir
}

func EnsureDir() error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}

func Init() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := EnsureDir(); err != nil {
		return err
	}

	pid = os.Getpid()
	session = uuid.NewString()

	var err error
	diagFile, err = os.OpenFile(filepath.Join(dir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        diagFile,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	diagLog = zerolog.New(consoleWriter).With().Timestamp().Int("pid", pid).Str("session", session).Logger()

	logReady = true
	return nil
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
	logReady = false
}

// SessionID tags every line written since the last Init.
func SessionID() string {
	logMu.Lock()
	defer logMu.Unlock()
	return session
}

func Info(msg string) {
	if logReady {
		diagLog.Info().Msg(msg)
	}
}

func Infof(format string, args ...any) {
	if logReady {
		diagLog.Info().Msg(fmt.Sprintf(format, args...))
	}
}

func Error(msg string) {
	if logReady {
		diagLog.Error().Msg(msg)
	}
}

func Errorf(format string, args ...any) {
	if logReady {
		diagLog.Error().Msg(fmt.Sprintf(format, args...))
	}
}

func Warn(msg string) {
	if logReady {
		diagLog.Warn().Msg(msg)
	}
}

func Warnf(format string, args ...any) {
	if logReady {
		diagLog.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

func SessionStart(version, surface, hotkey string) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("version", version).
		Str("surface", surface).
		Str("hotkey", hotkey).
		Msg("session_start")
}

func SessionEnd(submits int) {
	if !logReady {
		return
	}
	diagLog.Info().
		Int("submits", submits).
		Msg("session_end")
}

func HotkeyRegistered(chord string, attempts int) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("chord", chord).
		Int("attempts", attempts).
		Msg("hotkey_registered")
}

// Submit records one capture cycle. The text itself is never logged, only its size.
func Submit(chars int, foreground, shortcut string, elapsed time.Duration) {
	if !logReady {
		return
	}
	diagLog.Info().
		Int("chars", chars).
		Str("foreground", foreground).
		Str("shortcut", shortcut).
		Float64("total_ms", float64(elapsed.Microseconds())/1000).
		Msg("submit")
}

func Replay(shortcut string, events int, err error) {
	if !logReady {
		return
	}
	ev := diagLog.Info()
	if err != nil {
		ev = diagLog.Error().Err(err)
	}
	ev.Str("shortcut", shortcut).
		Int("events", events).
		Msg("replay")
}
