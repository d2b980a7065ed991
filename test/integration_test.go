//go:build integration

package test_test

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"promptline/clipboard"
)

var testBinary string

func TestMain(m *testing.M) {
	testBinary = os.Getenv("PROMPTLINE_TEST_BIN")
	if testBinary == "" {
		fmt.Fprintln(os.Stderr, "PROMPTLINE_TEST_BIN not set; build the binary and point it there")
		os.Exit(1)
	}
	os.Exit(m.Run())
}

type env struct {
	configDir, dataDir, logDir string
}

func newEnv(t *testing.T) env {
	t.Helper()
	return env{configDir: t.TempDir(), dataDir: t.TempDir(), logDir: t.TempDir()}
}

func (e env) command(args ...string) *exec.Cmd {
	cmd := exec.Command(testBinary, args...)
	cmd.Env = append(os.Environ(),
		"PROMPTLINE_CONFIG_DIR="+e.configDir,
		"PROMPTLINE_DATA_DIR="+e.dataDir,
		"PROMPTLINE_LOG_PATH="+e.logDir,
	)
	return cmd
}

func (e env) run(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.command(args...).CombinedOutput()
	if err != nil {
		t.Fatalf("promptline %v: %v\noutput: %s", args, err, out)
	}
	return string(out)
}

func TestVersion(t *testing.T) {
	out := newEnv(t).run(t, "version")
	if !strings.HasPrefix(out, "promptline ") {
		t.Errorf("output: %q", out)
	}
}

func TestDefaultConfigWritten(t *testing.T) {
	e := newEnv(t)
	e.run(t, "history")
	data, err := os.ReadFile(filepath.Join(e.configDir, "config.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "simulate_paste_shortcut") {
		t.Errorf("config.toml:\n%s", data)
	}
}

func TestCrashLogSession(t *testing.T) {
	e := newEnv(t)
	e.run(t, "version")
	data, err := os.ReadFile(filepath.Join(e.logDir, "crash_log.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "=== Session") {
		t.Errorf("crash_log.txt: %q", data)
	}
}

func TestHistoryReadsJSONL(t *testing.T) {
	e := newEnv(t)
	lines := []string{
		`{"text":"first","timestamp":"2024-01-01T10:00:00Z"}`,
		`not json`,
		`{"text":"second line\nwith break","timestamp":"2024-01-01T10:01:00Z"}`,
	}
	path := filepath.Join(e.dataDir, "history.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out := e.run(t, "history")
	got := strings.Split(strings.TrimSpace(out), "\n")
	if len(got) != 2 || !strings.HasSuffix(got[0], "second line⏎with break") || !strings.HasSuffix(got[1], "first") {
		t.Errorf("output:\n%s", out)
	}

	e.run(t, "history", "--clear")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("history file after clear: %q", data)
	}
}

func TestSecondInstanceRefused(t *testing.T) {
	e := newEnv(t)
	fl := flock.New(filepath.Join(e.dataDir, "promptline.lock"))
	ok, err := fl.TryLock()
	if err != nil || !ok {
		t.Fatalf("lock: %v %v", ok, err)
	}
	defer fl.Unlock()

	cmd := e.command()
	done := make(chan struct{})
	var out []byte
	go func() {
		out, err = cmd.CombinedOutput()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		cmd.Process.Kill()
		t.Fatal("promptline did not exit while the lock was held")
	}
	if err == nil || !strings.Contains(string(out), "already running") {
		t.Errorf("err=%v output:\n%s", err, out)
	}
}

func TestReplayRejectsBadShortcut(t *testing.T) {
	out, err := newEnv(t).command("replay", "Ctrl+Shift", "--delay", "0s").CombinedOutput()
	if err == nil {
		t.Fatalf("accepted modifier-only chord: %s", out)
	}
	if !strings.Contains(string(out), "no main key") {
		t.Errorf("output: %s", out)
	}
}

func TestClipboardRoundTrip(t *testing.T) {
	want := fmt.Sprintf("promptline-test-%d", time.Now().UnixNano())
	if err := clipboard.Copy(want); err != nil {
		t.Skip("clipboard not available")
	}
	got, err := clipboard.Read()
	if err != nil {
		t.Skip("clipboard not readable")
	}
	if got != want {
		t.Errorf("clipboard = %q, want %q", got, want)
	}
}
