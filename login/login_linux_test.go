package login

import (
	"os"
	"strings"
	"testing"
)

func TestEnableDisable(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if Enabled() {
		t.Fatal("enabled before Enable")
	}
	if err := Enable([]string{"--surface", "gui"}); err != nil {
		t.Fatal(err)
	}
	if !Enabled() {
		t.Fatal("not enabled after Enable")
	}
	path, _ := desktopPath()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "--surface gui\n") {
		t.Errorf("entry:\n%s", data)
	}

	if err := Disable(); err != nil {
		t.Fatal(err)
	}
	if Enabled() {
		t.Error("still enabled after Disable")
	}
	if err := Disable(); err != nil {
		t.Errorf("second Disable: %v", err)
	}
}

func TestEnableCarriesEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PROMPTLINE_CONFIG_DIR", "")
	t.Setenv("PROMPTLINE_DATA_DIR", "/data dir")
	t.Setenv("PROMPTLINE_LOG_PATH", "")

	if err := Enable(nil); err != nil {
		t.Fatal(err)
	}
	path, _ := desktopPath()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `Exec=env "PROMPTLINE_DATA_DIR=/data dir" `) {
		t.Errorf("entry:\n%s", data)
	}
}
