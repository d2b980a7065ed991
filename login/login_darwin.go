//go:build darwin

package login

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os"
	"os/exec"
	"path/filepath"
	"text/template"
)

var plistTmpl = template.Must(template.New("plist").Funcs(template.FuncMap{"x": html.EscapeString}).Parse(
	`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>{{x .Label}}</string>
	<key>ProgramArguments</key>
	<array>
{{- range .Args}}
		<string>{{x .}}</string>
{{- end}}
	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>LimitLoadToSessionType</key>
	<string>Aqua</string>
	<key>EnvironmentVariables</key>
	<dict>
{{- range .Env}}
		<key>{{x .Key}}</key>
		<string>{{x .Value}}</string>
{{- end}}
	</dict>
</dict>
</plist>
`))

type launchAgent struct {
	Label string
	Args  []string
	Env   []envVar
}

func (a launchAgent) render() ([]byte, error) {
	var buf bytes.Buffer
	if err := plistTmpl.Execute(&buf, a); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func plistPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "LaunchAgents", Label+".plist"), nil
}

func guiDomain() string { return fmt.Sprintf("gui/%d", os.Getuid()) }

func Enabled() bool {
	path, err := plistPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Enable writes the LaunchAgent and loads it, replacing a loaded copy.
func Enable(args []string) error {
	av, err := argv(args)
	if err != nil {
		return err
	}
	data, err := launchAgent{Label: Label, Args: av, Env: carriedEnv()}.render()
	if err != nil {
		return fmt.Errorf("render plist: %w", err)
	}
	path, err := plistPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create LaunchAgents dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write plist: %w", err)
	}

	exec.Command("launchctl", "bootout", guiDomain(), path).Run()
	if out, err := exec.Command("launchctl", "bootstrap", guiDomain(), path).CombinedOutput(); err != nil {
		return fmt.Errorf("launchctl bootstrap: %w (%s)", err, bytes.TrimSpace(out))
	}
	return nil
}

func Disable() error {
	path, err := plistPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	exec.Command("launchctl", "bootout", guiDomain(), path).Run()
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove plist: %w", err)
	}
	return nil
}
