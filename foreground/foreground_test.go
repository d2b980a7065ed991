package foreground

import "testing"

func TestProcessName(t *testing.T) {
	tests := []struct{ in, want string }{
		{`C:\Program Files\Alacritty\alacritty.exe`, "alacritty.exe"},
		{"/usr/bin/wezterm-gui", "wezterm-gui"},
		{"/Applications/Foo.app/Contents/MacOS/Foo\n", "Foo"},
		{"notepad.exe", "notepad.exe"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := processName(tt.in); got != tt.want {
			t.Errorf("processName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCaptureNeverPanics(t *testing.T) {
	name, ok := Capture()
	if ok && name == "" {
		t.Error("ok with empty name")
	}
	if !ok && name != "" {
		t.Errorf("not ok but name %q", name)
	}
}
