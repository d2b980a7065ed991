package login

import "testing"

func TestQuote(t *testing.T) {
	tests := map[string]string{
		"/usr/bin/promptline":    "/usr/bin/promptline",
		`C:\Program Files\p.exe`: `"C:\Program Files\p.exe"`,
		"":                       `""`,
		`say "hi"`:               `"say \"hi\""`,
	}
	for in, want := range tests {
		if got := quote(in); got != want {
			t.Errorf("quote(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCarriedEnvOrder(t *testing.T) {
	t.Setenv("PROMPTLINE_LOG_PATH", "/logs")
	t.Setenv("PROMPTLINE_DATA_DIR", "")
	t.Setenv("PROMPTLINE_CONFIG_DIR", "/cfg")

	got := carriedEnv()
	if len(got) != 2 || got[0].Key != "PROMPTLINE_CONFIG_DIR" || got[1].Value != "/logs" {
		t.Errorf("carriedEnv = %+v", got)
	}
}
