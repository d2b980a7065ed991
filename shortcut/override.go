package shortcut

import "strings"

// Override replaces the paste shortcut for one target process.
type Override struct {
	ProcessName string `toml:"process_name"`
	Shortcut    string `toml:"shortcut"`
}

// Resolve picks the paste shortcut for the foreground process. The first
// override whose process name matches (case-insensitive, exact) wins;
// overrides with a blank name never match.
func Resolve(foreground string, overrides []Override, fallback string) string {
	if foreground == "" {
		return fallback
	}
	for _, o := range overrides {
		if strings.TrimSpace(o.ProcessName) == "" {
			continue
		}
		if strings.EqualFold(o.ProcessName, foreground) {
			return o.Shortcut
		}
	}
	return fallback
}
