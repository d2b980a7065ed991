// Package login registers promptline to start when the user logs in.
package login

import (
	"fmt"
	"os"
	"strings"
)

// Label names the login item on every platform.
const Label = "io.promptline.app"

// envKeys are carried into the login item so it finds the same config,
// data and log directories as the shell that enabled it.
var envKeys = []string{"PROMPTLINE_CONFIG_DIR", "PROMPTLINE_DATA_DIR", "PROMPTLINE_LOG_PATH"}

type envVar struct{ Key, Value string }

// carriedEnv returns the set envKeys in declaration order.
func carriedEnv() []envVar {
	var out []envVar
	for _, k := range envKeys {
		if v := os.Getenv(k); v != "" {
			out = append(out, envVar{k, v})
		}
	}
	return out
}

// argv is the current executable followed by args.
func argv(args []string) ([]string, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}
	return append([]string{exe}, args...), nil
}

// command is argv quoted into a single command line.
func command(args []string) (string, error) {
	av, err := argv(args)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(av))
	for i, a := range av {
		parts[i] = quote(a)
	}
	return strings.Join(parts, " "), nil
}

func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\"") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
