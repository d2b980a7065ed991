//go:build !windows && !linux && !darwin

package foreground

func capture() string { return "" }
