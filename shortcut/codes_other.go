//go:build !windows && !linux && !darwin

package shortcut

// Code has no table on platforms without an injector.
func Code(k Key) (uint16, bool) {
	return 0, false
}
