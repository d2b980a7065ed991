//go:build linux

package doctor

import "promptline/paste"

// preflight types Ctrl+V through the virtual keyboard and reads it back.
var preflight = paste.Verify
