//go:build !linux

package doctor

var preflight func() (string, error)
