//go:build !linux

package main

import (
	"os"
	"runtime"

	"golang.design/x/hotkey/mainthread"

	"promptline/log"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	// Set up crash logging early, before any CGO code runs
	log.InitCrashLog()

	if guiRequested(os.Args[1:]) {
		// fyne takes the main thread; hotkeys run on its loop
		os.Exit(execute())
	}
	code := 0
	mainthread.Init(func() { code = execute() })
	os.Exit(code)
}
