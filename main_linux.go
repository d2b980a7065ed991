//go:build linux

package main

import (
	"os"

	"promptline/log"
)

func main() {
	// Set up crash logging early, before any CGO code runs
	log.InitCrashLog()
	os.Exit(execute())
}
