//go:build windows

package doctor

import "promptline/shutdown"

func resetTerminal() {}

func setupInterruptHandler() {
	shutdown.OnSignal(func() {
		println("\nInterrupted")
	}, 1)
}
