//go:build !windows

package doctor

import (
	"os/exec"

	"promptline/shutdown"
)

func resetTerminal() {
	exec.Command("stty", "sane").Run()
}

func setupInterruptHandler() {
	shutdown.OnSignal(func() {
		println("\nInterrupted")
	}, 1)
}
