// Package shutdown turns termination signals into cancellation.
package shutdown

import (
	"context"
	"os"
	"os/signal"
)

func Notify(ch chan os.Signal) {
	signal.Notify(ch, signals...)
}

// Context is cancelled on the first termination signal.
func Context(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// OnSignal runs fn and exits with code on the first termination signal.
func OnSignal(fn func(), code int) {
	ch := make(chan os.Signal, 1)
	Notify(ch)
	go func() {
		<-ch
		fn()
		os.Exit(code)
	}()
}
