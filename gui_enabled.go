//go:build gui

package main

import (
	"context"

	"promptline/config"
	"promptline/gui"
	"promptline/pipeline"
)

// runGUI blocks on the fyne loop. onReady runs in its own goroutine once
// the window exists.
func runGUI(ctx context.Context, p *pipeline.Pipeline, cfg *config.Config, onReady func()) error {
	app := gui.NewApp(p, cfg, onReady)
	p.SetSurface(app)
	go func() {
		<-ctx.Done()
		app.Quit()
	}()
	return gui.Run(app)
}
