//go:build !gui

package main

import (
	"context"
	"errors"

	"promptline/config"
	"promptline/pipeline"
)

func runGUI(context.Context, *pipeline.Pipeline, *config.Config, func()) error {
	return errors.New("built without GUI support (rebuild with -tags gui)")
}
