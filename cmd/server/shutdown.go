package main

import (
	"context"

	"go.uber.org/zap"
)

// shutdownStep releases one resource during graceful shutdown
type shutdownStep struct {
	name string
	fn   func(ctx context.Context) error
}

// closer adapts an io.Closer style function to a shutdownStep
func closer(name string, fn func() error) shutdownStep {
	return shutdownStep{name: name, fn: func(context.Context) error { return fn() }}
}

// runShutdown runs every step in order. A failing step is logged and does not
// stop the ones after it.
func runShutdown(ctx context.Context, log *zap.Logger, steps []shutdownStep) int {
	failed := 0
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			failed++
			log.Error("Shutdown step failed", zap.String("step", step.name), zap.Error(err))
		}
	}
	return failed
}
