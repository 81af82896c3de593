package main

import (
	"context"

	"keypad-calculator/internal/calculator"
	"keypad-calculator/internal/history"
	"keypad-calculator/internal/observability"
)

// initMetrics initialises the meter provider and every domain's instruments.
func initMetrics(ctx context.Context) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if err := calculator.InitMetrics(); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	if err := history.InitMetrics(); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	return shutdown, nil
}
