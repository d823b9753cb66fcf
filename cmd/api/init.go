package main

import (
	"context"

	"calcpad/internal/observability"
	"calcpad/internal/session"
)

// initMetrics initialises the meter provider and the session instruments.
func initMetrics(ctx context.Context, store *session.Store) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if err := session.InitMetrics(store); err != nil {
		return nil, err
	}

	return shutdown, nil
}
