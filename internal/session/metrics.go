package session

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments, initialised once via InitMetrics().
var (
	keyCounter   metric.Int64Counter
	keyHistogram metric.Float64Histogram
	errorCounter metric.Int64Counter
	resultGauge  metric.Float64Gauge
)

// InitMetrics registers the calculator session instruments. The active
// session gauge is observed from store on every collection. Call this once
// at startup, after observability.InitMetrics.
func InitMetrics(store *Store) error {
	meter := otel.Meter("session")

	var err error

	keyCounter, err = meter.Int64Counter("calculator.keys.total",
		metric.WithDescription("Total number of key events applied to calculators"),
		metric.WithUnit("{key}"),
	)
	if err != nil {
		return fmt.Errorf("creating key counter: %w", err)
	}

	keyHistogram, err = meter.Float64Histogram("calculator.key.duration",
		metric.WithDescription("Time spent applying one key event in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1),
	)
	if err != nil {
		return fmt.Errorf("creating key histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of calculator and API errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The last numeric result produced by equals"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	_, err = meter.Int64ObservableGauge("calculator.sessions.active",
		metric.WithDescription("Number of live calculator sessions"),
		metric.WithUnit("{session}"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(int64(store.Len()))
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("creating active sessions gauge: %w", err)
	}

	return nil
}
