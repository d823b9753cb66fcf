package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var Logger = zap.NewNop()

// InitLogger installs a production JSON logger writing to stderr.
func InitLogger() error {
	var err error

	Logger, err = zap.NewProduction()
	if err != nil {
		return err
	}

	return nil
}

// InitFileLogger installs a production JSON logger writing to path at the
// given level. An empty path installs a no-op logger, which keeps logs off
// a terminal that is being drawn on.
func InitFileLogger(path, level string) error {
	if path == "" {
		Logger = zap.NewNop()
		return nil
	}

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build file logger: %w", err)
	}

	Logger = l
	return nil
}

func SyncLogger() {
	_ = Logger.Sync()
}

// LoggerWithTrace returns a child logger enriched with trace_id and span_id
// fields from the active OTel span in ctx.
//
// ctx itself is attached as a zap.Any("context", ctx) field. The otelzap
// bridge recognises fields holding a context.Context and emits the record
// with that context, so exported OTLP log records carry native TraceID and
// SpanID values and can be joined with traces downstream.
//
// The plain trace_id / span_id strings keep stdout JSON greppable.
func LoggerWithTrace(ctx context.Context) *zap.Logger {
	span := trace.SpanContextFromContext(ctx)

	if !span.IsValid() {
		return Logger
	}

	return Logger.With(
		zap.Any("context", ctx),
		zap.String("trace_id", span.TraceID().String()),
		zap.String("span_id", span.SpanID().String()),
	)
}
