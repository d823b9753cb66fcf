package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"calcpad/internal/calculator"
	"calcpad/internal/handlers"
	"calcpad/internal/keymap"
	"calcpad/internal/numfmt"
	"calcpad/internal/observability"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var (
	ErrUnknownKey = errors.New("unknown key")
	ErrNoKeys     = errors.New("no keys provided")
)

// tracer is the session domain's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("session")

// Handler serves the calculator session API backed by a Store.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Create handles POST /sessions.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "session.create")
	defer span.End()
	logger := observability.LoggerWithTrace(ctx)

	id := uuid.NewString()
	state, err := h.store.Create(id)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "store_closed", "session store unavailable", err, http.StatusServiceUnavailable, w)
		return
	}

	span.SetAttributes(attribute.String("session.id", id))
	span.SetStatus(codes.Ok, "")

	logger.Info("session created",
		zap.String("session_id", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, newSnapshot(id, state))
}

// Get handles GET /sessions/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, span := tracer.Start(r.Context(), "session.get",
		trace.WithAttributes(attribute.String("session.id", id)),
	)
	defer span.End()

	state, err := h.store.Get(id)
	if err != nil {
		storeError(ctx, w, span, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, newSnapshot(id, state))
}

// Delete handles DELETE /sessions/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, span := tracer.Start(r.Context(), "session.delete",
		trace.WithAttributes(attribute.String("session.id", id)),
	)
	defer span.End()

	if err := h.store.Delete(id); err != nil {
		storeError(ctx, w, span, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	observability.LoggerWithTrace(ctx).Info("session deleted",
		zap.String("session_id", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)
	w.WriteHeader(http.StatusNoContent)
}

// PressKeys handles POST /sessions/{id}/keys: every key is mapped first, so
// an unknown key rejects the whole batch; the batch is then applied in
// order with a child span per key.
func (h *Handler) PressKeys(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	requestID := observability.RequestIDFromContext(r.Context())

	ctx, span := tracer.Start(r.Context(), "session.keys",
		trace.WithAttributes(
			attribute.String("session.id", id),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()
	logger := observability.LoggerWithTrace(ctx)

	var req KeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "invalid_body", "invalid request body", err, http.StatusBadRequest, w)
		return
	}
	if len(req.Keys) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "no_keys", ErrNoKeys.Error(), ErrNoKeys, http.StatusBadRequest, w)
		return
	}

	events := make([]calculator.Event, len(req.Keys))
	for i, key := range req.Keys {
		ev, ok := keymap.Lookup(key)
		if !ok {
			err := fmt.Errorf("%w %q at index %d", ErrUnknownKey, key, i)
			observability.RecordError(ctx, span, logger, errorCounter, "unknown_key", err.Error(), err, http.StatusBadRequest, w)
			return
		}
		events[i] = ev
	}

	span.SetAttributes(attribute.Int("session.keys_count", len(events)))

	state, err := h.store.Update(id, func(s calculator.State) calculator.State {
		for i, ev := range events {
			s = applyKey(ctx, logger, s, i, req.Keys[i], ev)
		}
		return s
	})
	if err != nil {
		storeError(ctx, w, span, err)
		return
	}

	span.AddEvent("keys.applied", trace.WithAttributes(
		attribute.String("display", state.Display()),
		attribute.Int("keys", len(events)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("keys applied",
		zap.String("session_id", id),
		zap.Strings("keys", req.Keys),
		zap.String("display", state.Display()),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, newSnapshot(id, state))
}

// applyKey runs one transition inside its own span and records its metrics.
func applyKey(ctx context.Context, logger *zap.Logger, s calculator.State, i int, key string, ev calculator.Event) calculator.State {
	kind := ev.Kind.String()
	_, keySpan := tracer.Start(ctx, fmt.Sprintf("calculator.%s", kind),
		trace.WithAttributes(
			attribute.Int("calculator.key.index", i),
			attribute.String("calculator.key", key),
			attribute.String("calculator.event.kind", kind),
			attribute.String("calculator.display.before", s.Display()),
		),
	)
	defer keySpan.End()

	start := time.Now()
	next := calculator.Apply(s, ev)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	attrs := metric.WithAttributes(attribute.String("kind", kind))
	keyCounter.Add(ctx, 1, attrs)
	keyHistogram.Record(ctx, elapsed, attrs)

	keySpan.SetAttributes(attribute.String("calculator.display.after", next.Display()))

	if next.Failed() && !s.Failed() {
		err := fmt.Errorf("key %q produced %s", key, numfmt.ErrorMarker)
		keySpan.RecordError(err)
		keySpan.SetStatus(codes.Error, "calculation failed")
		errorCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", "calculation_failed")))
		logger.Warn("calculation failed",
			zap.Int("index", i),
			zap.String("key", key),
			zap.String("display_before", s.Display()),
		)
		return next
	}

	if ev.Kind == calculator.EventEquals && !next.Failed() {
		if _, _, pending := s.Pending(); pending {
			resultGauge.Record(ctx, numfmt.Parse(numfmt.ToRaw(next.Display())))
		}
	}

	keySpan.SetStatus(codes.Ok, "")
	logger.Debug("key applied",
		zap.Int("index", i),
		zap.String("key", key),
		zap.String("kind", kind),
		zap.String("display", next.Display()),
		zap.Float64("duration_ms", elapsed),
	)
	return next
}

// storeError maps Store errors to HTTP responses.
func storeError(ctx context.Context, w http.ResponseWriter, span trace.Span, err error) {
	logger := observability.LoggerWithTrace(ctx)

	switch {
	case errors.Is(err, ErrNotFound):
		observability.RecordError(ctx, span, logger, errorCounter, "session_not_found", ErrNotFound.Error(), err, http.StatusNotFound, w)
	case errors.Is(err, ErrStoreClosed):
		observability.RecordError(ctx, span, logger, errorCounter, "store_closed", "session store unavailable", err, http.StatusServiceUnavailable, w)
	default:
		observability.RecordError(ctx, span, logger, errorCounter, "internal", "internal error", err, http.StatusInternalServerError, w)
	}
}
