package history

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"keypad-calculator/internal/handlers"
	"keypad-calculator/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("history")

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// List handles GET /api/history?limit=N.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "history.list",
		trace.WithAttributes(attribute.String("request.id", observability.RequestIDFromContext(ctx))),
	)
	defer span.End()

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "list", err.Error(), err, http.StatusBadRequest, w)
		return
	}
	span.SetAttributes(attribute.Int("history.limit", limit))

	items, err := h.store.List(ctx, limit)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "list", "Failed to load history.", err, http.StatusInternalServerError, w)
		return
	}

	readCounter.Add(ctx, 1)
	span.SetAttributes(attribute.Int("history.items", len(items)))
	span.SetStatus(codes.Ok, "")

	logger.Debug("history listed", zap.Int("limit", limit), zap.Int("items", len(items)))

	handlers.WriteJSON(w, http.StatusOK, ListResponse{Items: items})
}

// Clear handles DELETE /api/history.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "history.clear",
		trace.WithAttributes(attribute.String("request.id", observability.RequestIDFromContext(ctx))),
	)
	defer span.End()

	n, err := h.store.Clear(ctx)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "clear", "Failed to clear history.", err, http.StatusInternalServerError, w)
		return
	}

	clearCounter.Add(ctx, n)
	span.SetAttributes(attribute.Int64("history.deleted", n))
	span.SetStatus(codes.Ok, "")

	logger.Info("history cleared",
		zap.Int64("deleted", n),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusOK, ClearResponse{Deleted: n})
}

var errBadLimit = errors.New("limit must be an integer")

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return DefaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w between 1 and %d", errBadLimit, MaxLimit)
	}
	if n < 1 || n > MaxLimit {
		return 0, fmt.Errorf("%w between 1 and %d", errBadLimit, MaxLimit)
	}
	return n, nil
}
