package calculator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"keypad-calculator/internal/handlers"
	"keypad-calculator/internal/history"
	"keypad-calculator/internal/observability"

	json "github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Recorder persists a successful calculation so that the history endpoint
// can serve it back.
type Recorder interface {
	Append(ctx context.Context, e history.Entry) (history.Entry, error)
}

type Handler struct {
	recorder Recorder
}

func NewHandler(recorder Recorder) *Handler {
	return &Handler{recorder: recorder}
}

// Calculate handles POST /api/calculate.
//
// Each request gets a child span carrying operands and result, OTel metrics,
// a trace-correlated log line and, on success, one history entry.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.calculate",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	var req CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		recordRejection(ctx, "calculate", ReasonInvalidBody)
		observability.RecordError(ctx, span, logger, errorCounter, "calculate", "Invalid request body.", err, http.StatusBadRequest, w)
		return
	}

	op, err := ParseOp(req.Op)
	if err != nil {
		recordRejection(ctx, "calculate", ReasonUnknownOperator)
		observability.RecordError(ctx, span, logger, errorCounter, "calculate", fmt.Sprintf("Unsupported operator %q.", req.Op), err, http.StatusBadRequest, w)
		return
	}
	opName := op.Name()
	span.SetName("calculator." + opName)
	span.SetAttributes(attribute.String("calculator.operation", opName))

	if req.A == nil || req.B == nil {
		recordRejection(ctx, opName, ReasonMissingOperand)
		observability.RecordError(ctx, span, logger, errorCounter, opName, "Both operands a and b are required.", errors.New("missing operand"), http.StatusBadRequest, w)
		return
	}
	a, b := *req.A, *req.B

	span.SetAttributes(
		attribute.Float64("calculator.operand.a", a),
		attribute.Float64("calculator.operand.b", b),
	)

	start := time.Now()
	result, err := Apply(a, b, op)
	if err != nil {
		detail := err.Error()
		if errors.Is(err, ErrInvalidOperand) {
			detail = "Operands must be finite numbers."
		}
		recordRejection(ctx, opName, RejectionReason(err))
		observability.RecordError(ctx, span, logger, errorCounter, opName, detail, err, http.StatusBadRequest, w)
		return
	}

	entry, err := h.recorder.Append(ctx, history.Entry{A: a, B: b, Op: string(op), Result: result})
	if err != nil {
		recordRejection(ctx, opName, ReasonStoreFailure)
		observability.RecordError(ctx, span, logger, errorCounter, opName, "Failed to save calculation.", err, http.StatusInternalServerError, w)
		return
	}
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	calculationCounter.Add(ctx, 1, attrs)
	latencyHistogram.Record(ctx, elapsed, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", result),
		attribute.Int64("history.id", entry.ID),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculation completed",
		zap.String("operation", opName),
		zap.Float64("a", a),
		zap.Float64("b", b),
		zap.Float64("result", result),
		zap.Int64("history_id", entry.ID),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		ID:        entry.ID,
		A:         a,
		B:         b,
		Op:        op,
		Result:    result,
		CreatedAt: entry.CreatedAt,
	})
}
