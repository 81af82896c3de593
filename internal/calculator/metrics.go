package calculator

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Rejection reasons reported on calculator.rejections.total.
const (
	ReasonInvalidBody     = "invalid_body"
	ReasonUnknownOperator = "unknown_operator"
	ReasonMissingOperand  = "missing_operand"
	ReasonInvalidOperand  = "invalid_operand"
	ReasonDivisionByZero  = "division_by_zero"
	ReasonOverflow        = "overflow"
	ReasonStoreFailure    = "store_failure"
)

var (
	calculationCounter metric.Int64Counter
	latencyHistogram   metric.Float64Histogram
	rejectionCounter   metric.Int64Counter
	errorCounter       metric.Int64Counter
)

// InitMetrics registers the compute service's instruments on the global
// meter provider. Call it after observability.InitMetrics.
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	calculationCounter, err = meter.Int64Counter("calculator.calculations.total",
		metric.WithDescription("Calculations evaluated and stored in history"),
		metric.WithUnit("{calculation}"),
	)
	if err != nil {
		return fmt.Errorf("creating calculation counter: %w", err)
	}

	latencyHistogram, err = meter.Float64Histogram("calculator.calculation.duration",
		metric.WithDescription("Evaluate plus history insert, in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.05, 0.25, 1, 2.5, 5, 10, 25, 100),
	)
	if err != nil {
		return fmt.Errorf("creating latency histogram: %w", err)
	}

	rejectionCounter, err = meter.Int64Counter("calculator.rejections.total",
		metric.WithDescription("Calculations refused, by reason"),
		metric.WithUnit("{calculation}"),
	)
	if err != nil {
		return fmt.Errorf("creating rejection counter: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Failed calculate requests, by operation and status code"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	return nil
}

// RejectionReason classifies an Apply error.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrDivisionByZero):
		return ReasonDivisionByZero
	case errors.Is(err, ErrOverflow):
		return ReasonOverflow
	case errors.Is(err, ErrUnknownOperator):
		return ReasonUnknownOperator
	default:
		return ReasonInvalidOperand
	}
}

func recordRejection(ctx context.Context, opName, reason string) {
	rejectionCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", opName),
		attribute.String("reason", reason),
	))
}
