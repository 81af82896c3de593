package history

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	readCounter  metric.Int64Counter
	clearCounter metric.Int64Counter
	errorCounter metric.Int64Counter
)

// InitMetrics registers the history service's OTel instruments.
func InitMetrics() error {
	meter := otel.Meter("history")

	var err error

	readCounter, err = meter.Int64Counter("history.reads.total",
		metric.WithDescription("Total number of history page reads"),
		metric.WithUnit("{read}"),
	)
	if err != nil {
		return fmt.Errorf("creating read counter: %w", err)
	}

	clearCounter, err = meter.Int64Counter("history.cleared.entries",
		metric.WithDescription("Number of history entries removed by clear requests"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return fmt.Errorf("creating clear counter: %w", err)
	}

	errorCounter, err = meter.Int64Counter("history.errors.total",
		metric.WithDescription("Total number of failed history requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	return nil
}
