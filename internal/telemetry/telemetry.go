// Package telemetry registers the engine's OpenTelemetry metric
// instruments and wires a stdout exporter by default.
//
// Instruments are registered against the global meter provider at init
// time: callers that never invoke Init observe a no-op provider, and
// Init simply swaps the global provider out from under already-
// registered instruments.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "github.com/Data-drone/caterpillar"

var instruments struct {
	flushDuration    metric.Float64Histogram
	documentsFlushed metric.Int64Counter
	framesFlushed    metric.Int64Counter
	queryDuration    metric.Float64Histogram
}

func init() {
	m := otel.Meter(meterName)
	instruments.flushDuration, _ = m.Float64Histogram("caterpillar.flush.duration_ms",
		metric.WithDescription("Time spent applying a staged workspace to the persistent store"),
		metric.WithUnit("ms"),
	)
	instruments.documentsFlushed, _ = m.Int64Counter("caterpillar.flush.documents",
		metric.WithDescription("Documents added or deleted by a flush"),
		metric.WithUnit("{document}"),
	)
	instruments.framesFlushed, _ = m.Int64Counter("caterpillar.flush.frames",
		metric.WithDescription("Frames added by a flush"),
		metric.WithUnit("{frame}"),
	)
	instruments.queryDuration, _ = m.Float64Histogram("caterpillar.query.duration_ms",
		metric.WithDescription("Time spent evaluating a query predicate against the store"),
		metric.WithUnit("ms"),
	)
}

// Init installs a stdout-exporting meter provider as the global
// provider and returns a shutdown function. Callers that never call
// Init get a functioning, metric-discarding no-op provider.
func Init(ctx context.Context) (shutdown func(context.Context) error, err error) {
	exporter, err := stdoutmetric.New(stdoutmetric.WithoutTimestamps())
	if err != nil {
		return nil, err
	}
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(time.Minute))),
	)
	otel.SetMeterProvider(provider)
	return provider.Shutdown, nil
}

// RecordFlush reports one completed flush's cost and size.
func RecordFlush(ctx context.Context, duration time.Duration, documentsAdded, documentsDeleted, framesAdded int) {
	instruments.flushDuration.Record(ctx, float64(duration.Milliseconds()))
	instruments.documentsFlushed.Add(ctx, int64(documentsAdded+documentsDeleted))
	instruments.framesFlushed.Add(ctx, int64(framesAdded))
}

// RecordQuery reports one evaluated query's latency.
func RecordQuery(ctx context.Context, duration time.Duration) {
	instruments.queryDuration.Record(ctx, float64(duration.Milliseconds()))
}
