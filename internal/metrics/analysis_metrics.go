package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "techtalk-analyzer"

// AnalysisMetrics counts analysis outcomes so operators can tell fallback
// results apart from genuine model answers.
type AnalysisMetrics struct {
	analysesCounter       metric.Int64Counter
	analysisDurationHisto metric.Float64Histogram
	enumViolationsCounter metric.Int64Counter
	recoveryStageCounter  metric.Int64Counter
}

// NewAnalysisMetrics creates the instruments on the global meter provider.
func NewAnalysisMetrics() (*AnalysisMetrics, error) {
	return NewAnalysisMetricsWithMeter(otel.Meter(meterName))
}

// NewAnalysisMetricsWithMeter creates the instruments on meter.
func NewAnalysisMetricsWithMeter(meter metric.Meter) (*AnalysisMetrics, error) {
	analysesCounter, err := meter.Int64Counter(
		"techtalk.analysis.total",
		metric.WithDescription("Total number of analyses by task and outcome"),
		metric.WithUnit("{analysis}"),
	)
	if err != nil {
		return nil, err
	}

	analysisDurationHisto, err := meter.Float64Histogram(
		"techtalk.analysis.duration",
		metric.WithDescription("Duration of an analysis round trip in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	enumViolationsCounter, err := meter.Int64Counter(
		"techtalk.analysis.enum_violations",
		metric.WithDescription("Model-supplied values outside the declared enum"),
		metric.WithUnit("{value}"),
	)
	if err != nil {
		return nil, err
	}

	recoveryStageCounter, err := meter.Int64Counter(
		"techtalk.analysis.recovery_stage",
		metric.WithDescription("Which JSON recovery stage produced the parsed object"),
		metric.WithUnit("{analysis}"),
	)
	if err != nil {
		return nil, err
	}

	return &AnalysisMetrics{
		analysesCounter:       analysesCounter,
		analysisDurationHisto: analysisDurationHisto,
		enumViolationsCounter: enumViolationsCounter,
		recoveryStageCounter:  recoveryStageCounter,
	}, nil
}

// RecordSucceeded records an analysis whose reply was recovered at stage.
func (am *AnalysisMetrics) RecordSucceeded(ctx context.Context, task, stage string, duration time.Duration) {
	am.analysesCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("task", task),
			attribute.String("status", "succeeded"),
		),
	)
	am.recoveryStageCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("task", task),
			attribute.String("stage", stage),
		),
	)
	am.analysisDurationHisto.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("task", task),
			attribute.String("status", "succeeded"),
		),
	)
}

// RecordFallback records an analysis that returned the fallback default.
func (am *AnalysisMetrics) RecordFallback(ctx context.Context, task, errorKind string, duration time.Duration) {
	am.analysesCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("task", task),
			attribute.String("status", "fallback"),
			attribute.String("error.kind", errorKind),
		),
	)
	am.analysisDurationHisto.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("task", task),
			attribute.String("status", "fallback"),
		),
	)
}

// RecordEnumViolations counts model values outside their declared enum.
func (am *AnalysisMetrics) RecordEnumViolations(ctx context.Context, task string, count int) {
	if count == 0 {
		return
	}
	am.enumViolationsCounter.Add(ctx, int64(count),
		metric.WithAttributes(
			attribute.String("task", task),
		),
	)
}
