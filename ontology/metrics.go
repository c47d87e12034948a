package ontology

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("ontograph.ontology")
	meter  = otel.Meter("ontograph.ontology")
)

var (
	buildLatency   metric.Float64Histogram
	buildTotal     metric.Int64Counter
	closureEntries metric.Int64Histogram
	subOntologies  metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics creates the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		buildLatency, err = meter.Float64Histogram(
			"ontology_build_duration_seconds",
			metric.WithDescription("Duration of ontology builds including the ancestor sweep"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		buildTotal, err = meter.Int64Counter(
			"ontology_build_total",
			metric.WithDescription("Total number of ontology builds"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		closureEntries, err = meter.Int64Histogram(
			"ontology_closure_entries",
			metric.WithDescription("Sum of ancestor set sizes per build"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		subOntologies, err = meter.Int64Counter(
			"ontology_subontology_total",
			metric.WithDescription("Total number of derived sub-ontologies"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func recordBuildMetrics(ctx context.Context, duration time.Duration, stats BuildStats, success bool) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(attribute.Bool("success", success))
	buildLatency.Record(ctx, duration.Seconds(), attrs)
	buildTotal.Add(ctx, 1, attrs)
	if success {
		closureEntries.Record(ctx, int64(stats.ClosureEntries))
	}
}

func recordSubOntology(ctx context.Context, root TermID) {
	if err := initMetrics(); err != nil {
		return
	}
	subOntologies.Add(ctx, 1, metric.WithAttributes(attribute.String("prefix", root.Prefix())))
}

func startBuildSpan(ctx context.Context, terms, relationships int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "ontology.Builder.Build",
		trace.WithAttributes(
			attribute.Int("ontology.input_terms", terms),
			attribute.Int("ontology.input_relationships", relationships),
		),
	)
}

func setBuildSpanResult(span trace.Span, stats BuildStats) {
	span.SetAttributes(
		attribute.Int("ontology.terms", stats.Terms),
		attribute.Int("ontology.hierarchy_edges", stats.HierarchyEdges),
		attribute.Int("ontology.closure_entries", stats.ClosureEntries),
		attribute.Int("ontology.workers", stats.Workers),
	)
}
