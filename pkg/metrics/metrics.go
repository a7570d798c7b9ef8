// Package metrics sets up the OpenTelemetry meter provider exported through
// Prometheus and holds the instruments shared by the fill pipeline.
package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// LongBuckets covers operations bounded by model latency, in seconds.
var LongBuckets = []float64{.1, .5, 1, 2.5, 5, 10, 20, 30, 60, 120, 300} //nolint: gochecknoglobals

const meterName = "github.com/sonnq3591/plg-hsdt"

// Setup creates a meter provider backed by the Prometheus default registerer
// and installs it as the global provider.
func Setup() (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(prometheus.DefaultRegisterer))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))
	otel.SetMeterProvider(mp)

	return mp, nil
}

// Instruments groups the application metrics.
type Instruments struct {
	// FillsStarted counts pipeline runs, FillsFinished counts them again by
	// outcome once they end.
	FillsStarted  metric.Int64Counter
	FillsFinished metric.Int64Counter
	FillDuration  metric.Float64Histogram

	ExtractDuration metric.Float64Histogram

	LLMRequests metric.Int64Counter
	LLMLatency  metric.Float64Histogram
	LLMTokens   metric.Int64Counter
}

// New creates the instruments on mp.
func New(mp metric.MeterProvider) (*Instruments, error) {
	m := mp.Meter(meterName)
	i := &Instruments{}

	var err error
	if i.FillsStarted, err = m.Int64Counter("hsdt.fills.started",
		metric.WithDescription("Fill pipeline runs started")); err != nil {
		return nil, err
	}
	if i.FillsFinished, err = m.Int64Counter("hsdt.fills.finished",
		metric.WithDescription("Fill pipeline runs finished, by outcome")); err != nil {
		return nil, err
	}
	if i.FillDuration, err = m.Float64Histogram("hsdt.fill.duration",
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(LongBuckets...)); err != nil {
		return nil, err
	}
	if i.ExtractDuration, err = m.Float64Histogram("hsdt.pdf.extract.duration",
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...)); err != nil {
		return nil, err
	}
	if i.LLMRequests, err = m.Int64Counter("hsdt.llm.requests",
		metric.WithDescription("Model completions, by prompt and outcome")); err != nil {
		return nil, err
	}
	if i.LLMLatency, err = m.Float64Histogram("hsdt.llm.latency",
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(LongBuckets...)); err != nil {
		return nil, err
	}
	if i.LLMTokens, err = m.Int64Counter("hsdt.llm.tokens",
		metric.WithDescription("Tokens used, by kind (prompt, completion)")); err != nil {
		return nil, err
	}

	return i, nil
}

var (
	defaultInstruments *Instruments //nolint: gochecknoglobals
	defaultOnce        sync.Once    //nolint: gochecknoglobals
)

// Default returns instruments created on the global meter provider. They
// follow the provider installed by Setup even when created before it.
func Default() *Instruments {
	defaultOnce.Do(func() {
		i, err := New(otel.GetMeterProvider())
		if err != nil {
			panic(fmt.Sprintf("could not create metric instruments: %v", err))
		}
		defaultInstruments = i
	})

	return defaultInstruments
}
