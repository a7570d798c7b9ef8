package metrics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/sonnq3591/plg-hsdt/pkg/metrics"
)

func TestNew_Records(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	i, err := metrics.New(mp)
	require.NoError(t, err)

	ctx := context.Background()
	i.LLMRequests.Add(ctx, 2, metric.WithAttributes(attribute.String("outcome", "ok")))
	i.FillDuration.Record(ctx, 12.5)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	names := map[string]bool{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		names[m.Name] = true
	}
	require.True(t, names["hsdt.llm.requests"])
	require.True(t, names["hsdt.fill.duration"])
}

func TestDefault_Singleton(t *testing.T) {
	require.Same(t, metrics.Default(), metrics.Default())
}
