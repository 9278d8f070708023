package oteladapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"golang.org/x/sync/errgroup"

	"github.com/AntonStoeckl/focused-atoms-go/oteladapters"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	byName := make(map[string]metricdata.Metrics)
	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			byName[m.Name] = m
		}
	}

	return byName
}

func newCollector() (*oteladapters.MetricsCollector, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return oteladapters.NewMetricsCollector(provider.Meter("test")), reader
}

func Test_MetricsCollector_RecordDuration_RecordsSecondsInHistogram(t *testing.T) {
	// arrange
	collector, reader := newCollector()

	// act
	collector.RecordDuration("atom_write_duration_seconds", 150*time.Millisecond, map[string]string{
		"operation": "write",
		"atom":      "counter",
	})

	// assert
	metrics := collect(t, reader)
	histogram, ok := metrics["atom_write_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, histogram.DataPoints, 1)
	assert.Equal(t, uint64(1), histogram.DataPoints[0].Count)
	assert.InDelta(t, 0.15, histogram.DataPoints[0].Sum, 0.001)

	expectedAttrs := attribute.NewSet(attribute.String("operation", "write"), attribute.String("atom", "counter"))
	assert.True(t, histogram.DataPoints[0].Attributes.Equals(&expectedAttrs))
	assert.Equal(t, "s", metrics["atom_write_duration_seconds"].Unit)
}

func Test_MetricsCollector_IncrementCounter_ConcurrentCallsAreCounted(t *testing.T) {
	// arrange
	collector, reader := newCollector()
	group, ctx := errgroup.WithContext(context.Background())

	// act
	for range 50 {
		group.Go(func() error {
			collector.IncrementCounterContext(ctx, "atom_writes_total", map[string]string{"status": "success"})
			return nil
		})
	}
	require.NoError(t, group.Wait())

	// assert
	sum, ok := collect(t, reader)["atom_writes_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(50), sum.DataPoints[0].Value)
	assert.True(t, sum.IsMonotonic)
}

func Test_MetricsCollector_RecordValue_KeepsLastValue(t *testing.T) {
	// arrange
	collector, reader := newCollector()
	labels := map[string]string{"atom": "counter"}

	// act
	collector.RecordValue("atom_listeners_notified", 4, labels)
	collector.RecordValueContext(context.Background(), "atom_listeners_notified", 2, labels)

	// assert
	gauge, ok := collect(t, reader)["atom_listeners_notified"].Data.(metricdata.Gauge[float64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.InDelta(t, 2.0, gauge.DataPoints[0].Value, 0)
}
