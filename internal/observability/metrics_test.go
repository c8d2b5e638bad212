package observability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aelexs/timestamp/internal/domain/domaintest"
	"github.com/aelexs/timestamp/internal/observability"
	"github.com/aelexs/timestamp/pkg/timestamp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"lukechampine.com/uint128"
)

func TestInitMetrics_NoEndpoint(t *testing.T) {
	cfg := observability.MetricsConfig{
		ServiceName:    "test-service",
		ServiceVersion: "0.0.1",
		Environment:    "test",
		OTLPEndpoint:   "",
	}

	mp, err := observability.InitMetrics(context.Background(), cfg)

	require.NoError(t, err)
	require.NotNil(t, mp)
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestMetricsProvider_ShutdownNilProvider(t *testing.T) {
	mp := &observability.MetricsProvider{}

	err := mp.Shutdown(context.Background())

	assert.NoError(t, err)
}

func TestInitMetrics_ExtraReader(t *testing.T) {
	previous := otel.GetMeterProvider()
	t.Cleanup(func() { otel.SetMeterProvider(previous) })

	reader := sdkmetric.NewManualReader()
	mp, err := observability.InitMetrics(context.Background(), observability.MetricsConfig{
		ServiceName: "tsctl",
		Readers:     []sdkmetric.Reader{reader},
	})
	require.NoError(t, err)
	defer func() { _ = mp.Shutdown(context.Background()) }()

	rec, err := observability.NewCommandRecorder(observability.Meter("test"))
	require.NoError(t, err)

	clock := domaintest.NewFakeClockUnixMilli(0)
	sw := timestamp.StartStopWatchWithClock(clock)
	clock.Advance(2 * time.Millisecond)
	rec.Record(context.Background(), "now", sw, nil)

	points := collectHistogram(t, reader)
	require.Len(t, points, 1)
	assert.Equal(t, uint64(1), points[0].Count)
}

func TestCommandRecorder_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	rec, err := observability.NewCommandRecorder(provider.Meter("test"))
	require.NoError(t, err)

	clock := domaintest.NewFakeClockUnixMilli(1_685_284_606_076)
	sw := timestamp.StartStopWatchWithClock(clock)
	clock.Advance(1500 * time.Microsecond)

	elapsed := rec.Record(context.Background(), "unix", sw, nil)
	assert.Equal(t, "00:00:00.001500000", elapsed.Format())

	rec.Record(context.Background(), "unix", sw, errors.New("boom"))

	points := collectHistogram(t, reader)
	require.Len(t, points, 2)

	byOutcome := map[string]metricdata.HistogramDataPoint[float64]{}
	for _, dp := range points {
		cmd, ok := dp.Attributes.Value("command")
		require.True(t, ok)
		assert.Equal(t, "unix", cmd.AsString())

		outcome, ok := dp.Attributes.Value("outcome")
		require.True(t, ok)
		byOutcome[outcome.AsString()] = dp
	}

	require.Contains(t, byOutcome, "ok")
	require.Contains(t, byOutcome, "error")
	assert.Equal(t, uint64(1), byOutcome["ok"].Count)
	assert.InDelta(t, 1.5, byOutcome["ok"].Sum, 1e-9)
	assert.Equal(t, uint64(1), byOutcome["error"].Count)
}

func TestMilliseconds(t *testing.T) {
	tests := []struct {
		name string
		in   timestamp.PreciseElapsedTime
		want float64
	}{
		{"zero", timestamp.PreciseFromUint64(0), 0},
		{"sub-millisecond", timestamp.PreciseFromUint64(250_000), 0.25},
		{"one and a half", timestamp.PreciseFromUint64(1_500_000), 1.5},
		{"one hour", timestamp.NewPreciseElapsedTime(0, 1, 0, 0, 0, 0, 0), 3_600_000},
		{"beyond 64 bits", timestamp.PreciseFromNanoseconds(uint128.New(0, 1)), 18_446_744_073_709.551616},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, observability.Milliseconds(tt.in), 1e-3)
		})
	}
}

func collectHistogram(t *testing.T, reader sdkmetric.Reader) []metricdata.HistogramDataPoint[float64] {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != observability.CommandDurationMetric {
				continue
			}
			hist, ok := m.Data.(metricdata.Histogram[float64])
			require.True(t, ok, "unexpected data type %T", m.Data)
			return hist.DataPoints
		}
	}
	t.Fatalf("metric %s not collected", observability.CommandDurationMetric)
	return nil
}
