package observability

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/aelexs/timestamp/internal/domain"
	"github.com/aelexs/timestamp/pkg/timestamp"
)

// CommandDurationMetric is the histogram recording how long each tsctl
// command took, in milliseconds.
const CommandDurationMetric = "tsctl.command.duration"

// MetricsConfig holds configuration for the metrics provider.
type MetricsConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	OTLPEndpoint   string // Empty string disables OTLP export

	// Readers are attached in addition to the OTLP exporter. Tests pass a
	// manual reader here.
	Readers []sdkmetric.Reader
}

// MetricsProvider wraps the OpenTelemetry meter provider with shutdown capabilities.
type MetricsProvider struct {
	provider *sdkmetric.MeterProvider
}

// InitMetrics initializes the OpenTelemetry meter provider.
// Returns a MetricsProvider that must be shut down on application exit.
func InitMetrics(ctx context.Context, cfg MetricsConfig) (*MetricsProvider, error) {
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironment(cfg.Environment),
	)

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}

	if cfg.OTLPEndpoint != "" {
		exporter, err := otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create OTLP metric exporter: %w", err)
		}
		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)))
	}
	for _, r := range cfg.Readers {
		opts = append(opts, sdkmetric.WithReader(r))
	}

	provider := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(provider)

	return &MetricsProvider{provider: provider}, nil
}

// Shutdown flushes any remaining metrics and shuts down the provider.
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	return mp.provider.Shutdown(ctx)
}

// Meter returns a meter for the given instrumentation name.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// CommandRecorder records command durations measured by a StopWatch.
type CommandRecorder struct {
	duration metric.Float64Histogram
}

// NewCommandRecorder registers the command duration histogram on m.
func NewCommandRecorder(m metric.Meter) (*CommandRecorder, error) {
	h, err := m.Float64Histogram(CommandDurationMetric,
		metric.WithDescription("Duration of tsctl commands"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s histogram: %w", CommandDurationMetric, err)
	}
	return &CommandRecorder{duration: h}, nil
}

// Record stops the clock on sw and records the elapsed time for command.
// The outcome attribute is "error" when err is non-nil.
func (r *CommandRecorder) Record(ctx context.Context, command string, sw timestamp.StopWatch, err error) timestamp.PreciseElapsedTime {
	elapsed := sw.Elapsed()

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.duration.Record(ctx, Milliseconds(elapsed), metric.WithAttributes(
		attribute.String("command", command),
		attribute.String("outcome", outcome),
	))
	return elapsed
}

// Milliseconds converts p to fractional milliseconds. Durations beyond the
// uint64 nanosecond range lose precision.
func Milliseconds(p timestamp.PreciseElapsedTime) float64 {
	ns := p.Nanoseconds()
	whole := ns.Div64(domain.NanosPerMilli)
	frac := ns.Mod64(domain.NanosPerMilli)
	return float64(whole.Hi)*math.Exp2(64) + float64(whole.Lo) + float64(frac)/float64(domain.NanosPerMilli)
}
