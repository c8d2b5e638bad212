// Package observability wires tsctl's structured logging, command spans and
// command duration metrics.
package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/aelexs/timestamp/pkg/timestamp"
)

// Attribute keys set on every command span.
const (
	AttrCommand   = attribute.Key("tsctl.command")
	AttrArgs      = attribute.Key("tsctl.args")
	AttrElapsed   = attribute.Key("tsctl.elapsed")
	AttrElapsedMS = attribute.Key("tsctl.elapsed_ms")
)

// TracerConfig holds configuration for command tracing.
type TracerConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	OTLPEndpoint   string // Empty string disables OTLP export

	// SpanProcessors receive every command span in addition to the OTLP
	// exporter. Tests pass a span recorder here.
	SpanProcessors []sdktrace.SpanProcessor
}

// TracerProvider owns the tracer that opens one span per tsctl command.
type TracerProvider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// InitTracer builds the tracer provider for a single tsctl run. Each run
// produces a handful of spans, so spans are exported synchronously as they
// end rather than batched. The returned provider must be shut down before
// the process exits.
func InitTracer(ctx context.Context, cfg TracerConfig) (*TracerProvider, error) {
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironment(cfg.Environment),
	)

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	}
	if cfg.OTLPEndpoint != "" {
		exporter, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("trace exporter for %s: %w", cfg.OTLPEndpoint, err)
		}
		opts = append(opts, sdktrace.WithSyncer(exporter))
	}
	for _, sp := range cfg.SpanProcessors {
		opts = append(opts, sdktrace.WithSpanProcessor(sp))
	}

	provider := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(provider)

	return &TracerProvider{
		provider: provider,
		tracer:   provider.Tracer(cfg.ServiceName, trace.WithInstrumentationVersion(cfg.ServiceVersion)),
	}, nil
}

// Shutdown flushes any remaining spans and shuts down the provider.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp.provider == nil {
		return nil
	}
	if err := tp.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown tracer: %w", err)
	}
	return nil
}

// CommandSpan is the span covering one tsctl command.
type CommandSpan struct {
	span trace.Span
}

// StartCommand opens the span "tsctl.<command>". A zero TracerProvider
// falls back to the global tracer.
func (tp *TracerProvider) StartCommand(ctx context.Context, command string, args []string) (context.Context, *CommandSpan) {
	tracer := tp.tracer
	if tracer == nil {
		tracer = otel.Tracer("tsctl")
	}
	ctx, span := tracer.Start(ctx, "tsctl."+command,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			AttrCommand.String(command),
			AttrArgs.StringSlice(args),
		),
	)
	return ctx, &CommandSpan{span: span}
}

// End stamps the command's elapsed time on the span, marks it failed when
// err is non-nil, and ends it.
func (s *CommandSpan) End(elapsed timestamp.PreciseElapsedTime, err error) {
	s.span.SetAttributes(
		AttrElapsed.String(elapsed.Format()),
		AttrElapsedMS.Float64(Milliseconds(elapsed)),
	)
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}

// TraceIDFromContext extracts the trace ID from context as a string.
// Returns empty string if no trace is active.
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.HasTraceID() {
		return ""
	}
	return spanCtx.TraceID().String()
}
