// Package cli implements the tsctl command runner.
// cmd/tsctl delegates to Run for signal handling, config loading,
// observability init, command dispatch, and shutdown.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	"github.com/aelexs/timestamp/internal/config"
	"github.com/aelexs/timestamp/internal/domain"
	"github.com/aelexs/timestamp/internal/observability"
	"github.com/aelexs/timestamp/pkg/timestamp"
)

// Usage describes the accepted command lines.
const Usage = `usage: tsctl <command> [args] [-f template]

commands:
  now                       current instant
  unix <ms>                 instant from Unix-epoch milliseconds
  instant <ms>              instant from milliseconds since year 0
  date <Y> <m> <d> [H M S]  instant from calendar fields and its weekday (Sunday = 0)
  elapsed <ms>              elapsed time from milliseconds
  precise <ns>              precise elapsed time from nanoseconds
  uuid <uuid>               creation instant of a v1, v6 or v7 UUID
  watch [count]             print stopwatch readings until interrupted

template tokens: %Y %m %D %d %H %M %S %f`

// Params configures a single tsctl invocation.
type Params struct {
	// Args holds the command and its arguments, without the program name.
	Args []string

	// Stdout receives command output. Defaults to os.Stdout.
	Stdout io.Writer

	// Stderr receives log output. Defaults to os.Stderr.
	Stderr io.Writer

	// Clock is consulted for "now" readings. Defaults to the system clock.
	Clock domain.Clock

	// Optional extra telemetry sinks, registered alongside OTLP export.
	SpanProcessors []sdktrace.SpanProcessor
	MetricReaders  []sdkmetric.Reader
}

// invocation is the parsed command line plus everything a handler needs.
type invocation struct {
	name     string
	args     []string
	template string
	out      io.Writer
	clock    domain.Clock
	cfg      *config.Config
	logger   *slog.Logger
}

type handler func(ctx context.Context, inv invocation) error

var commands = map[string]handler{
	"now":     runNow,
	"unix":    runUnix,
	"instant": runInstant,
	"date":    runDate,
	"elapsed": runElapsed,
	"precise": runPrecise,
	"uuid":    runUUID,
	"watch":   runWatch,
}

// Run executes one tsctl command: signal handling, config loading,
// observability initialization, the command itself inside a span, and
// telemetry shutdown.
func Run(ctx context.Context, p Params) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if p.Stdout == nil {
		p.Stdout = os.Stdout
	}
	if p.Stderr == nil {
		p.Stderr = os.Stderr
	}
	p.Clock = domain.OrReal(p.Clock)

	if len(p.Args) == 0 {
		return fmt.Errorf("%w: missing command", domain.ErrInvalidInput)
	}
	name := p.Args[0]
	h, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", domain.ErrInvalidInput, name)
	}
	args, template, err := splitTemplate(p.Args[1:])
	if err != nil {
		return err
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: domain.ServiceName,
		Environment: cfg.Environment,
	}, p.Stderr)

	// --- Startup order: tracer -> metrics -> command ---

	tracerProvider, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName:    domain.ServiceName,
		ServiceVersion: domain.ServiceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTEL.Endpoint,
		SpanProcessors: p.SpanProcessors,
	})
	if err != nil {
		return fmt.Errorf("initialize tracer: %w", err)
	}

	metricsProvider, err := observability.InitMetrics(ctx, observability.MetricsConfig{
		ServiceName:    domain.ServiceName,
		ServiceVersion: domain.ServiceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTEL.Endpoint,
		Readers:        p.MetricReaders,
	})
	if err != nil {
		_ = tracerProvider.Shutdown(context.Background())
		return fmt.Errorf("initialize metrics: %w", err)
	}

	// Shutdown order is the reverse of startup: metrics first, then tracer.
	defer func() {
		otelCtx, cancel := context.WithTimeout(context.Background(), domain.ShutdownOTELTimeout)
		defer cancel()
		if shutdownErr := metricsProvider.Shutdown(otelCtx); shutdownErr != nil {
			logger.Error("failed to shutdown metrics", slog.String("error", shutdownErr.Error()))
		}
		if shutdownErr := tracerProvider.Shutdown(otelCtx); shutdownErr != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", shutdownErr.Error()))
		}
	}()

	recorder, err := observability.NewCommandRecorder(observability.Meter(domain.ServiceName))
	if err != nil {
		return err
	}

	inv := invocation{
		name:     name,
		args:     args,
		template: template,
		out:      p.Stdout,
		clock:    p.Clock,
		cfg:      cfg,
	}
	return execute(ctx, inv, h, tracerProvider, recorder)
}

func execute(ctx context.Context, inv invocation, h handler, tracer *observability.TracerProvider, recorder *observability.CommandRecorder) error {
	sw := timestamp.StartStopWatchWithClock(inv.clock)

	ctx, span := tracer.StartCommand(ctx, inv.name, inv.args)
	inv.logger = observability.LoggerFromContext(ctx).With(slog.String("command", inv.name))

	err := h(ctx, inv)
	elapsed := recorder.Record(ctx, inv.name, sw, err)
	span.End(elapsed, err)

	if err != nil {
		inv.logger.Debug("command failed", slog.String("error", err.Error()), slog.Any("elapsed", elapsed))
		return fmt.Errorf("%s: %w", inv.name, err)
	}

	inv.logger.Debug("command complete", slog.Any("elapsed", elapsed))
	return nil
}

// splitTemplate removes a trailing "-f <template>" pair from args.
func splitTemplate(args []string) ([]string, string, error) {
	n := len(args)
	switch {
	case n >= 2 && args[n-2] == "-f":
		return args[:n-2], args[n-1], nil
	case n >= 1 && args[n-1] == "-f":
		return nil, "", fmt.Errorf("%w: -f requires a template", domain.ErrInvalidInput)
	default:
		return args, "", nil
	}
}

func (inv invocation) dateTimeLayout() string {
	if inv.template != "" {
		return inv.template
	}
	return inv.cfg.Layout.DateTime
}

func (inv invocation) durationLayout() string {
	if inv.template != "" {
		return inv.template
	}
	return inv.cfg.Layout.Duration
}

func (inv invocation) expectArgs(lo, hi int) error {
	if len(inv.args) < lo || len(inv.args) > hi {
		if lo == hi {
			return fmt.Errorf("%w: expected %d argument(s), got %d", domain.ErrInvalidInput, lo, len(inv.args))
		}
		return fmt.Errorf("%w: expected %d to %d arguments, got %d", domain.ErrInvalidInput, lo, hi, len(inv.args))
	}
	return nil
}

func (inv invocation) println(s string) error {
	_, err := fmt.Fprintln(inv.out, s)
	return err
}

func parseInt64(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return n, nil
}

func parseUint64(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return n, nil
}

func runNow(_ context.Context, inv invocation) error {
	if err := inv.expectArgs(0, 0); err != nil {
		return err
	}
	return inv.println(timestamp.NowFrom(inv.clock).FormatWith(inv.dateTimeLayout()))
}

func runUnix(_ context.Context, inv invocation) error {
	if err := inv.expectArgs(1, 1); err != nil {
		return err
	}
	ms, err := parseInt64(inv.args[0])
	if err != nil {
		return err
	}
	ci, err := timestamp.FromUnixMilliseconds(ms)
	if err != nil {
		return err
	}
	return inv.println(ci.FormatWith(inv.dateTimeLayout()))
}

func runInstant(_ context.Context, inv invocation) error {
	if err := inv.expectArgs(1, 1); err != nil {
		return err
	}
	ms, err := parseInt64(inv.args[0])
	if err != nil {
		return err
	}
	ci, err := timestamp.FromMilliseconds(ms)
	if err != nil {
		return err
	}
	return inv.println(ci.FormatWith(inv.dateTimeLayout()))
}

func runDate(_ context.Context, inv invocation) error {
	if err := inv.expectArgs(3, 6); err != nil {
		return err
	}
	fields := make([]int, 6)
	for i, a := range inv.args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		fields[i] = n
	}
	ci, err := timestamp.NewCalendarInstant(fields[0], fields[1], fields[2], fields[3], fields[4], fields[5])
	if err != nil {
		return err
	}
	return inv.println(fmt.Sprintf("%s %d", ci.FormatWith(inv.dateTimeLayout()), ci.DayOfWeek()))
}

func runElapsed(_ context.Context, inv invocation) error {
	if err := inv.expectArgs(1, 1); err != nil {
		return err
	}
	ms, err := parseUint64(inv.args[0])
	if err != nil {
		return err
	}
	return inv.println(timestamp.ElapsedMilliseconds(ms).FormatWith(inv.durationLayout()))
}

func runPrecise(_ context.Context, inv invocation) error {
	if err := inv.expectArgs(1, 1); err != nil {
		return err
	}
	p, err := timestamp.ParsePrecise(inv.args[0])
	if err != nil {
		return err
	}
	return inv.println(p.FormatWith(inv.durationLayout()))
}

func runUUID(_ context.Context, inv invocation) error {
	if err := inv.expectArgs(1, 1); err != nil {
		return err
	}
	ci, err := timestamp.ParseUUID(inv.args[0])
	if err != nil {
		return err
	}
	return inv.println(ci.FormatWith(inv.dateTimeLayout()))
}

// runWatch prints the stopwatch reading every watch.interval until the
// context is cancelled or, when a count is given, count readings were printed.
func runWatch(ctx context.Context, inv invocation) error {
	if err := inv.expectArgs(0, 1); err != nil {
		return err
	}
	var count uint64
	if len(inv.args) == 1 {
		n, err := parseUint64(inv.args[0])
		if err != nil {
			return err
		}
		count = n
	}
	if inv.cfg.Watch.Interval <= 0 {
		return fmt.Errorf("%w: watch.interval must be positive, got %s", domain.ErrConfigRequired, inv.cfg.Watch.Interval)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sw := timestamp.StartStopWatchWithClock(inv.clock)
	layout := inv.durationLayout()

	g, ctx := errgroup.WithContext(ctx)

	// Goroutine 1: print readings on every tick.
	g.Go(func() error {
		defer cancel()
		ticker := time.NewTicker(inv.cfg.Watch.Interval)
		defer ticker.Stop()

		for printed := uint64(0); count == 0 || printed < count; printed++ {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
			if err := inv.println(sw.Elapsed().FormatWith(layout)); err != nil {
				return fmt.Errorf("write reading: %w", err)
			}
		}
		return nil
	})

	// Goroutine 2: log the final reading once the watch ends.
	g.Go(func() error {
		<-ctx.Done()
		inv.logger.Info("watch stopped", slog.Any("elapsed", sw.Elapsed()))
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
