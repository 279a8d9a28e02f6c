package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/cory-johannsen/cogworld/internal/config"
)

// TracerName is the instrumentation scope used by the game core.
const TracerName = "github.com/cory-johannsen/cogworld"

// TracerProvider wraps an OpenTelemetry tracer provider together with its
// shutdown hook. A disabled provider hands out no-op tracers.
type TracerProvider struct {
	provider trace.TracerProvider
	shutdown func(context.Context) error
}

// NewTracerProvider builds a tracer provider from the tracing configuration.
//
// Precondition: when cfg.Enabled, cfg.Endpoint and cfg.ServiceName are non-empty.
// Postcondition: Returns a usable provider (no-op when disabled) or a non-nil error.
func NewTracerProvider(ctx context.Context, cfg config.TracingConfig) (*TracerProvider, error) {
	if !cfg.Enabled {
		return NewNoopTracerProvider(), nil
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpointURL(cfg.Endpoint),
		otlptracehttp.WithTimeout(10 * time.Second),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res := resource.NewWithAttributes("",
		attribute.String("service.name", cfg.ServiceName),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithResource(res),
	)
	return &TracerProvider{provider: tp, shutdown: tp.Shutdown}, nil
}

// NewNoopTracerProvider returns a provider whose spans are discarded.
func NewNoopTracerProvider() *TracerProvider {
	return &TracerProvider{
		provider: noop.NewTracerProvider(),
		shutdown: func(context.Context) error { return nil },
	}
}

// WrapTracerProvider adapts an existing provider, e.g. an SDK provider wired to
// an in-memory recorder in tests.
func WrapTracerProvider(tp trace.TracerProvider) *TracerProvider {
	return &TracerProvider{
		provider: tp,
		shutdown: func(context.Context) error { return nil },
	}
}

// Tracer returns the game core tracer.
func (p *TracerProvider) Tracer() trace.Tracer {
	return p.provider.Tracer(TracerName)
}

// Shutdown flushes and stops span export.
func (p *TracerProvider) Shutdown(ctx context.Context) error {
	return p.shutdown(ctx)
}
