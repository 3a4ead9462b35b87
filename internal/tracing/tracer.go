// Package tracing exports OpenTelemetry spans for processing runs.
//
// Tracing is opt-in through configuration. A disabled config installs
// nothing, the otel global tracer stays a no-op, and span calls
// throughout the pipeline cost next to nothing.
package tracing

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Exporter names accepted by Config.Exporter.
const (
	ExporterNone   = "none"
	ExporterFile   = "file"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

const defaultOTLPEndpoint = "localhost:4317"

// Config selects the exporter and sampling for span export.
type Config struct {
	// Enabled turns span export on. Everything else is ignored when
	// false.
	Enabled bool

	// Exporter is one of the Exporter* constants. ExporterNone keeps
	// spans in-process: sampled and propagated, never exported.
	Exporter string

	// FilePath is the JSONL destination for ExporterFile.
	FilePath string

	// OTLPEndpoint is the collector host:port for ExporterOTLP.
	OTLPEndpoint string

	// SampleRate is the fraction of runs recorded, in (0, 1].
	SampleRate float64

	// ServiceName becomes the service.name resource attribute.
	ServiceName string
}

// Provider is a handle on the installed tracer provider. The zero value
// is inert: Shutdown on it is a no-op.
type Provider struct {
	sdk *sdktrace.TracerProvider
}

// NewProvider builds the configured exporter and installs a sampling
// tracer provider as the otel global. Packages create spans through
// otel.Tracer, so nothing else needs the returned handle; it exists to
// flush batched spans at exit.
func NewProvider(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{}, nil
	}

	exp, err := newExporter(cfg)
	if err != nil {
		return nil, err
	}

	name := cfg.ServiceName
	if name == "" {
		name = "mdx"
	}
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 1.0
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", name))),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))),
	}
	if exp != nil {
		opts = append(opts, sdktrace.WithBatcher(exp))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	return &Provider{sdk: tp}, nil
}

func newExporter(cfg Config) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case ExporterFile:
		if cfg.FilePath == "" {
			return nil, errors.New("file exporter needs tracing.file_path")
		}
		return NewFileExporter(cfg.FilePath)
	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case ExporterOTLP:
		endpoint := cfg.OTLPEndpoint
		if endpoint == "" {
			endpoint = defaultOTLPEndpoint
		}
		return otlptracegrpc.New(context.Background(),
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
	case ExporterNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown tracing exporter %q", cfg.Exporter)
	}
}

// Shutdown flushes batched spans and stops export.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.sdk == nil {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}
