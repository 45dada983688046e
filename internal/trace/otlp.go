// Package trace turns layout interactions into OpenTelemetry spans and keeps
// a short in-memory history of them for the status line.
package trace

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// InstrumentationName is the tracer name spans are recorded under.
const InstrumentationName = "flexpanes/layout"

// OTLPExporter exports spans to an OTLP/HTTP endpoint.
type OTLPExporter struct {
	provider *sdktrace.TracerProvider
}

// NewOTLPExporter creates an exporter if OTEL_EXPORTER_OTLP_ENDPOINT is set.
// Returns nil, nil when the endpoint is not configured.
func NewOTLPExporter(ctx context.Context) (*OTLPExporter, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return nil, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter %s: %w", endpoint, err)
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "flexpanes"
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	return &OTLPExporter{
		provider: sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		),
	}, nil
}

// Tracer returns the exporter's tracer. A nil exporter yields nil, which
// NewRecorder treats as "no export".
func (e *OTLPExporter) Tracer() oteltrace.Tracer {
	if e == nil {
		return nil
	}
	return e.provider.Tracer(InstrumentationName)
}

// Shutdown flushes pending spans and closes the exporter.
func (e *OTLPExporter) Shutdown(ctx context.Context) error {
	if e == nil {
		return nil
	}
	return e.provider.Shutdown(ctx)
}
