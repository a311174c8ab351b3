package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/invest-client-go/internal/logging"
)

// Version попадает в атрибут service.version
var Version = "1.0.0"

// Tracer глобальный трейсер; до InitTracing указывает на глобальный провайдер otel
var Tracer trace.Tracer = otel.Tracer("investctl")

// InitTracing выбирает экспортер по OTEL_ENDPOINT, ставит глобальный провайдер
// и возвращает функцию остановки, которая дописывает оставшиеся спаны.
func InitTracing(serviceName, otelEndpoint string) (func(context.Context) error, error) {
	var exporter sdktrace.SpanExporter = discardExporter{}
	if otelEndpoint != "" {
		otlp, err := otlptracehttp.New(context.Background(), otlptracehttp.WithEndpoint(otelEndpoint))
		if err != nil {
			return nil, fmt.Errorf("create OTLP exporter: %w", err)
		}
		exporter = otlp
		logging.Info.Printf("tracing: exporting spans of %s to %s", serviceName, otelEndpoint)
	} else {
		logging.Debug.Println("tracing: OTEL_ENDPOINT not set, spans are discarded")
	}

	tp, err := newProvider(serviceName, exporter)
	if err != nil {
		return nil, err
	}
	otel.SetTracerProvider(tp)
	Tracer = tp.Tracer(serviceName)

	return tp.Shutdown, nil
}

func newProvider(serviceName string, exporter sdktrace.SpanExporter) (*sdktrace.TracerProvider, error) {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build tracing resource: %w", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	), nil
}

// discardExporter используется без OTEL_ENDPOINT
type discardExporter struct{}

func (discardExporter) ExportSpans(context.Context, []sdktrace.ReadOnlySpan) error { return nil }

func (discardExporter) Shutdown(context.Context) error { return nil }
