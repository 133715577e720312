package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/jhoicas/Inventario-web/pkg/config"
	"github.com/jhoicas/Inventario-web/pkg/logger"
)

// Setup registra un TracerProvider global que exporta por OTLP/gRPC.
// Sin endpoint configurado no hace nada y devuelve un shutdown vacío.
func Setup(ctx context.Context, serviceName string, cfg config.TelemetryConfig, log *logger.Logger) func(context.Context) error {
	noop := func(context.Context) error { return nil }
	if cfg.OTLPEndpoint == "" {
		return noop
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.OTLPInsecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		log.Error().Err(err).Msg("telemetry: no se pudo crear el exportador OTLP")
		return noop
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		log.Warn().Err(err).Msg("telemetry: recurso incompleto")
	}

	provider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	// traceparent hacia la API de inventario
	otel.SetTextMapPropagator(propagation.TraceContext{})

	log.Info().Str("endpoint", cfg.OTLPEndpoint).Msg("telemetry: trazas habilitadas")
	return provider.Shutdown
}
