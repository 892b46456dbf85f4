package observability

import (
	"context"
	"fmt"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics holds the service's instruments, exported in prometheus
// exposition format. A nil *Metrics is valid; every method is a no-op on
// nil so components can treat metrics as optional.
type Metrics struct {
	registry *promclient.Registry
	meter    metric.Meter

	requestsTotal   metric.Int64Counter
	escalations     metric.Int64Counter
	llmRequests     metric.Int64Counter
	llmTokensInput  metric.Int64Counter
	llmTokensOutput metric.Int64Counter
	stageFallbacks  metric.Int64Counter
	requestDuration metric.Float64Histogram
}

// NewMetrics creates a metrics collector backed by its own prometheus
// registry, so concurrent instances never collide.
func NewMetrics() (*Metrics, error) {
	registry := promclient.NewRegistry()

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter("auracx")

	requestsTotal, err := meter.Int64Counter(
		"auracx.requests.total",
		metric.WithDescription("Chat requests processed, by routing mode"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create requests counter: %w", err)
	}

	escalations, err := meter.Int64Counter(
		"auracx.escalations.total",
		metric.WithDescription("Responses that required human escalation"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create escalations counter: %w", err)
	}

	llmRequests, err := meter.Int64Counter(
		"auracx.llm.requests.total",
		metric.WithDescription("LLM completion calls, by model"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create llm requests counter: %w", err)
	}

	llmTokensInput, err := meter.Int64Counter(
		"auracx.llm.tokens.input",
		metric.WithDescription("Prompt tokens sent to the LLM"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create input tokens counter: %w", err)
	}

	llmTokensOutput, err := meter.Int64Counter(
		"auracx.llm.tokens.output",
		metric.WithDescription("Completion tokens received from the LLM"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create output tokens counter: %w", err)
	}

	stageFallbacks, err := meter.Int64Counter(
		"auracx.pipeline.stage_fallbacks.total",
		metric.WithDescription("Retrieval pipeline stages that degraded to their fallback"),
		metric.WithUnit("{fallback}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create stage fallbacks counter: %w", err)
	}

	requestDuration, err := meter.Float64Histogram(
		"auracx.request.duration",
		metric.WithDescription("End-to-end chat request latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create request duration histogram: %w", err)
	}

	return &Metrics{
		registry:        registry,
		meter:           meter,
		requestsTotal:   requestsTotal,
		escalations:     escalations,
		llmRequests:     llmRequests,
		llmTokensInput:  llmTokensInput,
		llmTokensOutput: llmTokensOutput,
		stageFallbacks:  stageFallbacks,
		requestDuration: requestDuration,
	}, nil
}

// Handler serves the collector's registry in prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one processed chat request.
func (m *Metrics) ObserveRequest(ctx context.Context, mode string, escalated bool, seconds float64) {
	if m == nil || m.requestsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("mode", mode))
	m.requestsTotal.Add(ctx, 1, attrs)
	if escalated {
		m.escalations.Add(ctx, 1)
	}
	m.requestDuration.Record(ctx, seconds, attrs)
}

// ObserveLLMCall records one completion call's token usage.
func (m *Metrics) ObserveLLMCall(ctx context.Context, model string, promptTokens, completionTokens int) {
	if m == nil || m.llmRequests == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("model", model))
	m.llmRequests.Add(ctx, 1, attrs)
	m.llmTokensInput.Add(ctx, int64(promptTokens), attrs)
	m.llmTokensOutput.Add(ctx, int64(completionTokens), attrs)
}

// ObserveStageFallback records a pipeline stage degrading to its fallback.
func (m *Metrics) ObserveStageFallback(ctx context.Context, stage string) {
	if m == nil || m.stageFallbacks == nil {
		return
	}
	m.stageFallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))
}
