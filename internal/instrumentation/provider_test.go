package instrumentation

import (
	"context"
	"testing"
	"time"
)

func testConfig(metricsExporter string) Config {
	return Config{
		ServiceName:       "test-service",
		ServiceVersion:    "1.0.0",
		Enabled:           true,
		MetricsExporter:   metricsExporter,
		TracingExporter:   ExporterNone,
		TraceSamplingRate: 1.0,
	}
}

func TestNewProvider_Disabled(t *testing.T) {
	config := Config{
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
		Enabled:        false,
	}

	provider, err := NewProvider(context.Background(), config)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if provider.Enabled() {
		t.Error("expected provider to be disabled")
	}

	if provider.Metrics() == nil {
		t.Error("expected metrics to be non-nil even when disabled")
	}

	if provider.Registry() != nil {
		t.Error("expected no registry when disabled")
	}

	// Recording on the no-op recorder must not panic
	provider.Metrics().RecordAccount(context.Background(), StatusSuccess, "Bob")
	provider.Metrics().RecordRun(context.Background(), StatusSuccess, time.Second)

	if err := provider.Push(context.Background()); err != nil {
		t.Errorf("expected push to be a no-op, got %v", err)
	}

	if err := provider.Shutdown(context.Background()); err != nil {
		t.Errorf("expected no error on shutdown, got %v", err)
	}
}

func TestNewProvider_PrometheusExporter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := NewProvider(ctx, testConfig(ExporterPrometheus))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer func() { _ = provider.Shutdown(ctx) }()

	if !provider.Enabled() {
		t.Error("expected provider to be enabled")
	}

	if provider.Metrics() == nil {
		t.Error("expected metrics to be non-nil")
	}

	if provider.Registry() == nil {
		t.Error("expected registry to be non-nil for prometheus exporter")
	}

	if tracer := provider.Tracer("test"); tracer == nil {
		t.Error("expected tracer to be non-nil")
	}
}

func TestNewProvider_PrivateRegistries(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	first, err := NewProvider(ctx, testConfig(ExporterPrometheus))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer func() { _ = first.Shutdown(ctx) }()

	second, err := NewProvider(ctx, testConfig(ExporterPrometheus))
	if err != nil {
		t.Fatalf("expected no error creating a second provider, got %v", err)
	}
	defer func() { _ = second.Shutdown(ctx) }()

	if first.Registry() == second.Registry() {
		t.Error("expected each provider to own its registry")
	}
}

func TestNewProvider_NoneExporter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := NewProvider(ctx, testConfig(ExporterNone))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer func() { _ = provider.Shutdown(ctx) }()

	if provider.Registry() != nil {
		t.Error("expected registry to be nil without the prometheus exporter")
	}

	provider.Metrics().RecordEvents(ctx, EventsRaw, 3)
}

func TestNewProvider_StdoutExporter(t *testing.T) {
	config := testConfig(ExporterStdout)
	config.TracingExporter = ExporterStdout

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := NewProvider(ctx, config)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer func() { _ = provider.Shutdown(ctx) }()

	if provider.Registry() != nil {
		t.Error("expected registry to be nil for stdout exporter")
	}
}

func TestNewProvider_InvalidMetricsExporter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := NewProvider(ctx, testConfig("invalid")); err == nil {
		t.Error("expected error for invalid metrics exporter")
	}
}

func TestNewProvider_InvalidTracingExporter(t *testing.T) {
	config := testConfig(ExporterNone)
	config.TracingExporter = "invalid"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := NewProvider(ctx, config); err == nil {
		t.Error("expected error for invalid tracing exporter")
	}
}

func TestNewProvider_OTLPWithoutEndpoint(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := NewProvider(ctx, testConfig(ExporterOTLP)); err == nil {
		t.Error("expected error for OTLP exporter without endpoint")
	}
}
