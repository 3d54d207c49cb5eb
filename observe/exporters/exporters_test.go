package exporters

import (
	"context"
	"testing"
)

func TestNewTracingExporter_None(t *testing.T) {
	exp, err := NewTracingExporter(context.Background(), "none")
	if err != nil {
		t.Fatalf("NewTracingExporter(none) error = %v", err)
	}
	if exp == nil {
		t.Fatal("NewTracingExporter(none) = nil")
	}
	exp.Shutdown(context.Background())
}

func TestNewTracingExporter_Unknown(t *testing.T) {
	if _, err := NewTracingExporter(context.Background(), "zipkin"); err == nil {
		t.Error("NewTracingExporter(zipkin) succeeded, want error")
	}
}

func TestNewTracingExporter_OTLPRequiresEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	if _, err := NewTracingExporter(context.Background(), "otlp"); err == nil {
		t.Error("NewTracingExporter(otlp) succeeded without endpoint, want error")
	}
}

func TestNewMetricsReader_None(t *testing.T) {
	reader, err := NewMetricsReader(context.Background(), "none")
	if err != nil {
		t.Fatalf("NewMetricsReader(none) error = %v", err)
	}
	if reader == nil {
		t.Fatal("NewMetricsReader(none) = nil")
	}
	reader.Shutdown(context.Background())
}

func TestNewMetricsReader_Prometheus(t *testing.T) {
	reader, err := NewMetricsReader(context.Background(), "prometheus")
	if err != nil {
		t.Fatalf("NewMetricsReader(prometheus) error = %v", err)
	}
	reader.Shutdown(context.Background())
}

func TestNewMetricsReader_Unknown(t *testing.T) {
	if _, err := NewMetricsReader(context.Background(), "statsd"); err == nil {
		t.Error("NewMetricsReader(statsd) succeeded, want error")
	}
}
