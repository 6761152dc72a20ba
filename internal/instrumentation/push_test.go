package instrumentation

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type pushRecorder struct {
	mu     sync.Mutex
	method string
	path   string
	body   string
}

func (r *pushRecorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	body, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	r.method = req.Method
	r.path = req.URL.Path
	r.body = string(body)
	r.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func TestProvider_Push(t *testing.T) {
	recorder := &pushRecorder{}
	server := httptest.NewServer(recorder)
	defer server.Close()

	config := testConfig(ExporterPrometheus)
	config.ServiceInstanceID = "host-1"
	config.PushgatewayURL = server.URL
	config.PushJob = "weeklycal"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := NewProvider(ctx, config)
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	defer func() { _ = provider.Shutdown(ctx) }()

	provider.Metrics().RecordRun(ctx, StatusSuccess, time.Second)

	if err := provider.Push(ctx); err != nil {
		t.Fatalf("expected push to succeed, got %v", err)
	}

	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	if recorder.method != http.MethodPut {
		t.Errorf("expected PUT, got %q", recorder.method)
	}
	if !strings.HasPrefix(recorder.path, "/metrics/job/weeklycal") {
		t.Errorf("expected job path, got %q", recorder.path)
	}
	if !strings.Contains(recorder.path, "/instance/host-1") {
		t.Errorf("expected instance grouping in path, got %q", recorder.path)
	}
	if recorder.body == "" {
		t.Error("expected a metrics payload")
	}
}

func TestProvider_Push_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	config := testConfig(ExporterPrometheus)
	config.ServiceInstanceID = "host-1"
	config.PushgatewayURL = server.URL

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := NewProvider(ctx, config)
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	defer func() { _ = provider.Shutdown(ctx) }()

	provider.Metrics().RecordRun(ctx, StatusSuccess, time.Second)

	if err := provider.Push(ctx); err == nil {
		t.Error("expected push error for failing pushgateway")
	}
}

func TestProvider_Push_RequiresPrometheus(t *testing.T) {
	config := testConfig(ExporterNone)
	config.PushgatewayURL = "http://127.0.0.1:1"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := NewProvider(ctx, config)
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	defer func() { _ = provider.Shutdown(ctx) }()

	if err := provider.Push(ctx); err == nil {
		t.Error("expected error when pushing without a prometheus registry")
	}
}
