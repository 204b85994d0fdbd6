package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"coachboard/internal/metrics"
)

func TestMetricsTransportSetsRequestID(t *testing.T) {
	var gotID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get(RequestIDHeader)
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	client := &http.Client{Transport: WrapTransport(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)}

	before := testutil.ToFloat64(metrics.HTTPClientRequestsTotal.WithLabelValues(http.MethodGet, "418"))

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()

	if gotID == "" {
		t.Error("Expected request id header to be set")
	}
	if req.Header.Get(RequestIDHeader) != "" {
		t.Error("Expected caller's request to be left unmodified")
	}

	after := testutil.ToFloat64(metrics.HTTPClientRequestsTotal.WithLabelValues(http.MethodGet, "418"))
	if after != before+1 {
		t.Errorf("Expected request counter to increase by 1, got %v -> %v", before, after)
	}
}

func TestMetricsTransportKeepsCallerRequestID(t *testing.T) {
	var gotID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get(RequestIDHeader)
	}))
	defer server.Close()

	client := &http.Client{Transport: WrapTransport(slog.New(slog.NewTextHandler(io.Discard, nil)), http.DefaultTransport)}

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	req.Header.Set(RequestIDHeader, "caller-id")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()

	if gotID != "caller-id" {
		t.Errorf("Expected caller request id to pass through, got %q", gotID)
	}
}

func TestMetricsTransportCountsNetworkErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := &http.Client{Transport: WrapTransport(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)}

	before := testutil.ToFloat64(metrics.HTTPClientRequestsTotal.WithLabelValues(http.MethodGet, metrics.StatusNetworkError))

	if _, err := client.Get(url); err == nil {
		t.Fatal("Expected error from closed server")
	}

	after := testutil.ToFloat64(metrics.HTTPClientRequestsTotal.WithLabelValues(http.MethodGet, metrics.StatusNetworkError))
	if after != before+1 {
		t.Errorf("Expected network error counter to increase by 1, got %v -> %v", before, after)
	}
}
