package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/almanac-cloud/almanac/cmd/console/config"
	"github.com/google/uuid"
)

func testConfig(t *testing.T, raw string) *config.Config {
	t.Helper()
	return &config.Config{
		BaseURL:     mustParse(t, raw),
		UserID:      uuid.New(),
		HTTPTimeout: time.Second,
		CacheTTL:    30 * time.Second,
	}
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	return u
}

func TestPingHealthy(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy","uptime":1000}`))
	}))
	defer ts.Close()

	client := New(testConfig(t, ts.URL))

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}

func TestPingUnhealthyStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"degraded","uptime":1000}`))
	}))
	defer ts.Close()

	client := New(testConfig(t, ts.URL))

	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error for non-healthy status")
	}
}
