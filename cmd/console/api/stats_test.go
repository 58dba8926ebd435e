package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatsGet(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/stats" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.URL.Query().Get("user_id") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"automations": {"total": 4, "enabled": 3, "recent_runs": 7, "completion_rate": 0.75},
			"top_failing": [{"automation_id": "abc", "name": "flaky", "failure_count": 3, "last_failure": null}]
		}`))
	}))
	defer ts.Close()

	client := New(testConfig(t, ts.URL))

	stats, err := client.Stats().Get(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Automations.Total != 4 {
		t.Fatalf("expected total 4, got %d", stats.Automations.Total)
	}
	if stats.Automations.CompletionRate != 0.75 {
		t.Fatalf("expected completion rate 0.75, got %f", stats.Automations.CompletionRate)
	}
	if len(stats.TopFailing) != 1 || stats.TopFailing[0].Name != "flaky" {
		t.Fatalf("unexpected top failing: %+v", stats.TopFailing)
	}
}

func TestStatsGetErrorPropagates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := New(testConfig(t, ts.URL))

	if _, err := client.Stats().Get(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
