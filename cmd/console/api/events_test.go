package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestStreamParsesEvents(t *testing.T) {
	automationID := uuid.New()
	runID := uuid.New()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/events" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.URL.Query().Get("user_id") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, ": ping\n\n")
		fmt.Fprintf(w, "event: automation_created\ndata: {\"type\":\"automation_created\",\"automation_id\":%q,\"timestamp\":%q}\n\n",
			automationID, time.Now().UTC().Format(time.RFC3339))
		fmt.Fprintf(w, "event: run_recorded\ndata: {\"type\":\"run_recorded\",\"automation_id\":%q,\"run_id\":%q,\"timestamp\":%q}\n\n",
			automationID, runID, time.Now().UTC().Format(time.RFC3339))
	}))
	defer ts.Close()

	client := New(testConfig(t, ts.URL))

	ch, err := client.Events().Stream(context.Background(), automationID.String(), nil)
	if err != nil {
		t.Fatalf("unexpected stream error: %v", err)
	}

	var events []Event
	for evt := range ch {
		events = append(events, evt)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Type != TypeAutomationCreated {
		t.Fatalf("first event type = %q, want %q", events[0].Type, TypeAutomationCreated)
	}
	if events[1].RunID != runID {
		t.Fatalf("second event run ID = %s, want %s", events[1].RunID, runID)
	}
}

func TestStreamFilterQueries(t *testing.T) {
	var gotTypes string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTypes = r.URL.Query().Get("types")
		w.Header().Set("Content-Type", "text/event-stream")
	}))
	defer ts.Close()

	client := New(testConfig(t, ts.URL))

	ch, err := client.Events().Stream(context.Background(), "", []EventType{TypeAutomationDeleted, TypeRunRecorded})
	if err != nil {
		t.Fatalf("unexpected stream error: %v", err)
	}
	for range ch {
	}

	if gotTypes != "automation_deleted,run_recorded" {
		t.Fatalf("types query = %q, want %q", gotTypes, "automation_deleted,run_recorded")
	}
}

func TestStreamRejectsErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := New(testConfig(t, ts.URL))

	if _, err := client.Events().Stream(context.Background(), "", nil); err == nil {
		t.Fatal("expected error for non-200 stream response")
	}
}
