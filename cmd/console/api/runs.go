package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/almanac-cloud/almanac/internal/cache"
	"github.com/google/uuid"
)

// Run represents an automation audit record.
type Run struct {
	ID             string         `json:"id"`
	AutomationID   string         `json:"automation_id"`
	RunTime        time.Time      `json:"run_time"`
	Status         string         `json:"status"`
	ResultSummary  string         `json:"result_summary,omitempty"`
	ResultMetadata map[string]any `json:"result_metadata,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// RunsResponse wraps a list of runs.
type RunsResponse []Run

// RunsService exposes audit run history operations.
type RunsService struct {
	client *Client
}

// List fetches recent runs for an automation, newest first.
func (s *RunsService) List(ctx context.Context, automationID uuid.UUID, limit int) (RunsResponse, error) {
	key := cache.RunsKey(automationID)

	v, err := s.client.cache.GetOrFetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		params := url.Values{}
		if limit > 0 {
			params.Set("limit", strconv.Itoa(limit))
		}
		endpoint := s.client.resolve(fmt.Sprintf("/v1/automations/%s/runs", automationID), params.Encode())

		var payload RunsResponse
		if err := s.client.do(ctx, http.MethodGet, endpoint, &payload); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		return payload, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(RunsResponse), nil
}

// Last fetches the most recent run for an automation. A nil run
// means the automation has never fired.
func (s *RunsService) Last(ctx context.Context, automationID uuid.UUID) (*Run, error) {
	key := cache.LastRunKey(automationID)

	v, err := s.client.cache.GetOrFetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		endpoint := s.client.resolve(fmt.Sprintf("/v1/automations/%s/runs/last", automationID))

		var payload Run
		err := s.client.do(ctx, http.MethodGet, endpoint, &payload)
		if err != nil {
			if isNotFound(err) {
				return (*Run)(nil), nil
			}
			return nil, fmt.Errorf("last run: %w", err)
		}
		return &payload, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Run), nil
}

// RecordRequest carries the fields for a new audit run. A nil
// RunTime defaults to the server's current time.
type RecordRequest struct {
	RunTime        *time.Time     `json:"run_time,omitempty"`
	Status         string         `json:"status,omitempty"`
	ResultSummary  string         `json:"result_summary,omitempty"`
	ResultMetadata map[string]any `json:"result_metadata,omitempty"`
}

// Record appends a new audit run for an automation.
func (s *RunsService) Record(ctx context.Context, automationID uuid.UUID, req *RecordRequest) (*Run, error) {
	endpoint := s.client.resolve(fmt.Sprintf("/v1/automations/%s/runs", automationID))

	var payload Run
	if err := s.client.doJSON(ctx, http.MethodPost, endpoint, req, &payload); err != nil {
		return nil, fmt.Errorf("record run: %w", err)
	}

	s.client.cache.InvalidateRuns(automationID)
	s.client.cache.InvalidateRanges(s.client.userID)

	return &payload, nil
}
