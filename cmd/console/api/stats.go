package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// StatsResponse mirrors the /v1/stats API response.
type StatsResponse struct {
	Automations AutomationStats     `json:"automations"`
	TopFailing  []FailingAutomation `json:"top_failing"`
}

// AutomationStats contains aggregate automation statistics.
type AutomationStats struct {
	Total          int64   `json:"total"`
	Enabled        int64   `json:"enabled"`
	RecentRuns     int64   `json:"recent_runs"`
	CompletionRate float64 `json:"completion_rate"`
}

// FailingAutomation describes an automation with frequently failing runs.
type FailingAutomation struct {
	AutomationID string     `json:"automation_id"`
	Name         string     `json:"name"`
	FailureCount int64      `json:"failure_count"`
	LastFailure  *time.Time `json:"last_failure"`
}

// StatsService exposes stats-related API helpers.
type StatsService struct {
	client *Client
}

// Get fetches aggregated statistics for the client's user.
func (s *StatsService) Get(ctx context.Context) (*StatsResponse, error) {
	params := url.Values{}
	params.Set("user_id", s.client.userID.String())
	endpoint := s.client.resolve("/v1/stats", params.Encode())

	var payload StatsResponse
	if err := s.client.do(ctx, http.MethodGet, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	return &payload, nil
}
