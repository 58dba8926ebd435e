package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/almanac-cloud/almanac/internal/cache"
	calgrid "github.com/almanac-cloud/almanac/internal/calendar"
)

// MonthResponse mirrors the /v1/calendar API response.
type MonthResponse struct {
	Month     string             `json:"month"`
	Start     time.Time          `json:"start"`
	End       time.Time          `json:"end"`
	Days      calgrid.DayCounts  `json:"days"`
	Cells     []calgrid.Cell     `json:"cells"`
	TotalRuns int                `json:"total_runs"`
}

// CalendarService exposes calendar aggregation helpers.
type CalendarService struct {
	client *Client
}

// Month fetches the run calendar for the month containing ref.
func (s *CalendarService) Month(ctx context.Context, ref time.Time) (*MonthResponse, error) {
	start, end := calgrid.MonthWindow(ref)
	key := cache.RangeKey(s.client.userID, start, end)

	v, err := s.client.cache.GetOrFetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		params := url.Values{}
		params.Set("user_id", s.client.userID.String())
		params.Set("month", start.Format("2006-01"))
		endpoint := s.client.resolve("/v1/calendar", params.Encode())

		var payload MonthResponse
		if err := s.client.do(ctx, http.MethodGet, endpoint, &payload); err != nil {
			return nil, fmt.Errorf("fetch calendar: %w", err)
		}
		return &payload, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*MonthResponse), nil
}
