package calendar

import (
	"context"
	"time"

	autosvc "github.com/almanac-cloud/almanac/api/rest/service/automation"
	"github.com/almanac-cloud/almanac/internal/calendar"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MonthResponse projects one month of audit runs onto the fixed
// 42-cell grid the calendar view renders.
type MonthResponse struct {
	Month     string             `json:"month"`
	Start     time.Time          `json:"start"`
	End       time.Time          `json:"end"`
	Days      calendar.DayCounts `json:"days"`
	Cells     []calendar.Cell    `json:"cells"`
	TotalRuns int                `json:"total_runs"`
}

// Service answers calendar aggregation queries.
type Service struct {
	ctx        context.Context
	automation autosvc.Automation
}

// New creates a Service backed by the default automation service.
func New(ctx context.Context) *Service {
	return &Service{ctx: ctx, automation: autosvc.Service(ctx)}
}

// WithDatabase points the underlying automation service at conn.
func (s *Service) WithDatabase(conn *gorm.DB) *Service {
	s.automation = s.automation.WithDatabase(conn)
	return s
}

// Month fetches the user's runs for the month containing ref and
// groups them by calendar day. The same month over the same run set
// always yields an identical mapping.
func (s *Service) Month(userID uuid.UUID, ref time.Time) (*MonthResponse, error) {
	start, end := calendar.MonthWindow(ref)

	runs, err := s.automation.ListRunsInRange(userID, start, end)
	if err != nil {
		return nil, err
	}

	days := calendar.Aggregate(runs)

	return &MonthResponse{
		Month:     start.Format("2006-01"),
		Start:     start,
		End:       end,
		Days:      days,
		Cells:     calendar.Grid(start, days),
		TotalRuns: len(runs),
	}, nil
}
