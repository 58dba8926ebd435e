package stats

import (
	"context"
	"time"

	"github.com/almanac-cloud/almanac/internal/models"
	"github.com/almanac-cloud/almanac/pkg/db"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatsResponse is the top-level dashboard payload for one user.
type StatsResponse struct {
	Automations AutomationStats    `json:"automations"`
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

// Service provides statistics queries.
type Service struct {
	ctx context.Context
	db  *gorm.DB
}

// New creates a Service. The database connection is resolved lazily so
// callers can swap it in with WithDatabase before the first query.
func New(ctx context.Context) *Service {
	return &Service{ctx: ctx}
}

// WithDatabase points the Service at conn.
func (s *Service) WithDatabase(conn *gorm.DB) *Service {
	s.db = conn
	return s
}

func (s *Service) conn() *gorm.DB {
	if s.db == nil {
		s.db = db.Connection()
	}
	return s.db.WithContext(s.ctx)
}

// Get computes aggregate statistics over the user's automations and
// their audit runs.
func (s *Service) Get(userID uuid.UUID) (*StatsResponse, error) {
	resp := &StatsResponse{}

	if err := s.conn().Model(&models.Automation{}).
		Where("user_id = ?", userID).
		Count(&resp.Automations.Total).Error; err != nil {
		return nil, err
	}

	if err := s.conn().Model(&models.Automation{}).
		Where("user_id = ? AND status = ?", userID, models.AutomationStatusEnabled).
		Count(&resp.Automations.Enabled).Error; err != nil {
		return nil, err
	}

	// runs scope to the user through the owning automation
	runScope := func() *gorm.DB {
		return s.conn().Model(&models.AutomationRun{}).
			Where("automation_id IN (?)",
				s.conn().Model(&models.Automation{}).
					Select("id").
					Where("user_id = ?", userID))
	}

	since := time.Now().UTC().Add(-24 * time.Hour)
	if err := runScope().
		Where("run_time >= ?", since).
		Count(&resp.Automations.RecentRuns).Error; err != nil {
		return nil, err
	}

	var settled int64
	var completed int64
	if err := runScope().
		Where("status IN ?", []string{
			string(models.RunStatusCompleted),
			string(models.RunStatusFailed),
		}).
		Count(&settled).Error; err != nil {
		return nil, err
	}
	if err := runScope().
		Where("status = ?", models.RunStatusCompleted).
		Count(&completed).Error; err != nil {
		return nil, err
	}
	if settled > 0 {
		resp.Automations.CompletionRate = float64(completed) / float64(settled)
	}

	type failRow struct {
		AutomationID string
		FailureCount int64
		LastFailure  *time.Time
	}
	var failRows []failRow
	if err := runScope().
		Select("automation_id, COUNT(*) as failure_count, MAX(run_time) as last_failure").
		Where("status = ?", models.RunStatusFailed).
		Group("automation_id").
		Order("failure_count DESC").
		Limit(5).
		Scan(&failRows).Error; err != nil {
		return nil, err
	}

	resp.TopFailing = make([]FailingAutomation, 0, len(failRows))
	for _, row := range failRows {
		resp.TopFailing = append(resp.TopFailing, FailingAutomation{
			AutomationID: row.AutomationID,
			Name:         s.lookupName(row.AutomationID),
			FailureCount: row.FailureCount,
			LastFailure:  row.LastFailure,
		})
	}

	return resp, nil
}

func (s *Service) lookupName(automationID string) string {
	var am models.Automation
	if err := s.conn().Select("name").First(&am, "id = ?", automationID).Error; err != nil {
		return ""
	}
	return am.Name
}
