package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCancelled RunStatus = "cancelled"
)

// AutomationRun is an immutable audit record of one execution
// attempt. Nothing in almanac executes runs; records are produced
// by the backend and only ever read here. RunTime is distinct from
// CreatedAt and may be backdated.
type AutomationRun struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	AutomationID   uuid.UUID         `gorm:"type:uuid;index;not null" json:"automation_id"`
	RunTime        time.Time         `gorm:"index;not null" json:"run_time"`
	Status         RunStatus         `gorm:"type:text;index;not null;default:'pending'" json:"status"`
	ResultSummary  string            `json:"result_summary,omitempty"`
	ResultMetadata datatypes.JSONMap `gorm:"type:json" json:"result_metadata,omitempty"`
	CreatedAt      time.Time         `gorm:"not null" json:"created_at"`
}

type AutomationRuns []*AutomationRun

// ValidRunStatus reports whether s is a known run status.
func ValidRunStatus(s RunStatus) bool {
	switch s {
	case RunStatusPending, RunStatusRunning, RunStatusCompleted,
		RunStatusFailed, RunStatusCancelled:
		return true
	}
	return false
}
