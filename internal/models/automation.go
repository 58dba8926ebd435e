package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TriggerType string

const (
	TriggerTypeManual   TriggerType = "manual"
	TriggerTypeSchedule TriggerType = "schedule"
	TriggerTypeEvent    TriggerType = "event"
)

type AutomationStatus string

const (
	AutomationStatusEnabled  AutomationStatus = "enabled"
	AutomationStatusDisabled AutomationStatus = "disabled"
)

// MaxNameLength bounds automation names.
const MaxNameLength = 200

// Automation is a user-owned scheduling rule. The cron expression
// is stored verbatim and never interpreted.
type Automation struct {
	ID                uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID         `gorm:"type:uuid;index;not null" json:"user_id"`
	Name              string            `gorm:"size:200;not null" json:"name"`
	Description       string            `json:"description,omitempty"`
	SkillID           *uuid.UUID        `gorm:"type:uuid" json:"skill_id,omitempty"`
	SkillName         string            `json:"skill_name,omitempty"`
	TriggerType       TriggerType       `gorm:"type:text;not null;default:'manual'" json:"trigger_type"`
	TriggerDefinition datatypes.JSONMap `gorm:"type:json" json:"trigger_definition,omitempty"`
	ScheduleCron      string            `json:"schedule_cron,omitempty"`
	Timezone          string            `gorm:"not null" json:"timezone"`
	Status            AutomationStatus  `gorm:"type:text;index;not null;default:'enabled'" json:"status"`
	Metadata          datatypes.JSONMap `gorm:"type:json" json:"metadata,omitempty"`
	CreatedAt         time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"not null" json:"updated_at"`
	Runs              []*AutomationRun  `gorm:"foreignKey:AutomationID;constraint:OnDelete:CASCADE" json:"runs,omitempty"`
}

type Automations []*Automation

// ValidTriggerType reports whether t is a known trigger type.
func ValidTriggerType(t TriggerType) bool {
	switch t {
	case TriggerTypeManual, TriggerTypeSchedule, TriggerTypeEvent:
		return true
	}
	return false
}

// ValidAutomationStatus reports whether s is a known lifecycle state.
func ValidAutomationStatus(s AutomationStatus) bool {
	return s == AutomationStatusEnabled || s == AutomationStatusDisabled
}
