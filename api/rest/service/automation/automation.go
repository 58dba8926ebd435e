package automation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/almanac-cloud/almanac/internal/event"
	"github.com/almanac-cloud/almanac/internal/metrics"
	"github.com/almanac-cloud/almanac/internal/models"
	"github.com/almanac-cloud/almanac/pkg/db"
	"github.com/almanac-cloud/almanac/pkg/jsonmap"
	"github.com/almanac-cloud/almanac/pkg/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultRunLimit caps run history reads when no limit is given.
const DefaultRunLimit = 20

// ValidationError reports malformed input caught before any store
// call. It never wraps an error returned by the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

type Automation interface {
	WithDatabase(*gorm.DB) Automation
	WithBus(event.Bus) Automation
	List(*ListRequest) (models.Automations, error)
	Get(uuid.UUID) (*models.Automation, error)
	Create(uuid.UUID, *CreateRequest) (*models.Automation, error)
	Update(uuid.UUID, *UpdateRequest) (*models.Automation, error)
	Delete(uuid.UUID) error
	ListRuns(uuid.UUID, int) (models.AutomationRuns, error)
	GetLastRun(uuid.UUID) (*models.AutomationRun, error)
	CreateRun(*CreateRunRequest) (*models.AutomationRun, error)
	ListRunsInRange(uuid.UUID, time.Time, time.Time) (models.AutomationRuns, error)
}

type automationService struct {
	ctx context.Context
	db  *gorm.DB
	bus event.Bus
}

var (
	defaultBus   event.Bus
	defaultBusMu sync.RWMutex
)

// SetBus installs the process-wide event bus used by services
// created with Service.
func SetBus(bus event.Bus) {
	defaultBusMu.Lock()
	defer defaultBusMu.Unlock()
	defaultBus = bus
}

func Service(ctx context.Context) Automation {
	defaultBusMu.RLock()
	defer defaultBusMu.RUnlock()
	return &automationService{
		ctx: ctx,
		bus: defaultBus,
	}
}

func (a *automationService) WithDatabase(conn *gorm.DB) Automation {
	a.db = conn
	return a
}

// conn resolves the gorm connection lazily so tests can inject one
// before the shared connection is ever opened.
func (a *automationService) conn() *gorm.DB {
	if a.db == nil {
		a.db = db.Connection()
	}
	return a.db
}

func (a *automationService) WithBus(bus event.Bus) Automation {
	a.bus = bus
	return a
}

func (a *automationService) publish(e event.Event) {
	if a.bus != nil {
		a.bus.Publish(e)
	}
}

type ListRequest struct {
	UserID uuid.UUID
	Status string
}

// List returns the automations owned by the requesting user,
// newest first. A user owning none gets an empty slice.
func (a *automationService) List(req *ListRequest) (models.Automations, error) {
	var (
		automations = make(models.Automations, 0)
		q           = a.conn().WithContext(a.ctx)
	)

	if req.UserID == uuid.Nil {
		return nil, &ValidationError{Field: "user_id", Reason: "is required"}
	}

	q = q.Where("user_id = ?", req.UserID)

	if req.Status != "" {
		if !models.ValidAutomationStatus(models.AutomationStatus(req.Status)) {
			return nil, &ValidationError{Field: "status", Reason: "must be enabled or disabled"}
		}
		q = q.Where("status = ?", req.Status)
	}

	return automations, q.Order("created_at DESC").Find(&automations).Error
}

// Get returns nil without an error when no automation exists;
// absence is not a failure for reads.
func (a *automationService) Get(id uuid.UUID) (*models.Automation, error) {
	var am models.Automation

	err := a.conn().WithContext(a.ctx).First(&am, "id = ?", id).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		return nil, nil
	case err != nil:
		return nil, err
	}

	return &am, nil
}

type CreateRequest struct {
	Name              string                 `json:"name"`
	Description       string                 `json:"description"`
	SkillID           *uuid.UUID             `json:"skill_id"`
	SkillName         string                 `json:"skill_name"`
	TriggerType       string                 `json:"trigger_type"`
	TriggerDefinition map[string]interface{} `json:"trigger_definition"`
	ScheduleCron      string                 `json:"schedule_cron"`
	Timezone          string                 `json:"timezone"`
	Status            string                 `json:"status"`
	Metadata          map[string]interface{} `json:"metadata"`
}

func (r *CreateRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if len(r.Name) > models.MaxNameLength {
		return &ValidationError{Field: "name", Reason: fmt.Sprintf("must be at most %d characters", models.MaxNameLength)}
	}
	if strings.TrimSpace(r.Timezone) == "" {
		return &ValidationError{Field: "timezone", Reason: "is required"}
	}
	if r.TriggerType != "" && !models.ValidTriggerType(models.TriggerType(r.TriggerType)) {
		return &ValidationError{Field: "trigger_type", Reason: "must be manual, schedule or event"}
	}
	if r.Status != "" && !models.ValidAutomationStatus(models.AutomationStatus(r.Status)) {
		return &ValidationError{Field: "status", Reason: "must be enabled or disabled"}
	}
	return nil
}

// Create inserts a new automation owned by userID. The cron
// expression is stored verbatim, without any well-formedness check.
func (a *automationService) Create(userID uuid.UUID, req *CreateRequest) (*models.Automation, error) {
	if userID == uuid.Nil {
		return nil, &ValidationError{Field: "user_id", Reason: "is required"}
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	am := &models.Automation{
		ID:                uuid.New(),
		UserID:            userID,
		Name:              req.Name,
		Description:       req.Description,
		SkillID:           req.SkillID,
		SkillName:         req.SkillName,
		TriggerType:       models.TriggerTypeManual,
		TriggerDefinition: jsonmap.FromMap(req.TriggerDefinition),
		ScheduleCron:      req.ScheduleCron,
		Timezone:          req.Timezone,
		Status:            models.AutomationStatusEnabled,
		Metadata:          jsonmap.FromMap(req.Metadata),
	}

	if req.TriggerType != "" {
		am.TriggerType = models.TriggerType(req.TriggerType)
	}
	if req.Status != "" {
		am.Status = models.AutomationStatus(req.Status)
	}

	if err := a.conn().WithContext(a.ctx).Create(am).Error; err != nil {
		log.Error("create automation failure", "error", err)
		metrics.AutomationMutationsTotal.WithLabelValues("create", "error").Inc()
		return nil, err
	}

	metrics.AutomationMutationsTotal.WithLabelValues("create", "success").Inc()
	a.publish(event.Event{
		Type:         event.TypeAutomationCreated,
		AutomationID: am.ID,
		UserID:       am.UserID,
	})

	return a.Get(am.ID)
}

type UpdateRequest struct {
	Name              *string                `json:"name"`
	Description       *string                `json:"description"`
	SkillID           *uuid.UUID             `json:"skill_id"`
	SkillName         *string                `json:"skill_name"`
	TriggerType       *string                `json:"trigger_type"`
	TriggerDefinition map[string]interface{} `json:"trigger_definition"`
	ScheduleCron      *string                `json:"schedule_cron"`
	Timezone          *string                `json:"timezone"`
	Status            *string                `json:"status"`
	Metadata          map[string]interface{} `json:"metadata"`
}

func (r *UpdateRequest) validate() error {
	if r.Name != nil {
		if strings.TrimSpace(*r.Name) == "" {
			return &ValidationError{Field: "name", Reason: "is required"}
		}
		if len(*r.Name) > models.MaxNameLength {
			return &ValidationError{Field: "name", Reason: fmt.Sprintf("must be at most %d characters", models.MaxNameLength)}
		}
	}
	if r.Timezone != nil && strings.TrimSpace(*r.Timezone) == "" {
		return &ValidationError{Field: "timezone", Reason: "is required"}
	}
	if r.TriggerType != nil && !models.ValidTriggerType(models.TriggerType(*r.TriggerType)) {
		return &ValidationError{Field: "trigger_type", Reason: "must be manual, schedule or event"}
	}
	if r.Status != nil && !models.ValidAutomationStatus(models.AutomationStatus(*r.Status)) {
		return &ValidationError{Field: "status", Reason: "must be enabled or disabled"}
	}
	return nil
}

func (r *UpdateRequest) columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.SkillID != nil {
		updates["skill_id"] = *r.SkillID
	}
	if r.SkillName != nil {
		updates["skill_name"] = *r.SkillName
	}
	if r.TriggerType != nil {
		updates["trigger_type"] = *r.TriggerType
	}
	if r.TriggerDefinition != nil {
		updates["trigger_definition"] = jsonmap.FromMap(r.TriggerDefinition)
	}
	if r.ScheduleCron != nil {
		updates["schedule_cron"] = *r.ScheduleCron
	}
	if r.Timezone != nil {
		updates["timezone"] = *r.Timezone
	}
	if r.Status != nil {
		updates["status"] = *r.Status
	}
	if r.Metadata != nil {
		updates["metadata"] = jsonmap.FromMap(r.Metadata)
	}
	return updates
}

// Update merges the provided fields into an existing automation.
// A missing or non-owned row surfaces as the store's own error,
// deliberately not distinguished from "not found".
func (a *automationService) Update(id uuid.UUID, req *UpdateRequest) (*models.Automation, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	updates := req.columns()
	if len(updates) == 0 {
		return a.Get(id)
	}

	res := a.conn().WithContext(a.ctx).
		Model(&models.Automation{}).
		Where("id = ?", id).
		Updates(updates)
	switch {
	case res.Error != nil:
		log.Error("update automation failure", "id", id, "error", res.Error)
		metrics.AutomationMutationsTotal.WithLabelValues("update", "error").Inc()
		return nil, res.Error
	case res.RowsAffected == 0:
		metrics.AutomationMutationsTotal.WithLabelValues("update", "error").Inc()
		return nil, gorm.ErrRecordNotFound
	}

	am, err := a.Get(id)
	if err != nil {
		return nil, err
	}

	metrics.AutomationMutationsTotal.WithLabelValues("update", "success").Inc()
	a.publish(event.Event{
		Type:         event.TypeAutomationUpdated,
		AutomationID: am.ID,
		UserID:       am.UserID,
	})

	return am, nil
}

// Delete removes an automation together with its run history.
// Deleting an absent row is a no-op success. Runs go first: sqlite
// only honours the declared cascade with the foreign_keys pragma on.
func (a *automationService) Delete(id uuid.UUID) error {
	owner := a.ownerOf(id)

	err := a.conn().WithContext(a.ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("automation_id = ?", id).Delete(&models.AutomationRun{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Automation{}, "id = ?", id).Error
	})
	if err != nil {
		log.Error("delete automation failure", "id", id, "error", err)
		metrics.AutomationMutationsTotal.WithLabelValues("delete", "error").Inc()
		return err
	}

	metrics.AutomationMutationsTotal.WithLabelValues("delete", "success").Inc()
	if owner != uuid.Nil {
		a.publish(event.Event{
			Type:         event.TypeAutomationDeleted,
			AutomationID: id,
			UserID:       owner,
		})
	}

	return nil
}

// ownerOf resolves the owning user of an automation, uuid.Nil when
// the row is absent.
func (a *automationService) ownerOf(id uuid.UUID) uuid.UUID {
	var am models.Automation
	err := a.conn().WithContext(a.ctx).
		Select("user_id").
		First(&am, "id = ?", id).Error
	if err != nil {
		return uuid.Nil
	}
	return am.UserID
}

// ListRuns returns the most recent runs for one automation,
// run_time descending.
func (a *automationService) ListRuns(automationID uuid.UUID, limit int) (models.AutomationRuns, error) {
	if limit <= 0 {
		limit = DefaultRunLimit
	}

	runs := make(models.AutomationRuns, 0)
	err := a.conn().WithContext(a.ctx).
		Where("automation_id = ?", automationID).
		Order("run_time DESC").
		Limit(limit).
		Find(&runs).Error

	return runs, err
}

// GetLastRun returns the single most recent run, or nil when the
// automation has never run.
func (a *automationService) GetLastRun(automationID uuid.UUID) (*models.AutomationRun, error) {
	var run models.AutomationRun

	err := a.conn().WithContext(a.ctx).
		Where("automation_id = ?", automationID).
		Order("run_time DESC").
		First(&run).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		return nil, nil
	case err != nil:
		return nil, err
	}

	return &run, nil
}

type CreateRunRequest struct {
	AutomationID   uuid.UUID              `json:"automation_id"`
	RunTime        *time.Time             `json:"run_time"`
	Status         string                 `json:"status"`
	ResultSummary  string                 `json:"result_summary"`
	ResultMetadata map[string]interface{} `json:"result_metadata"`
}

// CreateRun inserts one audit record. Almanac never executes the
// run it describes.
func (a *automationService) CreateRun(req *CreateRunRequest) (*models.AutomationRun, error) {
	if req.AutomationID == uuid.Nil {
		return nil, &ValidationError{Field: "automation_id", Reason: "is required"}
	}
	if req.Status != "" && !models.ValidRunStatus(models.RunStatus(req.Status)) {
		return nil, &ValidationError{Field: "status", Reason: "is not a known run status"}
	}

	run := &models.AutomationRun{
		ID:             uuid.New(),
		AutomationID:   req.AutomationID,
		RunTime:        time.Now().UTC(),
		Status:         models.RunStatusPending,
		ResultSummary:  req.ResultSummary,
		ResultMetadata: jsonmap.FromMap(req.ResultMetadata),
	}

	if req.RunTime != nil {
		run.RunTime = req.RunTime.UTC()
	}
	if req.Status != "" {
		run.Status = models.RunStatus(req.Status)
	}

	if err := a.conn().WithContext(a.ctx).Create(run).Error; err != nil {
		log.Error("create run failure", "automation_id", req.AutomationID, "error", err)
		return nil, err
	}

	metrics.RunsRecordedTotal.WithLabelValues(string(run.Status)).Inc()
	a.publish(event.Event{
		Type:         event.TypeRunRecorded,
		AutomationID: run.AutomationID,
		UserID:       a.ownerOf(run.AutomationID),
		RunID:        run.ID,
	})

	return run, nil
}

// ListRunsInRange returns every run owned by userID whose run_time
// falls within [start, end] inclusive, run_time descending. A user
// owning zero automations short-circuits to an empty result without
// issuing the runs query.
func (a *automationService) ListRunsInRange(userID uuid.UUID, start, end time.Time) (models.AutomationRuns, error) {
	if userID == uuid.Nil {
		return nil, &ValidationError{Field: "user_id", Reason: "is required"}
	}

	var ids []uuid.UUID
	if err := a.conn().WithContext(a.ctx).
		Model(&models.Automation{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	runs := make(models.AutomationRuns, 0)
	if len(ids) == 0 {
		return runs, nil
	}

	err := a.conn().WithContext(a.ctx).
		Where("automation_id IN ?", ids).
		Where("run_time >= ? AND run_time <= ?", start, end).
		Order("run_time DESC").
		Find(&runs).Error

	return runs, err
}
