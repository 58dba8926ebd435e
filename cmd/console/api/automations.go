package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/almanac-cloud/almanac/internal/cache"
	"github.com/almanac-cloud/almanac/internal/metrics"
	"github.com/google/uuid"
)

// Automation represents the API projection of an automation record.
type Automation struct {
	ID                string         `json:"id"`
	UserID            string         `json:"user_id"`
	Name              string         `json:"name"`
	Description       string         `json:"description,omitempty"`
	SkillID           *string        `json:"skill_id,omitempty"`
	SkillName         string         `json:"skill_name,omitempty"`
	TriggerType       string         `json:"trigger_type"`
	TriggerDefinition map[string]any `json:"trigger_definition,omitempty"`
	ScheduleCron      string         `json:"schedule_cron,omitempty"`
	Timezone          string         `json:"timezone"`
	Status            string         `json:"status"`
	Metadata          map[string]any `json:"metadata,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	Runs              []Run          `json:"runs,omitempty"`
}

// AutomationsResponse wraps the automation list payload.
type AutomationsResponse []Automation

// CreateRequest carries the fields for a new automation.
type CreateRequest struct {
	UserID            string         `json:"user_id"`
	Name              string         `json:"name"`
	Description       string         `json:"description,omitempty"`
	SkillName         string         `json:"skill_name,omitempty"`
	TriggerType       string         `json:"trigger_type,omitempty"`
	TriggerDefinition map[string]any `json:"trigger_definition,omitempty"`
	ScheduleCron      string         `json:"schedule_cron,omitempty"`
	Timezone          string         `json:"timezone"`
	Status            string         `json:"status,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
}

// UpdateRequest carries a partial update; nil fields are left untouched.
type UpdateRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	ScheduleCron *string `json:"schedule_cron,omitempty"`
	Timezone     *string `json:"timezone,omitempty"`
	Status       *string `json:"status,omitempty"`
}

// AutomationsService exposes automation CRUD operations.
type AutomationsService struct {
	client *Client
}

// List fetches the user's automations, optionally filtered by status.
// Results are cached per filter until the TTL lapses or a mutation
// invalidates them.
func (s *AutomationsService) List(ctx context.Context, status string) (AutomationsResponse, error) {
	key := cache.ListKey(s.client.userID, status)

	v, err := s.client.cache.GetOrFetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		params := url.Values{}
		params.Set("user_id", s.client.userID.String())
		if status != "" {
			params.Set("status", status)
		}
		endpoint := s.client.resolve("/v1/automations", params.Encode())

		var payload AutomationsResponse
		if err := s.client.do(ctx, http.MethodGet, endpoint, &payload); err != nil {
			return nil, fmt.Errorf("list automations: %w", err)
		}
		return payload, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(AutomationsResponse), nil
}

// Get retrieves a single automation.
func (s *AutomationsService) Get(ctx context.Context, id uuid.UUID) (*Automation, error) {
	key := cache.DetailKey(id)

	v, err := s.client.cache.GetOrFetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		endpoint := s.client.resolve(fmt.Sprintf("/v1/automations/%s", id))

		var payload Automation
		if err := s.client.do(ctx, http.MethodGet, endpoint, &payload); err != nil {
			return nil, fmt.Errorf("get automation: %w", err)
		}
		return &payload, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Automation), nil
}

// Create registers a new automation owned by the client's user.
func (s *AutomationsService) Create(ctx context.Context, req *CreateRequest) (*Automation, error) {
	req.UserID = s.client.userID.String()
	endpoint := s.client.resolve("/v1/automations")

	var payload Automation
	if err := s.client.doJSON(ctx, http.MethodPost, endpoint, req, &payload); err != nil {
		return nil, fmt.Errorf("create automation: %w", err)
	}

	s.client.cache.InvalidateLists(s.client.userID)
	s.client.cache.InvalidateRanges(s.client.userID)

	return &payload, nil
}

// Update applies a partial update to an automation.
func (s *AutomationsService) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*Automation, error) {
	endpoint := s.client.resolve(fmt.Sprintf("/v1/automations/%s", id))

	var payload Automation
	if err := s.client.doJSON(ctx, http.MethodPut, endpoint, req, &payload); err != nil {
		return nil, fmt.Errorf("update automation: %w", err)
	}

	s.client.cache.InvalidateLists(s.client.userID)
	s.client.cache.InvalidateDetail(id)
	s.client.cache.InvalidateRanges(s.client.userID)

	return &payload, nil
}

// Toggle flips an automation between enabled and disabled.
func (s *AutomationsService) Toggle(ctx context.Context, id uuid.UUID, enabled bool) (*Automation, error) {
	status := "disabled"
	if enabled {
		status = "enabled"
	}
	return s.Update(ctx, id, &UpdateRequest{Status: &status})
}

// Delete removes an automation and its audit runs.
func (s *AutomationsService) Delete(ctx context.Context, id uuid.UUID) error {
	endpoint := s.client.resolve(fmt.Sprintf("/v1/automations/%s", id))

	if err := s.client.do(ctx, http.MethodDelete, endpoint, nil); err != nil {
		return fmt.Errorf("delete automation: %w", err)
	}

	s.client.cache.InvalidateLists(s.client.userID)
	s.client.cache.InvalidateDetail(id)
	s.client.cache.InvalidateRuns(id)
	s.client.cache.InvalidateRanges(s.client.userID)

	return nil
}

// BulkError aggregates per-item failures from a bulk action. The
// successful items remain applied.
type BulkError struct {
	Action string
	Failed map[uuid.UUID]error
}

func (e *BulkError) Error() string {
	ids := make([]string, 0, len(e.Failed))
	for id := range e.Failed {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)
	return fmt.Sprintf("bulk %s failed for %d automation(s): %s",
		e.Action, len(ids), strings.Join(ids, ", "))
}

// BulkUpdate applies the same partial update to every id. Items are
// updated independently; failures do not roll back the rest.
func (s *AutomationsService) BulkUpdate(ctx context.Context, ids []uuid.UUID, req *UpdateRequest) error {
	return s.bulk(ctx, "update", ids, func(ctx context.Context, id uuid.UUID) error {
		_, err := s.Update(ctx, id, req)
		return err
	})
}

// BulkDelete removes every id. Items are deleted independently;
// failures do not roll back the rest.
func (s *AutomationsService) BulkDelete(ctx context.Context, ids []uuid.UUID) error {
	return s.bulk(ctx, "delete", ids, func(ctx context.Context, id uuid.UUID) error {
		return s.Delete(ctx, id)
	})
}

func (s *AutomationsService) bulk(ctx context.Context, action string, ids []uuid.UUID, fn func(context.Context, uuid.UUID) error) error {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed = map[uuid.UUID]error{}
	)

	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			if err := fn(ctx, id); err != nil {
				mu.Lock()
				failed[id] = err
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	if len(failed) > 0 {
		metrics.BulkActionsTotal.WithLabelValues(action, "partial_failure").Inc()
		return &BulkError{Action: action, Failed: failed}
	}

	metrics.BulkActionsTotal.WithLabelValues(action, "success").Inc()
	return nil
}
