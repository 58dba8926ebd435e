package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/almanac-cloud/almanac/cmd/console/config"
	"github.com/almanac-cloud/almanac/internal/cache"
	"github.com/google/uuid"
)

// Client wraps HTTP interaction with the Almanac REST API. Read
// queries go through a TTL cache keyed per query shape; mutations
// invalidate the affected keys so the next read refetches.
type Client struct {
	baseURL    *url.URL
	userID     uuid.UUID
	httpClient *http.Client
	cache      *cache.Cache
}

// New constructs a client from the provided configuration.
func New(cfg *config.Config) *Client {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	return &Client{
		baseURL:    cfg.BaseURL,
		userID:     cfg.UserID,
		httpClient: httpClient,
		cache:      cache.New(cfg.CacheTTL),
	}
}

// UserID returns the user the client acts for.
func (c *Client) UserID() uuid.UUID {
	return c.userID
}

func (c *Client) resolve(path string, queries ...string) string {
	raw := strings.TrimSuffix(c.baseURL.String(), "/") + path
	filtered := make([]string, 0, len(queries))
	for _, q := range queries {
		q = strings.Trim(q, "?& ")
		if q != "" {
			filtered = append(filtered, q)
		}
	}

	if len(filtered) == 0 {
		return raw
	}

	return raw + "?" + strings.Join(filtered, "&")
}

func decodeBody(body io.ReadCloser, target any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	decodeErr := decoder.Decode(target)
	closeErr := body.Close()
	if decodeErr != nil {
		if closeErr != nil {
			return errors.Join(decodeErr, closeErr)
		}
		return decodeErr
	}
	return closeErr
}

func (c *Client) do(ctx context.Context, method, path string, v any) error {
	return c.doJSON(ctx, method, path, nil, v)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, v any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(resp.Body)
		errStatus := fmt.Errorf("request failed: %s", responseError(resp.Status, msg))
		if err := resp.Body.Close(); err != nil {
			return errors.Join(errStatus, err)
		}
		return errStatus
	}

	if v == nil {
		return resp.Body.Close()
	}

	return decodeBody(resp.Body, v)
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "404")
}

func responseError(status string, body []byte) string {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return status
	}
	return fmt.Sprintf("%s: %s", status, msg)
}

// Automations exposes automation-related API helpers.
func (c *Client) Automations() *AutomationsService {
	return &AutomationsService{client: c}
}

// Runs exposes audit run API helpers.
func (c *Client) Runs() *RunsService {
	return &RunsService{client: c}
}

// Calendar exposes calendar aggregation helpers.
func (c *Client) Calendar() *CalendarService {
	return &CalendarService{client: c}
}

// Stats exposes the stats service.
func (c *Client) Stats() *StatsService {
	return &StatsService{client: c}
}

type healthResponse struct {
	Status string `json:"status"`
}

// Ping verifies the API health endpoint responds with a healthy status.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve("/health"), nil)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		errStatus := fmt.Errorf("health check failed: request failed: %s", resp.Status)
		if closeErr := resp.Body.Close(); closeErr != nil {
			return errors.Join(errStatus, closeErr)
		}
		return errStatus
	}

	// Keep health parsing permissive so extra payload fields don't break diagnostics.
	decoder := json.NewDecoder(resp.Body)
	var payload healthResponse
	decodeErr := decoder.Decode(&payload)
	closeErr := resp.Body.Close()
	if decodeErr != nil {
		if closeErr != nil {
			return fmt.Errorf("health check failed: %w", errors.Join(decodeErr, closeErr))
		}
		return fmt.Errorf("health check failed: %w", decodeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("health check failed: %w", closeErr)
	}

	if strings.ToLower(strings.TrimSpace(payload.Status)) != "healthy" {
		return fmt.Errorf("health check failed: status=%q", payload.Status)
	}
	return nil
}
