package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	TypeAutomationCreated EventType = "automation_created"
	TypeAutomationUpdated EventType = "automation_updated"
	TypeAutomationDeleted EventType = "automation_deleted"
	TypeRunRecorded       EventType = "run_recorded"
)

type Event struct {
	Type         EventType `json:"type"`
	AutomationID uuid.UUID `json:"automation_id,omitempty"`
	UserID       uuid.UUID `json:"user_id,omitempty"`
	RunID        uuid.UUID `json:"run_id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

type EventsService struct {
	client *Client
}

// Events exposes the server-sent event stream.
func (c *Client) Events() *EventsService {
	return &EventsService{client: c}
}

func (s *EventsService) Stream(ctx context.Context, automationID string, types []EventType) (<-chan Event, error) {
	queries := []string{
		fmt.Sprintf("user_id=%s", s.client.userID),
	}
	if automationID != "" {
		queries = append(queries, fmt.Sprintf("automation_id=%s", automationID))
	}
	if len(types) > 0 {
		tStrs := make([]string, len(types))
		for i, t := range types {
			tStrs[i] = string(t)
		}
		queries = append(queries, fmt.Sprintf("types=%s", strings.Join(tStrs, ",")))
	}

	url := s.client.resolve("/v1/events", queries...)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Connection", "keep-alive")

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	ch := make(chan Event, 100)

	go func() {
		defer resp.Body.Close()
		defer close(ch)

		scanner := bufio.NewScanner(resp.Body)
		var currentType EventType
		var currentData []byte

		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				if currentType != "" && len(currentData) > 0 {
					var evt Event
					if err := json.Unmarshal(currentData, &evt); err == nil {
						if evt.Type == "" {
							evt.Type = currentType
						}
						select {
						case ch <- evt:
						case <-ctx.Done():
							return
						}
					}
				}
				currentType = ""
				currentData = nil
				continue
			}

			if bytes.HasPrefix(line, []byte(":")) {
				continue // Comment/Ping
			}

			parts := bytes.SplitN(line, []byte(":"), 2)
			if len(parts) < 2 {
				continue
			}

			field := string(bytes.TrimSpace(parts[0]))
			value := bytes.TrimPrefix(parts[1], []byte(" "))

			switch field {
			case "event":
				currentType = EventType(value)
			case "data":
				// copy out of the scanner's reusable buffer
				currentData = append([]byte(nil), value...)
			}
		}
	}()

	return ch, nil
}
