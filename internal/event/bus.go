package event

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type enumerates the event kinds almanac emits.
type Type string

const (
	TypeAutomationCreated Type = "automation_created"
	TypeAutomationUpdated Type = "automation_updated"
	TypeAutomationDeleted Type = "automation_deleted"
	TypeRunRecorded       Type = "run_recorded"
)

// Event represents one change to an automation or its audit trail.
type Event struct {
	Type         Type      `json:"type"`
	AutomationID uuid.UUID `json:"automation_id,omitempty"`
	UserID       uuid.UUID `json:"user_id,omitempty"`
	RunID        uuid.UUID `json:"run_id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Filter defines criteria for receiving events.
type Filter struct {
	AutomationID uuid.UUID
	UserID       uuid.UUID
	Types        []Type
}

// Bus defines the event bus interface.
type Bus interface {
	Publish(e Event)
	Subscribe(ctx context.Context, filter Filter) (<-chan Event, error)
}

type bus struct {
	subscribers map[chan Event]Filter
	buffer      int
	mu          sync.RWMutex
}

// New creates a new event bus. Subscriber channels hold up to
// buffer pending events each.
func New(buffer int) Bus {
	if buffer <= 0 {
		buffer = 64
	}
	return &bus{
		subscribers: make(map[chan Event]Filter),
		buffer:      buffer,
	}
}

func (b *bus) Publish(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch, filter := range b.subscribers {
		if b.matches(filter, e) {
			select {
			case ch <- e:
			default:
				// Drop event if channel is full to prevent blocking
			}
		}
	}
}

func (b *bus) Subscribe(ctx context.Context, filter Filter) (<-chan Event, error) {
	ch := make(chan Event, b.buffer)

	b.mu.Lock()
	b.subscribers[ch] = filter
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subscribers, ch)
		close(ch)
		b.mu.Unlock()
	}()

	return ch, nil
}

func (b *bus) matches(filter Filter, e Event) bool {
	if filter.AutomationID != uuid.Nil && filter.AutomationID != e.AutomationID {
		return false
	}
	if filter.UserID != uuid.Nil && filter.UserID != e.UserID {
		return false
	}
	if len(filter.Types) > 0 {
		found := false
		for _, t := range filter.Types {
			if t == e.Type {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
