package event

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestPublishDeliversToMatchingSubscriber(t *testing.T) {
	bus := New(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	automationID := uuid.New()
	ch, err := bus.Subscribe(ctx, Filter{AutomationID: automationID})
	require.NoError(t, err)

	bus.Publish(Event{Type: TypeAutomationUpdated, AutomationID: automationID})

	e := receive(t, ch)
	require.Equal(t, TypeAutomationUpdated, e.Type)
	require.Equal(t, automationID, e.AutomationID)
	require.False(t, e.Timestamp.IsZero())
}

func TestPublishSkipsNonMatchingSubscriber(t *testing.T) {
	bus := New(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, Filter{Types: []Type{TypeRunRecorded}})
	require.NoError(t, err)

	bus.Publish(Event{Type: TypeAutomationDeleted, AutomationID: uuid.New()})
	bus.Publish(Event{Type: TypeRunRecorded, RunID: uuid.New()})

	e := receive(t, ch)
	require.Equal(t, TypeRunRecorded, e.Type)
}

func TestSubscribeClosesOnContextCancel(t *testing.T) {
	bus := New(8)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := bus.Subscribe(ctx, Filter{})
	require.NoError(t, err)

	cancel()

	select {
	case _, open := <-ch:
		require.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
