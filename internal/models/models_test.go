package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidTriggerType(t *testing.T) {
	for _, tt := range []TriggerType{TriggerTypeManual, TriggerTypeSchedule, TriggerTypeEvent} {
		require.True(t, ValidTriggerType(tt))
	}
	require.False(t, ValidTriggerType("cron"))
	require.False(t, ValidTriggerType(""))
}

func TestValidAutomationStatus(t *testing.T) {
	require.True(t, ValidAutomationStatus(AutomationStatusEnabled))
	require.True(t, ValidAutomationStatus(AutomationStatusDisabled))
	require.False(t, ValidAutomationStatus("paused"))
}

func TestValidRunStatus(t *testing.T) {
	for _, rs := range []RunStatus{
		RunStatusPending, RunStatusRunning, RunStatusCompleted,
		RunStatusFailed, RunStatusCancelled,
	} {
		require.True(t, ValidRunStatus(rs))
	}
	require.False(t, ValidRunStatus("succeeded"))
}
