package app

import (
	"context"
	"time"

	"github.com/almanac-cloud/almanac/cmd/console/api"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type dataLoadedMsg struct {
	automations api.AutomationsResponse
	stats       *api.StatsResponse
}

type calendarLoadedMsg struct {
	month *api.MonthResponse
}

type snapshotLoadedMsg struct {
	automationID string
	run          *api.Run
}

type snapshotErrMsg struct {
	automationID string
	err          error
}

type toggledMsg struct {
	automation *api.Automation
	err        error
}

type bulkDoneMsg struct {
	action string
	count  int
	err    error
}

type errMsg error

func fetchData(client *api.Client, filter string) tea.Cmd {
	return func() tea.Msg {
		automations, err := client.Automations().List(context.Background(), filter)
		if err != nil {
			return errMsg(err)
		}

		stats, err := client.Stats().Get(context.Background())
		if err != nil {
			return errMsg(err)
		}

		return dataLoadedMsg{automations: automations, stats: stats}
	}
}

func fetchCalendar(client *api.Client, ref time.Time) tea.Cmd {
	return func() tea.Msg {
		month, err := client.Calendar().Month(context.Background(), ref)
		if err != nil {
			return errMsg(err)
		}
		return calendarLoadedMsg{month: month}
	}
}

func fetchSnapshot(client *api.Client, automationID string) tea.Cmd {
	return func() tea.Msg {
		id, err := uuid.Parse(automationID)
		if err != nil {
			return snapshotErrMsg{automationID: automationID, err: err}
		}

		run, err := client.Runs().Last(context.Background(), id)
		if err != nil {
			return snapshotErrMsg{automationID: automationID, err: err}
		}

		return snapshotLoadedMsg{automationID: automationID, run: run}
	}
}

func toggleAutomation(client *api.Client, automationID string, enabled bool) tea.Cmd {
	return func() tea.Msg {
		id, err := uuid.Parse(automationID)
		if err != nil {
			return toggledMsg{err: err}
		}

		automation, err := client.Automations().Toggle(context.Background(), id, enabled)
		return toggledMsg{automation: automation, err: err}
	}
}

func runBulk(client *api.Client, action string, rawIDs []string) tea.Cmd {
	return func() tea.Msg {
		ids := make([]uuid.UUID, 0, len(rawIDs))
		for _, raw := range rawIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				return bulkDoneMsg{action: action, err: err}
			}
			ids = append(ids, id)
		}

		var err error
		switch action {
		case bulkActionDelete:
			err = client.Automations().BulkDelete(context.Background(), ids)
		case bulkActionEnable:
			status := "enabled"
			err = client.Automations().BulkUpdate(context.Background(), ids, &api.UpdateRequest{Status: &status})
		case bulkActionDisable:
			status := "disabled"
			err = client.Automations().BulkUpdate(context.Background(), ids, &api.UpdateRequest{Status: &status})
		}

		return bulkDoneMsg{action: action, count: len(ids), err: err}
	}
}
