package app

import (
	"strings"
	"testing"
	"time"

	"github.com/almanac-cloud/almanac/cmd/console/api"
	calgrid "github.com/almanac-cloud/almanac/internal/calendar"
)

func TestTabsBarAlwaysShowsAlLogo(t *testing.T) {
	bar := renderTabsBar(sectionAutomations, 80)
	if !strings.Contains(bar, "Al") {
		t.Fatalf("expected Al logo in tabs bar, got: %q", bar)
	}
}

func TestTabBarIncludesCalendarTab(t *testing.T) {
	bar := renderTabs(sectionCalendar)
	if !strings.Contains(bar, "2 Calendar") {
		t.Fatalf("expected '2 Calendar' label, got: %q", bar)
	}
}

func TestRenderSnapshotEmptyStateCopy(t *testing.T) {
	model := New(nil)
	model.state = statusReady
	model.snapshotID = "11111111-1111-1111-1111-111111111111"
	model.snapshotLoaded = true

	out := model.renderSnapshot()
	if !strings.Contains(out, "No runs recorded yet.") {
		t.Fatalf("expected empty snapshot message, got: %q", out)
	}
}

func TestRenderSnapshotShowsRunSummary(t *testing.T) {
	model := New(nil)
	model.state = statusReady
	model.snapshotID = "11111111-1111-1111-1111-111111111111"
	model.snapshotLoaded = true
	model.snapshotRun = &api.Run{
		ID:            "aaaa1111-bbbb-cccc-dddd-eeeeffff0000",
		Status:        "failed",
		RunTime:       time.Now().Add(-2 * time.Hour),
		ResultSummary: "timeout waiting on upstream",
	}

	out := model.renderSnapshot()
	if !strings.Contains(out, "timeout waiting on upstream") {
		t.Fatalf("expected result summary in snapshot, got: %q", out)
	}
	if !strings.Contains(out, "aaaa1111") {
		t.Fatalf("expected short run ID in snapshot, got: %q", out)
	}
}

func TestRenderConfirmModalShowsAction(t *testing.T) {
	model := New(nil)
	model.viewportWidth = 80
	model.pendingAction = bulkActionDelete

	out := model.renderConfirmModal("background")
	if !strings.Contains(out, "Confirm delete") {
		t.Fatalf("expected confirm title in modal, got: %q", out)
	}
	if !strings.Contains(out, "[y] confirm") {
		t.Fatalf("expected confirm hint in modal, got: %q", out)
	}
}

func TestRenderCellStates(t *testing.T) {
	if out := renderCell(0, 0, false); !strings.Contains(out, "·") {
		t.Fatalf("expected padding marker, got: %q", out)
	}
	if out := renderCell(5, 0, true); !strings.Contains(out, "5") {
		t.Fatalf("expected day number, got: %q", out)
	}
	if out := renderCell(5, 3, true); !strings.Contains(out, "5:3") {
		t.Fatalf("expected day with count, got: %q", out)
	}
	if out := renderCell(5, 12, true); !strings.Contains(out, "9+") {
		t.Fatalf("expected overflow marker for double-digit count, got: %q", out)
	}
	if out := renderCell(5, 9, true); !strings.Contains(out, "5:9") {
		t.Fatalf("expected exact count at the overflow boundary, got: %q", out)
	}
}

func TestRenderAutomationsEmptyState(t *testing.T) {
	model := New(nil)
	model.state = statusReady

	out := model.renderAutomations()
	if !strings.Contains(out, "almanac automation apply") {
		t.Fatalf("expected create hint in empty list state, got: %q", out)
	}

	model.filterIndex = 1 // enabled
	out = model.renderAutomations()
	if !strings.Contains(out, "No enabled automations") {
		t.Fatalf("expected filter-aware empty message, got: %q", out)
	}
	if strings.Contains(out, "automation apply") {
		t.Fatalf("did not expect create hint while a filter is active, got: %q", out)
	}
}

func TestRenderCalendarShowsTotals(t *testing.T) {
	model := New(nil)
	model.state = statusReady
	model.active = sectionCalendar
	model.calendar = &api.MonthResponse{
		Month:     "2026-03",
		Start:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalRuns: 4,
		Cells: []calgrid.Cell{
			{Day: 1, Date: "2026-03-01", Count: 4, InMonth: true},
		},
	}

	out := model.renderCalendar()
	if !strings.Contains(out, "March 2026") {
		t.Fatalf("expected month header, got: %q", out)
	}
	if !strings.Contains(out, "4 runs this month") {
		t.Fatalf("expected month total, got: %q", out)
	}
}

func TestRenderSummaryIncludesSelectionCount(t *testing.T) {
	model := New(nil)
	model.stats = &api.StatsResponse{
		Automations: api.AutomationStats{Total: 3, Enabled: 2, RecentRuns: 5, CompletionRate: 0.8},
	}
	model.selected["11111111-1111-1111-1111-111111111111"] = struct{}{}

	out := model.renderSummary()
	if !strings.Contains(out, "3 automations") {
		t.Fatalf("expected automation total in summary, got: %q", out)
	}
	if !strings.Contains(out, "1 selected") {
		t.Fatalf("expected selection count in summary, got: %q", out)
	}
	if !strings.Contains(out, "80% completion") {
		t.Fatalf("expected completion rate in summary, got: %q", out)
	}
}
