package app

import (
	"testing"
	"time"

	"github.com/almanac-cloud/almanac/cmd/console/api"
	"github.com/stretchr/testify/suite"
)

type TableSuite struct {
	suite.Suite
}

func TestTableSuite(t *testing.T) {
	suite.Run(t, new(TableSuite))
}

func (s *TableSuite) TestAutomationsToRowsMarksSelection() {
	items := api.AutomationsResponse{
		{ID: "aaaa-1", Name: "weekly-report", Status: "enabled", TriggerType: "schedule", ScheduleCron: "0 9 * * 1"},
		{ID: "bbbb-2", Name: "manual-check", Status: "disabled", TriggerType: "manual"},
	}

	rows := automationsToRows(items, map[string]struct{}{"bbbb-2": {}})
	s.Require().Len(rows, 2)

	s.Equal(" ", rows[0][0])
	s.Equal("weekly-report", rows[0][1])
	s.Equal("enabled", rows[0][2])
	s.Equal("0 9 * * 1", rows[0][3])
	s.Equal("aaaa-1", rows[0][len(rows[0])-1])

	s.Equal("●", rows[1][0])
	s.Equal("manual", rows[1][3])
}

func (s *TableSuite) TestTriggerSummary() {
	s.Equal("0 9 * * 1", triggerSummary("schedule", "0 9 * * 1"))
	s.Equal("schedule", triggerSummary("schedule", ""))
	s.Equal("event", triggerSummary("event", ""))
	s.Equal("-", triggerSummary("", ""))
}

func (s *TableSuite) TestShortID() {
	s.Equal("abcd1234", shortID("abcd1234-5678-90ef"))
	s.Equal("short", shortID("short"))
}

func (s *TableSuite) TestRelativeTime() {
	s.Equal("-", relativeTime(time.Time{}))
	s.Equal("just now", relativeTime(time.Now().Add(-10*time.Second)))
	s.Equal("5m ago", relativeTime(time.Now().Add(-5*time.Minute)))
	s.Equal("3h ago", relativeTime(time.Now().Add(-3*time.Hour)))
	s.Equal("2d ago", relativeTime(time.Now().Add(-49*time.Hour)))
}

func (s *TableSuite) TestDistributeWidthsRespectsMinimums() {
	widths := distributeWidths(20, []int{1, 1, 1})
	s.Len(widths, 3)
	for _, w := range widths {
		s.GreaterOrEqual(w, 6)
	}

	widths = distributeWidths(0, []int{1})
	s.Equal([]int{12}, widths)
}
