package calendar

import (
	"testing"
	"time"

	"github.com/almanac-cloud/almanac/internal/models"
	"github.com/stretchr/testify/require"
)

func run(ts time.Time) *models.AutomationRun {
	return &models.AutomationRun{RunTime: ts}
}

func TestMonthWindow(t *testing.T) {
	start, end := MonthWindow(time.Date(2025, 3, 17, 15, 4, 5, 0, time.UTC))
	require.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC), end)

	// February in a leap year
	start, end = MonthWindow(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	require.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), end)
}

func TestAddMonthsNeverSkips(t *testing.T) {
	jan31 := time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC)
	require.Equal(t, time.Month(2), AddMonths(jan31, 1).Month())
	require.Equal(t, time.Month(12), AddMonths(jan31, -1).Month())
	require.Equal(t, 2024, AddMonths(jan31, -1).Year())
}

func TestAggregateCountsRecordsPerDay(t *testing.T) {
	runs := models.AutomationRuns{
		run(time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)),
		run(time.Date(2025, 3, 5, 22, 0, 0, 0, time.UTC)),
		run(time.Date(2025, 3, 7, 8, 30, 0, 0, time.UTC)),
	}

	counts := Aggregate(runs)
	require.Equal(t, 2, counts["2025-03-05"])
	require.Equal(t, 1, counts["2025-03-07"])
	require.Zero(t, counts["2025-03-06"])
}

func TestAggregateIdempotent(t *testing.T) {
	runs := models.AutomationRuns{
		run(time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)),
		run(time.Date(2025, 3, 5, 22, 0, 0, 0, time.UTC)),
		run(time.Date(2025, 3, 12, 1, 0, 0, 0, time.UTC)),
	}

	require.Equal(t, Aggregate(runs), Aggregate(runs))
}

func TestGridShape(t *testing.T) {
	// March 2025 starts on a Saturday (weekday 6) and has 31 days.
	month := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	cells := Grid(month, DayCounts{"2025-03-05": 2})

	require.Len(t, cells, GridCells)

	for i := 0; i < 6; i++ {
		require.False(t, cells[i].InMonth)
	}

	first := cells[6]
	require.True(t, first.InMonth)
	require.Equal(t, 1, first.Day)
	require.Equal(t, "2025-03-01", first.Date)

	day5 := cells[6+4]
	require.Equal(t, 5, day5.Day)
	require.Equal(t, 2, day5.Count)

	last := cells[6+30]
	require.Equal(t, 31, last.Day)
	for _, cell := range cells[6+31:] {
		require.False(t, cell.InMonth)
	}
}

func TestGridCountsIgnoreOutOfMonthDates(t *testing.T) {
	month := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	cells := Grid(month, DayCounts{"2025-02-28": 4})

	for _, cell := range cells {
		require.Zero(t, cell.Count)
	}
}
