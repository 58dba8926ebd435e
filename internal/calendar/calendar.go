package calendar

import (
	"time"

	"github.com/almanac-cloud/almanac/internal/models"
)

// GridCells is the fixed size of a rendered month grid:
// six rows of seven weekdays.
const GridCells = 42

const dayFormat = "2006-01-02"

// DayCounts maps an ISO date (YYYY-MM-DD) to the number of run
// records on that day.
type DayCounts map[string]int

// Cell is one slot of the 42-cell month grid. Padding cells
// outside the month carry InMonth=false and a zero Day.
type Cell struct {
	Day     int    `json:"day,omitempty"`
	Date    string `json:"date,omitempty"`
	Count   int    `json:"count,omitempty"`
	InMonth bool   `json:"in_month"`
}

// MonthWindow returns the inclusive query range for the month
// containing ref: first day 00:00:00 through last day 23:59:59 UTC.
func MonthWindow(ref time.Time) (time.Time, time.Time) {
	ref = ref.UTC()
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// StartOfMonth truncates ref to the first day of its month.
func StartOfMonth(ref time.Time) time.Time {
	ref = ref.UTC()
	return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths moves ref by exactly delta calendar months. The result
// is pinned to the first of the month so navigation from e.g. an
// end-of-month reference cannot skip a month.
func AddMonths(ref time.Time, delta int) time.Time {
	return StartOfMonth(ref).AddDate(0, delta, 0)
}

// Aggregate maps a flat run list onto per-day record counts. A day
// with three runs from one automation counts 3, not 1.
func Aggregate(runs models.AutomationRuns) DayCounts {
	counts := DayCounts{}
	for _, run := range runs {
		counts[run.RunTime.UTC().Format(dayFormat)]++
	}
	return counts
}

// Grid projects a month's day counts onto the fixed 42-cell grid.
// Leading pad cells align day 1 with its weekday (Sunday first),
// trailing pad cells fill the remainder.
func Grid(month time.Time, counts DayCounts) []Cell {
	start, end := MonthWindow(month)
	days := end.Day()

	cells := make([]Cell, 0, GridCells)
	for i := 0; i < int(start.Weekday()); i++ {
		cells = append(cells, Cell{})
	}

	for day := 1; day <= days; day++ {
		date := time.Date(start.Year(), start.Month(), day, 0, 0, 0, 0, time.UTC).Format(dayFormat)
		cells = append(cells, Cell{
			Day:     day,
			Date:    date,
			Count:   counts[date],
			InMonth: true,
		})
	}

	for len(cells) < GridCells {
		cells = append(cells, Cell{})
	}

	return cells
}
