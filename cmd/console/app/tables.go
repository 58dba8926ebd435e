package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

func createTable(titles []string, widths []int, focused bool) table.Model {
	columns := buildColumns(titles, widths)
	tbl := table.New(
		table.WithColumns(columns),
		table.WithHeight(10),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true)

	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("63")).
		Bold(false)

	tbl.SetStyles(styles)
	if focused {
		tbl.Focus()
	}
	return tbl
}

func buildColumns(titles []string, widths []int) []table.Column {
	columns := make([]table.Column, len(titles))
	for i, title := range titles {
		width := 12
		if i < len(widths) && widths[i] > 0 {
			width = widths[i]
		}
		columns[i] = table.Column{Title: title, Width: width}
	}

	return columns
}

func distributeWidths(total int, weights []int) []int {
	if len(weights) == 0 {
		return nil
	}

	if total <= 0 {
		total = len(weights) * 12
	}

	sum := 0
	for _, w := range weights {
		sum += w
	}

	minWidth := 6
	widths := make([]int, len(weights))
	remaining := total

	for i, weight := range weights {
		if i == len(weights)-1 {
			widths[i] = max(minWidth, remaining)
			break
		}

		portion := max(minWidth, weight*total/sum)
		minRemaining := minWidth * (len(weights) - i - 1)
		if remaining-portion < minRemaining {
			portion = max(minWidth, remaining-minRemaining)
		}

		widths[i] = portion
		remaining -= portion
	}

	return widths
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	d := time.Since(t)
	switch {
	case d < 0:
		return t.Format("2006-01-02 15:04")
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

func triggerSummary(triggerType, cron string) string {
	if triggerType == "schedule" && cron != "" {
		return cron
	}
	if triggerType == "" {
		return "-"
	}
	return triggerType
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
