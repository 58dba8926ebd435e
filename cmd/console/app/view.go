package app

import (
	"fmt"
	"strings"

	"github.com/almanac-cloud/almanac/cmd/console/api"
	"github.com/charmbracelet/lipgloss"
)

// View renders the interface.
func (m Model) View() string {
	tabs := renderTabsBar(m.active, m.viewportWidth)
	summary := m.renderSummary()

	footerKeys := "[1/2/3] switch  [tab] cycle  [f] filter  [r] reload  [q] quit"
	switch m.active {
	case sectionAutomations:
		footerKeys += "  [space] select  [t] toggle  [enter] snapshot  [d/e/x] bulk"
	case sectionCalendar:
		footerKeys += "  [[/]] month"
	}
	footer := barStyle.Render(footerKeys)
	if status := strings.TrimSpace(m.actionStatusText()); status != "" {
		footer = lipgloss.JoinHorizontal(lipgloss.Top, footer, barStyle.Render(status))
	}

	var body string

	switch m.state {
	case statusLoading:
		body = centerText(fmt.Sprintf("%s Loading data…", m.spinner.View()))
	case statusError:
		body = boxStyle.Render("Failed to load data: " + m.err.Error())
	case statusReady:
		switch m.active {
		case sectionAutomations:
			body = m.renderAutomations()
		case sectionCalendar:
			body = m.renderCalendar()
		case sectionSnapshot:
			body = m.renderSnapshot()
		}
	}

	screen := lipgloss.JoinVertical(lipgloss.Left, tabs, summary, body, footer)
	if m.pendingAction != "" {
		return m.renderConfirmModal(screen)
	}
	return screen
}

func (m Model) renderSummary() string {
	filter := filterStyle.Render(fmt.Sprintf("filter: %s", m.filterLabel()))
	if m.stats == nil {
		return filter
	}

	s := m.stats.Automations
	parts := []string{
		fmt.Sprintf("%d automations", s.Total),
		fmt.Sprintf("%d enabled", s.Enabled),
		fmt.Sprintf("%d runs (24h)", s.RecentRuns),
		fmt.Sprintf("%.0f%% completion", s.CompletionRate*100),
	}
	if len(m.selected) > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", len(m.selected)))
	}

	line := summaryStyle.Render(strings.Join(parts, "  ·  "))
	return lipgloss.JoinHorizontal(lipgloss.Top, line, filter)
}

func (m Model) renderAutomations() string {
	if len(m.items) == 0 {
		return renderPane(placeholder.Render(m.emptyListMessage()), true)
	}
	return renderPane(m.automations.View(), true)
}

func (m Model) emptyListMessage() string {
	if f := m.filter(); f != "" {
		return fmt.Sprintf("No %s automations. Press f to change the filter.", f)
	}
	return "No automations yet. Create one with `almanac automation apply`."
}

func renderPane(content string, active bool) string {
	style := boxStyle
	if active {
		style = activeBox
	}
	return style.Render(content)
}

func (m Model) renderCalendar() string {
	if m.calendar == nil {
		return centerText(fmt.Sprintf("%s Loading calendar…", m.spinner.View()))
	}

	cal := m.calendar
	header := accentStyle.Render(cal.Start.Format("January 2006"))
	total := mutedStyle.Render(fmt.Sprintf("%d runs this month", cal.TotalRuns))

	names := []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
	labels := make([]string, len(names))
	for i, name := range names {
		labels[i] = fmt.Sprintf("%4s   ", name)
	}
	weekdays := mutedStyle.Render(strings.Join(labels, " "))

	var rows []string
	for week := 0; week*7 < len(cal.Cells); week++ {
		var cells []string
		for day := 0; day < 7; day++ {
			idx := week*7 + day
			if idx >= len(cal.Cells) {
				break
			}
			cells = append(cells, renderCell(cal.Cells[idx].Day, cal.Cells[idx].Count, cal.Cells[idx].InMonth))
		}
		rows = append(rows, strings.Join(cells, " "))
	}

	grid := strings.Join(rows, "\n")
	body := lipgloss.JoinVertical(lipgloss.Left, header, total, "", weekdays, grid)
	return renderPane(body, m.active == sectionCalendar)
}

// renderCell formats one day slot, blanking padding days and
// dimming days without runs. Counts past 9 render as "9+" to keep
// the grid columns aligned.
func renderCell(day, count int, inMonth bool) string {
	if !inMonth {
		return placeholder.Render("   ·   ")
	}
	if count == 0 {
		return mutedStyle.Render(fmt.Sprintf("%4d   ", day))
	}
	label := fmt.Sprintf("%d", count)
	if count > 9 {
		label = "9+"
	}
	return successStyle.Render(fmt.Sprintf("%4d:%-2s", day, label))
}

func (m Model) renderSnapshot() string {
	if m.snapshotID == "" {
		return renderPane(placeholder.Render("Select an automation and press enter to inspect its last run."), true)
	}

	title := modalTitle.Render("Last run")
	if item := m.snapshotItem(); item != nil {
		title = modalTitle.Render(fmt.Sprintf("Last run · %s", item.Name))
	}

	var body string
	switch {
	case m.snapshotErr != nil:
		body = errorStyle.Render("Failed to load run: " + m.snapshotErr.Error())
	case !m.snapshotLoaded:
		body = fmt.Sprintf("%s Loading…", m.spinner.View())
	case m.snapshotRun == nil:
		body = placeholder.Render("No runs recorded yet.")
	default:
		run := m.snapshotRun
		lines := []string{
			fmt.Sprintf("Run:      %s", shortID(run.ID)),
			fmt.Sprintf("Status:   %s", renderRunStatus(run.Status)),
			fmt.Sprintf("Ran at:   %s (%s)", run.RunTime.Format("2006-01-02 15:04 MST"), relativeTime(run.RunTime)),
		}
		if run.ResultSummary != "" {
			lines = append(lines, fmt.Sprintf("Summary:  %s", run.ResultSummary))
		}
		for key, value := range run.ResultMetadata {
			lines = append(lines, mutedStyle.Render(fmt.Sprintf("  %s: %v", key, value)))
		}
		body = strings.Join(lines, "\n")
	}

	return renderPane(lipgloss.JoinVertical(lipgloss.Left, title, "", body), true)
}

func (m Model) snapshotItem() *api.Automation {
	for i := range m.items {
		if m.items[i].ID == m.snapshotID {
			return &m.items[i]
		}
	}
	return nil
}

func renderRunStatus(status string) string {
	switch status {
	case "completed":
		return successStyle.Render("✓ completed")
	case "failed":
		return errorStyle.Render("✗ failed")
	default:
		return status
	}
}

func (m Model) renderConfirmModal(background string) string {
	width := m.viewportWidth
	if width <= 0 {
		width = lipgloss.Width(background)
	}
	height := lipgloss.Height(background)

	targets := m.actionTargets()
	title := modalTitle.Render(fmt.Sprintf("Confirm %s", m.pendingAction))
	prompt := fmt.Sprintf("Apply %s to %d automation(s)?", m.pendingAction, len(targets))
	hint := modalHint.Render("[y] confirm  [n/esc] cancel")

	modal := modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", prompt, "", hint))

	return lipgloss.Place(width, height,
		lipgloss.Center, lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("235")))
}

func renderTabs(active section) string {
	sections := []section{sectionAutomations, sectionCalendar, sectionSnapshot}
	tabs := make([]string, len(sections))
	for i, sec := range sections {
		label := fmt.Sprintf("%d %s", i+1, sectionNames[sec])
		if sec == active {
			tabs[i] = tabActive.Render(label)
		} else {
			tabs[i] = tabInactive.Render(label)
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func renderTabsBar(active section, totalWidth int) string {
	tabs := renderTabs(active)
	logo := logoStyle.Render("┌────┐\n│ Al │\n└────┘")
	if totalWidth <= 0 {
		return lipgloss.JoinHorizontal(lipgloss.Top, tabs, logo)
	}

	logoWidth := lipgloss.Width(logo)
	leftWidth := max(totalWidth-logoWidth, 0)
	left := lipgloss.NewStyle().Width(leftWidth).MaxWidth(leftWidth).Render(tabs)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, logo)
}

func centerText(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return lipgloss.NewStyle().Align(lipgloss.Center).Render(value)
}
