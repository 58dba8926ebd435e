package app

import (
	"fmt"
	"sort"
	"time"

	"github.com/almanac-cloud/almanac/cmd/console/api"
	"github.com/almanac-cloud/almanac/internal/calendar"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

type status int

type section int

const (
	statusLoading status = iota
	statusReady
	statusError
)

const (
	sectionAutomations section = iota
	sectionCalendar
	sectionSnapshot
)

const (
	bulkActionDelete  = "delete"
	bulkActionEnable  = "enable"
	bulkActionDisable = "disable"
)

func (s section) next() section {
	return section((int(s) + 1) % 3)
}

func (s section) prev() section {
	return section((int(s) + 2) % 3)
}

var (
	sectionNames = map[section]string{
		sectionAutomations: "Automations",
		sectionCalendar:    "Calendar",
		sectionSnapshot:    "Snapshot",
	}

	statusFilters = []string{"", "enabled", "disabled"}

	automationColumnTitles  = []string{" ", "Name", "Status", "Trigger", "Updated"}
	automationColumnWeights = []int{1, 5, 2, 3, 3}
)

// Model represents the Bubble Tea program state.
type Model struct {
	client         *api.Client
	spinner        spinner.Model
	state          status
	err            error
	active         section
	viewportWidth  int
	automations    table.Model
	items          api.AutomationsResponse
	stats          *api.StatsResponse
	filterIndex    int
	selected       map[string]struct{}
	pendingAction  string
	calendar       *api.MonthResponse
	calendarRef    time.Time
	calendarLoaded bool
	snapshotID     string
	snapshotRun    *api.Run
	snapshotLoaded bool
	snapshotErr    error
	actionNotice   string
	actionErr      error
	themeIndex     int
	themeName      string
}

// New creates the root model with dependency references.
func New(client *api.Client) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	automations := createTable(automationColumnTitles, []int{3, 24, 10, 16, 14}, true)

	m := Model{
		client:      client,
		spinner:     sp,
		state:       statusLoading,
		active:      sectionAutomations,
		automations: automations,
		selected:    map[string]struct{}{},
		calendarRef: time.Now().UTC(),
	}
	m.setTheme(0)
	return m
}

// Init bootstraps async fetch and spinner tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchData(m.client, m.filter()))
}

// Update handles Bubble Tea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.pendingAction != "" {
			return m.updatePendingAction(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			return m.reload()
		case "1":
			return m.activate(sectionAutomations)
		case "2":
			return m.activate(sectionCalendar)
		case "3":
			return m.activate(sectionSnapshot)
		case "tab":
			return m.activate(m.active.next())
		case "shift+tab":
			return m.activate(m.active.prev())
		case "T":
			m.cycleTheme()
			return m, nil
		case "f":
			return m.cycleFilter()
		case " ":
			m.toggleSelection()
			return m, nil
		case "t":
			return m.toggleCursored()
		case "enter":
			return m.openSnapshot()
		case "[":
			if m.active == sectionCalendar {
				return m.shiftCalendar(-1)
			}
		case "]":
			if m.active == sectionCalendar {
				return m.shiftCalendar(1)
			}
		case "d":
			m.requestBulk(bulkActionDelete)
			return m, nil
		case "e":
			m.requestBulk(bulkActionEnable)
			return m, nil
		case "x":
			m.requestBulk(bulkActionDisable)
			return m, nil
		}
	case tea.WindowSizeMsg:
		height := max(5, msg.Height-9)
		width := max(20, msg.Width-8)
		m.viewportWidth = msg.Width
		m.automations.SetHeight(height)
		m.automations.SetWidth(width)
		m.resizeColumns(max(10, width-2))
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case dataLoadedMsg:
		m.state = statusReady
		m.err = nil
		m.items = msg.automations
		m.stats = msg.stats
		m.pruneSelection()
		m.automations.SetRows(automationsToRows(m.items, m.selected))
	case calendarLoadedMsg:
		m.calendar = msg.month
		m.calendarLoaded = true
	case snapshotLoadedMsg:
		if msg.automationID == m.snapshotID {
			m.snapshotRun = msg.run
			m.snapshotLoaded = true
			m.snapshotErr = nil
		}
	case snapshotErrMsg:
		if msg.automationID == m.snapshotID {
			m.snapshotLoaded = true
			m.snapshotErr = msg.err
		}
	case toggledMsg:
		if msg.err != nil {
			m.setActionStatus("", msg.err)
			return m, nil
		}
		m.setActionStatus(fmt.Sprintf("Automation %s is now %s", msg.automation.Name, msg.automation.Status), nil)
		return m, fetchData(m.client, m.filter())
	case bulkDoneMsg:
		return m.finishBulk(msg)
	case errMsg:
		m.state = statusError
		m.err = msg
	}

	if m.state != statusReady {
		return m, nil
	}

	var cmd tea.Cmd
	if m.active == sectionAutomations {
		m.automations, cmd = m.automations.Update(msg)
	}

	return m, cmd
}

func (m Model) reload() (Model, tea.Cmd) {
	m.state = statusLoading
	m.err = nil
	m.calendarLoaded = false
	cmds := []tea.Cmd{m.spinner.Tick, fetchData(m.client, m.filter())}
	if m.active == sectionCalendar {
		cmds = append(cmds, fetchCalendar(m.client, m.calendarRef))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) activate(sec section) (Model, tea.Cmd) {
	m.automations.Blur()
	if sec == sectionAutomations {
		m.automations.Focus()
	}
	m.active = sec

	switch sec {
	case sectionCalendar:
		if !m.calendarLoaded {
			return m, fetchCalendar(m.client, m.calendarRef)
		}
	case sectionSnapshot:
		return m.refreshSnapshot()
	}

	return m, nil
}

func (m Model) cycleFilter() (Model, tea.Cmd) {
	m.filterIndex = (m.filterIndex + 1) % len(statusFilters)
	m.state = statusLoading
	return m, tea.Batch(m.spinner.Tick, fetchData(m.client, m.filter()))
}

func (m Model) filter() string {
	return statusFilters[m.filterIndex%len(statusFilters)]
}

func (m Model) filterLabel() string {
	if f := m.filter(); f != "" {
		return f
	}
	return "all"
}

func (m *Model) toggleSelection() {
	id := m.cursorID()
	if id == "" {
		return
	}
	if _, ok := m.selected[id]; ok {
		delete(m.selected, id)
	} else {
		m.selected[id] = struct{}{}
	}
	m.automations.SetRows(automationsToRows(m.items, m.selected))
}

func (m Model) toggleCursored() (Model, tea.Cmd) {
	item := m.cursorItem()
	if item == nil {
		return m, nil
	}
	enabled := item.Status != "enabled"
	m.setActionStatus(fmt.Sprintf("Toggling %s…", item.Name), nil)
	return m, toggleAutomation(m.client, item.ID, enabled)
}

func (m Model) openSnapshot() (Model, tea.Cmd) {
	if m.active != sectionAutomations {
		return m, nil
	}
	id := m.cursorID()
	if id == "" {
		return m, nil
	}
	m.snapshotID = id
	m.snapshotRun = nil
	m.snapshotLoaded = false
	m.snapshotErr = nil
	return m.activate(sectionSnapshot)
}

func (m Model) refreshSnapshot() (Model, tea.Cmd) {
	if m.snapshotID == "" {
		if id := m.cursorID(); id != "" {
			m.snapshotID = id
		}
	}
	if m.snapshotID == "" || m.snapshotLoaded {
		return m, nil
	}
	return m, fetchSnapshot(m.client, m.snapshotID)
}

func (m Model) shiftCalendar(months int) (Model, tea.Cmd) {
	m.calendarRef = calendar.AddMonths(m.calendarRef, months)
	m.calendarLoaded = false
	return m, fetchCalendar(m.client, m.calendarRef)
}

// requestBulk arms the confirm prompt. Bulk actions act only on an
// explicit selection, never on the cursored row alone.
func (m *Model) requestBulk(action string) {
	if len(m.selected) == 0 {
		m.setActionStatus("", fmt.Errorf("no automations selected"))
		return
	}
	m.pendingAction = action
}

func (m Model) updatePendingAction(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		action := m.pendingAction
		ids := m.actionTargets()
		m.pendingAction = ""
		m.setActionStatus(fmt.Sprintf("Running %s on %d automation(s)…", action, len(ids)), nil)
		return m, runBulk(m.client, action, ids)
	case "n", "esc":
		m.pendingAction = ""
		m.setActionStatus("Cancelled", nil)
	}
	return m, nil
}

func (m Model) finishBulk(msg bulkDoneMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.setActionStatus("", msg.err)
	} else {
		m.selected = map[string]struct{}{}
		m.setActionStatus(fmt.Sprintf("Applied %s to %d automation(s)", msg.action, msg.count), nil)
	}
	m.calendarLoaded = false
	return m, fetchData(m.client, m.filter())
}

func (m Model) actionTargets() []string {
	ids := make([]string, 0, len(m.selected))
	for id := range m.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (m Model) cursorID() string {
	row := m.automations.SelectedRow()
	if len(row) == 0 {
		return ""
	}
	return row[len(row)-1]
}

func (m Model) cursorItem() *api.Automation {
	id := m.cursorID()
	for i := range m.items {
		if m.items[i].ID == id {
			return &m.items[i]
		}
	}
	return nil
}

func (m *Model) pruneSelection() {
	known := make(map[string]struct{}, len(m.items))
	for _, item := range m.items {
		known[item.ID] = struct{}{}
	}
	for id := range m.selected {
		if _, ok := known[id]; !ok {
			delete(m.selected, id)
		}
	}
}

func (m *Model) setActionStatus(notice string, err error) {
	m.actionNotice = notice
	m.actionErr = err
	if err != nil {
		m.actionNotice = ""
	}
}

func (m Model) actionStatusText() string {
	if m.actionErr != nil {
		return "Error: " + m.actionErr.Error()
	}
	return m.actionNotice
}

func (m *Model) resizeColumns(width int) {
	if width <= 0 {
		return
	}
	cols := buildColumns(automationColumnTitles, distributeWidths(width, automationColumnWeights))
	m.automations.SetColumns(cols)
}

// automationsToRows keeps the full automation ID as a trailing hidden
// cell so key handlers can resolve the cursored record.
func automationsToRows(items api.AutomationsResponse, selected map[string]struct{}) []table.Row {
	rows := make([]table.Row, len(items))
	for i, item := range items {
		marker := " "
		if _, ok := selected[item.ID]; ok {
			marker = "●"
		}
		rows[i] = table.Row{
			marker,
			item.Name,
			item.Status,
			triggerSummary(item.TriggerType, item.ScheduleCron),
			relativeTime(item.UpdatedAt),
			item.ID,
		}
	}
	return rows
}
