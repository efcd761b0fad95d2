// Package searchui provides the Bubble Tea search interface.
package searchui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/shiftlog/internal/model"
	"github.com/verte-zerg/shiftlog/internal/search"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	formStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(0, 1)
)

// Model implements the Bubble Tea search UI over a loaded report.
type Model struct {
	records []model.Record
	query   model.SearchQuery
	matches []model.Record

	results table.Model

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string

	width  int
	height int
}

// NewModel constructs a search UI model over the given records.
func NewModel(records []model.Record, query model.SearchQuery) *Model {
	m := &Model{
		records: records,
		query:   query,
	}
	m.initInputs()
	m.initTable()
	m.applyQuery()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "/":
			return m.startFilter()
		default:
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.renderHeader()
	body := m.renderBody()
	footer := m.renderFooter()
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Emp code: "),
		newFilterInput("Date (YYYY-MM-DD): "),
	}
	m.setInputsFromQuery()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromQuery() {
	m.filterInputs[0].SetValue(m.query.EmpCode)
	m.filterInputs[1].SetValue(m.query.Date)
}

func (m *Model) initTable() {
	m.results = table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 10},
			{Title: "Emp Code", Width: 10},
			{Title: "First", Width: 6},
			{Title: "Last", Width: 6},
			{Title: "Punches", Width: 8},
			{Title: "Hours", Width: 6},
			{Title: "Late", Width: 5},
			{Title: "Early", Width: 5},
		}),
		table.WithFocused(true),
	)
}

func (m *Model) applyQuery() {
	m.matches = search.Filter(m.records, m.query)
	rows := make([]table.Row, 0, len(m.matches))
	for _, r := range m.matches {
		rows = append(rows, table.Row{
			r.Date,
			r.EmpCode,
			r.FirstPunch,
			r.LastPunch,
			fmt.Sprintf("%d", r.TotalPunches),
			r.WorkingHours,
			fmt.Sprintf("%d", r.LateEntry),
			fmt.Sprintf("%d", r.EarlyExit),
		})
	}
	m.results.SetRows(rows)
	m.results.GotoTop()
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	// Header and footer take one line each, plus the filter summary line.
	tableHeight := m.height - 4
	if tableHeight < 3 {
		tableHeight = 3
	}
	m.results.SetHeight(tableHeight)
	m.results.SetWidth(m.width)
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-6)
	}
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.filterIndex = 0
	m.setInputsFromQuery()
	for i := range m.filterInputs {
		m.filterInputs[i].Blur()
	}
	return m, m.filterInputs[0].Focus()
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case "tab", "shift+tab", "up", "down":
		delta := 1
		if msg.String() == "shift+tab" || msg.String() == "up" {
			delta = -1
		}
		m.filterInputs[m.filterIndex].Blur()
		m.filterIndex = (m.filterIndex + delta + len(m.filterInputs)) % len(m.filterInputs)
		return m, m.filterInputs[m.filterIndex].Focus()
	case "enter":
		query, err := m.parseFilter()
		if err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.query = query
		m.filterMode = false
		m.filterError = ""
		m.applyQuery()
		return m, nil
	default:
		var cmd tea.Cmd
		m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
		return m, cmd
	}
}

func (m *Model) parseFilter() (model.SearchQuery, error) {
	query := model.SearchQuery{
		EmpCode: strings.TrimSpace(m.filterInputs[0].Value()),
		Date:    strings.TrimSpace(m.filterInputs[1].Value()),
	}
	if query.Date != "" {
		if _, err := time.Parse("2006-01-02", query.Date); err != nil {
			return model.SearchQuery{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", query.Date)
		}
	}
	return query, nil
}

func (m *Model) renderHeader() string {
	emp := m.query.EmpCode
	if emp == "" {
		emp = "any"
	}
	date := m.query.Date
	if date == "" {
		date = "any"
	}
	summary := fmt.Sprintf("Filters: emp=%s  date=%s  ", emp, date)
	count := countStyle.Render(fmt.Sprintf("%d record(s)", len(m.matches)))
	return headerStyle.Render(summary) + count
}

func (m *Model) renderBody() string {
	if m.filterMode {
		return m.renderFilterForm()
	}
	if len(m.matches) == 0 {
		return "No records found."
	}
	return tableStyle.Render(m.results.View())
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Filters (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return formStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	return headerStyle.Render("Scroll: up/down/pgup/pgdn  Filters: /  Quit: q")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
