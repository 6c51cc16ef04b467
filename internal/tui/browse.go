// Package tui is an interactive terminal browser for one result sheet.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/render"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/results"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/view"
)

// Model browses a dataset: sort, search, compact mode and detail toggles.
type Model struct {
	ds    *results.Dataset
	id    string
	state view.State

	options []view.Option
	sortIdx int
	subject int // index into ds.Subjects for the detail toggle

	table     table.Model
	rows      []view.Row
	matched   int
	search    textinput.Model
	searching bool

	width  int
	height int
	styles render.Styles
}

func New(ds *results.Dataset, id string) Model {
	si := textinput.New()
	si.Placeholder = "Search by name or roll..."
	si.CharLimit = 64
	si.Width = 40

	m := Model{
		ds:      ds,
		id:      id,
		state:   view.NewState(),
		options: view.SortOptions(ds.Subjects),
		table:   table.New(table.WithFocused(true), table.WithHeight(view.MinRows+2)),
		search:  si,
		styles:  render.DefaultStyles(),
	}
	m.refresh()
	return m
}

// State returns the current view state.
func (m Model) State() view.State { return m.state }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if h := msg.Height - 8; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "enter", "esc":
				m.searching = false
				m.search.Blur()
				return m, nil
			}
			m.search, cmd = m.search.Update(msg)
			m.state.SetSearch(m.search.Value())
			m.refresh()
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "/":
			m.searching = true
			return m, m.search.Focus()
		case "s":
			m.cycleSort(1)
			return m, nil
		case "S":
			m.cycleSort(-1)
			return m, nil
		case "c":
			m.state.SetCompact(!m.state.Compact)
			m.refresh()
			return m, nil
		case "]":
			m.moveSubject(1)
			return m, nil
		case "[":
			m.moveSubject(-1)
			return m, nil
		case "d":
			if len(m.ds.Subjects) > 0 {
				m.state.ToggleSubject(m.ds.Subjects[m.subject])
				m.refresh()
			}
			return m, nil
		case "enter":
			if i := m.table.Cursor(); i >= 0 && i < len(m.rows) && !m.rows[i].Blank {
				m.state.ToggleRow(m.rows[i].Key)
				m.refresh()
			}
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// cycleSort moves to the next enabled sort option in direction step.
func (m *Model) cycleSort(step int) {
	n := len(m.options)
	for i := 0; i < n; i++ {
		m.sortIdx = (m.sortIdx + step + n) % n
		if !m.options[m.sortIdx].Disabled {
			break
		}
	}
	m.state.SetSort(m.options[m.sortIdx].Value)
	m.refresh()
}

func (m *Model) moveSubject(step int) {
	n := len(m.ds.Subjects)
	if n == 0 {
		return
	}
	m.subject = (m.subject + step + n) % n
}

// refresh rebuilds the table from the dataset and the current state.
func (m *Model) refresh() {
	t := view.Build(m.ds, m.state)
	m.rows = t.Rows
	m.matched = t.Matched

	cols := make([]table.Column, len(t.Columns))
	grid := make([]table.Row, len(t.Rows))
	for i, c := range t.Columns {
		title := c.Label
		if c.Subject && c.Expanded {
			title += " [" + strings.Join(view.SubMarkLabels, " ") + "]"
		}
		cols[i] = table.Column{Title: title, Width: lipgloss.Width(title)}
	}
	for r, row := range t.Rows {
		grid[r] = render.Flatten(row, len(cols))
		for i, cell := range grid[r] {
			if w := lipgloss.Width(cell); w > cols[i].Width {
				cols[i].Width = w
			}
		}
	}

	cursor := m.table.Cursor()
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(grid)
	if cursor >= len(grid) {
		cursor = len(grid) - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	m.table.SetCursor(cursor)
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(render.Heading(m.id, m.styles))
	sb.WriteString("\n")

	label := m.state.SortToken()
	for _, o := range m.options {
		if o.Value == label {
			label = o.Label
			break
		}
	}
	subject := "-"
	if len(m.ds.Subjects) > 0 {
		subject = view.SubjectName(m.ds.Subjects[m.subject])
	}
	mode := "compact"
	if !m.state.Compact {
		mode = "detailed"
	}
	sb.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("%s | %s | subject: %s | %d matched", label, mode, subject, m.matched)))
	sb.WriteString("\n")
	if m.searching || m.search.Value() != "" {
		sb.WriteString(m.search.View())
		sb.WriteString("\n")
	}
	sb.WriteString(m.table.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("s/S sort  / search  c compact  [ ] subject  d subject detail  enter row detail  q quit"))
	return sb.String()
}
