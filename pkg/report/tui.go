package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles for a two-table-and-a-status-line layout: a placement report has
// one shape, not a multi-tab dashboard.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	contentStyle = lipgloss.NewStyle().MarginLeft(2).MarginTop(1)

	solvedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).MarginTop(1).MarginLeft(2)
)

type tab int

const (
	placementTab tab = iota
	utilizationTab
)

type keyMap struct {
	Tab  key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Tab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch table")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

type model struct {
	report        *Report
	current       tab
	placementTbl  table.Model
	utilizationTbl table.Model
}

func newModel(r *Report) model {
	placementCols := []table.Column{
		{Title: "Entity", Width: 22},
		{Title: "Kind", Width: 12},
		{Title: "Site", Width: 16},
	}
	placementRows := make([]table.Row, len(r.Placement))
	for i, p := range r.Placement {
		placementRows[i] = table.Row{p.Entity, p.Kind, p.Site}
	}
	pt := table.New(table.WithColumns(placementCols), table.WithRows(placementRows), table.WithFocused(true), table.WithHeight(12))

	utilCols := []table.Column{
		{Title: "Site kind", Width: 14},
		{Title: "Used", Width: 8},
		{Title: "Total", Width: 8},
	}
	utilRows := make([]table.Row, len(r.Utilization))
	for i, u := range r.Utilization {
		utilRows[i] = table.Row{u.Kind, fmt.Sprintf("%d", u.Used), fmt.Sprintf("%d", u.Total)}
	}
	ut := table.New(table.WithColumns(utilCols), table.WithRows(utilRows), table.WithHeight(12))

	styles := table.DefaultStyles()
	styles.Header = styles.Header.BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#00FFFF")).BorderBottom(true).Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#00FFFF"))
	pt.SetStyles(styles)
	ut.SetStyles(styles)

	return model{report: r, current: placementTab, placementTbl: pt, utilizationTbl: ut}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Tab):
			if m.current == placementTab {
				m.current = utilizationTab
			} else {
				m.current = placementTab
			}
		}
	}

	var cmd tea.Cmd
	if m.current == placementTab {
		m.placementTbl, cmd = m.placementTbl.Update(msg)
	} else {
		m.utilizationTbl, cmd = m.utilizationTbl.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("gopar placement report"))
	s.WriteString("\n\n")

	status := solvedStyle.Render("SOLVED")
	if !m.report.Solved {
		status = failedStyle.Render("FAILED")
	}
	s.WriteString(fmt.Sprintf("part: %s   status: %s   score: %d   iterations: %d\n\n", m.report.Part, status, m.report.Score, m.report.Iterations))

	if m.current == placementTab {
		s.WriteString(headerStyle.Render("Placement (tab: utilization)"))
		s.WriteString("\n")
		s.WriteString(m.placementTbl.View())
	} else {
		s.WriteString(headerStyle.Render("Utilization (tab: placement)"))
		s.WriteString("\n")
		s.WriteString(m.utilizationTbl.View())
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("tab: switch table  •  q: quit"))
	return contentStyle.Render(s.String())
}

// RunTUI launches the interactive report viewer.
func RunTUI(r *Report) error {
	p := tea.NewProgram(newModel(r), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
