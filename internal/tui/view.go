// internal/tui/view.go
//
// Interactive report browser, following The Elm Architecture:
// model state, an Update reacting to messages, and a View rendering a
// string. Left/right cycle grid-size sections, up/down scroll rows.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kearns/gridbench/internal/config"
	"github.com/kearns/gridbench/internal/logbook"
	"github.com/kearns/gridbench/internal/report"
	"github.com/kearns/gridbench/internal/results"
)

var tableColumns = []table.Column{
	{Title: "Framework", Width: 10},
	{Title: "Dialogue Method", Width: 28},
	{Title: "Success Rate", Width: 12},
	{Title: "Avg Action Time", Width: 15},
	{Title: "Avg Token Usage", Width: 15},
	{Title: "Avg API Queries", Width: 15},
}

// Model holds the browser state.
type Model struct {
	cfg     config.Config
	summary results.Summary
	book    *logbook.Logbook
	table   table.Model
	section int
	width   int
}

// New builds the browser over an aggregate summary.
func New(cfg config.Config, summary results.Summary, book *logbook.Logbook) Model {
	tbl := table.New(
		table.WithColumns(tableColumns),
		table.WithHeight(len(cfg.Candidates)+1),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("#444444"))
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#5B8DEF")).
		Bold(true)
	tbl.SetStyles(styles)

	m := Model{cfg: cfg, summary: summary, book: book, table: tbl}
	m.reloadRows()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.section = (m.section + len(m.cfg.GridSizes) - 1) % len(m.cfg.GridSizes)
			m.reloadRows()
			return m, nil
		case "right", "l", "tab":
			m.section = (m.section + 1) % len(m.cfg.GridSizes)
			m.reloadRows()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginBottom(1).
		Render("⬡ GRIDBENCH")
	grid := m.cfg.GridSizes[m.section]
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("Grid Size: %s (%d/%d)", grid.Key(), m.section+1, len(m.cfg.GridSizes)))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(title + "\n" + m.table.View())
	sections := []string{header, box}
	if logPanel := m.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render("←/→ grid size · ↑/↓ rows · q quit")
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

func (m *Model) reloadRows() {
	grid := m.cfg.GridSizes[m.section]
	rows := make([]table.Row, 0, len(m.cfg.Candidates))
	for _, cand := range m.cfg.Candidates {
		rows = append(rows, table.Row(report.RowCells(cand, m.summary[grid.Key()][cand.Key()])))
	}
	m.table.SetRows(rows)
}

func (m Model) renderLogPanel() string {
	lines, total := m.book.Tail(5)
	if total == 0 {
		return ""
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %d entries", total))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(head + "\n" + body)
}

// Run launches the browser and blocks until the user quits.
func Run(cfg config.Config, summary results.Summary, book *logbook.Logbook) error {
	p := tea.NewProgram(New(cfg, summary, book), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
