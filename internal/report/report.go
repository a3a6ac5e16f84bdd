// Package report renders aggregate statistics three ways: a Markdown
// comparison report, a machine-readable JSON summary, and a styled terminal
// rendering. All of it is pure formatting; callers decide where the bytes go.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kearns/gridbench/internal/config"
	"github.com/kearns/gridbench/internal/results"
)

var columns = []string{
	"Framework", "Dialogue Method", "Success Rate",
	"Avg Action Time", "Avg Token Usage", "Avg API Queries",
}

// Renderer formats summaries. Section order follows the config's grid-size
// slice and row order its candidate slice, regardless of how the summary
// map iterates.
type Renderer struct {
	cfg config.Config
}

// NewRenderer builds a renderer for the given configuration.
func NewRenderer(cfg config.Config) Renderer {
	return Renderer{cfg: cfg}
}

// Markdown renders the comparison report, one table per grid size.
func (r Renderer) Markdown(summary results.Summary) string {
	var b strings.Builder
	b.WriteString("# Multi-Agent Framework Analysis Report\n\n")
	for _, grid := range r.cfg.GridSizes {
		fmt.Fprintf(&b, "## Grid Size: %s\n\n", grid.Key())
		b.WriteString("| " + strings.Join(columns, " | ") + " |\n")
		b.WriteString("|-----------|----------------|--------------|-----------------|-----------------|------------------|\n")
		for _, cand := range r.cfg.Candidates {
			cells := RowCells(cand, summary[grid.Key()][cand.Key()])
			b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// JSON renders the summary document mirroring the aggregate mapping exactly.
func (r Renderer) JSON(summary results.Summary) ([]byte, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("report: encode summary: %w", err)
	}
	return data, nil
}

// Styled renders bordered terminal tables for interactive use.
func (r Renderer) Styled(summary results.Summary) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF"))
	var sections []string
	for _, grid := range r.cfg.GridSizes {
		tbl := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))).
			StyleFunc(func(row, col int) lipgloss.Style {
				return lipgloss.NewStyle().Padding(0, 1)
			}).
			Headers(columns...)
		for _, cand := range r.cfg.Candidates {
			tbl.Row(RowCells(cand, summary[grid.Key()][cand.Key()])...)
		}
		sections = append(sections,
			titleStyle.Render("Grid Size: "+grid.Key())+"\n"+tbl.String())
	}
	return strings.Join(sections, "\n\n")
}

// RowCells returns the formatted table cells for one candidate, in column
// order. Every surface, the TUI included, formats metrics through it.
func RowCells(cand config.Candidate, stats results.Stats) []string {
	return []string{
		cand.Framework,
		methodDisplay(cand.DialogueMethod),
		fmt.Sprintf("%.2f%%", stats.SuccessRate*100),
		fmt.Sprintf("%.1f", stats.AvgActionTime),
		fmt.Sprintf("%.0f", stats.AvgTokenUsage),
		fmt.Sprintf("%.1f", stats.AvgAPIQueries),
	}
}

// methodDisplay turns "_w_only_state_action_history" into
// "W Only State Action History".
func methodDisplay(method string) string {
	words := strings.Fields(strings.ReplaceAll(strings.TrimPrefix(method, "_"), "_", " "))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
