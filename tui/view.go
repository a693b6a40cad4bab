package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	barFillStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	barEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

const barWidth = 40

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("medlar") + "  " + m.jobName + "\n\n")

	if !m.seen {
		b.WriteString(labelStyle.Render("waiting for first trial...") + "\n")
	} else {
		b.WriteString(renderBar(m.last.Completed, m.last.Total) + "\n")
		b.WriteString(labelStyle.Render("best ") + valueStyle.Render(fmt.Sprintf("%g", m.last.Best)) + "\n")
		if len(m.last.BestParams) > 0 {
			b.WriteString(labelStyle.Render(renderParams(m.last.BestParams)) + "\n")
		}
	}

	if m.ended {
		if m.err != nil {
			b.WriteString("\n" + labelStyle.Render("run failed: ") + m.err.Error() + "\n")
		} else {
			b.WriteString("\n" + labelStyle.Render("run complete") + "\n")
		}
	} else {
		b.WriteString("\n" + helpStyle.Render("q to quit") + "\n")
	}

	return b.String()
}

func renderBar(completed, total int) string {
	if total <= 0 {
		total = 1
	}
	filled := completed * barWidth / total
	if filled > barWidth {
		filled = barWidth
	}
	bar := barFillStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %d/%d", bar, completed, total)
}

func renderParams(params map[string]any) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%v", name, params[name]))
	}
	return strings.Join(parts, " ")
}
