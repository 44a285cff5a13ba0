package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kailas-cloud/helix/internal/domain/record"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
)

// table renders rows of plain cells with aligned columns.
type table struct {
	title   string
	headers []string
	rows    [][]string
}

func newTable(title string, headers ...string) *table {
	return &table{title: title, headers: headers}
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render() string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	// room for the horizontal padding of each cell
	for i := range widths {
		widths[i] += 2
	}

	var sb strings.Builder
	if t.title != "" {
		sb.WriteString(titleStyle.Render(t.title))
		sb.WriteString("\n")
	}

	sep := mutedStyle.Render("|")
	writeRow := func(style lipgloss.Style, cells []string) {
		for i := range widths {
			var cell string
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(style.Width(widths[i]).Render(cell))
			if i < len(widths)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headerStyle, t.headers)
	total := 0
	for _, w := range widths {
		total += w
	}
	sb.WriteString(mutedStyle.Render(strings.Repeat("-", total+len(widths)-1)))
	sb.WriteString("\n")
	for _, row := range t.rows {
		writeRow(cellStyle, row)
	}
	return sb.String()
}

// cellText renders a record value for display. Lists are comma-joined.
func cellText(r record.Record, name string) string {
	v, ok := r.Get(name)
	if !ok {
		return ""
	}
	return strings.Join(v.Terms(), ", ")
}
