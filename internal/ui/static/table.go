// Package static provides non-interactive terminal output components.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

// RenderTable creates a borderless table with aligned columns. Headers are
// bold when color is enabled. Returns "" when there are no rows.
func RenderTable(headers []string, rows [][]string, color bool) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle()
			if col < len(rows[0])-1 {
				s = s.PaddingRight(2)
			}
			if row == table.HeaderRow && color {
				s = s.Bold(true)
			}
			return s
		})
	if len(headers) > 0 {
		t = t.Headers(headers...)
	}

	for _, line := range strings.Split(t.String(), "\n") {
		output.WriteString(strings.TrimRight(line, " "))
		output.WriteString("\n")
	}

	return output.String()
}
