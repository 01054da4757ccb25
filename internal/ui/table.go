package ui

import "strings"

// column describes one table column.
type column struct {
	title string
	width int
}

// renderTable renders a fixed-width table with a highlighted row. The cursor
// is ignored when negative or when the table is not focused.
func renderTable(th Theme, cols []column, rows [][]string, cursor int, focused bool) string {
	styles := th.Styles()

	var b strings.Builder

	headerCells := make([]string, len(cols))
	for i, col := range cols {
		headerCells[i] = pad(col.title, col.width)
	}
	b.WriteString(styles.FaintText.Bold(true).Render(strings.Join(headerCells, "  ")))
	b.WriteString("\n")

	for ri, row := range rows {
		cells := make([]string, len(cols))
		for i := range cols {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			cells[i] = pad(value, cols[i].width)
		}
		line := strings.Join(cells, "  ")
		if focused && ri == cursor {
			b.WriteString(styles.Selected.Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// clamp keeps a cursor inside [0, n-1]; an empty list pins it to 0.
func clamp(cursor, n int) int {
	if n <= 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
