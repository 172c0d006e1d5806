package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// defaultColumns returns the table layout before the first resize.
func defaultColumns() []table.Column {
	return columnsForWidth(120)
}

// columnsForWidth sizes the label and detail columns to the terminal.
func columnsForWidth(width int) []table.Column {
	fixed := 4 + 10 + 20 + 10 + 4
	flexible := width - fixed - 12
	if flexible < 30 {
		flexible = 30
	}
	label := flexible / 2
	detail := flexible - label
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "KIND", Width: 10},
		{Title: "LABEL", Width: label},
		{Title: "STATUS", Width: 20},
		{Title: "TIME", Width: 10},
		{Title: "RETRY", Width: 4},
		{Title: "DETAIL", Width: detail},
	}
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatUnitID(row),
			row.Kind,
			formatLabel(row.Label),
			formatStatus(row, noColor),
			formatRowDuration(row, now),
			formatRetries(row.Retries),
			formatDetail(row),
		})
	}
	return rows
}
