package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/dataexplorer/internal/api"
	"github.com/rshade/dataexplorer/internal/query"
	listview "github.com/rshade/dataexplorer/internal/tui/list"
)

// Messages shown in place of table rows.
const (
	msgNoUsers      = "No users found. Try adjusting your filters."
	msgLoadingUsers = "Loading users..."
)

// Sort direction markers for the active column header.
const (
	markerAsc  = "▲"
	markerDesc = "▼"
)

const columnGap = "  "

// tableColumn is one rendered column and its fixed width in cells.
type tableColumn struct {
	column query.Column
	width  int
}

//nolint:gochecknoglobals,mnd // Column layout table.
var tableColumns = []tableColumn{
	{column: query.ColumnID, width: 6},
	{column: query.ColumnName, width: 22},
	{column: query.ColumnEmail, width: 30},
	{column: query.ColumnRole, width: 11},
	{column: query.ColumnDepartment, width: 14},
	{column: query.ColumnDateJoined, width: 15},
}

// TableProps is everything RenderTable draws. Items is never modified.
type TableProps struct {
	Items     []api.User
	SortBy    query.Column
	SortOrder query.Order
	Loading   bool

	// Spinner is the current spinner frame shown beside the loading text.
	Spinner string

	// Cursor is the highlighted row index; negative means none.
	Cursor int

	// Height is the number of body rows to show. Zero shows all rows.
	Height int
}

// SortIndicator returns the marker for column c: ▲ or ▼ when it is the active
// sort column, otherwise "".
func SortIndicator(c, sortBy query.Column, order query.Order) string {
	if c != sortBy {
		return ""
	}
	if order == query.OrderDesc {
		return markerDesc
	}
	return markerAsc
}

// ColumnForKey maps the sort keys "1".."6" to columns in display order.
func ColumnForKey(k string) (query.Column, bool) {
	n, err := strconv.Atoi(k)
	if err != nil || n < 1 || n > len(tableColumns) {
		return "", false
	}
	return tableColumns[n-1].column, true
}

// RenderTable renders the header and exactly one of: the loading indicator, the
// empty message, or the data rows.
func RenderTable(p TableProps) string {
	lines := []string{
		renderTableHeader(p.SortBy, p.SortOrder),
		SubtleStyle.Render(strings.Repeat("─", tableWidth())),
	}

	switch {
	case p.Loading:
		text := msgLoadingUsers
		if p.Spinner != "" {
			text = p.Spinner + " " + text
		}
		lines = append(lines, text)
	case len(p.Items) == 0:
		lines = append(lines, SubtleStyle.Render(msgNoUsers))
	default:
		from, to := listview.VisibleRange(max(p.Cursor, 0), len(p.Items), p.Height)
		for i := from; i < to; i++ {
			lines = append(lines, renderTableRow(p.Items[i], i == p.Cursor))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func tableWidth() int {
	w := len(columnGap) * (len(tableColumns) - 1)
	for _, c := range tableColumns {
		w += c.width
	}
	return w
}

func renderTableHeader(sortBy query.Column, order query.Order) string {
	cells := make([]string, 0, len(tableColumns))
	for i, c := range tableColumns {
		label := strconv.Itoa(i+1) + " " + c.column.Label()
		style := TableHeaderStyle
		if marker := SortIndicator(c.column, sortBy, order); marker != "" {
			label += " " + marker
			style = TableActiveStyle
		}
		cells = append(cells, style.Render(pad(truncate(label, c.width), c.width)))
	}
	return strings.Join(cells, columnGap)
}

func renderTableRow(u api.User, selected bool) string {
	values := userCells(u)
	cells := make([]string, 0, len(tableColumns))
	for i, c := range tableColumns {
		cells = append(cells, pad(truncate(values[i], c.width), c.width))
	}
	line := strings.Join(cells, columnGap)
	if selected {
		return TableSelectedStyle.Render(line)
	}
	return line
}

// userCells returns the display text for u in column order.
func userCells(u api.User) []string {
	joined := u.DateJoined.String()
	if joined == "" {
		joined = "-"
	}
	return []string{
		strconv.Itoa(u.ID),
		u.Name,
		u.Email,
		u.Role,
		u.Department,
		joined,
	}
}
