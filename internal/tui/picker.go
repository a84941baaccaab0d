package tui

import (
	"strings"

	"github.com/rshade/dataexplorer/internal/query"
	listview "github.com/rshade/dataexplorer/internal/tui/list"
)

// picker is the option list for a department or role filter. Row 0 is "All",
// which clears the filter.
type picker struct {
	field query.FilterField
	rows  *listview.Model[string]
}

func newPicker(field query.FilterField, options []string, current string, height int) *picker {
	items := make([]string, 0, len(options)+1)
	items = append(items, "")
	items = append(items, options...)

	p := &picker{field: field, rows: listview.New(items, height)}
	for i, v := range items {
		if v == current {
			p.rows.SetCursor(i)
			break
		}
	}
	return p
}

// value returns the selected option; "" means all.
func (p *picker) value() string {
	v, _ := p.rows.Selected()
	return v
}

// allLabel is the text of the row that clears the filter.
func allLabel(field query.FilterField) string {
	if field == query.FilterRole {
		return "All Roles"
	}
	return "All Departments"
}

func (p *picker) view() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Filter by " + p.field.String()))
	b.WriteString("\n\n")

	items := p.rows.Items()
	from, to := p.rows.Visible()
	for i := from; i < to; i++ {
		label := items[i]
		if label == "" {
			label = allLabel(p.field)
		}
		if i == p.rows.Cursor() {
			b.WriteString(TableSelectedStyle.Render("> " + label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}
	if len(items) == 1 {
		b.WriteString(SubtleStyle.Render("  (no options loaded)"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render("enter select • esc cancel"))
	return BoxStyle.Render(b.String())
}
