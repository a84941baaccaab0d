package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/dataexplorer/internal/api"
	"github.com/rshade/dataexplorer/internal/query"
)

const (
	appTitle    = "Simple Data Explorer"
	appSubtitle = "Filter, sort, and paginate user data"
)

// View renders the current view (Bubble Tea interface).
func (m ExplorerModel) View() string {
	switch m.view {
	case ViewStateQuitting:
		return ""
	case ViewStateDetail:
		return m.renderDetailView(time.Now())
	case ViewStatePicker:
		if m.picker != nil {
			return lipgloss.JoinVertical(lipgloss.Left, m.renderTitle(), "", m.picker.view())
		}
	case ViewStateList, ViewStateSearch:
	}
	return m.renderListView()
}

func (m ExplorerModel) renderTitle() string {
	return TitleStyle.Render(appTitle) + "  " + SubtleStyle.Render(appSubtitle)
}

// renderListView renders controls, banner, table, pager, and help.
func (m ExplorerModel) renderListView() string {
	sections := []string{m.renderTitle(), m.renderControls()}

	if banner := m.renderBanner(); banner != "" {
		sections = append(sections, banner)
	}

	spin := ""
	if m.status == StatusLoading {
		spin = m.loading.View()
	}
	sections = append(sections, RenderTable(TableProps{
		Items:     m.rows.Items(),
		SortBy:    m.state.SortBy,
		SortOrder: m.state.SortOrder,
		Loading:   m.status == StatusLoading,
		Spinner:   spin,
		Cursor:    m.rows.Cursor(),
		Height:    m.rows.Height(),
	}))

	if m.status != StatusLoading && m.result != nil {
		page, size := m.shownPage()
		if pager := RenderPager(PagerProps{
			Page:       page,
			PageSize:   size,
			TotalItems: m.result.TotalItems,
			TotalPages: m.result.TotalPages,
		}); pager != "" {
			sections = append(sections, "", pager)
		}
	}

	sections = append(sections, m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// shownPage is the page and size of the rows on screen. After a failed fetch
// they are still the last successful page, not the requested one.
func (m ExplorerModel) shownPage() (int, int) {
	if m.status == StatusFailed && m.result.Page > 0 && m.result.PageSize > 0 {
		return m.result.Page, m.result.PageSize
	}
	return m.state.Page, m.state.PageSize
}

// renderControls shows the search box and the active filters.
func (m ExplorerModel) renderControls() string {
	var search string
	if m.view == ViewStateSearch {
		search = m.search.View()
	} else {
		value := m.state.Search
		if value == "" {
			value = SubtleStyle.Render("Search users...")
		} else {
			value = ValueStyle.Render(value)
		}
		search = LabelStyle.Render("/ ") + value
	}

	dept := m.state.Department
	if dept == "" {
		dept = allLabel(query.FilterDepartment)
	}
	role := m.state.Role
	if role == "" {
		role = allLabel(query.FilterRole)
	}

	parts := []string{
		search,
		LabelStyle.Render("Department: ") + ValueStyle.Render(dept),
		LabelStyle.Render("Role: ") + ValueStyle.Render(role),
		ValueStyle.Render(strconv.Itoa(m.state.PageSize)) + LabelStyle.Render(" per page"),
	}
	if m.state.HasFilters() {
		parts = append(parts, SubtleStyle.Render("[c] Clear Filters"))
	}
	return strings.Join(parts, LabelStyle.Render("  │  "))
}

// renderBanner shows the single error line, or the seed progress and result.
func (m ExplorerModel) renderBanner() string {
	switch {
	case m.err != nil:
		hint := "[r] Try again"
		if m.seedFailed {
			hint = "[S] Seed again"
		}
		return ErrorBannerStyle.Render("Error: " + api.UserMessage(m.err) + "  " + SubtleStyle.Render(hint))
	case m.seeding:
		return WarningStyle.Render(m.loading.View() + " Seeding...")
	case m.notice != "":
		return InfoStyle.Render(m.notice)
	}
	return ""
}

func (m ExplorerModel) renderHelp() string {
	bindings := m.keys.ListHelp()
	if m.view == ViewStateSearch {
		return SubtleStyle.Render("type to search • enter/esc done")
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return SubtleStyle.Render(truncate(strings.Join(parts, " • "), m.width))
}

// renderDetailView shows every field of the user under the cursor.
func (m ExplorerModel) renderDetailView(now time.Time) string {
	u, ok := m.rows.Selected()
	if !ok {
		return SubtleStyle.Render(msgNoUsers)
	}

	row := func(label, value string) string {
		return LabelStyle.Render(pad(label, 13)) + ValueStyle.Render(value) //nolint:mnd // Label column width.
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render("USER DETAIL"),
		"",
		row("ID", strconv.Itoa(u.ID)),
		row("Name", u.Name),
		row("Email", u.Email),
		row("Role", BadgeStyle.Render(u.Role)),
		row("Department", u.Department),
		row("Date Joined", FormatJoined(u.DateJoined.Time, now)),
		"",
		SubtleStyle.Render("esc back • q quit"),
	)
	return BoxStyle.Render(content)
}
