package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/dataexplorer/internal/pagination"
)

const (
	labelPrevious = "‹ Previous"
	labelNext     = "Next ›"
)

// PagerProps is everything RenderPager draws.
type PagerProps struct {
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// RenderPager renders the result summary and the page navigation row.
// It returns "" when there are no pages.
func RenderPager(p PagerProps) string {
	if p.TotalPages <= 0 {
		return ""
	}

	meta := pagination.NewPageMeta(p.Page, p.PageSize, p.TotalItems, p.TotalPages)

	nav := make([]string, 0, pagination.DefaultWindowSize+2) //nolint:mnd // prev + next
	nav = append(nav, navButton(labelPrevious, meta.HasPrevious))
	for _, n := range pagination.Window(p.Page, p.TotalPages, pagination.DefaultWindowSize) {
		if n == p.Page {
			nav = append(nav, ActivePageStyle.Render(strconv.Itoa(n)))
		} else {
			nav = append(nav, PageStyle.Render(strconv.Itoa(n)))
		}
	}
	nav = append(nav, navButton(labelNext, meta.HasNext))

	return lipgloss.JoinVertical(lipgloss.Left,
		Summary(meta),
		strings.Join(nav, " "),
	)
}

// Summary renders "Showing X to Y of Z results".
func Summary(meta pagination.PageMeta) string {
	return LabelStyle.Render("Showing ") + ValueStyle.Render(FormatCount(meta.From)) +
		LabelStyle.Render(" to ") + ValueStyle.Render(FormatCount(meta.To)) +
		LabelStyle.Render(" of ") + ValueStyle.Render(FormatCount(meta.TotalItems)) +
		LabelStyle.Render(" results")
}

func navButton(label string, enabled bool) string {
	if !enabled {
		return DisabledPageStyle.Render(label)
	}
	return PageStyle.Render(label)
}
