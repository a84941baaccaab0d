package listview

import (
	tea "github.com/charmbracelet/bubbletea"
)

// halfViewportDivisor is used to calculate half the viewport height for centering.
const halfViewportDivisor = 2

// VisibleRange returns the [from, to) window of count rows that keeps cursor on
// screen within height rows, centering the cursor where possible.
// A non-positive height shows every row.
func VisibleRange(cursor, count, height int) (int, int) {
	if count <= 0 {
		return 0, 0
	}
	if height <= 0 || count <= height {
		return 0, count
	}

	cursor = clamp(cursor, 0, count-1)
	from := cursor - height/halfViewportDivisor
	from = clamp(from, 0, count-height)
	return from, from + height
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// Model is a cursor over a slice of rows with a fixed-height viewport.
// It does no rendering of its own; callers draw the rows in Visible.
type Model[T any] struct {
	items  []T
	cursor int
	height int
}

// New creates a Model over items showing height rows at a time.
func New[T any](items []T, height int) *Model[T] {
	return &Model[T]{items: items, height: height}
}

// SetItems replaces the rows and moves the cursor back to the first row.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.cursor = 0
}

// Items returns the rows.
func (m *Model[T]) Items() []T {
	return m.items
}

// Len returns the number of rows.
func (m *Model[T]) Len() int {
	return len(m.items)
}

// SetHeight changes the viewport height.
func (m *Model[T]) SetHeight(height int) {
	m.height = height
}

// Height returns the viewport height.
func (m *Model[T]) Height() int {
	return m.height
}

// Cursor returns the selected row index.
func (m *Model[T]) Cursor() int {
	return m.cursor
}

// SetCursor moves the cursor, capped to valid bounds.
func (m *Model[T]) SetCursor(index int) {
	if len(m.items) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = clamp(index, 0, len(m.items)-1)
}

// Selected returns the row under the cursor.
func (m *Model[T]) Selected() (T, bool) {
	var zero T
	if len(m.items) == 0 {
		return zero, false
	}
	return m.items[m.cursor], true
}

// Visible returns the [from, to) window of rows on screen.
func (m *Model[T]) Visible() (int, int) {
	return VisibleRange(m.cursor, len(m.items), m.height)
}

// HandleKey moves the cursor for navigation keys and reports whether the key was consumed.
//
//nolint:exhaustive // Only navigation keys are handled.
func (m *Model[T]) HandleKey(msg tea.KeyMsg) bool {
	if len(m.items) == 0 {
		return false
	}

	page := max(m.height, 1)
	switch msg.Type {
	case tea.KeyUp:
		m.SetCursor(m.cursor - 1)
	case tea.KeyDown:
		m.SetCursor(m.cursor + 1)
	case tea.KeyPgUp:
		m.SetCursor(m.cursor - page)
	case tea.KeyPgDown:
		m.SetCursor(m.cursor + page)
	case tea.KeyHome:
		m.SetCursor(0)
	case tea.KeyEnd:
		m.SetCursor(len(m.items) - 1)
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return false
		}
		switch msg.Runes[0] {
		case 'j':
			m.SetCursor(m.cursor + 1)
		case 'k':
			m.SetCursor(m.cursor - 1)
		default:
			return false
		}
	default:
		return false
	}
	return true
}
