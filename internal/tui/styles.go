package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	ColorAccent   = lipgloss.Color("63")  // Blue: active page, selection
	ColorOK       = lipgloss.Color("42")  // Green: notices
	ColorCritical = lipgloss.Color("196") // Red: error banner
	ColorWarning  = lipgloss.Color("214") // Orange
	ColorSubtle   = lipgloss.Color("241") // Gray: help, disabled
	ColorLabel    = lipgloss.Color("245")
	ColorBadge    = lipgloss.Color("25")
)

// Text styles.
//
//nolint:gochecknoglobals // Shared immutable styles.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	TitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle  = lipgloss.NewStyle().Bold(true)
	SubtleStyle = lipgloss.NewStyle().Foreground(ColorSubtle)
	InfoStyle   = lipgloss.NewStyle().Foreground(ColorOK)

	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorCritical)

	// ErrorBannerStyle frames the single fetch error shown above the table.
	ErrorBannerStyle = lipgloss.NewStyle().
				Foreground(ColorCritical).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorCritical).
				Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSubtle).
			Padding(0, 1)
)

// Table and pager styles.
//
//nolint:gochecknoglobals // Shared immutable styles.
var (
	TableHeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorLabel)
	TableActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	TableSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(ColorAccent)
	BadgeStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("153")).Background(ColorBadge).Padding(0, 1)

	PageStyle         = lipgloss.NewStyle().Padding(0, 1)
	ActivePageStyle   = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("255")).Background(ColorAccent)
	DisabledPageStyle = lipgloss.NewStyle().Foreground(ColorSubtle).Faint(true)
)
