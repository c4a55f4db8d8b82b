package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderModel holds what the header shows about the day.
type HeaderModel struct {
	Title        string
	Date         string
	Schedule     string // e.g. "08:00-17:00 every 30m"
	Productivity int
	Summary      string // e.g. "3 tasks · 2 blocked · 12 free"
	DayOff       bool
}

// HeaderStyles groups styles for the header lines.
type HeaderStyles struct {
	Title lipgloss.Style
	Date  lipgloss.Style
	Muted lipgloss.Style
	Bar   lipgloss.Style
	Bg    lipgloss.Color
}

// RenderHeader renders the two header lines padded to width.
func RenderHeader(h HeaderModel, width int, styles HeaderStyles) string {
	sep := lipgloss.NewStyle().Background(styles.Bg).Render("  ")

	first := styles.Title.Render(h.Title) + sep + styles.Date.Render(h.Date)
	if h.DayOff {
		first += sep + styles.Muted.Render("(day off)")
	}
	if h.Schedule != "" {
		right := styles.Muted.Render(h.Schedule)
		if gap := width - lipgloss.Width(first) - lipgloss.Width(right); gap > 0 {
			first += lipgloss.NewStyle().Background(styles.Bg).Render(strings.Repeat(" ", gap)) + right
		}
	}

	second := styles.Bar.Render(ProductivityBar(h.Productivity, 20))
	if h.Summary != "" {
		second += sep + styles.Muted.Render(h.Summary)
	}

	return PadLinesWithBackground(first+"\n"+second, width, 2, styles.Bg)
}

// ProductivityBar draws pct (clamped to 0-100) as a bar of width cells
// followed by the percentage.
func ProductivityBar(pct, width int) string {
	pct = min(max(pct, 0), 100)
	filled := pct * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf(" %d%% planned", pct)
}
