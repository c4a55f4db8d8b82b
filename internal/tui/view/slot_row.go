package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// SlotKind is what a row of the day list shows.
type SlotKind int

const (
	SlotFree SlotKind = iota
	SlotTask
	SlotBlocked
)

const (
	markerWidth  = 2
	timeColWidth = 12
)

// SlotRowModel contains the fields needed to render one slot row.
type SlotRowModel struct {
	Kind      SlotKind
	TimeRange string // "09:00-10:30" for tasks, the start time otherwise
	Title     string
	Category  string
	Priority  string // marker such as "!!!"
	Duration  string
	BlockedBy string // start time of the blocking task
	Selected  bool
	Current   bool // the row contains the current time
}

// SlotRowStyles groups the styles a row can be drawn with.
type SlotRowStyles struct {
	Row     lipgloss.Style // background of the row
	Time    lipgloss.Style
	Meta    lipgloss.Style
	Current lipgloss.Style // marker for the current time
}

// RenderSlotRow renders a slot as a single line of exactly width columns.
func RenderSlotRow(row SlotRowModel, width int, styles SlotRowStyles) string {
	if width <= 0 {
		return ""
	}

	marker := "  "
	switch {
	case row.Selected:
		marker = "▸ "
	case row.Current:
		marker = "● "
	}

	var text, meta string
	switch row.Kind {
	case SlotTask:
		text = row.Title
		parts := []string{"[" + row.Category + "]"}
		if row.Priority != "" {
			parts = append(parts, row.Priority)
		}
		if row.Duration != "" {
			parts = append(parts, row.Duration)
		}
		meta = strings.Join(parts, " ")
	case SlotBlocked:
		text = "│ blocked by longer task"
		if row.BlockedBy != "" {
			text += " (" + row.BlockedBy + ")"
		}
	default:
		text = "·"
	}

	textWidth := width - markerWidth - timeColWidth
	if meta != "" {
		textWidth -= runewidth.StringWidth(meta) + 1
	}
	text = runewidth.FillRight(Truncate(text, max(textWidth, 0)), max(textWidth, 0))

	markerStyle := styles.Row
	if row.Current && !row.Selected {
		markerStyle = styles.Current.Background(styles.Row.GetBackground())
	}

	var b strings.Builder
	b.WriteString(markerStyle.Render(marker))
	b.WriteString(styles.Time.Background(styles.Row.GetBackground()).Render(runewidth.FillRight(row.TimeRange, timeColWidth)))
	b.WriteString(styles.Row.Render(text))
	if meta != "" {
		b.WriteString(styles.Row.Render(" "))
		b.WriteString(styles.Meta.Background(styles.Row.GetBackground()).Render(meta))
	}

	line := b.String()
	if w := lipgloss.Width(line); w < width {
		line += styles.Row.Render(strings.Repeat(" ", width-w))
	}
	return line
}
