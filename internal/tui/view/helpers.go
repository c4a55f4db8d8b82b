package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// FormatDuration formats minutes as "45m", "1h" or "1h 30m".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// Truncate shortens s to width display columns, ending with "…" when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// PlaceBox renders content in a width x height box filled with bg.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(w, h, lipgloss.Left, vAlign, content,
		lipgloss.WithWhitespaceBackground(bg))
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground pads or cuts content to exactly height lines and
// pads short lines to width with bg.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	pad := lipgloss.NewStyle().Background(bg)
	for i, line := range lines {
		if w := lipgloss.Width(line); w < width {
			lines[i] = line + pad.Render(strings.Repeat(" ", width-w))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderModalOverlay centers modal over base, which is first padded to
// width x height. Lines of the modal wider than the screen are cut.
func RenderModalOverlay(base, modal string, width, height int, modalBg lipgloss.Color) string {
	modalLines := strings.Split(modal, "\n")
	modalW := 0
	for _, line := range modalLines {
		modalW = max(modalW, lipgloss.Width(line))
	}
	if modalW == 0 {
		return base
	}
	modalW = min(modalW, width)

	top := max((height-len(modalLines))/2, 0)
	left := max((width-modalW)/2, 0)

	baseLines := strings.Split(PadLinesWithBackground(base, width, height, lipgloss.Color("")), "\n")
	for i, line := range modalLines {
		row := top + i
		if row >= len(baseLines) {
			break
		}
		line = fitModalLine(line, modalW, modalBg)
		under := baseLines[row]
		baseLines[row] = ansi.Cut(under, 0, left) + line + ansi.Cut(under, left+modalW, width)
	}
	return strings.Join(baseLines, "\n")
}

// fitModalLine cuts or pads line to w columns and keeps the modal
// background alive across embedded style resets.
func fitModalLine(line string, w int, bg lipgloss.Color) string {
	switch lw := lipgloss.Width(line); {
	case lw > w:
		line = ansi.Cut(line, 0, w)
	case lw < w:
		line += lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", w-lw))
	}
	if seq := backgroundSeq(bg); seq != "" {
		line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+seq)
		line = strings.ReplaceAll(line, "\x1b[0m", "\x1b[0m"+seq)
		line = strings.ReplaceAll(line, "\x1b[49m", "\x1b[49m"+seq)
	}
	return line + ansi.ResetStyle
}

func backgroundSeq(bg lipgloss.Color) string {
	if bg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
}
