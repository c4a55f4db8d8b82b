// Package view provides rendering helpers for the TUI.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles needed to render modal frames and buttons.
type ModalStyles struct {
	HeaderStyle       lipgloss.Style
	TitleStyle        lipgloss.Style
	FooterStyle       lipgloss.Style
	FrameStyle        lipgloss.Style
	ButtonStyle       lipgloss.Style
	ButtonActiveStyle lipgloss.Style
	BodyStyle         lipgloss.Style
}

// RenderModalFrame renders a modal with the provided title, body, and footer.
func RenderModalFrame(title, body, footer string, styles ModalStyles) string {
	var b strings.Builder
	b.WriteString(styles.HeaderStyle.Render(styles.TitleStyle.Render(title)))
	if body != "" {
		b.WriteString("\n\n")
		b.WriteString(body)
	}
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.FooterStyle.Render(footer))
	}
	return styles.FrameStyle.Render(b.String())
}

// RenderModalButtons renders a row of buttons, highlighting the one at
// active. A negative active highlights none.
func RenderModalButtons(styles ModalStyles, active int, labels ...string) string {
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		style := styles.ButtonStyle
		if i == active {
			style = styles.ButtonActiveStyle
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, styles.BodyStyle.Render(" "))
}

// RenderParagraphs wraps text to width for display in a modal body.
// Blank lines separate paragraphs; list markers keep a hanging indent.
func RenderParagraphs(text string, width int, style lipgloss.Style) string {
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimRight(line, " ")
		if strings.TrimSpace(line) == "" {
			out = append(out, "")
			continue
		}
		indent := ""
		trimmed := strings.TrimLeft(line, " ")
		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			trimmed = "• " + trimmed[2:]
			indent = "  "
		}
		out = append(out, wrapTextWithPrefix(trimmed, "", indent, width)...)
	}
	for i, line := range out {
		out[i] = style.Render(line)
	}
	return strings.Join(out, "\n")
}
