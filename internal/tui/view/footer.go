package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	Width      int
	Height     int
	PromptLine string // empty unless the prompt is open
	StatusLine string
	HelpLine   string
	Bg         lipgloss.Color
}

// RenderFooter renders the prompt, status, and help lines, bottom aligned.
func RenderFooter(state FooterViewState) string {
	if state.Height <= 0 {
		return ""
	}

	var lines []string
	if state.PromptLine != "" {
		lines = append(lines, state.PromptLine)
	}
	lines = append(lines, state.StatusLine, state.HelpLine)
	if len(lines) > state.Height {
		lines = lines[len(lines)-state.Height:]
	}

	return PlaceBox(state.Width, state.Height, lipgloss.Bottom, strings.Join(lines, "\n"), state.Bg)
}
