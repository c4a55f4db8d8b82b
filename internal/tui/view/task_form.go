package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Form field indexes, in focus order.
const (
	FieldTitle = iota
	FieldDescription
	FieldDuration
	FieldCategory
	FieldPriority
	FieldCount
)

// TaskFormModel contains the fields needed to render the task form body.
type TaskFormModel struct {
	TimeRange   string
	Title       string // rendered text input
	Description string // rendered text input
	Focus       int

	Durations      []string
	ActiveDuration int
	Categories     []string
	ActiveCategory int
	Priorities     []string
	ActivePriority int

	Warning string
}

// TaskFormStyles groups styles for the task form body.
type TaskFormStyles struct {
	Tag                 lipgloss.Style
	Body                lipgloss.Style
	SectionTitle        lipgloss.Style
	SectionTitleFocused lipgloss.Style
	OptionActive        lipgloss.Style
	OptionInactive      lipgloss.Style
	Hint                lipgloss.Style
	Warning             lipgloss.Style
}

// RenderTaskFormBody renders the modal body for the task form.
func RenderTaskFormBody(m TaskFormModel, styles TaskFormStyles) string {
	var body strings.Builder
	body.WriteString(styles.Tag.Render(m.TimeRange) + "\n\n")

	section := func(field int, title string) {
		style := styles.SectionTitle
		if m.Focus == field {
			style = styles.SectionTitleFocused
		}
		body.WriteString(style.Render(title) + "\n")
	}

	section(FieldTitle, "TITLE")
	body.WriteString(m.Title + "\n\n")

	section(FieldDescription, "DESCRIPTION")
	body.WriteString(m.Description + "\n\n")

	options := func(field int, title string, labels []string, active int) {
		section(field, title)
		body.WriteString(renderOptions(labels, active, styles))
		if m.Focus == field {
			body.WriteString(styles.Body.Render(" ") + styles.Hint.Render("←/→"))
		}
		body.WriteString("\n")
	}
	options(FieldDuration, "DURATION", m.Durations, m.ActiveDuration)
	body.WriteString("\n")
	options(FieldCategory, "CATEGORY", m.Categories, m.ActiveCategory)
	body.WriteString("\n")
	options(FieldPriority, "PRIORITY", m.Priorities, m.ActivePriority)

	if m.Warning != "" {
		body.WriteString("\n" + styles.Warning.Render(m.Warning) + "\n")
	}
	return body.String()
}

func renderOptions(labels []string, active int, styles TaskFormStyles) string {
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		if i == active {
			parts = append(parts, styles.OptionActive.Render(label))
		} else {
			parts = append(parts, styles.OptionInactive.Render(label))
		}
	}
	return strings.Join(parts, styles.Body.Render(" "))
}
