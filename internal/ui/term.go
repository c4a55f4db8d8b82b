package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/ultraday/internal/slot"
)

// Color definitions for consistent styling across the UI.
var (
	colorWork     = color.New(color.FgCyan, color.Bold)
	colorPersonal = color.New(color.FgMagenta)
	colorHealth   = color.New(color.FgGreen)
	colorOther    = color.New(color.FgWhite)

	colorHigh   = color.New(color.FgRed, color.Bold)
	colorMedium = color.New(color.FgYellow)
	colorLow    = color.New(color.FgGreen)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Stats: green for positive metrics
	colorStats = color.New(color.FgGreen)

	// Warnings and LLM output
	colorInsight = color.New(color.FgYellow)

	// Muted: for blocked and empty slots
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

func formatCategory(c slot.Category) string {
	label := "[" + string(c) + "]"
	switch c {
	case slot.CategoryWork:
		return colorWork.Sprint(label)
	case slot.CategoryPersonal:
		return colorPersonal.Sprint(label)
	case slot.CategoryHealth:
		return colorHealth.Sprint(label)
	default:
		return colorOther.Sprint(label)
	}
}

func formatPriority(p slot.Priority) string {
	switch p {
	case slot.PriorityHigh:
		return colorHigh.Sprint("!!!")
	case slot.PriorityMedium:
		return colorMedium.Sprint("!! ")
	case slot.PriorityLow:
		return colorLow.Sprint("!  ")
	}
	return "   "
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatStats(s string) string {
	return colorStats.Sprint(s)
}

func formatInsight(s string) string {
	return colorInsight.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
