package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/ultraday/internal/slot"
)

// PrintOpts configures slot printing behavior.
type PrintOpts struct {
	All          bool // include empty and blocked slots
	Verbose      bool // show descriptions below the title
	MaxDescWidth int  // maximum title width (0 = auto)
}

// CalcMaxDescWidth calculates the maximum title width based on options.
func (o PrintOpts) CalcMaxDescWidth(defaultWidth int) int {
	if o.MaxDescWidth > 0 {
		return o.MaxDescWidth
	}
	// "  HH:MM-HH:MM  !!!  [personal]  " plus the duration suffix
	available := termWidth() - 40
	if available > defaultWidth {
		return available
	}
	return defaultWidth
}

// PrintPlan writes one line per slot and returns the number of lines written.
// Empty and blocked slots are skipped unless opts.All is set.
func PrintPlan(w io.Writer, p *slot.Plan, opts PrintOpts) int {
	width := opts.CalcMaxDescWidth(50)
	lines := 0
	for _, s := range p.Slots {
		switch {
		case s.IsOccupied && !s.IsBlocked:
			PrintSlotRow(w, s, p.Settings.Interval, width)
			if opts.Verbose && s.Description != "" {
				for _, line := range strings.Split(s.Description, "\n") {
					fmt.Fprintf(w, "                 %s\n", formatMuted(line))
				}
			}
		case !opts.All:
			continue
		case s.IsBlocked:
			fmt.Fprintf(w, "  %s  %s\n", s.Time, formatMuted("| blocked by "+strings.TrimPrefix(s.ParentTaskID, "slot-")))
		default:
			fmt.Fprintf(w, "  %s  %s\n", s.Time, formatMuted("·"))
		}
		lines++
	}
	return lines
}

// PrintSlotRow prints a single task row with consistent formatting.
func PrintSlotRow(w io.Writer, s slot.Slot, interval, maxDescWidth int) {
	end := s.EndTime
	if end == "" {
		end = slot.MinutesToTime(s.EndMinutes(interval))
	}
	d := s.Duration
	if d <= 0 {
		d = interval
	}
	title := runewidth.Truncate(s.Title, maxDescWidth, "...")
	fmt.Fprintf(w, "  %s-%s  %s  %s  %s  %s\n",
		s.Time, end,
		formatPriority(s.Priority),
		formatCategory(s.Category),
		title,
		formatMuted(FormatDuration(d)),
	)
}

// PrintStats prints the stats summary block.
func PrintStats(w io.Writer, st slot.Stats) {
	fmt.Fprintf(w, "Tasks: %d/%d slots (%s) | Blocked: %d | Available: %d\n",
		st.Occupied, st.Total,
		formatStats(fmt.Sprintf("%d%%", st.Productivity)),
		st.Blocked, st.Available)

	var parts []string
	for _, c := range slot.Categories {
		if m := st.Minutes[c]; m > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", formatCategory(c), FormatDuration(m)))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintf(w, "Time: %s\n", strings.Join(parts, "  "))
	}
}

// ProductivityBar renders the share of occupied slots as an ASCII bar.
func ProductivityBar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %s", formatStats(bar), fmt.Sprintf("(%d%% planned)", pct))
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}

// PlainText renders the day's tasks without color, for the clipboard.
func PlainText(p *slot.Plan, heading string) string {
	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	for _, s := range p.Tasks() {
		fmt.Fprintf(&b, "%s-%s %s", s.Time, s.EndTime, s.Title)
		if s.Category != "" {
			fmt.Fprintf(&b, " [%s]", s.Category)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// PrintInsightWrapped prints LLM output wrapped to width, bullets indented.
func PrintInsightWrapped(w io.Writer, text string, width int) {
	text = stripMarkdownCodeBlocks(text)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			fmt.Fprintln(w)
			continue
		}

		prefix, content := "  ", trimmed
		switch {
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			prefix = "    • "
			content = trimmed[2:]
		case strings.HasPrefix(trimmed, "#"):
			fmt.Fprintln(w, formatHeader("  "+strings.TrimLeft(trimmed, "# ")))
			continue
		}
		wrapAndPrint(w, content, prefix, width-runewidth.StringWidth(prefix))
	}
}

// wrapAndPrint wraps text to width and prints with the given prefix.
func wrapAndPrint(w io.Writer, text, prefix string, width int) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return
	}

	cont := strings.Repeat(" ", runewidth.StringWidth(prefix))
	line := ""
	first := true
	flush := func() {
		p := cont
		if first {
			p = prefix
		}
		fmt.Fprintln(w, formatInsight(p+line))
		first = false
	}

	for _, word := range words {
		switch {
		case line == "":
			line = word
		case runewidth.StringWidth(line)+1+runewidth.StringWidth(word) <= width:
			line += " " + word
		default:
			flush()
			line = word
		}
	}
	flush()
}

// stripMarkdownCodeBlocks removes ``` fence lines and the code between them.
func stripMarkdownCodeBlocks(text string) string {
	var result []string
	inCodeBlock := false
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if !inCodeBlock {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
