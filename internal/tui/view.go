package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/ultraday/internal/dateutil"
	"github.com/javiermolinar/ultraday/internal/slot"
	"github.com/javiermolinar/ultraday/internal/tui/view"
)

const helpLine = "j/k move · enter edit · d delete · i interval · p pdf · h/l day · / command · ? help · q quit"

// View renders the model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	bg := m.styles.palette.Bg
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(view.PadLinesWithBackground("", m.width, 1, bg))
	b.WriteString("\n")
	b.WriteString(m.renderSlots())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	screen := b.String()

	if m.mode == ModeModal {
		if modal := m.renderModal(); modal != "" {
			screen = view.RenderModalOverlay(screen, modal, m.width, m.height, m.styles.ModalBg)
		}
	}
	return screen
}

func (m Model) renderHeader() string {
	h := view.HeaderModel{
		Title: "ultraday",
		Date:  dateutil.FormatLong(m.date, m.config.Export.Language),
	}
	if m.plan != nil {
		st := m.plan.Stats()
		s := m.plan.Settings
		h.Schedule = fmt.Sprintf("%s-%s every %s", s.StartTime, s.EndTime, view.FormatDuration(s.Interval))
		h.Productivity = st.Productivity
		h.Summary = fmt.Sprintf("%d task(s) · %d blocked · %d free", st.Occupied, st.Blocked, st.Available-st.Blocked)
		h.DayOff = !m.scheduler().IsWorkday(m.date)
	}
	return view.RenderHeader(h, m.width, m.styles.headerStyles())
}

func (m Model) renderSlots() string {
	height := m.listHeight()
	bg := m.styles.palette.Bg

	switch {
	case m.loading || m.plan == nil:
		return view.PlaceBox(m.width, height, lipgloss.Top, m.styles.Muted.Render("  Loading plan..."), bg)
	case len(m.plan.Slots) == 0:
		return view.PlaceBox(m.width, height, lipgloss.Top,
			m.styles.Muted.Render("  No slots: the working day is empty. Press i or use /interval to rebuild."), bg)
	}

	current := m.currentIndex()
	var nowMinute int
	if m.isToday() {
		now := m.now()
		nowMinute = now.Hour()*60 + now.Minute()
	}

	end := min(m.scroll+height, len(m.plan.Slots))
	lines := make([]string, 0, height)
	for i := m.scroll; i < end; i++ {
		s := m.plan.Slots[i]
		row := m.slotRow(s)
		row.Selected = i == m.cursor
		row.Current = i == current

		styles := view.SlotRowStyles{
			Row:     m.styles.FreeRow,
			Time:    m.styles.TimeColumn,
			Meta:    m.styles.CategoryLabel(s.Category),
			Current: m.styles.CurrentMark,
		}
		switch row.Kind {
		case view.SlotTask:
			past := m.isToday() && s.EndMinutes(m.plan.Settings.Interval) <= nowMinute
			styles.Row = m.styles.TaskRow(s.Category, past)
		case view.SlotBlocked:
			styles.Row = m.styles.BlockedRow
		}
		if row.Selected {
			styles.Row = m.styles.SelectedRow
		}
		lines = append(lines, view.RenderSlotRow(row, m.width, styles))
	}
	return view.PadLinesWithBackground(strings.Join(lines, "\n"), m.width, height, bg)
}

// slotRow converts a slot into its row model.
func (m Model) slotRow(s slot.Slot) view.SlotRowModel {
	switch {
	case s.IsBlocked:
		return view.SlotRowModel{Kind: view.SlotBlocked, TimeRange: s.Time, BlockedBy: parentTime(s)}
	case s.IsOccupied:
		d := s.Duration
		if d <= 0 {
			d = m.plan.Settings.Interval
		}
		end := s.EndTime
		if end == "" {
			end = slot.CalculateEndTime(s.Time, d)
		}
		return view.SlotRowModel{
			Kind:      view.SlotTask,
			TimeRange: s.Time + "-" + end,
			Title:     s.Title,
			Category:  string(s.Category),
			Priority:  priorityMarker(s.Priority),
			Duration:  view.FormatDuration(d),
		}
	default:
		return view.SlotRowModel{Kind: view.SlotFree, TimeRange: s.Time}
	}
}

func priorityMarker(p slot.Priority) string {
	switch p {
	case slot.PriorityHigh:
		return "!!!"
	case slot.PriorityMedium:
		return "!!"
	case slot.PriorityLow:
		return "!"
	default:
		return ""
	}
}

func (m Model) renderFooter() string {
	state := view.FooterViewState{
		Width:    m.width,
		Height:   footerHeight,
		HelpLine: m.styles.Help.Render(view.Truncate(helpLine, m.width)),
		Bg:       m.styles.palette.Bg,
	}

	status := m.statusMsg
	switch {
	case status != "" && m.statusErr:
		state.StatusLine = m.styles.Error.Render(view.Truncate("Error: "+status, m.width))
	case status != "":
		state.StatusLine = m.styles.Status.Render(view.Truncate(status, m.width))
	case m.exporting:
		state.StatusLine = m.styles.Status.Render("Exporting...")
	}

	if m.mode == ModePrompt {
		lines := view.PromptLines(view.PromptState{
			Value:       m.prompt.Value(),
			Suggestions: promptSuggestions(m.prompt.Value()),
		}, m.width)
		// The suggestion list replaces the help line while typing.
		lines = view.ClampPromptLines(lines, footerHeight-1, m.width)
		state.PromptLine = m.styles.Prompt.Render(": " + m.prompt.View())
		if len(lines) > 1 {
			state.HelpLine = m.styles.Help.Render(strings.Join(lines[1:], "\n"))
		}
	}

	return view.RenderFooter(state)
}

func (m Model) renderModal() string {
	styles := m.styles.modalStyles()
	width := min(max(m.width-8, 30), 72)

	switch m.modal {
	case ModalTaskForm:
		title := "Edit task"
		if s, ok := slot.Find(m.plan.Slots, m.form.slotID); ok && !s.IsOccupied {
			title = "New task"
		}
		body := view.RenderTaskFormBody(m.formView(), m.styles.taskFormStyles())
		return view.RenderModalFrame(title, body, "enter save · tab next field · ←/→ change · esc cancel", styles)

	case ModalConfirmDelete:
		s, _ := m.selected()
		body := m.styles.ModalBody.Render(fmt.Sprintf("Delete %q (%s-%s)?", s.Title, s.Time, s.EndTime))
		if n := len(slot.Children(m.plan.Slots, s.ID)); n > 0 {
			body += "\n" + m.styles.ModalHint.Render(fmt.Sprintf("%d blocked slot(s) become free.", n))
		}
		return view.RenderModalFrame("Delete task", body, view.RenderModalButtons(styles, 0, "y Delete", "n Cancel"), styles)

	case ModalConfirmInterval:
		body := m.styles.ModalBody.Render(fmt.Sprintf(
			"Rebuilding the day every %d minutes discards %d planned task(s).",
			m.pendingInterval, len(m.plan.Tasks())))
		return view.RenderModalFrame("Change interval", body, view.RenderModalButtons(styles, 0, "y Rebuild", "n Cancel"), styles)

	case ModalReview:
		body := view.RenderParagraphs(m.review, width-6, m.styles.ModalBody)
		return view.RenderModalFrame("Review", body, "y copy · esc close", styles)

	case ModalHelp:
		return view.RenderModalFrame("Keys", m.styles.ModalBody.Render(helpText), "esc close", styles)
	}
	return ""
}

const helpText = `j/k, ↑/↓      move between slots
g/G          first / last slot
n            jump to the current time
enter, e     edit the slot (blocked slots jump to their task)
d, x         delete the task
y            copy the task
i            cycle the slot interval (15/30/45/60)
p            export the day as PDF
h/l, ←/→     previous / next day
t            today
/            command prompt (/plan, /review, /export, /date, /interval, /theme)
q            quit`
