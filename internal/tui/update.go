package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/ultraday/internal/export"
	"github.com/javiermolinar/ultraday/internal/logger"
	"github.com/javiermolinar/ultraday/internal/slot"
	"github.com/javiermolinar/ultraday/internal/tui/commands"
)

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.moveCursor(m.cursor)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case commands.PlanLoadedMsg:
		return m.handlePlanLoaded(msg)

	case commands.PlanSavedMsg:
		logger.Debug("plan saved", "date", msg.Date.Format("2006-01-02"), "rev", msg.Rev, "superseded", msg.Superseded)
		return m, nil

	case commands.ExportDoneMsg:
		m.exporting = false
		if msg.Err != nil {
			return m, m.setError(fmt.Errorf("export failed: %w", msg.Err))
		}
		logger.Info("plan exported", "format", msg.Format, "path", msg.Path)
		return m, m.setStatus("Exported " + msg.Path)

	case commands.SuggestionMsg:
		return m.applySuggestion(msg)

	case commands.ReviewMsg:
		m.thinking = false
		m.review = msg.Text
		m.mode = ModeModal
		m.modal = ModalReview
		return m, nil

	case commands.ErrMsg:
		m.loading = false
		m.thinking = false
		return m, m.setError(msg.Err)

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg)

	case commands.ClearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	// Cursor blink and other input messages.
	var cmd tea.Cmd
	switch {
	case m.mode == ModePrompt:
		m.prompt, cmd = m.prompt.Update(msg)
	case m.mode == ModeModal && m.modal == ModalTaskForm:
		cmd = m.form.update(msg)
	}
	return m, cmd
}

func (m Model) handlePlanLoaded(msg commands.PlanLoadedMsg) (tea.Model, tea.Cmd) {
	if !sameDay(msg.Plan.Date, m.date) {
		// A load for a day the user already navigated away from.
		return m, nil
	}
	first := m.plan == nil
	m.plan = msg.Plan
	m.loading = false

	cursor := m.cursor
	if first && m.isToday() {
		if i := m.currentIndex(); i >= 0 {
			cursor = i
		}
	}
	m.moveCursor(cursor)
	return m, nil
}

// applySuggestion writes the LLM's tasks into the plan and saves it.
func (m Model) applySuggestion(msg commands.SuggestionMsg) (tea.Model, tea.Cmd) {
	m.thinking = false
	if m.plan == nil || msg.Suggestion == nil {
		return m, nil
	}

	applied, warnings := msg.Suggestion.Apply(m.plan)
	for _, w := range warnings {
		logger.Warn("suggestion skipped", "reason", w)
	}
	if len(applied) == 0 {
		status := "No tasks planned"
		if len(warnings) > 0 {
			status += ": " + warnings[0]
		}
		return m, m.setStatus(status)
	}

	status := fmt.Sprintf("Planned %d task(s)", len(applied))
	if len(warnings) > 0 {
		status += fmt.Sprintf(", %d skipped", len(warnings))
	}
	if i := m.indexOf(applied[0].ID); i >= 0 {
		m.moveCursor(i)
	}
	return m, tea.Batch(m.save(), m.setStatus(status))
}

// saveForm applies the task form to the plan. An empty title frees the slot.
func (m Model) saveForm() (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	m.modal = ModalNone

	base, ok := slot.Find(m.plan.Slots, m.form.slotID)
	if !ok {
		return m, m.setError(fmt.Errorf("slot %s no longer exists", m.form.start))
	}

	if strings.TrimSpace(m.form.title.Value()) == "" {
		if !base.IsOccupied {
			return m, nil
		}
		m.plan.Delete(base.ID)
		return m, tea.Batch(m.save(), m.setStatus("Freed "+base.Time))
	}

	task := m.form.task(base)
	m.plan.Update(task)
	logger.Debug("task saved", "slot", task.ID, "duration", task.Duration)

	status := fmt.Sprintf("Planned %s-%s %s", task.Time, task.EndTime, task.Title)
	if blocked := len(slot.Children(m.plan.Slots, task.ID)); blocked > 0 {
		status += fmt.Sprintf(" (blocks %d slot(s))", blocked)
	}
	return m, tea.Batch(m.save(), m.setStatus(status))
}

// deleteSelected frees the task under the cursor.
func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	m.modal = ModalNone

	s, ok := m.selected()
	if !ok || !s.IsOccupied {
		return m, nil
	}
	m.plan.Delete(s.ID)
	return m, tea.Batch(m.save(), m.setStatus(fmt.Sprintf("Deleted %q", s.Title)))
}

// nextInterval returns the interval option after the current one.
func (m Model) nextInterval() int {
	opts := slot.IntervalOptions
	for i, v := range opts {
		if v == m.plan.Settings.Interval {
			return opts[(i+1)%len(opts)]
		}
	}
	return opts[0]
}

// requestInterval rebuilds the day with interval, asking first when that
// discards planned tasks.
func (m Model) requestInterval(interval int) (tea.Model, tea.Cmd) {
	if m.plan == nil {
		return m, nil
	}
	if interval == m.plan.Settings.Interval {
		return m, m.setStatus(fmt.Sprintf("Interval is already %d minutes", interval))
	}
	if len(m.plan.Tasks()) > 0 {
		m.pendingInterval = interval
		m.mode = ModeModal
		m.modal = ModalConfirmInterval
		return m, nil
	}
	return m.applyInterval(interval)
}

func (m Model) applyInterval(interval int) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	m.modal = ModalNone
	m.pendingInterval = 0

	settings := m.plan.Settings.Clone()
	settings.Interval = interval
	if err := m.plan.ApplySettings(settings); err != nil {
		return m, m.setError(fmt.Errorf("invalid settings: %w", err))
	}
	logger.Info("plan rebuilt", "date", m.date.Format("2006-01-02"), "interval", interval)
	m.moveCursor(0)
	return m, tea.Batch(m.save(), m.setStatus(fmt.Sprintf("Rebuilt %d slot(s) every %d minutes", len(m.plan.Slots), interval)))
}

// startExport exports the current plan unless an export is running.
func (m Model) startExport(format export.Format) (tea.Model, tea.Cmd) {
	if m.plan == nil {
		return m, nil
	}
	if m.exporting {
		return m, m.setStatus("An export is already running")
	}
	m.exporting = true
	opts := export.Options{
		Language: m.config.Export.Language,
		Author:   m.config.Export.Author,
		Now:      m.now(),
	}
	status := fmt.Sprintf("Exporting %s...", strings.ToUpper(string(format)))
	m.statusMsg, m.statusErr = status, false
	return m, commands.Export(m.config.Export.Dir, format, m.plan.Snapshot(), opts)
}

// gotoDate switches to another day and loads its plan.
func (m Model) gotoDate(date time.Time) (tea.Model, tea.Cmd) {
	date = truncateToDay(date)
	if sameDay(date, m.date) && m.plan != nil {
		return m, nil
	}
	m.date = date
	m.plan = nil
	m.loading = true
	m.cursor, m.scroll = 0, 0
	return m, commands.LoadPlan(m.ctx, m.repo, m.date, m.config.Planner)
}

// currentIndex returns the slot containing the current time, or -1.
func (m Model) currentIndex() int {
	if m.plan == nil || !m.isToday() {
		return -1
	}
	now := m.now()
	minute := now.Hour()*60 + now.Minute()
	for i, s := range m.plan.Slots {
		start := slot.TimeToMinutes(s.Time)
		if minute >= start && minute < start+m.plan.Settings.Interval {
			return i
		}
	}
	return -1
}

func sameDay(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}
