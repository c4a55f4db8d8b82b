package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/ultraday/internal/export"
	"github.com/javiermolinar/ultraday/internal/logger"
	"github.com/javiermolinar/ultraday/internal/slot"
	"github.com/javiermolinar/ultraday/internal/tui/view"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	logger.Debug("key", "key", msg.String(), "mode", m.mode, "modal", m.modal)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "h", "left":
		return m.gotoDate(m.date.AddDate(0, 0, -1))
	case "l", "right":
		return m.gotoDate(m.date.AddDate(0, 0, 1))
	case "t":
		return m.gotoDate(m.now())

	case "?":
		m.mode = ModeModal
		m.modal = ModalHelp
		return m, nil

	case "/", ":":
		m.mode = ModePrompt
		m.prompt.SetValue("")
		if msg.String() == "/" {
			m.prompt.SetValue("/")
			m.prompt.CursorEnd()
		}
		return m, tea.Batch(m.prompt.Focus(), textinput.Blink)
	}

	if m.plan == nil {
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		m.moveCursor(m.cursor + 1)
	case "k", "up":
		m.moveCursor(m.cursor - 1)
	case "g", "home":
		m.moveCursor(0)
	case "G", "end":
		m.moveCursor(len(m.plan.Slots) - 1)
	case "ctrl+d", "pgdown":
		m.moveCursor(m.cursor + m.listHeight()/2)
	case "ctrl+u", "pgup":
		m.moveCursor(m.cursor - m.listHeight()/2)
	case "n":
		if i := m.currentIndex(); i >= 0 {
			m.moveCursor(i)
		}

	case "enter", "e":
		return m.openTaskForm()

	case "d", "x", "delete":
		return m.confirmDelete()

	case "i":
		return m.requestInterval(m.nextInterval())

	case "p":
		return m.startExport(export.FormatPDF)

	case "y":
		s, ok := m.selected()
		if !ok || !s.IsOccupied {
			return m, nil
		}
		text := fmt.Sprintf("%s-%s %s", s.Time, s.EndTime, s.Title)
		if err := writeClipboard(text); err != nil {
			return m, m.setError(fmt.Errorf("copying to clipboard: %w", err))
		}
		return m, m.setStatus("Copied " + text)
	}
	return m, nil
}

// openTaskForm opens the edit modal for the selected slot. A blocked slot
// moves the cursor to the task that blocks it instead.
func (m Model) openTaskForm() (tea.Model, tea.Cmd) {
	s, ok := m.selected()
	if !ok {
		return m, nil
	}
	if s.IsBlocked {
		if i := m.indexOf(s.ParentTaskID); i >= 0 {
			m.moveCursor(i)
			return m, m.setStatus("Blocked by the task at " + m.plan.Slots[i].Time)
		}
		return m, nil
	}

	m.form = newTaskForm(s, m.plan.Settings.Interval, m.styles)
	m.mode = ModeModal
	m.modal = ModalTaskForm
	return m, textinput.Blink
}

func (m Model) confirmDelete() (tea.Model, tea.Cmd) {
	s, ok := m.selected()
	if !ok {
		return m, nil
	}
	switch {
	case s.IsBlocked:
		return m, m.setStatus("Slot is blocked by the task at " + parentTime(s) + "; delete that one instead")
	case !s.IsOccupied:
		return m, m.setStatus("Slot " + s.Time + " is already free")
	}
	m.mode = ModeModal
	m.modal = ModalConfirmDelete
	return m, nil
}

func parentTime(s slot.Slot) string {
	if len(s.ParentTaskID) > len("slot-") {
		return s.ParentTaskID[len("slot-"):]
	}
	return s.ParentTaskID
}

// handleModalKeys handles keys while a modal is open.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case ModalTaskForm:
		return m.handleFormKeys(msg)

	case ModalConfirmDelete:
		switch msg.String() {
		case "y", "enter":
			return m.deleteSelected()
		case "n", "esc", "q":
			return m.closeModal(), nil
		}

	case ModalConfirmInterval:
		switch msg.String() {
		case "y", "enter":
			return m.applyInterval(m.pendingInterval)
		case "n", "esc", "q":
			m.pendingInterval = 0
			return m.closeModal(), nil
		}

	default:
		switch msg.String() {
		case "esc", "enter", "q", "?":
			return m.closeModal(), nil
		case "y":
			if m.modal == ModalReview {
				if err := writeClipboard(m.review); err != nil {
					return m, m.setError(fmt.Errorf("copying to clipboard: %w", err))
				}
				return m.closeModal(), m.setStatus("Review copied")
			}
		}
	}
	return m, nil
}

func (m Model) closeModal() Model {
	m.mode = ModeNormal
	m.modal = ModalNone
	return m
}

// handleFormKeys handles the task form. Text fields take typing; option
// fields cycle with left/right.
func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closeModal(), nil
	case "enter", "ctrl+s":
		return m.saveForm()
	case "tab", "down":
		m.form.setFocus(m.form.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.form.setFocus(m.form.focus - 1)
		return m, nil
	}

	if !m.form.focusedInput() {
		switch msg.String() {
		case "left", "h":
			m.form.cycle(-1)
		case "right", "l", " ":
			m.form.cycle(1)
		}
		return m, nil
	}

	cmd := m.form.update(msg)
	return m, cmd
}

// handlePromptKeys handles the command prompt.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.prompt.Blur()
		m.prompt.SetValue("")
		return m, nil
	case "tab":
		if value, ok := promptAutocomplete(m.prompt.Value()); ok {
			m.prompt.SetValue(value)
			m.prompt.CursorEnd()
		}
		return m, nil
	case "enter":
		line := m.prompt.Value()
		m.mode = ModeNormal
		m.prompt.Blur()
		m.prompt.SetValue("")
		return m.runPrompt(line)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// formView is the task form as rendered for the current plan.
func (m Model) formView() view.TaskFormModel {
	return m.form.viewModel(m.plan.Settings.EndTime)
}
