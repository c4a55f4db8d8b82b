package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/ultraday/internal/slot"
	"github.com/javiermolinar/ultraday/internal/tui/view"
)

// taskForm is the edit state of the task modal.
type taskForm struct {
	slotID   string
	start    string
	interval int

	title       textinput.Model
	description textinput.Model
	focus       int

	durations []int
	duration  int // index into durations
	category  int // index into slot.Categories
	priority  int // index into slot.Priorities
}

// newTaskForm prefills the form from s. An unset duration falls back to
// interval, an unset category to other and an unset priority to medium.
func newTaskForm(s slot.Slot, interval int, styles *Styles) taskForm {
	title := textinput.New()
	title.Placeholder = "What are you doing?"
	title.CharLimit = 120
	title.Width = 44
	title.SetValue(s.Title)

	desc := textinput.New()
	desc.Placeholder = "Optional notes"
	desc.CharLimit = 500
	desc.Width = 44
	desc.SetValue(s.Description)

	for _, in := range []*textinput.Model{&title, &desc} {
		in.Prompt = ""
		in.TextStyle = styles.ModalInput
		in.PlaceholderStyle = styles.ModalPlaceholder
		in.Cursor.Style = styles.ModalCursor
		in.Cursor.TextStyle = styles.ModalInput
	}

	duration := s.Duration
	if duration <= 0 {
		duration = interval
	}
	durations := slices.Clone(slot.DurationOptions)
	if !slices.Contains(durations, duration) {
		durations = append(durations, duration)
		slices.Sort(durations)
	}

	category := s.Category
	if category == "" {
		category = slot.CategoryOther
	}
	priority := s.Priority
	if priority == "" {
		priority = slot.PriorityMedium
	}

	f := taskForm{
		slotID:      s.ID,
		start:       s.Time,
		interval:    interval,
		title:       title,
		description: desc,
		durations:   durations,
		duration:    slices.Index(durations, duration),
		category:    max(slices.Index(slot.Categories, category), 0),
		priority:    max(slices.Index(slot.Priorities, priority), 0),
	}
	f.setFocus(view.FieldTitle)
	return f
}

func (f *taskForm) setFocus(field int) {
	f.focus = (field + view.FieldCount) % view.FieldCount
	f.title.Blur()
	f.description.Blur()
	switch f.focus {
	case view.FieldTitle:
		f.title.Focus()
	case view.FieldDescription:
		f.description.Focus()
	}
}

// cycle moves the selection of the focused option field by delta.
func (f *taskForm) cycle(delta int) {
	wrap := func(i, n int) int { return ((i+delta)%n + n) % n }
	switch f.focus {
	case view.FieldDuration:
		f.duration = wrap(f.duration, len(f.durations))
	case view.FieldCategory:
		f.category = wrap(f.category, len(slot.Categories))
	case view.FieldPriority:
		f.priority = wrap(f.priority, len(slot.Priorities))
	}
}

func (f taskForm) focusedInput() bool {
	return f.focus == view.FieldTitle || f.focus == view.FieldDescription
}

// update forwards msg to the focused text input.
func (f *taskForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case view.FieldTitle:
		f.title, cmd = f.title.Update(msg)
	case view.FieldDescription:
		f.description, cmd = f.description.Update(msg)
	}
	return cmd
}

func (f taskForm) selectedDuration() int {
	return f.durations[f.duration]
}

// task builds the slot the form saves.
func (f taskForm) task(base slot.Slot) slot.Slot {
	return slot.NewTask(base,
		f.title.Value(),
		f.description.Value(),
		f.selectedDuration(),
		f.interval,
		slot.Categories[f.category],
		slot.Priorities[f.priority],
	)
}

func (f taskForm) viewModel(dayEnd string) view.TaskFormModel {
	end := slot.CalculateEndTime(f.start, f.selectedDuration())

	durations := make([]string, len(f.durations))
	for i, d := range f.durations {
		durations[i] = view.FormatDuration(d)
	}
	categories := make([]string, len(slot.Categories))
	for i, c := range slot.Categories {
		categories[i] = string(c)
	}
	priorities := make([]string, len(slot.Priorities))
	for i, p := range slot.Priorities {
		priorities[i] = string(p)
	}

	var warning string
	if slot.TimeToMinutes(end) > slot.TimeToMinutes(dayEnd) {
		warning = fmt.Sprintf("Runs past the end of the working day (%s).", dayEnd)
	}
	if strings.TrimSpace(f.title.Value()) == "" {
		warning = strings.TrimSpace(warning + " An empty title frees the slot.")
	}

	return view.TaskFormModel{
		TimeRange:      f.start + "-" + end,
		Title:          f.title.View(),
		Description:    f.description.View(),
		Focus:          f.focus,
		Durations:      durations,
		ActiveDuration: f.duration,
		Categories:     categories,
		ActiveCategory: f.category,
		Priorities:     priorities,
		ActivePriority: f.priority,
		Warning:        warning,
	}
}
