package ui

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/ultraday/internal/slot"
)

// taskForm holds the values edited by the interactive add form.
type taskForm struct {
	Title       string
	Description string
	Duration    int
	Category    slot.Category
	Priority    slot.Priority
}

func (a *App) addCmd() *cobra.Command {
	var (
		title       string
		description string
		duration    int
		category    string
		priority    string
	)

	cmd := &cobra.Command{
		Use:   "add TIME",
		Short: "Put a task into the slot starting at TIME",
		Long: `Fill the slot that starts at TIME with a task.

A task longer than one slot blocks the free slots it covers. Adding to a
slot that already holds a task replaces it. Without --title an interactive
form is shown.

Examples:
  ultraday add 09:00 --title "Team meeting" --duration 90 --category work
  ultraday add 14:30 --date tomorrow --title Gym --category health --priority low
  ultraday add 10:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := a.loadPlan(ctx)
			if err != nil {
				return err
			}
			target, err := slotAt(p, args[0])
			if err != nil {
				return err
			}
			if target.IsBlocked {
				return fmt.Errorf("slot %s is blocked by the task at %s",
					target.Time, strings.TrimPrefix(target.ParentTaskID, "slot-"))
			}

			form := taskForm{Title: title, Description: description, Duration: duration}
			if form.Category, err = parseOptional(category, slot.ParseCategory); err != nil {
				return err
			}
			if form.Priority, err = parseOptional(priority, slot.ParsePriority); err != nil {
				return err
			}

			if strings.TrimSpace(title) == "" {
				if err := runTaskForm(&form, target, p.Settings.Interval); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
						return nil
					}
					return err
				}
			}
			if strings.TrimSpace(form.Title) == "" {
				return errors.New("a task needs a title")
			}

			updated := slot.NewTask(target, form.Title, form.Description, form.Duration,
				p.Settings.Interval, form.Category, form.Priority)
			p.Update(updated)
			if err := a.savePlan(ctx, p); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Planned %s-%s %s %s\n", updated.Time, updated.EndTime,
				formatCategory(updated.Category), updated.Title)
			if blocked := slot.Children(p.Slots, updated.ID); len(blocked) > 0 {
				fmt.Fprintln(out, formatMuted(fmt.Sprintf("Blocked %d following slot(s).", len(blocked))))
			}
			if updated.EndMinutes(p.Settings.Interval) > slot.TimeToMinutes(p.Settings.EndTime) {
				fmt.Fprintln(out, formatInsight("Warning: the task runs past the end of the working day."))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Task title (interactive form when empty)")
	cmd.Flags().StringVar(&description, "desc", "", "Task description")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes (default: one slot)")
	cmd.Flags().StringVar(&category, "category", "", "Category: work, personal, health or other")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority: low, medium or high")

	return cmd
}

// parseOptional parses s with parse unless s is empty.
func parseOptional[T ~string](s string, parse func(string) (T, error)) (T, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	return parse(s)
}

// prefillTaskForm fills the fields the user left empty from target, then
// from one interval, other and medium.
func prefillTaskForm(f *taskForm, target slot.Slot, interval int) {
	if f.Title == "" {
		f.Title = target.Title
	}
	if f.Description == "" {
		f.Description = target.Description
	}
	if f.Duration <= 0 {
		f.Duration = interval
		if target.Duration > 0 {
			f.Duration = target.Duration
		}
	}
	if f.Category == "" {
		f.Category = slot.CategoryOther
		if target.Category != "" {
			f.Category = target.Category
		}
	}
	if f.Priority == "" {
		f.Priority = slot.PriorityMedium
		if target.Priority != "" {
			f.Priority = target.Priority
		}
	}
}

// durationChoices returns the offered task lengths, including selected when
// it is not one of them, so a select preset to it keeps the value.
func durationChoices(selected int) []int {
	durations := slices.Clone(slot.DurationOptions)
	if selected > 0 && !slices.Contains(durations, selected) {
		durations = append(durations, selected)
		slices.Sort(durations)
	}
	return durations
}

func runTaskForm(f *taskForm, target slot.Slot, interval int) error {
	prefillTaskForm(f, target, interval)

	choices := durationChoices(f.Duration)
	durations := make([]huh.Option[int], 0, len(choices))
	for _, d := range choices {
		durations = append(durations, huh.NewOption(FormatDuration(d), d))
	}
	categories := make([]huh.Option[slot.Category], 0, len(slot.Categories))
	for _, c := range slot.Categories {
		categories = append(categories, huh.NewOption(string(c), c))
	}
	priorities := make([]huh.Option[slot.Priority], 0, len(slot.Priorities))
	for _, p := range slot.Priorities {
		priorities = append(priorities, huh.NewOption(string(p), p))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Description("Task at "+target.Time).
				Value(&f.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("title is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Description").
				Value(&f.Description),
			huh.NewSelect[int]().
				Title("Duration").
				Options(durations...).
				Value(&f.Duration),
			huh.NewSelect[slot.Category]().
				Title("Category").
				Options(categories...).
				Value(&f.Category),
			huh.NewSelect[slot.Priority]().
				Title("Priority").
				Options(priorities...).
				Value(&f.Priority),
		),
	).Run()
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete TIME",
		Aliases: []string{"rm"},
		Short:   "Clear the task in the slot starting at TIME",
		Long: `Clear the task in the slot starting at TIME and free the slots it blocked.

Example:
  ultraday delete 09:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := a.loadPlan(ctx)
			if err != nil {
				return err
			}
			target, err := slotAt(p, args[0])
			if err != nil {
				return err
			}
			if !target.IsOccupied {
				if target.IsBlocked {
					return fmt.Errorf("slot %s is blocked by the task at %s; delete that one instead",
						target.Time, strings.TrimPrefix(target.ParentTaskID, "slot-"))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Slot %s is already free.\n", target.Time)
				return nil
			}

			p.Delete(target.ID)
			if err := a.savePlan(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", target.Time, strconv.Quote(target.Title))
			return nil
		},
	}
}
