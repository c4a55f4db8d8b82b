package ui

import (
	"fmt"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/ultraday/internal/logger"
	"github.com/javiermolinar/ultraday/internal/scheduler"
	"github.com/javiermolinar/ultraday/internal/slot"
)

// notify sends a desktop notification; replaced in tests.
var notify = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

func (a *App) nowCmd() *cobra.Command {
	var notifyFlag bool

	cmd := &cobra.Command{
		Use:   "now",
		Short: "Show the current and the next task",
		Long: `Show the task running right now and the next one coming up today.

With --notify the result is also sent as a desktop notification, which
makes the command usable from cron or a status bar.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := a.now()
			p, err := a.repo.GetPlan(cmd.Context(), now)
			if err != nil {
				return fmt.Errorf("loading plan: %w", err)
			}
			if p == nil {
				if p, err = slot.NewPlan(now, a.config.Planner); err != nil {
					return fmt.Errorf("generating plan: %w", err)
				}
			}

			title, message := currentStatus(p, now)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", formatHeader(title), message)

			if notifyFlag {
				if err := notify(title, message); err != nil {
					logger.Warn("desktop notification failed", "err", err)
					return fmt.Errorf("sending notification: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&notifyFlag, "notify", false, "Also send a desktop notification")
	return cmd
}

// currentStatus describes the task running at now and the one after it.
func currentStatus(p *slot.Plan, now time.Time) (title, message string) {
	sched := scheduler.New(p.Settings)

	if !sched.IsWorkday(now) {
		next := sched.NextWorkday(now)
		return "Day off", fmt.Sprintf("Next working day: %s", next.Format("Monday, January 2"))
	}

	current, ok := sched.CurrentSlot(p.Slots, now)
	switch {
	case ok:
		title = fmt.Sprintf("Now: %s (until %s)", current.Title, current.EndTime)
	case sched.IsWithinWorkHours(now):
		title = "Now: free"
	default:
		title = "Outside working hours"
	}

	next, ok := sched.NextTask(p.Slots, now)
	if ok {
		message = fmt.Sprintf("Next: %s at %s", next.Title, next.Time)
	} else {
		message = "Nothing else planned today."
	}
	if left := sched.RemainingMinutes(now); left > 0 {
		message += fmt.Sprintf(" %s of the working day left.", FormatDuration(left))
	}
	return title, message
}
