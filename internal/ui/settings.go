package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) settingsCmd() *cobra.Command {
	var (
		start    string
		end      string
		interval int
		workdays []string
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the day's working hours and interval",
		Long: `Show the settings of a day, or change them.

Changing any setting regenerates every slot of the day. Planned tasks are
discarded, so you are asked for confirmation when the day has tasks.

Examples:
  ultraday settings
  ultraday settings --interval 15
  ultraday settings --start 07:00 --end 15:00 --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			p, err := a.loadPlan(ctx)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("start") && !flags.Changed("end") && !flags.Changed("interval") && !flags.Changed("workdays") {
				fmt.Fprintf(out, "start_time   = %s\n", p.Settings.StartTime)
				fmt.Fprintf(out, "end_time     = %s\n", p.Settings.EndTime)
				fmt.Fprintf(out, "interval     = %d\n", p.Settings.Interval)
				fmt.Fprintf(out, "working_days = %s\n", strings.Join(p.Settings.WorkingDays, ", "))
				fmt.Fprintf(out, "slots        = %d\n", len(p.Slots))
				return nil
			}

			s := p.Settings.Clone()
			if flags.Changed("start") {
				s.StartTime = start
			}
			if flags.Changed("end") {
				s.EndTime = end
			}
			if flags.Changed("interval") {
				s.Interval = interval
			}
			if flags.Changed("workdays") {
				s.WorkingDays = workdays
			}
			if err := s.Validate(); err != nil {
				return fmt.Errorf("invalid settings: %w", err)
			}

			if n := len(p.Tasks()); n > 0 && !yes {
				q := fmt.Sprintf("This discards %d planned task(s). Continue?", n)
				if !promptYesNo(cmd.InOrStdin(), out, q) {
					fmt.Fprintln(out, "Settings unchanged.")
					return nil
				}
			}

			if err := p.ApplySettings(s); err != nil {
				return fmt.Errorf("applying settings: %w", err)
			}
			if err := a.savePlan(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(out, "Rebuilt %d slot(s): %s-%s every %d minutes\n",
				len(p.Slots), s.StartTime, s.EndTime, s.Interval)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start of the working day (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End of the working day (HH:MM)")
	cmd.Flags().IntVar(&interval, "interval", 0, "Slot length in minutes (15, 30, 45 or 60)")
	cmd.Flags().StringSliceVar(&workdays, "workdays", nil, "Working days, comma-separated")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask before discarding tasks")

	return cmd
}

func promptYesNo(in io.Reader, out io.Writer, question string) bool {
	reader := bufio.NewReader(in)
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}
