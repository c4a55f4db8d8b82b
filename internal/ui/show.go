package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/ultraday/internal/dateutil"
)

func (a *App) showCmd() *cobra.Command {
	var (
		all     bool
		verbose bool
		copyOut bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the day's slots and statistics",
		Long: `Display the planned tasks of a day together with its statistics.

By default only occupied slots are listed; --all also lists free and
blocked slots.

Examples:
  ultraday show
  ultraday show --date tomorrow --all
  ultraday show --copy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			p, err := a.loadPlan(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			heading := dateutil.FormatLong(p.Date, a.config.Export.Language)

			fmt.Fprintf(out, "=== %s ===\n", formatHeader(heading))
			fmt.Fprintf(out, "%s\n\n", formatMuted(fmt.Sprintf("%s-%s, %d-minute slots",
				p.Settings.StartTime, p.Settings.EndTime, p.Settings.Interval)))

			if len(p.Slots) == 0 {
				fmt.Fprintln(out, "No slots: the working day is empty.")
				return nil
			}

			if PrintPlan(out, p, PrintOpts{All: all, Verbose: verbose}) == 0 {
				fmt.Fprintln(out, "No tasks planned.")
			}

			st := p.Stats()
			fmt.Fprintln(out)
			PrintStats(out, st)
			fmt.Fprintf(out, "Plan: %s\n", ProductivityBar(st.Productivity, 20))

			if copyOut {
				if err := clipboard.WriteAll(PlainText(p, heading)); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(out, formatMuted("Copied to clipboard."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Also list free and blocked slots")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show task descriptions")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the task list to the clipboard")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}
