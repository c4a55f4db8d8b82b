package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ultraday/internal/llm"
	"github.com/javiermolinar/ultraday/internal/slot"
)

func (a *App) planCmd() *cobra.Command {
	var (
		modelFlag string
		dryRun    bool
		yes       bool
	)

	cmd := &cobra.Command{
		Use:   "plan [request]",
		Short: "Fill free slots from a natural language request",
		Long: `Use an LLM to turn a natural language request into tasks placed in
the day's free slots. Existing tasks are never moved.

Examples:
  ultraday plan "2 hours on the report, lunch at noon, 30 min run after work"
  ultraday plan "prepare slides for Friday" --date tomorrow --dry-run

Interactive mode:
  After the model proposes tasks, you can:
  - [a]ccept: Save the tasks into the day
  - [m]odify: Describe what to change and ask again
  - [c]ancel: Exit without saving`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := a.loadPlan(ctx)
			if err != nil {
				return err
			}

			model := modelFlag
			if model == "" {
				model = a.config.LLM.Model
			}
			client, err := a.newClient(ctx, a.config.LLM.Provider, model, a.config.LLM.BaseURL)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}

			return a.runPlanLoop(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), llm.NewPlanner(client), p,
				strings.Join(args, " "), dryRun, yes)
		},
	}

	cmd.Flags().StringVar(&modelFlag, "model", "", "LLM model to use (from config if not set)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show proposed tasks without saving")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Accept the first proposal without asking")

	return cmd
}

func (a *App) runPlanLoop(ctx context.Context, in io.Reader, out io.Writer, planner *llm.Planner, p *slot.Plan, input string, dryRun, yes bool) error {
	req := llm.SuggestRequest{
		Input:   input,
		Plan:    p,
		Now:     a.now(),
		Compact: a.config.LLM.Provider == llm.ProviderOllama,
	}
	reader := bufio.NewReader(in)

	for {
		fmt.Fprintln(out, "Planning tasks...")
		suggestion, err := planner.Suggest(ctx, req)
		if err != nil {
			return fmt.Errorf("planning: %w", err)
		}

		// Apply to a copy so a rejected proposal leaves the day untouched.
		proposal := p.Snapshot()
		applied, warnings := suggestion.Apply(proposal)
		displayProposal(out, proposal, applied, warnings)

		if dryRun {
			fmt.Fprintln(out, "\n(Dry run - tasks not saved)")
			return nil
		}
		if len(applied) == 0 {
			return nil
		}

		choice := "a"
		if !yes {
			fmt.Fprint(out, "\n[a]ccept / [m]odify / [c]ancel: ")
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("reading input: %w", err)
			}
			choice = strings.TrimSpace(strings.ToLower(line))
		}

		switch choice {
		case "a", "accept":
			p.Slots = proposal.Slots
			if err := a.savePlan(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d task(s) saved\n", len(applied))
			return nil

		case "m", "modify":
			fmt.Fprint(out, "What would you like to change? ")
			modification, err := reader.ReadString('\n')
			if err != nil && modification == "" {
				return fmt.Errorf("reading input: %w", err)
			}
			modification = strings.TrimSpace(modification)
			if modification == "" {
				fmt.Fprintln(out, "No modification provided, keeping the request as is.")
				continue
			}
			req.Input = input + "\nAdjustment: " + modification

		case "c", "cancel":
			fmt.Fprintln(out, "Planning cancelled.")
			return nil

		default:
			fmt.Fprintln(out, "Invalid choice. Please enter 'a', 'm', or 'c'.")
		}
	}
}

func displayProposal(out io.Writer, p *slot.Plan, applied []slot.Slot, warnings []string) {
	fmt.Fprintln(out)
	if len(warnings) > 0 {
		fmt.Fprintln(out, "Warnings:")
		for _, w := range warnings {
			fmt.Fprintf(out, "  ! %s\n", formatInsight(w))
		}
		fmt.Fprintln(out)
	}

	if len(applied) == 0 {
		fmt.Fprintln(out, "No tasks proposed.")
		return
	}

	fmt.Fprintln(out, strings.Repeat("-", 60))
	for _, s := range applied {
		PrintSlotRow(out, s, p.Settings.Interval, 40)
	}
	fmt.Fprintln(out, strings.Repeat("-", 60))
	fmt.Fprintf(out, "Total: %d task(s), day %d%% planned\n", len(applied), p.Stats().Productivity)
}

func (a *App) reviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Ask the LLM for feedback on the day's plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p, err := a.loadPlan(ctx)
			if err != nil {
				return err
			}
			if len(p.Tasks()) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to review: no tasks planned.")
				return nil
			}

			client, err := a.newClient(ctx, a.config.LLM.Provider, a.config.LLM.Model, a.config.LLM.BaseURL)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}
			feedback, err := llm.NewReviewer(client).Review(ctx, p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatHeader("Review"))
			PrintInsightWrapped(out, feedback, termWidth())
			return nil
		},
	}
}
