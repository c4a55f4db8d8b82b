package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ultraday/internal/config"
	"github.com/javiermolinar/ultraday/internal/llm"
	"github.com/javiermolinar/ultraday/internal/logger"
	"github.com/javiermolinar/ultraday/internal/slot"
	"github.com/javiermolinar/ultraday/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// ClientFactory builds the LLM client used by plan and review.
type ClientFactory func(ctx context.Context, provider, model, baseURL string) (llm.Client, error)

// App holds the CLI application state.
type App struct {
	repo      slot.Repository
	config    *config.Config
	root      *cobra.Command
	debug     bool   // Enable debug logging
	date      string // --date, resolved per command
	now       func() time.Time
	newClient ClientFactory
}

// NewApp creates a new CLI application with the given repository and config.
func NewApp(repo slot.Repository, cfg *config.Config) *App {
	a := &App{
		repo:      repo,
		config:    cfg,
		now:       time.Now,
		newClient: llm.NewClient,
	}

	a.root = &cobra.Command{
		Use:   "ultraday",
		Short: "A slot-based daily planner",
		Long: `Ultraday splits your working day into fixed-length slots and lets you
fill them with tasks, then export the day as PDF, iCalendar or JSON.

Run without a subcommand to open the interactive planner.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, err := a.planDate()
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), tui.Options{
				Repo:   a.repo,
				Config: a.config,
				Date:   date,
				Debug:  a.debug,
			})
		},
	}

	a.root.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		return logger.Init(logger.Config{
			Level: a.config.Log.Level,
			File:  a.config.Log.File,
			Debug: a.debug,
		})
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (mirrors the log to stderr)")
	a.root.PersistentFlags().StringVar(&a.date, "date", "", "Day to work on (YYYY-MM-DD, today, tomorrow, next monday...)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.settingsCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.planCmd())
	a.root.AddCommand(a.reviewCmd())
	a.root.AddCommand(a.nowCmd())
	a.root.AddCommand(a.serveCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ultraday %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// ExecuteContext runs the CLI application with ctx available to commands.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}
