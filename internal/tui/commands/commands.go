// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/ultraday/internal/config"
	"github.com/javiermolinar/ultraday/internal/export"
	"github.com/javiermolinar/ultraday/internal/llm"
	"github.com/javiermolinar/ultraday/internal/slot"
)

// PlanLoadedMsg is sent when the plan for a date is ready.
type PlanLoadedMsg struct {
	Plan *slot.Plan
	// Stored is false when the plan was generated because none was saved.
	Stored bool
}

// PlanSavedMsg is sent after a plan was written to the repository.
type PlanSavedMsg struct {
	Date time.Time
	Rev  int
	// Superseded is true when a newer snapshot of the day was already
	// written and this one was dropped.
	Superseded bool
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// ExportDoneMsg is sent when an export finished, successfully or not.
type ExportDoneMsg struct {
	Format export.Format
	Path   string
	Err    error
}

// SuggestionMsg carries the tasks proposed by the LLM planner.
type SuggestionMsg struct {
	Suggestion *llm.Suggestion
}

// ReviewMsg carries the LLM's review of the day.
type ReviewMsg struct {
	Text string
}

// ClientFactory builds an LLM client from provider settings.
type ClientFactory func(ctx context.Context, provider, model, baseURL string) (llm.Client, error)

// LoadPlan loads the plan for date, generating an empty one from settings
// when nothing is stored.
func LoadPlan(ctx context.Context, repo slot.Repository, date time.Time, settings slot.Settings) tea.Cmd {
	return func() tea.Msg {
		p, err := repo.GetPlan(ctx, date)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading plan: %w", err)}
		}
		if p != nil {
			return PlanLoadedMsg{Plan: p, Stored: true}
		}
		p, err = slot.NewPlan(date, settings)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("generating plan: %w", err)}
		}
		return PlanLoadedMsg{Plan: p}
	}
}

// Saver writes plan snapshots in the order they were taken. Save commands
// run concurrently, so each snapshot gets a revision when its command is
// built and a write never replaces a newer revision of the same day.
type Saver struct {
	repo slot.Repository

	mu      sync.Mutex
	rev     int
	written map[string]int // date -> last revision written
}

// NewSaver returns a Saver writing to repo.
func NewSaver(repo slot.Repository) *Saver {
	return &Saver{repo: repo, written: make(map[string]int)}
}

// Save stores plan. Callers pass a snapshot so later edits in the model do
// not race with the write.
func (s *Saver) Save(ctx context.Context, plan *slot.Plan) tea.Cmd {
	s.mu.Lock()
	s.rev++
	rev := s.rev
	s.mu.Unlock()

	return func() tea.Msg {
		if plan == nil {
			return ErrMsg{Err: fmt.Errorf("no plan to save")}
		}
		date := plan.Date.Format("2006-01-02")

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.written[date] > rev {
			return PlanSavedMsg{Date: plan.Date, Rev: rev, Superseded: true}
		}
		if err := s.repo.SavePlan(ctx, plan); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving plan: %w", err)}
		}
		s.written[date] = rev
		return PlanSavedMsg{Date: plan.Date, Rev: rev}
	}
}

// Export writes plan to dir in format.
func Export(dir string, format export.Format, plan *slot.Plan, opts export.Options) tea.Cmd {
	return func() tea.Msg {
		path, err := export.ToFile(dir, format, plan, opts)
		return ExportDoneMsg{Format: format, Path: path, Err: err}
	}
}

// Suggest asks the LLM planner for tasks that fit into the free slots of
// req.Plan.
func Suggest(ctx context.Context, newClient ClientFactory, cfg config.LLMConfig, req llm.SuggestRequest) tea.Cmd {
	return func() tea.Msg {
		client, err := newClient(ctx, cfg.Provider, cfg.Model, cfg.BaseURL)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating LLM client: %w", err)}
		}
		req.Compact = cfg.Provider == llm.ProviderOllama
		suggestion, err := llm.NewPlanner(client).Suggest(ctx, req)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("planning: %w", err)}
		}
		return SuggestionMsg{Suggestion: suggestion}
	}
}

// Review asks the LLM for feedback on plan.
func Review(ctx context.Context, newClient ClientFactory, cfg config.LLMConfig, plan *slot.Plan) tea.Cmd {
	return func() tea.Msg {
		client, err := newClient(ctx, cfg.Provider, cfg.Model, cfg.BaseURL)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating LLM client: %w", err)}
		}
		text, err := llm.NewReviewer(client).Review(ctx, plan)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("reviewing plan: %w", err)}
		}
		return ReviewMsg{Text: text}
	}
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
