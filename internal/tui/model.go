// Package tui provides the interactive day planner.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/ultraday/internal/config"
	"github.com/javiermolinar/ultraday/internal/llm"
	"github.com/javiermolinar/ultraday/internal/logger"
	"github.com/javiermolinar/ultraday/internal/scheduler"
	"github.com/javiermolinar/ultraday/internal/slot"
	"github.com/javiermolinar/ultraday/internal/tui/commands"
	"github.com/javiermolinar/ultraday/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalTaskForm
	ModalConfirmDelete
	ModalConfirmInterval
	ModalReview
	ModalHelp
)

const (
	headerHeight = 3 // two header lines and a blank separator
	footerHeight = 3
)

// statusTTL is how long a status message stays on screen.
var statusTTL = 4 * time.Second

// Options configures the interactive planner.
type Options struct {
	Repo   slot.Repository
	Config *config.Config
	Date   time.Time
	Debug  bool

	// Now and NewClient default to time.Now and llm.NewClient.
	Now       func() time.Time
	NewClient commands.ClientFactory
}

// Model is the main TUI model.
type Model struct {
	ctx       context.Context
	repo      slot.Repository
	saver     *commands.Saver
	config    *config.Config
	now       func() time.Time
	newClient commands.ClientFactory

	theme  *theme.Theme
	styles *Styles

	date    time.Time
	plan    *slot.Plan
	loading bool

	cursor int // index into plan.Slots
	scroll int // first visible slot
	mode   Mode
	modal  ModalType

	form            taskForm
	pendingInterval int
	review          string

	prompt textinput.Model

	// Only one export and one LLM request run at a time.
	exporting bool
	thinking  bool

	width  int
	height int

	statusMsg string
	statusErr bool
}

// NewModel creates the planner model for opts.Date.
func NewModel(ctx context.Context, opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newClient := opts.NewClient
	if newClient == nil {
		newClient = llm.NewClient
	}
	date := opts.Date
	if date.IsZero() {
		date = now()
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}

	prompt := textinput.New()
	prompt.Prompt = ""
	prompt.Placeholder = "/plan, /export, /date ... or describe what to plan"
	prompt.CharLimit = 500

	return Model{
		ctx:       ctx,
		repo:      opts.Repo,
		saver:     commands.NewSaver(opts.Repo),
		config:    cfg,
		now:       now,
		newClient: newClient,
		theme:     t,
		styles:    NewStyles(t),
		date:      truncateToDay(date),
		loading:   true,
		prompt:    prompt,
	}
}

// Init loads the initial plan.
func (m Model) Init() tea.Cmd {
	return commands.LoadPlan(m.ctx, m.repo, m.date, m.config.Planner)
}

// Run starts the planner on the terminal and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Repo == nil {
		return fmt.Errorf("no plan repository")
	}

	// The alternate screen owns stderr while the planner runs.
	if opts.Debug {
		f, err := tea.LogToFile(debugLogPath(), "ultraday")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer func() { _ = f.Close() }()
		logger.SetOutput(f)
	} else if opts.Config == nil || opts.Config.Log.File == "" {
		logger.SetOutput(io.Discard)
	}

	p := tea.NewProgram(NewModel(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func debugLogPath() string {
	return filepath.Join(os.TempDir(), "ultraday-debug.log")
}

// scheduler returns a scheduler for the loaded plan's settings.
func (m Model) scheduler() *scheduler.Scheduler {
	return scheduler.New(m.plan.Settings)
}

// isToday reports whether the loaded day is the current date.
func (m Model) isToday() bool {
	y1, m1, d1 := m.date.Date()
	y2, m2, d2 := m.now().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// selected returns the slot under the cursor.
func (m Model) selected() (slot.Slot, bool) {
	if m.plan == nil || m.cursor < 0 || m.cursor >= len(m.plan.Slots) {
		return slot.Slot{}, false
	}
	return m.plan.Slots[m.cursor], true
}

// listHeight is the number of slot rows that fit on screen.
func (m Model) listHeight() int {
	return max(m.height-headerHeight-footerHeight, 1)
}

// moveCursor moves the cursor to index i, clamped to the day, and scrolls
// it into view.
func (m *Model) moveCursor(i int) {
	if m.plan == nil || len(m.plan.Slots) == 0 {
		m.cursor, m.scroll = 0, 0
		return
	}
	m.cursor = min(max(i, 0), len(m.plan.Slots)-1)
	h := m.listHeight()
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+h {
		m.scroll = m.cursor - h + 1
	}
	m.scroll = min(max(m.scroll, 0), max(len(m.plan.Slots)-h, 0))
}

// indexOf returns the position of slot id in the plan, or -1.
func (m Model) indexOf(id string) int {
	if m.plan == nil {
		return -1
	}
	for i, s := range m.plan.Slots {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusErr = false
	return commands.ClearStatusAfter(statusTTL)
}

func (m *Model) setError(err error) tea.Cmd {
	logger.Error("tui", "err", err)
	m.statusMsg = err.Error()
	m.statusErr = true
	return commands.ClearStatusAfter(2 * statusTTL)
}

// save persists a snapshot of the current plan.
func (m Model) save() tea.Cmd {
	return m.saver.Save(m.ctx, m.plan.Snapshot())
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
