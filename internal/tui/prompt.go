package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/ultraday/internal/dateutil"
	"github.com/javiermolinar/ultraday/internal/export"
	"github.com/javiermolinar/ultraday/internal/llm"
	"github.com/javiermolinar/ultraday/internal/tui/commands"
	"github.com/javiermolinar/ultraday/internal/tui/input"
	"github.com/javiermolinar/ultraday/internal/tui/theme"
)

var promptCommands = []input.PromptCommand{
	{Name: "/plan", Args: "<request>", Description: "Let the assistant fill free slots"},
	{Name: "/review", Description: "Ask the assistant to review the day"},
	{Name: "/export", Args: "[pdf|ics|json]", Description: "Export the day"},
	{Name: "/date", Args: "<day>", Description: "Open another day (tomorrow, next monday, 2025-01-09)"},
	{Name: "/interval", Args: "<minutes>", Description: "Rebuild the day with another slot length"},
	{Name: "/theme", Args: "<name>", Description: "Switch color theme"},
}

func promptAutocomplete(value string) (string, bool) {
	return input.PromptAutocomplete(value, promptCommands)
}

func promptSuggestions(value string) []input.PromptCommand {
	return input.PromptMatchingCommands(value, promptCommands)
}

// runPrompt executes a prompt line. Text without a command is a planning
// request.
func (m Model) runPrompt(line string) (tea.Model, tea.Cmd) {
	name, arg := input.ParsePromptCommand(line)
	switch name {
	case "":
		if arg == "" {
			return m, nil
		}
		return m.startPlanning(arg)
	case "/plan":
		if arg == "" {
			return m, m.setStatus("Usage: /plan <request>")
		}
		return m.startPlanning(arg)
	case "/review":
		return m.startReview()
	case "/export":
		format := export.FormatPDF
		if arg != "" {
			f, err := export.ParseFormat(arg)
			if err != nil {
				return m, m.setError(err)
			}
			format = f
		}
		return m.startExport(format)
	case "/date":
		date, err := dateutil.ParseRelativeDate(arg, m.now())
		if err != nil {
			return m, m.setError(err)
		}
		return m.gotoDate(date)
	case "/interval":
		minutes, err := strconv.Atoi(strings.TrimSuffix(arg, "m"))
		if err != nil || minutes <= 0 {
			return m, m.setError(fmt.Errorf("interval must be a positive number of minutes, got %q", arg))
		}
		return m.requestInterval(minutes)
	case "/theme":
		if !theme.IsAvailable(arg) {
			return m, m.setError(fmt.Errorf("unknown theme %q (available: %s)", arg, strings.Join(theme.Available(), ", ")))
		}
		t, err := theme.Load(arg)
		if err != nil {
			return m, m.setError(err)
		}
		m.theme = t
		m.styles = NewStyles(t)
		return m, m.setStatus("Theme " + t.Name)
	}
	return m, m.setError(fmt.Errorf("unknown command %s", name))
}

func (m Model) startPlanning(request string) (tea.Model, tea.Cmd) {
	if m.plan == nil {
		return m, nil
	}
	if m.thinking {
		return m, m.setStatus("The assistant is still working")
	}
	m.thinking = true
	m.statusMsg, m.statusErr = "Planning...", false
	req := llm.SuggestRequest{
		Input: request,
		Plan:  m.plan.Snapshot(),
		Now:   m.now(),
	}
	return m, commands.Suggest(m.ctx, m.newClient, m.config.LLM, req)
}

func (m Model) startReview() (tea.Model, tea.Cmd) {
	if m.plan == nil {
		return m, nil
	}
	if len(m.plan.Tasks()) == 0 {
		return m, m.setStatus("Nothing to review: no tasks planned")
	}
	if m.thinking {
		return m, m.setStatus("The assistant is still working")
	}
	m.thinking = true
	m.statusMsg, m.statusErr = "Reviewing...", false
	return m, commands.Review(m.ctx, m.newClient, m.config.LLM, m.plan.Snapshot())
}
