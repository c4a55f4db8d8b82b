package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/invopop/jsonschema"

	"github.com/javiermolinar/ultraday/internal/dateutil"
	"github.com/javiermolinar/ultraday/internal/slot"
)

const plannerSystemPrompt = `You are a day planning assistant. The user's day is divided into fixed slots of %d minutes between %s and %s.

Date: %s
Current time: %s

%s

%s

Rules:
- Only use start times from the free slots listed above.
- Never move or overlap the existing tasks.
- Durations are in minutes; prefer %s.
- A task longer than one slot covers the following free slots.
- Category must be one of: %s.
- Priority must be one of: %s.
- Add a warning for anything in the request you could not schedule.
- Respond ONLY with JSON matching this schema (no markdown, no explanation):

%s`

const plannerCompactPrompt = `Schedule the user's request into free %d-minute slots on %s (%s-%s).

%s

%s

Return JSON only, matching:
%s`

// SuggestedTask is one task proposed for a free slot.
type SuggestedTask struct {
	Time        string `json:"time" jsonschema:"pattern=^[0-2][0-9]:[0-5][0-9]$,description=Start time of a free slot in HH:MM"`
	Title       string `json:"title" jsonschema:"minLength=1"`
	Description string `json:"description,omitempty"`
	Duration    int    `json:"duration" jsonschema:"minimum=1,description=Length in minutes"`
	Category    string `json:"category" jsonschema:"enum=work,enum=personal,enum=health,enum=other"`
	Priority    string `json:"priority" jsonschema:"enum=low,enum=medium,enum=high"`
}

// Suggestion is the planner's parsed response.
type Suggestion struct {
	Tasks    []SuggestedTask `json:"tasks"`
	Warnings []string        `json:"warnings"`
}

// SuggestRequest contains the input for the planner.
type SuggestRequest struct {
	Input   string
	Plan    *slot.Plan
	Now     time.Time
	Compact bool // shorter prompt for local models
}

// Planner uses an LLM to fill free slots from natural language input.
type Planner struct {
	client Client
}

// NewPlanner creates a new Planner with the given LLM client.
func NewPlanner(client Client) *Planner {
	return &Planner{client: client}
}

// Suggest asks the model for tasks matching req.Input. The plan is not modified.
func (p *Planner) Suggest(ctx context.Context, req SuggestRequest) (*Suggestion, error) {
	var s Suggestion
	if err := p.client.ChatJSON(ctx, p.BuildMessages(req), &s); err != nil {
		return nil, fmt.Errorf("getting suggestion from LLM: %w", err)
	}
	return &s, nil
}

// BuildMessages creates the message list for a planning request.
func (p *Planner) BuildMessages(req SuggestRequest) []Message {
	plan := req.Plan
	s := plan.Settings
	date := dateutil.FormatLong(plan.Date, "en")
	free := formatFreeSlots(plan.Slots)
	existing := formatTasks(plan.Tasks(), s.Interval)

	var prompt string
	if req.Compact {
		prompt = fmt.Sprintf(plannerCompactPrompt,
			s.Interval, date, s.StartTime, s.EndTime,
			existing,
			free,
			ResponseSchema(),
		)
	} else {
		prompt = fmt.Sprintf(plannerSystemPrompt,
			s.Interval, s.StartTime, s.EndTime,
			date,
			req.Now.Format("15:04"),
			existing,
			free,
			joinInts(slot.DurationOptions),
			joinCategories(),
			joinPriorities(),
			ResponseSchema(),
		)
	}

	return []Message{
		{Role: "system", Content: prompt},
		{Role: "user", Content: req.Input},
	}
}

// ResponseSchema returns the JSON schema the model's reply must follow.
func ResponseSchema() string {
	r := &jsonschema.Reflector{DoNotReference: true}
	data, err := json.MarshalIndent(r.Reflect(&Suggestion{}), "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Apply writes the suggested tasks into plan through the slot engine.
// Suggestions for unknown times or slots that are not free are skipped and
// reported as warnings, as are suggestions with no title. It returns the
// slots that were filled.
func (s *Suggestion) Apply(plan *slot.Plan) (applied []slot.Slot, warnings []string) {
	warnings = append(warnings, s.Warnings...)
	interval := plan.Settings.Interval

	for _, t := range s.Tasks {
		if _, err := slot.ParseTime(t.Time); err != nil {
			warnings = append(warnings, fmt.Sprintf("skipped %q: invalid time %q", t.Title, t.Time))
			continue
		}
		target, ok := slot.FindByTime(plan.Slots, t.Time)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("skipped %q: no slot at %s", t.Title, t.Time))
			continue
		}
		if !target.IsEmpty() {
			warnings = append(warnings, fmt.Sprintf("skipped %q: %s is already taken", t.Title, t.Time))
			continue
		}
		if strings.TrimSpace(t.Title) == "" {
			warnings = append(warnings, fmt.Sprintf("skipped task at %s: missing title", t.Time))
			continue
		}

		category, err := slot.ParseCategory(t.Category)
		if err != nil {
			category = slot.CategoryOther
		}
		priority, err := slot.ParsePriority(t.Priority)
		if err != nil {
			priority = slot.PriorityMedium
		}

		filled := slot.NewTask(target, t.Title, t.Description, t.Duration, interval, category, priority)
		if filled.EndMinutes(interval) > slot.TimeToMinutes(plan.Settings.EndTime) {
			warnings = append(warnings, fmt.Sprintf("%q runs past the end of the day (%s)", filled.Title, filled.EndTime))
		}
		plan.Update(filled)
		applied = append(applied, filled)
	}
	return applied, warnings
}

func formatFreeSlots(slots []slot.Slot) string {
	var free []string
	for _, sl := range slots {
		if sl.IsEmpty() {
			free = append(free, sl.Time)
		}
	}
	if len(free) == 0 {
		return "Free slots: None"
	}
	return "Free slots: " + strings.Join(free, ", ")
}

func formatTasks(tasks []slot.Slot, interval int) string {
	if len(tasks) == 0 {
		return "Existing tasks: None"
	}

	var sb strings.Builder
	sb.WriteString("Existing tasks (do not overlap):\n")
	for _, t := range tasks {
		fmt.Fprintf(&sb, "- %s-%s: %s [%s, %s]\n",
			t.Time, slot.MinutesToTime(t.EndMinutes(interval)), t.Title, t.Category, t.Priority)
	}
	return sb.String()
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

func joinCategories() string {
	parts := make([]string, len(slot.Categories))
	for i, c := range slot.Categories {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

func joinPriorities() string {
	parts := make([]string, len(slot.Priorities))
	for i, p := range slot.Priorities {
		parts[i] = string(p)
	}
	return strings.Join(parts, ", ")
}
