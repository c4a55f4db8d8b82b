package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/javiermolinar/ultraday/internal/dateutil"
	"github.com/javiermolinar/ultraday/internal/slot"
)

const reviewSystemPrompt = `You are a minimalist planning coach. Output ONLY the exact format shown - no markdown, no extra text. Be extremely concise.`

const reviewPromptTemplate = `Review this day plan and output EXACTLY this format (no markdown, no code blocks):

THEME: [ 2-4 word theme ]

LOAD: One sentence on how full the day is (%d%% of slots planned).
BALANCE: One sentence on the mix of categories.
RISK: Mention back-to-back high priority tasks or a day with no breaks.

TIP: One specific change to the plan.

Day plan:
%s

Rules:
- Keep each line under 70 characters
- Be specific with times from the data
- If no issue exists for a line, omit that line
- Output plain text only`

// Reviewer asks an LLM for short feedback on a day plan.
type Reviewer struct {
	client Client
}

// NewReviewer creates a new Reviewer with the given LLM client.
func NewReviewer(client Client) *Reviewer {
	return &Reviewer{client: client}
}

// Review sends the plan's tasks to the LLM and returns its plain text feedback.
func (r *Reviewer) Review(ctx context.Context, plan *slot.Plan) (string, error) {
	stats := plan.Stats()
	prompt := fmt.Sprintf(reviewPromptTemplate, stats.Productivity, formatDay(plan))

	reply, err := r.client.Chat(ctx, []Message{
		{Role: "system", Content: reviewSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", fmt.Errorf("reviewing plan: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

// formatDay lists a plan's tasks one per line for LLM consumption.
func formatDay(plan *slot.Plan) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s-%s, %d min slots)\n",
		dateutil.FormatLong(plan.Date, "en"), plan.Settings.StartTime, plan.Settings.EndTime, plan.Settings.Interval)

	tasks := plan.Tasks()
	if len(tasks) == 0 {
		sb.WriteString("  no tasks\n")
		return sb.String()
	}
	for _, t := range tasks {
		end := t.EndMinutes(plan.Settings.Interval)
		fmt.Fprintf(&sb, "  %s-%s  [%s/%s]  %s  %s\n",
			t.Time,
			slot.MinutesToTime(end),
			t.Category,
			t.Priority,
			t.Title,
			formatDuration(end-slot.TimeToMinutes(t.Time)))
	}
	return sb.String()
}

// formatDuration formats minutes as a human-readable duration.
func formatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}
