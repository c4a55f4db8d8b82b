package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/ultraday/internal/slot"
)

// fakeClient replays a canned reply and records the messages it received.
type fakeClient struct {
	reply    string
	err      error
	messages []Message
}

func (f *fakeClient) Chat(_ context.Context, messages []Message) (string, error) {
	f.messages = messages
	return f.reply, f.err
}

func (f *fakeClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	content, err := f.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return decodeJSON(content, result)
}

func testPlan(t *testing.T) *slot.Plan {
	t.Helper()
	p, err := slot.NewPlan(time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC), slot.Settings{
		StartTime: "08:00",
		EndTime:   "11:00",
		Interval:  30,
	})
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}
	standup, _ := slot.FindByTime(p.Slots, "09:00")
	p.Update(slot.NewTask(standup, "Standup", "", 60, 30, slot.CategoryWork, slot.PriorityHigh))
	return p
}

func TestBuildMessages(t *testing.T) {
	planner := NewPlanner(nil)
	msgs := planner.BuildMessages(SuggestRequest{
		Input: "gym and groceries",
		Plan:  testPlan(t),
		Now:   time.Date(2026, 1, 8, 7, 45, 0, 0, time.UTC),
	})

	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want 2", len(msgs))
	}
	if msgs[1].Role != "user" || msgs[1].Content != "gym and groceries" {
		t.Fatalf("unexpected user message: %+v", msgs[1])
	}

	content := msgs[0].Content
	for _, want := range []string{
		"fixed slots of 30 minutes between 08:00 and 11:00",
		"Date: Thursday, January 8, 2026",
		"Current time: 07:45",
		"- 09:00-10:00: Standup [work, high]",
		"Free slots: 08:00, 08:30, 10:00, 10:30",
		"work, personal, health, other",
		`"tasks"`,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("prompt missing %q:\n%s", want, content)
		}
	}
}

func TestBuildMessages_Compact(t *testing.T) {
	msgs := NewPlanner(nil).BuildMessages(SuggestRequest{Input: "x", Plan: testPlan(t), Compact: true})

	content := msgs[0].Content
	if strings.Contains(content, "Rules:") {
		t.Errorf("expected compact prompt without rules: %s", content)
	}
	if !strings.Contains(content, "Free slots:") {
		t.Errorf("missing free slots: %s", content)
	}
}

func TestResponseSchema(t *testing.T) {
	schema := ResponseSchema()
	for _, want := range []string{`"tasks"`, `"warnings"`, `"personal"`, `"high"`, `"duration"`} {
		if !strings.Contains(schema, want) {
			t.Errorf("schema missing %s:\n%s", want, schema)
		}
	}
}

func TestSuggest(t *testing.T) {
	client := &fakeClient{reply: "```json\n" + `{
  "tasks": [{"time": "08:00", "title": "Gym", "duration": 60, "category": "health", "priority": "medium"}],
  "warnings": ["groceries do not fit"]
}` + "\n```"}

	s, err := NewPlanner(client).Suggest(context.Background(), SuggestRequest{Input: "gym", Plan: testPlan(t)})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(s.Tasks) != 1 || s.Tasks[0].Title != "Gym" || s.Tasks[0].Duration != 60 {
		t.Errorf("unexpected tasks: %+v", s.Tasks)
	}
	if len(s.Warnings) != 1 {
		t.Errorf("unexpected warnings: %v", s.Warnings)
	}
	if len(client.messages) != 2 {
		t.Errorf("expected system and user messages, got %d", len(client.messages))
	}
}

func TestSuggest_ClientError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewPlanner(&fakeClient{err: boom}).Suggest(context.Background(), SuggestRequest{Plan: testPlan(t)})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped client error, got %v", err)
	}
}

func TestSuggestionApply(t *testing.T) {
	plan := testPlan(t)
	s := &Suggestion{
		Tasks: []SuggestedTask{
			{Time: "08:00", Title: "Gym", Duration: 60, Category: "health", Priority: "low"},
			{Time: "08:30", Title: "Coffee"}, // blocked by the gym
			{Time: "09:00", Title: "Email"},  // standup
			{Time: "09:30", Title: "Inbox"},  // blocked by standup
			{Time: "12:00", Title: "Lunch"},  // outside the day
			{Time: "noon", Title: "Nap"},     // malformed
			{Time: "10:00", Title: "  "},     // no title
			{Time: "10:30", Title: "Writing", Duration: 90},
		},
		Warnings: []string{"from model"},
	}

	applied, warnings := s.Apply(plan)

	if len(applied) != 2 {
		t.Fatalf("applied = %d, want 2: %+v", len(applied), applied)
	}
	if applied[0].Category != slot.CategoryHealth || applied[0].Priority != slot.PriorityLow {
		t.Errorf("unexpected gym slot: %+v", applied[0])
	}
	if applied[1].Category != slot.CategoryOther || applied[1].Priority != slot.PriorityMedium {
		t.Errorf("expected defaults for writing, got %+v", applied[1])
	}
	// model warning, six skips and the overrun at 10:30
	if len(warnings) != 8 {
		t.Errorf("warnings = %d, want 8: %v", len(warnings), warnings)
	}
	if warnings[0] != "from model" {
		t.Errorf("expected model warnings first, got %v", warnings)
	}

	gym, _ := slot.FindByTime(plan.Slots, "08:00")
	if !gym.IsOccupied || gym.EndTime != "09:00" {
		t.Errorf("gym not written into plan: %+v", gym)
	}
	coffee, _ := slot.FindByTime(plan.Slots, "08:30")
	if !coffee.IsBlocked || coffee.ParentTaskID != "slot-08:00" {
		t.Errorf("expected 08:30 blocked by gym, got %+v", coffee)
	}
	standup, _ := slot.FindByTime(plan.Slots, "09:00")
	if standup.Title != "Standup" {
		t.Errorf("standup was overwritten: %+v", standup)
	}
}

func TestSuggestionApply_WarnsForVeryLongTasks(t *testing.T) {
	plan := testPlan(t)
	s := &Suggestion{Tasks: []SuggestedTask{{Time: "08:00", Title: "Marathon", Duration: 6000}}}

	applied, warnings := s.Apply(plan)
	if len(applied) != 1 || applied[0].EndTime != "108:00" {
		t.Fatalf("applied = %+v", applied)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "runs past the end of the day") {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestReview(t *testing.T) {
	client := &fakeClient{reply: "  THEME: steady morning\n"}
	got, err := NewReviewer(client).Review(context.Background(), testPlan(t))
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if got != "THEME: steady morning" {
		t.Errorf("Review() = %q", got)
	}
	prompt := client.messages[1].Content
	if !strings.Contains(prompt, "09:00-10:00  [work/high]  Standup  1h") {
		t.Errorf("prompt missing task line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "(17% of slots planned)") {
		t.Errorf("prompt missing load figure:\n%s", prompt)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[int]string{0: "0m", 15: "15m", 60: "1h", 90: "1h30m"}
	for in, want := range tests {
		if got := formatDuration(in); got != want {
			t.Errorf("formatDuration(%d) = %q, want %q", in, got, want)
		}
	}
}
