package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/javiermolinar/ultraday/internal/slot"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{15, "15m"},
		{60, "1h"},
		{90, "1h30m"},
		{180, "3h"},
	}
	for _, tc := range tests {
		if got := FormatDuration(tc.minutes); got != tc.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestProductivityBar(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		pct  int
		want string
	}{
		{0, "[░░░░░░░░░░] (0% planned)"},
		{50, "[█████░░░░░] (50% planned)"},
		{100, "[██████████] (100% planned)"},
		{140, "[██████████] (100% planned)"},
	}
	for _, tc := range tests {
		if got := ProductivityBar(tc.pct, 10); got != tc.want {
			t.Errorf("ProductivityBar(%d) = %q, want %q", tc.pct, got, tc.want)
		}
	}
}

func TestPrintSlotRow_TruncatesTitle(t *testing.T) {
	color.NoColor = true
	s := slot.NewTask(slot.Slot{ID: "slot-08:00", Time: "08:00"}, strings.Repeat("x", 30), "", 0, 30, slot.CategoryHealth, slot.PriorityLow)

	var buf bytes.Buffer
	PrintSlotRow(&buf, s, 30, 10)
	got := buf.String()

	if !strings.Contains(got, "08:00-08:30") {
		t.Errorf("expected time span, got %q", got)
	}
	if !strings.Contains(got, "xxxxxxx...") || strings.Contains(got, "xxxxxxxxxxx") {
		t.Errorf("expected title truncated to 10 columns, got %q", got)
	}
	if !strings.Contains(got, "[health]") || !strings.Contains(got, "30m") {
		t.Errorf("expected category and duration, got %q", got)
	}
}

func TestPlainText(t *testing.T) {
	p, err := slot.NewPlan(time.Date(2025, 1, 9, 0, 0, 0, 0, time.Local), slot.Settings{
		StartTime: "08:00", EndTime: "10:00", Interval: 30,
	})
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}
	p.Update(slot.NewTask(p.Slots[0], "Standup", "", 60, 30, slot.CategoryWork, ""))

	want := "Thursday\n08:00-09:00 Standup [work]\n"
	if got := PlainText(p, "Thursday"); got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}

func TestStripMarkdownCodeBlocks(t *testing.T) {
	in := "before\n```json\n{}\n```\nafter"
	if got := stripMarkdownCodeBlocks(in); got != "before\nafter" {
		t.Errorf("stripMarkdownCodeBlocks() = %q", got)
	}
}

func TestPrintInsightWrapped(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	PrintInsightWrapped(&buf, "# Plan\n- one two three four five six", 20)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "  Plan" {
		t.Errorf("expected header line, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "    • one") {
		t.Errorf("expected bullet, got %q", lines[1])
	}
	if len(lines) < 3 || !strings.HasPrefix(lines[2], "      ") {
		t.Errorf("expected wrapped continuation line, got %q", lines)
	}
}

func TestCurrentStatus(t *testing.T) {
	p, err := slot.NewPlan(time.Date(2025, 1, 9, 0, 0, 0, 0, time.Local), slot.Settings{
		StartTime:   "08:00",
		EndTime:     "12:00",
		Interval:    30,
		WorkingDays: []string{"thursday"},
	})
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}
	p.Update(slot.NewTask(p.Slots[2], "Focus", "", 90, 30, slot.CategoryWork, slot.PriorityHigh))

	at := func(h, m int) time.Time { return time.Date(2025, 1, 9, h, m, 0, 0, time.Local) }

	tests := []struct {
		name        string
		now         time.Time
		wantTitle   string
		wantMessage string
	}{
		{"before work", at(7, 0), "Outside working hours", "Next: Focus at 09:00 4h of the working day left."},
		{"free slot", at(8, 15), "Now: free", "Next: Focus at 09:00 3h45m of the working day left."},
		{"inside blocked part", at(10, 0), "Now: Focus (until 10:30)", "Nothing else planned today. 2h of the working day left."},
		{"after work", at(13, 0), "Outside working hours", "Nothing else planned today."},
		{"day off", time.Date(2025, 1, 10, 9, 0, 0, 0, time.Local), "Day off", "Next working day: Thursday, January 16"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			title, message := currentStatus(p, tc.now)
			if title != tc.wantTitle {
				t.Errorf("title = %q, want %q", title, tc.wantTitle)
			}
			if message != tc.wantMessage {
				t.Errorf("message = %q, want %q", message, tc.wantMessage)
			}
		})
	}
}
