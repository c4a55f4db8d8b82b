package slot

import (
	"errors"
	"reflect"
	"testing"
)

func morningSlots(t *testing.T) []Slot {
	t.Helper()
	slots, err := Generate(Settings{StartTime: "08:00", EndTime: "10:00", Interval: 30})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return slots
}

func mustFind(t *testing.T, slots []Slot, tm string) Slot {
	t.Helper()
	s, ok := FindByTime(slots, tm)
	if !ok {
		t.Fatalf("slot %s not found", tm)
	}
	return s
}

func meeting(t *testing.T, slots []Slot, tm string, duration int) Slot {
	t.Helper()
	return NewTask(mustFind(t, slots, tm), "Meeting", "", duration, 30, CategoryWork, PriorityHigh)
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name       string
		settings   Settings
		wantTimes  []string
		wantLength int
	}{
		{
			name:      "two hours in half hours",
			settings:  Settings{StartTime: "08:00", EndTime: "10:00", Interval: 30},
			wantTimes: []string{"08:00", "08:30", "09:00", "09:30"},
		},
		{
			name:      "interval does not divide range",
			settings:  Settings{StartTime: "08:00", EndTime: "09:00", Interval: 45},
			wantTimes: []string{"08:00", "08:45"},
		},
		{
			name:      "single slot",
			settings:  Settings{StartTime: "12:00", EndTime: "12:01", Interval: 60},
			wantTimes: []string{"12:00"},
		},
		{
			name:       "default day",
			settings:   DefaultSettings(),
			wantLength: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := Generate(tt.settings)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if tt.wantTimes != nil {
				var got []string
				for _, s := range slots {
					got = append(got, s.Time)
				}
				if !reflect.DeepEqual(got, tt.wantTimes) {
					t.Errorf("times = %v, want %v", got, tt.wantTimes)
				}
			}
			if tt.wantLength != 0 && len(slots) != tt.wantLength {
				t.Errorf("len = %d, want %d", len(slots), tt.wantLength)
			}
			for _, s := range slots {
				if s.ID != "slot-"+s.Time {
					t.Errorf("slot %s has id %q", s.Time, s.ID)
				}
				if !s.IsEmpty() || s.Title != "" {
					t.Errorf("slot %s should start empty: %+v", s.Time, s)
				}
			}
		})
	}
}

func TestGenerate_LengthAndSpacing(t *testing.T) {
	for _, interval := range []int{1, 7, 15, 30, 45, 60, 90} {
		for _, r := range [][2]string{{"08:00", "18:00"}, {"00:00", "23:59"}, {"09:10", "09:11"}} {
			s := Settings{StartTime: r[0], EndTime: r[1], Interval: interval}
			slots, err := Generate(s)
			if err != nil {
				t.Fatalf("Generate(%+v) failed: %v", s, err)
			}
			start, end := TimeToMinutes(r[0]), TimeToMinutes(r[1])
			want := (end-start-1)/interval + 1
			if len(slots) != want {
				t.Fatalf("Generate(%+v) len = %d, want %d", s, len(slots), want)
			}
			if slots[0].Time != r[0] {
				t.Errorf("first slot = %s, want %s", slots[0].Time, r[0])
			}
			for i := 1; i < len(slots); i++ {
				if TimeToMinutes(slots[i].Time)-TimeToMinutes(slots[i-1].Time) != interval {
					t.Fatalf("slots %s and %s are not %d minutes apart", slots[i-1].Time, slots[i].Time, interval)
				}
			}
			if TimeToMinutes(slots[len(slots)-1].Time) >= end {
				t.Errorf("last slot %s is not before end %s", slots[len(slots)-1].Time, r[1])
			}
		}
	}
}

func TestGenerate_StartNotBeforeEnd(t *testing.T) {
	for _, s := range []Settings{
		{StartTime: "10:00", EndTime: "10:00", Interval: 30},
		{StartTime: "18:00", EndTime: "08:00", Interval: 30},
	} {
		slots, err := Generate(s)
		if err != nil {
			t.Fatalf("Generate(%+v) failed: %v", s, err)
		}
		if slots == nil || len(slots) != 0 {
			t.Errorf("Generate(%+v) = %v, want empty sequence", s, slots)
		}
	}
}

func TestGenerate_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		want     error
	}{
		{"zero interval", Settings{StartTime: "08:00", EndTime: "10:00", Interval: 0}, ErrInvalidInterval},
		{"negative interval", Settings{StartTime: "08:00", EndTime: "10:00", Interval: -15}, ErrInvalidInterval},
		{"bad start", Settings{StartTime: "8am", EndTime: "10:00", Interval: 30}, ErrInvalidTime},
		{"bad end", Settings{StartTime: "08:00", EndTime: "25:00", Interval: 30}, ErrInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.settings)
			if !errors.Is(err, tt.want) {
				t.Errorf("Generate error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUpdate_Blocking(t *testing.T) {
	slots := morningSlots(t)
	m := meeting(t, slots, "08:00", 90)

	got := Update(m, slots, 30)

	first := mustFind(t, got, "08:00")
	if !first.IsOccupied || first.Title != "Meeting" {
		t.Errorf("08:00 should hold the meeting: %+v", first)
	}
	if first.EndTime != "09:30" {
		t.Errorf("EndTime = %q, want 09:30", first.EndTime)
	}
	for _, tm := range []string{"08:30", "09:00"} {
		s := mustFind(t, got, tm)
		if !s.IsBlocked || s.ParentTaskID != "slot-08:00" {
			t.Errorf("%s should be blocked by slot-08:00: %+v", tm, s)
		}
	}
	last := mustFind(t, got, "09:30")
	if last.IsBlocked || last.ParentTaskID != "" {
		t.Errorf("09:30 starts exactly at the end and must stay free: %+v", last)
	}
}

func TestUpdate_DoesNotMutateInput(t *testing.T) {
	slots := morningSlots(t)
	before := append([]Slot(nil), slots...)

	_ = Update(meeting(t, slots, "08:00", 90), slots, 30)

	if !reflect.DeepEqual(slots, before) {
		t.Error("Update modified its input slice")
	}
}

func TestUpdate_Release(t *testing.T) {
	slots := Update(meeting(t, morningSlots(t), "08:00", 90), morningSlots(t), 30)

	shorter := mustFind(t, slots, "08:00")
	shorter.Duration = 30
	shorter.EndTime = CalculateEndTime(shorter.Time, 30)
	got := Update(shorter, slots, 30)

	for _, tm := range []string{"08:30", "09:00"} {
		s := mustFind(t, got, tm)
		if s.IsBlocked || s.ParentTaskID != "" {
			t.Errorf("%s should be released: %+v", tm, s)
		}
	}
}

func TestUpdate_ShrinkReleasesTail(t *testing.T) {
	slots := Update(meeting(t, morningSlots(t), "08:00", 120), morningSlots(t), 30)
	if len(Children(slots, "slot-08:00")) != 3 {
		t.Fatalf("expected 3 blocked slots, got %d", len(Children(slots, "slot-08:00")))
	}

	shorter := mustFind(t, slots, "08:00")
	shorter.Duration = 60
	got := Update(shorter, slots, 30)

	children := Children(got, "slot-08:00")
	if len(children) != 1 || children[0].Time != "08:30" {
		t.Errorf("children = %+v, want only 08:30", children)
	}
}

func TestUpdate_ClearingTitleReleases(t *testing.T) {
	slots := Update(meeting(t, morningSlots(t), "08:00", 90), morningSlots(t), 30)

	cleared := NewTask(mustFind(t, slots, "08:00"), "  ", "", 90, 30, "", "")
	if cleared.IsOccupied {
		t.Fatal("blank title must not occupy the slot")
	}
	got := Update(cleared, slots, 30)

	if len(Children(got, "slot-08:00")) != 0 {
		t.Error("unoccupied task must not block")
	}
}

func TestUpdate_Idempotent(t *testing.T) {
	slots := morningSlots(t)
	m := meeting(t, slots, "08:00", 90)

	once := Update(m, slots, 30)
	twice := Update(m, once, 30)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Update is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestUpdate_UnknownIDIsNoop(t *testing.T) {
	slots := morningSlots(t)
	ghost := Slot{ID: "slot-07:00", Time: "07:00", Title: "Ghost", IsOccupied: true, Duration: 120}

	got := Update(ghost, slots, 30)

	if !reflect.DeepEqual(got, slots) {
		t.Errorf("unknown id changed the sequence: %+v", got)
	}
}

func TestUpdate_OccupiedSlotShieldsItself(t *testing.T) {
	slots := morningSlots(t)
	slots = Update(NewTask(mustFind(t, slots, "08:30"), "Call", "", 30, 30, "", ""), slots, 30)

	got := Update(meeting(t, slots, "08:00", 120), slots, 30)

	call := mustFind(t, got, "08:30")
	if call.IsBlocked || !call.IsOccupied || call.ParentTaskID != "" {
		t.Errorf("occupied 08:30 must not be blocked: %+v", call)
	}
	for _, tm := range []string{"09:00", "09:30"} {
		s := mustFind(t, got, tm)
		if !s.IsBlocked || s.ParentTaskID != "slot-08:00" {
			t.Errorf("scan should continue past occupied slot, %s = %+v", tm, s)
		}
	}
}

func TestUpdate_OverrunsEndOfDay(t *testing.T) {
	slots := morningSlots(t)

	got := Update(meeting(t, slots, "09:00", 180), slots, 30)

	nine := mustFind(t, got, "09:00")
	if nine.EndTime != "12:00" {
		t.Errorf("EndTime = %q, want 12:00", nine.EndTime)
	}
	if len(got) != len(slots) {
		t.Errorf("sequence length changed: %d -> %d", len(slots), len(got))
	}
	children := Children(got, "slot-09:00")
	if len(children) != 1 || children[0].Time != "09:30" {
		t.Errorf("children = %+v, want only 09:30", children)
	}
}

func TestUpdate_DurationEqualToIntervalDoesNotBlock(t *testing.T) {
	slots := morningSlots(t)

	got := Update(meeting(t, slots, "08:00", 30), slots, 30)

	for _, s := range got {
		if s.IsBlocked {
			t.Errorf("%s should not be blocked", s.Time)
		}
	}
}

// Two tasks that both overrun a shared slot: the later update takes the slot
// over, and releasing it later only frees what it currently owns.
func TestUpdate_OverlapLastWriterWins(t *testing.T) {
	slots, err := Generate(Settings{StartTime: "08:00", EndTime: "10:00", Interval: 15})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	first := NewTask(mustFind(t, slots, "08:00"), "Deep work", "", 60, 15, CategoryWork, "")
	slots = Update(first, slots, 15)
	// 08:15 is blocked by the first task; booking it anyway overlaps 08:30
	// and 08:45, which the first task already blocks.
	overlap := NewTask(mustFind(t, slots, "08:15"), "Standup", "", 45, 15, CategoryWork, "")
	slots = Update(overlap, slots, 15)

	standup := mustFind(t, slots, "08:15")
	if !standup.IsOccupied || standup.IsBlocked || standup.ParentTaskID != "" {
		t.Fatalf("booked slot must be occupied and unblocked: %+v", standup)
	}
	for _, tm := range []string{"08:30", "08:45"} {
		s := mustFind(t, slots, tm)
		if s.ParentTaskID != "slot-08:15" {
			t.Errorf("%s parent = %q, want slot-08:15 (last writer wins)", tm, s.ParentTaskID)
		}
	}

	// Re-saving the first task takes the shared slots back.
	slots = Update(mustFind(t, slots, "08:00"), slots, 15)
	for _, tm := range []string{"08:30", "08:45"} {
		s := mustFind(t, slots, tm)
		if s.ParentTaskID != "slot-08:00" {
			t.Errorf("%s parent = %q, want slot-08:00 after re-save", tm, s.ParentTaskID)
		}
	}

	// Deleting the standup does not free slots now owned by the first task.
	slots = Delete("slot-08:15", slots)
	for _, tm := range []string{"08:30", "08:45"} {
		s := mustFind(t, slots, tm)
		if !s.IsBlocked || s.ParentTaskID != "slot-08:00" {
			t.Errorf("%s should stay blocked by slot-08:00: %+v", tm, s)
		}
	}
}

func TestDelete(t *testing.T) {
	slots := Update(meeting(t, morningSlots(t), "08:00", 90), morningSlots(t), 30)
	slots[0].Description = "weekly sync"

	got := Delete("slot-08:00", slots)

	first := mustFind(t, got, "08:00")
	want := Slot{ID: "slot-08:00", Time: "08:00"}
	if first != want {
		t.Errorf("deleted slot = %+v, want %+v", first, want)
	}
	for _, tm := range []string{"08:30", "09:00"} {
		s := mustFind(t, got, tm)
		if s.IsBlocked || s.ParentTaskID != "" {
			t.Errorf("%s should be unblocked: %+v", tm, s)
		}
	}
	if len(got) != len(slots) {
		t.Errorf("Delete removed entries: %d -> %d", len(slots), len(got))
	}
}

func TestDelete_LeavesOthersUntouched(t *testing.T) {
	slots := morningSlots(t)
	slots = Update(meeting(t, slots, "08:00", 60), slots, 30)
	slots = Update(NewTask(mustFind(t, slots, "09:00"), "Lunch", "", 60, 30, CategoryHealth, ""), slots, 30)

	got := Delete("slot-08:00", slots)

	if mustFind(t, got, "09:00") != mustFind(t, slots, "09:00") {
		t.Error("unrelated task changed")
	}
	if mustFind(t, got, "09:30") != mustFind(t, slots, "09:30") {
		t.Error("slot blocked by another task changed")
	}
}

func TestDelete_UnknownIDIsNoop(t *testing.T) {
	slots := Update(meeting(t, morningSlots(t), "08:00", 90), morningSlots(t), 30)

	got := Delete("slot-23:00", slots)

	if !reflect.DeepEqual(got, slots) {
		t.Error("unknown id changed the sequence")
	}
}

func TestNewTask(t *testing.T) {
	base := Slot{ID: "slot-08:00", Time: "08:00"}

	got := NewTask(base, "  Write report ", " draft ", 0, 45, "", "")

	if got.Title != "Write report" || got.Description != "draft" {
		t.Errorf("text not trimmed: %+v", got)
	}
	if got.Duration != 45 || got.EndTime != "08:45" {
		t.Errorf("duration/end = %d/%s, want 45/08:45", got.Duration, got.EndTime)
	}
	if got.Category != CategoryOther || got.Priority != PriorityMedium {
		t.Errorf("defaults = %s/%s, want other/medium", got.Category, got.Priority)
	}
	if !got.IsOccupied {
		t.Error("task with title should be occupied")
	}
}
