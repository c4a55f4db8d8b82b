package slot

import (
	"errors"
	"testing"
	"time"
)

func newTestPlan(t *testing.T) *Plan {
	t.Helper()
	p, err := NewPlan(time.Date(2025, 3, 10, 15, 4, 0, 0, time.UTC),
		Settings{StartTime: "08:00", EndTime: "10:00", Interval: 30})
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}
	return p
}

func TestNewPlan(t *testing.T) {
	p := newTestPlan(t)

	if p.Date.Hour() != 0 || p.Date.Minute() != 0 {
		t.Errorf("date should be truncated to the day, got %v", p.Date)
	}
	if len(p.Slots) != 4 {
		t.Errorf("expected 4 slots, got %d", len(p.Slots))
	}
}

func TestNewPlan_InvalidSettings(t *testing.T) {
	_, err := NewPlan(time.Now(), Settings{StartTime: "08:00", EndTime: "10:00"})
	if !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestPlan_ApplySettingsDiscardsTasks(t *testing.T) {
	p := newTestPlan(t)
	s, _ := FindByTime(p.Slots, "08:00")
	p.Update(NewTask(s, "Meeting", "", 90, 30, CategoryWork, PriorityHigh))

	if err := p.ApplySettings(Settings{StartTime: "08:00", EndTime: "10:00", Interval: 15}); err != nil {
		t.Fatalf("ApplySettings failed: %v", err)
	}

	if len(p.Slots) != 8 {
		t.Errorf("expected 8 slots, got %d", len(p.Slots))
	}
	for _, s := range p.Slots {
		if !s.IsEmpty() {
			t.Errorf("slot %s survived the rebuild: %+v", s.Time, s)
		}
	}
}

func TestPlan_ApplySettingsErrorKeepsPlan(t *testing.T) {
	p := newTestPlan(t)
	before := p.Snapshot()

	err := p.ApplySettings(Settings{StartTime: "08:00", EndTime: "10:00", Interval: -1})
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
	if p.Settings.Interval != before.Settings.Interval || len(p.Slots) != len(before.Slots) {
		t.Error("failed ApplySettings changed the plan")
	}
}

func TestPlan_SnapshotIsIndependent(t *testing.T) {
	p := newTestPlan(t)
	snap := p.Snapshot()

	s, _ := FindByTime(p.Slots, "08:00")
	p.Update(NewTask(s, "Meeting", "", 90, 30, CategoryWork, PriorityHigh))
	p.Settings.WorkingDays = append(p.Settings.WorkingDays, "saturday")

	if got, _ := FindByTime(snap.Slots, "08:00"); got.IsOccupied {
		t.Error("snapshot saw a later update")
	}
	if len(snap.Settings.WorkingDays) != 0 {
		t.Error("snapshot shares working days with the plan")
	}
}

func TestPlan_Stats(t *testing.T) {
	p := newTestPlan(t)
	s, _ := FindByTime(p.Slots, "08:00")
	p.Update(NewTask(s, "Meeting", "", 90, 30, CategoryWork, PriorityHigh))

	st := p.Stats()

	if st.Total != 4 || st.Occupied != 1 || st.Blocked != 2 || st.Available != 3 {
		t.Errorf("stats = %+v", st)
	}
	if st.Productivity != 25 {
		t.Errorf("productivity = %d, want 25", st.Productivity)
	}
	if st.Minutes[CategoryWork] != 90 {
		t.Errorf("work minutes = %d, want 90", st.Minutes[CategoryWork])
	}
	if len(p.Tasks()) != 1 {
		t.Errorf("expected 1 task, got %d", len(p.Tasks()))
	}
}

func TestComputeStats_Empty(t *testing.T) {
	st := ComputeStats(nil, 30)
	if st.Total != 0 || st.Productivity != 0 {
		t.Errorf("stats = %+v", st)
	}
}
