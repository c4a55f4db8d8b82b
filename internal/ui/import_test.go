package ui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/ultraday/internal/db"
	"github.com/javiermolinar/ultraday/internal/slot"
)

func TestImportPlans(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "source.db")
	destPath := filepath.Join(dir, "dest.db")

	sourceRepo, err := db.New(sourcePath)
	if err != nil {
		t.Fatalf("creating source repo: %v", err)
	}

	settings := slot.Settings{StartTime: "08:00", EndTime: "10:00", Interval: 30, WorkingDays: []string{"monday"}}
	day1 := time.Date(2025, 2, 3, 0, 0, 0, 0, time.Local)
	day2 := day1.AddDate(0, 0, 1)

	for _, d := range []time.Time{day1, day2} {
		p, err := slot.NewPlan(d, settings)
		if err != nil {
			t.Fatalf("NewPlan failed: %v", err)
		}
		p.Update(slot.NewTask(p.Slots[0], "Source task", "", 60, 30, slot.CategoryWork, slot.PriorityHigh))
		if err := sourceRepo.SavePlan(ctx, p); err != nil {
			t.Fatalf("SavePlan (source) failed: %v", err)
		}
	}
	_ = sourceRepo.Close()

	destRepo, err := db.New(destPath)
	if err != nil {
		t.Fatalf("creating destination repo: %v", err)
	}
	defer func() { _ = destRepo.Close() }()

	// day2 already exists in the destination and must survive without --overwrite.
	local, err := slot.NewPlan(day2, settings)
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}
	local.Update(slot.NewTask(local.Slots[2], "Local task", "", 30, 30, slot.CategoryPersonal, slot.PriorityLow))
	if err := destRepo.SavePlan(ctx, local); err != nil {
		t.Fatalf("SavePlan (dest) failed: %v", err)
	}

	imported, skipped, err := importPlans(ctx, destRepo, sourcePath, false)
	if err != nil {
		t.Fatalf("importPlans failed: %v", err)
	}
	if imported != 1 || skipped != 1 {
		t.Fatalf("expected 1 imported and 1 skipped, got %d and %d", imported, skipped)
	}

	got, err := destRepo.GetPlan(ctx, day1)
	if err != nil || got == nil {
		t.Fatalf("GetPlan(day1) = %v, %v", got, err)
	}
	if got.Slots[0].Title != "Source task" || !got.Slots[1].IsBlocked {
		t.Errorf("imported plan lost its task: %+v", got.Slots[:2])
	}

	kept, err := destRepo.GetPlan(ctx, day2)
	if err != nil || kept == nil {
		t.Fatalf("GetPlan(day2) = %v, %v", kept, err)
	}
	if kept.Slots[2].Title != "Local task" {
		t.Errorf("existing plan was overwritten: %+v", kept.Slots)
	}

	imported, skipped, err = importPlans(ctx, destRepo, sourcePath, true)
	if err != nil {
		t.Fatalf("importPlans (overwrite) failed: %v", err)
	}
	if imported != 2 || skipped != 0 {
		t.Fatalf("expected 2 imported and 0 skipped, got %d and %d", imported, skipped)
	}
	replaced, _ := destRepo.GetPlan(ctx, day2)
	if replaced.Slots[0].Title != "Source task" || replaced.Slots[2].IsOccupied {
		t.Errorf("expected day2 to be replaced by the source plan, got %+v", replaced.Slots)
	}
}

func TestResolvePath(t *testing.T) {
	if _, err := resolvePath("  "); err == nil {
		t.Error("expected error for empty path")
	}
	got, err := resolvePath("data/x.db")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %s", got)
	}
}
