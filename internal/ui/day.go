package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/ultraday/internal/dateutil"
	"github.com/javiermolinar/ultraday/internal/logger"
	"github.com/javiermolinar/ultraday/internal/slot"
)

// planDate resolves the --date flag against the app clock.
func (a *App) planDate() (time.Time, error) {
	return dateutil.ParseRelativeDate(a.date, a.now())
}

// loadPlan returns the stored plan for the --date day, or a freshly
// generated one from the configured settings when nothing is stored yet.
func (a *App) loadPlan(ctx context.Context) (*slot.Plan, error) {
	date, err := a.planDate()
	if err != nil {
		return nil, err
	}

	p, err := a.repo.GetPlan(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("loading plan: %w", err)
	}
	if p != nil {
		return p, nil
	}

	p, err = slot.NewPlan(date, a.config.Planner)
	if err != nil {
		return nil, fmt.Errorf("generating plan: %w", err)
	}
	logger.Debug("generated plan", "date", date.Format("2006-01-02"), "slots", len(p.Slots))
	return p, nil
}

func (a *App) savePlan(ctx context.Context, p *slot.Plan) error {
	if err := a.repo.SavePlan(ctx, p); err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	logger.Debug("saved plan", "date", p.Date.Format("2006-01-02"))
	return nil
}

// slotAt finds the slot starting at t ("HH:MM", "H:MM" or "slot-HH:MM").
func slotAt(p *slot.Plan, t string) (slot.Slot, error) {
	t = strings.TrimPrefix(strings.TrimSpace(t), "slot-")
	if len(t) == 4 && t[1] == ':' {
		t = "0" + t
	}
	if _, err := slot.ParseTime(t); err != nil {
		return slot.Slot{}, err
	}
	s, ok := slot.FindByTime(p.Slots, t)
	if !ok {
		return slot.Slot{}, fmt.Errorf("no slot starts at %s (day runs %s-%s in %d-minute steps)",
			t, p.Settings.StartTime, p.Settings.EndTime, p.Settings.Interval)
	}
	return s, nil
}
