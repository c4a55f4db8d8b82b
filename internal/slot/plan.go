package slot

import (
	"math"
	"time"
)

// Plan is one day's slot sequence together with the settings it was
// generated from.
type Plan struct {
	Date     time.Time
	Settings Settings
	Slots    []Slot
}

// NewPlan generates an empty plan for date.
func NewPlan(date time.Time, s Settings) (*Plan, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	slots, err := Generate(s)
	if err != nil {
		return nil, err
	}
	return &Plan{
		Date:     truncateToDay(date),
		Settings: s.Clone(),
		Slots:    slots,
	}, nil
}

// ApplySettings validates s and rebuilds the whole slot sequence from it.
// Existing tasks are discarded, not migrated. On error the plan is unchanged.
func (p *Plan) ApplySettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	slots, err := Generate(s)
	if err != nil {
		return err
	}
	p.Settings = s.Clone()
	p.Slots = slots
	return nil
}

// Update applies Update with the plan's interval.
func (p *Plan) Update(updated Slot) {
	p.Slots = Update(updated, p.Slots, p.Settings.Interval)
}

// Delete applies Delete to the plan's slots.
func (p *Plan) Delete(id string) {
	p.Slots = Delete(id, p.Slots)
}

// Snapshot returns a deep copy that later edits to p cannot affect.
func (p *Plan) Snapshot() *Plan {
	return &Plan{
		Date:     p.Date,
		Settings: p.Settings.Clone(),
		Slots:    clone(p.Slots),
	}
}

// Tasks returns the occupied slots in time order.
func (p *Plan) Tasks() []Slot {
	var tasks []Slot
	for _, s := range p.Slots {
		if s.IsOccupied && !s.IsBlocked {
			tasks = append(tasks, s)
		}
	}
	return tasks
}

// Stats summarizes a plan's slot usage.
type Stats struct {
	Total        int
	Occupied     int
	Blocked      int
	Available    int
	Productivity int // percent of slots occupied, rounded
	Minutes      map[Category]int
}

// Stats computes usage statistics for the plan.
func (p *Plan) Stats() Stats {
	return ComputeStats(p.Slots, p.Settings.Interval)
}

// ComputeStats computes usage statistics for a slot sequence.
// Available counts every slot that does not hold a task, so blocked slots
// count as available, matching the productivity figure.
func ComputeStats(slots []Slot, interval int) Stats {
	st := Stats{Total: len(slots), Minutes: make(map[Category]int)}
	for _, s := range slots {
		switch {
		case s.IsOccupied && !s.IsBlocked:
			st.Occupied++
			d := s.Duration
			if d <= 0 {
				d = interval
			}
			st.Minutes[s.Category] += d
		case s.IsBlocked:
			st.Blocked++
		}
	}
	st.Available = st.Total - st.Occupied
	if st.Total > 0 {
		st.Productivity = int(math.Round(float64(st.Occupied) / float64(st.Total) * 100))
	}
	return st
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
