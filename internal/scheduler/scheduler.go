// Package scheduler provides time-aware helpers over a day's slots.
package scheduler

import (
	"time"

	"github.com/javiermolinar/ultraday/internal/slot"
)

// Scheduler answers "what is happening now" questions for the configured
// working days and hours.
type Scheduler struct {
	workdays map[time.Weekday]bool
	dayStart int // minutes since midnight
	dayEnd   int // minutes since midnight
	interval int
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// New creates a new Scheduler from planner settings. Settings are assumed
// to be validated; unknown weekday names are ignored.
func New(s slot.Settings) *Scheduler {
	wd := make(map[time.Weekday]bool)
	for _, d := range s.WorkingDays {
		if name, ok := slot.NormalizeWeekday(d); ok {
			wd[weekdays[name]] = true
		}
	}
	return &Scheduler{
		workdays: wd,
		dayStart: slot.TimeToMinutes(s.StartTime),
		dayEnd:   slot.TimeToMinutes(s.EndTime),
		interval: s.Interval,
	}
}

// IsWorkday returns true if the given time falls on a configured workday.
func (s *Scheduler) IsWorkday(t time.Time) bool {
	return s.workdays[t.Weekday()]
}

// IsWithinWorkHours returns true if the given time is within configured work hours.
func (s *Scheduler) IsWithinWorkHours(t time.Time) bool {
	if !s.IsWorkday(t) {
		return false
	}
	m := minuteOfDay(t)
	return m >= s.dayStart && m < s.dayEnd
}

// NextWorkday returns the first workday strictly after from, at midnight.
// With no working days configured it returns the following day.
func (s *Scheduler) NextWorkday(from time.Time) time.Time {
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	next := day.AddDate(0, 0, 1)
	for range 7 {
		if s.IsWorkday(next) {
			return next
		}
		next = next.AddDate(0, 0, 1)
	}
	return day.AddDate(0, 0, 1)
}

// RemainingMinutes returns the working minutes left in the day at now.
func (s *Scheduler) RemainingMinutes(now time.Time) int {
	if !s.IsWorkday(now) {
		return 0
	}
	m := minuteOfDay(now)
	if m < s.dayStart {
		m = s.dayStart
	}
	if m >= s.dayEnd {
		return 0
	}
	return s.dayEnd - m
}

// CurrentSlot returns the task running at now. A blocked slot resolves to
// the task that blocks it. The second result is false when nothing is
// scheduled at now.
func (s *Scheduler) CurrentSlot(slots []slot.Slot, now time.Time) (slot.Slot, bool) {
	m := minuteOfDay(now)
	for _, sl := range slots {
		if !sl.IsOccupied || sl.IsBlocked {
			continue
		}
		start := slot.TimeToMinutes(sl.Time)
		if m >= start && m < sl.EndMinutes(s.interval) {
			return sl, true
		}
	}
	// A blocked slot whose parent is missing still marks the time as taken.
	for _, sl := range slots {
		if !sl.IsBlocked {
			continue
		}
		start := slot.TimeToMinutes(sl.Time)
		if m >= start && m < start+s.interval {
			if parent, ok := slot.Find(slots, sl.ParentTaskID); ok {
				return parent, true
			}
			return sl, true
		}
	}
	return slot.Slot{}, false
}

// NextTask returns the first task that starts after now.
func (s *Scheduler) NextTask(slots []slot.Slot, now time.Time) (slot.Slot, bool) {
	m := minuteOfDay(now)
	for _, sl := range slots {
		if sl.IsOccupied && !sl.IsBlocked && slot.TimeToMinutes(sl.Time) > m {
			return sl, true
		}
	}
	return slot.Slot{}, false
}

// FreeSlots returns the slots that hold no task and are not blocked.
func FreeSlots(slots []slot.Slot) []slot.Slot {
	var free []slot.Slot
	for _, sl := range slots {
		if sl.IsEmpty() {
			free = append(free, sl)
		}
	}
	return free
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
