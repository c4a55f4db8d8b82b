// Package slot defines the day planner's time slots and the pure functions
// that generate and mutate a day's slot sequence.
package slot

import (
	"fmt"
	"strings"
)

// Category classifies a task.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategoryOther    Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryWork, CategoryPersonal, CategoryHealth, CategoryOther}

// Valid returns true if the category is a known value.
func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryHealth, CategoryOther:
		return true
	default:
		return false
	}
}

// ParseCategory parses a category name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// Priority ranks a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid returns true if the priority is a known value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// ParsePriority parses a priority name, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return p, nil
}

// DurationOptions are the task lengths offered by the edit forms, in minutes.
var DurationOptions = []int{15, 30, 45, 60, 90, 120, 180}

// Slot is one bookable unit of the day, keyed by its start time.
// An empty Title means the slot is unoccupied.
type Slot struct {
	ID           string   `json:"id"`
	Time         string   `json:"time"` // "HH:MM"
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	IsOccupied   bool     `json:"isOccupied"`
	IsBlocked    bool     `json:"isBlocked"`
	ParentTaskID string   `json:"parentTaskId,omitempty"` // set only while blocked
	Duration     int      `json:"duration,omitempty"`     // minutes, 0 when unset
	EndTime      string   `json:"endTime,omitempty"`      // Time + Duration
	Category     Category `json:"category,omitempty"`
	Priority     Priority `json:"priority,omitempty"`
}

// IDForTime returns the stable slot identifier for a start time.
func IDForTime(t string) string {
	return "slot-" + t
}

// IsEmpty reports whether the slot holds no task and is not blocked.
func (s Slot) IsEmpty() bool {
	return !s.IsOccupied && !s.IsBlocked
}

// EndMinutes returns the minute offset at which the slot's task ends.
// Slots without a duration end after interval minutes.
func (s Slot) EndMinutes(interval int) int {
	d := s.Duration
	if d <= 0 {
		d = interval
	}
	return TimeToMinutes(s.Time) + d
}

// NewTask returns a copy of s filled the way the edit form saves a task:
// text is trimmed, a non-positive duration falls back to interval, the end
// time is recomputed and the slot is occupied iff the title is non-empty.
// Empty category and priority default to other and medium.
func NewTask(s Slot, title, description string, duration, interval int, category Category, priority Priority) Slot {
	if duration <= 0 {
		duration = interval
	}
	if category == "" {
		category = CategoryOther
	}
	if priority == "" {
		priority = PriorityMedium
	}
	s.Title = strings.TrimSpace(title)
	s.Description = strings.TrimSpace(description)
	s.Duration = duration
	s.EndTime = CalculateEndTime(s.Time, duration)
	s.Category = category
	s.Priority = priority
	s.IsOccupied = s.Title != ""
	return s
}
