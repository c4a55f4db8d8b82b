package slot

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrInvalidInterval = errors.New("interval must be a positive number of minutes")
	ErrInvalidWorkday  = errors.New("invalid working day")
	ErrInvalidCategory = errors.New("category must be work, personal, health or other")
	ErrInvalidPriority = errors.New("priority must be low, medium or high")
)

// IntervalOptions are the slot lengths offered by the settings forms.
// Other positive values are accepted.
var IntervalOptions = []int{15, 30, 45, 60}

// Settings configures how a day's slots are generated.
type Settings struct {
	StartTime   string   `json:"startTime" toml:"start_time"` // "HH:MM"
	EndTime     string   `json:"endTime" toml:"end_time"`     // "HH:MM"
	Interval    int      `json:"interval" toml:"interval"`    // minutes
	WorkingDays []string `json:"workingDays" toml:"working_days"`
}

// DefaultSettings returns the planner's startup settings.
func DefaultSettings() Settings {
	return Settings{
		StartTime:   "08:00",
		EndTime:     "18:00",
		Interval:    30,
		WorkingDays: []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
	}
}

// Validate checks settings at the configuration boundary.
// Malformed times and non-positive intervals are rejected here so that
// Generate never sees them.
func (s Settings) Validate() error {
	if _, err := ParseTime(s.StartTime); err != nil {
		return fmt.Errorf("start time: %w", err)
	}
	if _, err := ParseTime(s.EndTime); err != nil {
		return fmt.Errorf("end time: %w", err)
	}
	if s.Interval <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidInterval, s.Interval)
	}
	for _, d := range s.WorkingDays {
		if _, ok := NormalizeWeekday(d); !ok {
			return fmt.Errorf("%w: %q", ErrInvalidWorkday, d)
		}
	}
	return nil
}

// Clone returns a copy that shares no memory with s.
func (s Settings) Clone() Settings {
	s.WorkingDays = append([]string(nil), s.WorkingDays...)
	return s
}

var weekdayAliases = map[string]string{
	"monday": "monday", "mon": "monday", "mo": "monday",
	"tuesday": "tuesday", "tue": "tuesday", "di": "tuesday",
	"wednesday": "wednesday", "wed": "wednesday", "mi": "wednesday",
	"thursday": "thursday", "thu": "thursday", "do": "thursday",
	"friday": "friday", "fri": "friday", "fr": "friday",
	"saturday": "saturday", "sat": "saturday", "sa": "saturday",
	"sunday": "sunday", "sun": "sunday", "so": "sunday",
}

// NormalizeWeekday maps a weekday name or short label (English, or the
// German two-letter forms Mo..So) to its lower-case English name.
func NormalizeWeekday(day string) (string, bool) {
	name, ok := weekdayAliases[strings.ToLower(strings.TrimSpace(day))]
	return name, ok
}
