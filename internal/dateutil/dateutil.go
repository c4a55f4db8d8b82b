// Package dateutil provides date parsing and formatting utilities.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/tj/go-naturaldate"
)

// ErrInvalidDateFormat is returned for date input that cannot be understood.
var ErrInvalidDateFormat = errors.New("date must be YYYY-MM-DD or a phrase like \"tomorrow\"")

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	return ParseRelativeDate(s, time.Now())
}

// ParseRelativeDate parses a date string that can be:
//   - Empty string, "today" or "now": returns relativeTo's day
//   - "tomorrow", "yesterday"
//   - Absolute date: "2025-01-15" (YYYY-MM-DD), in relativeTo's location
//   - Weekday names: "monday" through "sunday" (next occurrence, always future)
//   - Next prefixed: "next-monday" through "next-sunday", "next-week"
//   - Anything go-naturaldate understands, e.g. "3 days from now"
//
// All inputs are case-insensitive and the result is truncated to midnight.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today", "now":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "next-week":
		return today.AddDate(0, 0, 7), nil
	}

	if name, ok := strings.CutPrefix(input, "next-"); ok {
		if targetDay, ok := weekdayMap[name]; ok {
			return nextWeekday(today, targetDay), nil
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}

	if targetDay, ok := weekdayMap[input]; ok {
		return nextWeekday(today, targetDay), nil
	}

	if t, err := time.ParseInLocation("2006-01-02", input, relativeTo.Location()); err == nil {
		return t, nil
	}

	// Numeric input that is not ISO is rejected rather than guessed at.
	if !strings.ContainsFunc(input, unicode.IsLetter) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}

	t, err := naturaldate.Parse(input, relativeTo, naturaldate.WithDirection(naturaldate.Future))
	if err != nil || t.Equal(relativeTo) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return TruncateToDay(t), nil
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekdayName returns the lower-case English weekday name of t.
func WeekdayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

var germanWeekdays = [...]string{
	"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag",
}

var germanMonths = [...]string{
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

// FormatLong renders t as a long date in the given language.
// "de" gives "Donnerstag, 9. Januar 2025"; anything else gives
// "Thursday, January 9, 2025".
func FormatLong(t time.Time, lang string) string {
	if lang == "de" {
		return fmt.Sprintf("%s, %d. %s %d",
			germanWeekdays[t.Weekday()], t.Day(), germanMonths[t.Month()-1], t.Year())
	}
	return t.Format("Monday, January 2, 2006")
}

// FormatShort renders t as a numeric date in the given language.
func FormatShort(t time.Time, lang string) string {
	if lang == "de" {
		return t.Format("02.01.2006")
	}
	return t.Format("2006-01-02")
}
